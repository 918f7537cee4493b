package smartscore

import (
	"slices"
	"testing"
)

func TestComputeLogement_StrongDossier(t *testing.T) {
	res := ComputeLogement(LogementInput{
		Demographics: &Demographics{EvolutionPop5Ans: 5},
		Market: &Market{
			MedianEURM2:  3000,
			Evolution1An: 5,
			Transactions: &Transactions{Count: 300},
		},
	})

	// demographie 87.5, marché ~70.8, the three missing blocks neutral at 50:
	// the blend lands at 67.5.
	if res.Score != 68 {
		t.Errorf("score = %d, want 68", res.Score)
	}
	if res.Verdict != VerdictGoReserves {
		t.Errorf("verdict = %s, want %s", res.Verdict, VerdictGoReserves)
	}
	if !slices.Contains(res.Opportunities, "Croissance démographique soutenue sur la zone d'implantation") {
		t.Errorf("missing demographic-growth opportunity, got %v", res.Opportunities)
	}
	if !slices.Contains(res.Opportunities, "Marché immobilier dynamique : prix et volumes bien orientés") {
		t.Errorf("missing market opportunity, got %v", res.Opportunities)
	}
	if len(res.Risks) != 0 {
		t.Errorf("unexpected risks: %v", res.Risks)
	}
}

func TestComputeLogement_EmptyInputIsNeutral(t *testing.T) {
	res := ComputeLogement(LogementInput{})
	if res.Score != 50 {
		t.Errorf("score = %d, want 50 for a fully missing dossier", res.Score)
	}
	if res.Verdict != VerdictApprofondir {
		t.Errorf("verdict = %s, want %s", res.Verdict, VerdictApprofondir)
	}
	for _, c := range res.Components {
		if c.Score != 50 {
			t.Errorf("component %s = %v, want neutral 50", c.Key, c.Score)
		}
	}
}

func TestComputeLogement_DecliningArea(t *testing.T) {
	res := ComputeLogement(LogementInput{
		Demographics: &Demographics{EvolutionPop5Ans: -2, TauxChomage: 15},
		Market:       &Market{Evolution1An: -5, TauxVacance: 10},
		Competition:  &Competition{Count: 12},
	})
	if res.Verdict != VerdictNoGo && res.Verdict != VerdictApprofondir {
		t.Errorf("verdict = %s, want a cautious verdict", res.Verdict)
	}
	if !slices.Contains(res.Risks, "Démographie défavorable : population en déclin ou fragile") {
		t.Errorf("missing demographic risk, got %v", res.Risks)
	}
	if !slices.Contains(res.Risks, "Pression concurrentielle élevée sur le segment du neuf") {
		t.Errorf("missing competition risk, got %v", res.Risks)
	}
}

func TestLogementDemographie_ZeroLevelMetricsExcluded(t *testing.T) {
	// Unpopulated unemployment/income must not drag the blend: only the
	// evolution metric counts here.
	s, _ := logementDemographie(&Demographics{EvolutionPop5Ans: 6})
	if s.Score(50) != 100 {
		t.Errorf("score = %v, want 100 when only evolution is known", s.Score(50))
	}
}

func TestLogementServices_RuralRelaxation(t *testing.T) {
	b := &BPE{Commerces: 10, Sante: 5, Education: 4}
	base, _ := logementServices(b, &Demographics{DensiteKm2: 1500})
	rural, _ := logementServices(b, &Demographics{DensiteKm2: 100})
	if rural.Score(50) != base.Score(50)+10 {
		t.Errorf("rural = %v, periurban = %v, want +10 relaxation", rural.Score(50), base.Score(50))
	}
}
