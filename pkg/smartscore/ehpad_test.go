package smartscore

import (
	"slices"
	"testing"
)

func TestEhpadOffre_DensityBands(t *testing.T) {
	tests := []struct {
		name    string
		densite float64
		count   int
		want    float64
	}{
		// density weighs 0.7, the count step 0.3
		{"under-supplied", 70, 1, 0.7*100 + 0.3*70},
		{"saturated", 140, 1, 0.7*0 + 0.3*70},
		{"linear midpoint", 105, 1, 0.7*50 + 0.3*70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := ehpadOffre(&Competition{Count: tt.count, LitsPour1000: fp(tt.densite)})
			if got := s.Score(50); got != tt.want {
				t.Errorf("offre(%v lits/1000, %d étab.) = %v, want %v", tt.densite, tt.count, got, tt.want)
			}
		})
	}
}

func TestEhpadOffre_CapacityPenaltyAfterBlend(t *testing.T) {
	base, _ := ehpadOffre(&Competition{Count: 1, LitsPour1000: fp(70)})
	withPen, _ := ehpadOffre(&Competition{Count: 1, LitsPour1000: fp(70), CapaciteConnue: 400})
	// 400 beds is 200 over the threshold: 10 points off.
	if got, want := withPen.Score(50), base.Score(50)-10; got != want {
		t.Errorf("penalized score = %v, want %v", got, want)
	}

	huge, _ := ehpadOffre(&Competition{Count: 1, LitsPour1000: fp(70), CapaciteConnue: 5000})
	if got, want := huge.Score(50), base.Score(50)-25; got != want {
		t.Errorf("penalty must cap at 25: got %v, want %v", got, want)
	}
}

func TestEhpadCountStep(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{0, 90}, {1, 70}, {2, 70}, {3, 50}, {5, 50}, {6, 30}, {9, 30}, {10, 10},
	}
	for _, tt := range tests {
		if got := ehpadCountStep(tt.count); got != tt.want {
			t.Errorf("ehpadCountStep(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestComputeEhpad_MissingSanteScoresZero(t *testing.T) {
	res := ComputeEhpad(EhpadInput{
		Demographics: &Demographics{Part75Plus: 10, EvolutionPop5Ans: 2},
	})
	c := res.Component(KeySante)
	if c == nil {
		t.Fatal("sante component missing")
	}
	if c.Score != 0 {
		t.Errorf("sante = %v, want 0 when no care data at all", c.Score)
	}
	if !slices.Contains(res.Risks, "Accès aux soins limité autour du site") {
		t.Errorf("missing care-access risk, got %v", res.Risks)
	}
}

func TestComputeEhpad_UnderSuppliedArea(t *testing.T) {
	res := ComputeEhpad(EhpadInput{
		Demographics: &Demographics{Part75Plus: 13, EvolutionPop5Ans: 4, RevenuMedian: 26000},
		Competition:  &Competition{Count: 1, LitsPour1000: fp(60)},
		Sante: &SanteAccess{
			HopitalKm:   fp(5),
			MedecinKm:   fp(1),
			PharmacieKm: fp(0.5),
		},
	})
	if res.Verdict != VerdictGo {
		t.Errorf("verdict = %s, want GO for an under-supplied aging area (score %d)", res.Verdict, res.Score)
	}
	if !slices.Contains(res.Opportunities, "Zone sous-équipée en lits médicalisés : besoin non couvert") {
		t.Errorf("missing under-supply opportunity, got %v", res.Opportunities)
	}
}

func TestSanteAccessScore_Weights(t *testing.T) {
	s, _ := santeAccessScore(&SanteAccess{
		HopitalKm:    fp(0),
		HasMedecin:   true,
		HasPharmacie: false,
	}, 0.40, 0.35, 0.25)
	// hopital 100 * .40 + medecin 40 * .35 + pharmacie 0 * .25
	if got := s.Score(0); got != 54 {
		t.Errorf("score = %v, want 54", got)
	}
}
