package smartscore

import "github.com/tlemarchand/aval/pkg/scale"

// EhpadInput feeds the medicalized nursing-home scorer.
type EhpadInput struct {
	Demographics *Demographics `json:"demographics,omitempty"`
	Competition  *Competition  `json:"competition,omitempty"` // FINESS establishments
	Sante        *SanteAccess  `json:"sante,omitempty"`
}

// Component weights for ehpad.
const (
	ehpadWDemographie = 0.30
	ehpadWOffre       = 0.30
	ehpadWSante       = 0.25
	ehpadWSolvabilite = 0.15
)

// Bed-density thresholds, in beds per 1000 persons aged 75+. Below the low
// threshold the area is under-supplied (opportunity scores 100); above the
// high threshold it is saturated (scores 0); linear between.
const (
	ehpadDensiteBasse = 80.0
	ehpadDensiteHaute = 130.0
)

// Capacity penalty: applied after the density/count blend when the total
// known competitor capacity is large. One point per 20 beds above the
// threshold, capped.
const (
	ehpadCapaciteSeuil   = 200.0
	ehpadCapaciteParPt   = 20.0
	ehpadCapacitePenMax  = 25.0
	ehpadSanteDecayMaxKm = 25.0
)

// Demographic bands.
const (
	ehpadPart75Min = 6.0
	ehpadPart75Max = 14.0
	ehpadRevenuMin = 15000.0
	ehpadRevenuMax = 28000.0
)

var ehpadNarrative = []narrativeRule{
	{KeyDemographie, atLeast, 70, narrativeOpportunity, "Population âgée importante et en progression sur la zone"},
	{KeyOffre, atLeast, 70, narrativeOpportunity, "Zone sous-équipée en lits médicalisés : besoin non couvert"},
	{KeyOffre, below, 35, narrativeRisk, "Sur-offre de lits médicalisés : taux d'occupation cible incertain"},
	{KeySante, below, 40, narrativeRisk, "Accès aux soins limité autour du site"},
	{KeySante, below, 40, narrativeRecommendation, "Étudier un partenariat avec un établissement hospitalier de proximité"},
	{KeySolvabilite, below, 40, narrativeRisk, "Solvabilité locale fragile pour un tarif hébergement standard"},
}

// ComputeEhpad scores a medicalized nursing-home project.
func ComputeEhpad(in EhpadInput, opts ...Option) *Result {
	demo, demoDetails := ehpadDemographie(in.Demographics)
	offre, offreDetails := ehpadOffre(in.Competition)
	sante, santeDetails := santeAccessScore(in.Sante, 0.40, 0.35, 0.25)
	solva, solvaDetails := ehpadSolvabilite(in.Demographics)

	scores := map[ComponentKey]float64{
		KeyDemographie: demo.Score(50),
		KeyOffre:       offre.Score(50),
		// Health access scores absence as 0: a site with no reachable care
		// cannot be neutral-scored for a medicalized residence.
		KeySante:       sante.Score(0),
		KeySolvabilite: solva.Score(50),
	}

	components := []ScoreComponent{
		{Key: KeyDemographie, Label: "Démographie 75+", Weight: ehpadWDemographie, Score: scores[KeyDemographie], Details: demoDetails},
		{Key: KeyOffre, Label: "Offre & lits", Weight: ehpadWOffre, Score: scores[KeyOffre], Details: offreDetails},
		{Key: KeySante, Label: "Accès aux soins", Weight: ehpadWSante, Score: scores[KeySante], Details: santeDetails},
		{Key: KeySolvabilite, Label: "Solvabilité", Weight: ehpadWSolvabilite, Score: scores[KeySolvabilite], Details: solvaDetails},
	}

	ops, risks, recs := buildNarrative(ehpadNarrative, scores)
	opts = append(opts, WithNarrative(ops, risks, recs))
	return Compute(NatureEhpad, components, opts...)
}

func ehpadDemographie(d *Demographics) (scale.Sample, map[string]any) {
	if d == nil {
		return scale.Unavailable(), nil
	}
	items := []scale.Weighted{
		{Score: scale.ScoreFromRange(d.Part75Plus, ehpadPart75Min, ehpadPart75Max, true), Weight: 0.6},
		{Score: scale.ScoreFromRange(d.EvolutionPop5Ans, logementEvolPopMin, logementEvolPopMax, true), Weight: 0.4},
	}
	details := map[string]any{
		"part_75_plus":       d.Part75Plus,
		"evolution_pop_5ans": d.EvolutionPop5Ans,
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

// ehpadOffre blends the bed-density score with a discrete competitor-count
// fallback, then subtracts the capacity penalty. The penalty composes by
// subtraction after the blend, not inside it: a dense AND large existing
// offer must be penalized beyond what either signal alone shows.
func ehpadOffre(c *Competition) (scale.Sample, map[string]any) {
	if c == nil {
		return scale.Unavailable(), nil
	}
	var items []scale.Weighted
	details := map[string]any{"etablissements": c.Count}

	if c.LitsPour1000 != nil {
		d := *c.LitsPour1000
		var densityScore float64
		switch {
		case d <= ehpadDensiteBasse:
			densityScore = 100
		case d >= ehpadDensiteHaute:
			densityScore = 0
		default:
			densityScore = (ehpadDensiteHaute - d) / (ehpadDensiteHaute - ehpadDensiteBasse) * 100
		}
		items = append(items, scale.Weighted{Score: densityScore, Weight: 0.7})
		details["lits_pour_1000"] = d
	}

	items = append(items, scale.Weighted{Score: ehpadCountStep(c.Count), Weight: 0.3})

	score := scale.WeightedMean(items)
	if c.CapaciteConnue > 0 {
		penalty := (float64(c.CapaciteConnue) - ehpadCapaciteSeuil) / ehpadCapaciteParPt
		penalty = scale.Clamp(penalty, 0, ehpadCapacitePenMax)
		score -= penalty
		details["capacite_connue"] = c.CapaciteConnue
		details["penalite_capacite"] = penalty
	}
	return scale.Computed(scale.Clamp0100(score)), details
}

// ehpadCountStep is the discrete fallback when bed density is unavailable.
func ehpadCountStep(count int) float64 {
	switch {
	case count == 0:
		return 90
	case count <= 2:
		return 70
	case count <= 5:
		return 50
	case count <= 9:
		return 30
	default:
		return 10
	}
}

// santeAccessScore blends the three care services with the given weights
// (hopital, medecin, pharmacie). Shared by the ehpad and senior scorers.
func santeAccessScore(s *SanteAccess, wHopital, wMedecin, wPharmacie float64) (scale.Sample, map[string]any) {
	if s == nil {
		return scale.Unavailable(), nil
	}
	hopital := serviceAccessScore(s.HopitalKm, s.HasHopital, ehpadSanteDecayMaxKm)
	medecin := serviceAccessScore(s.MedecinKm, s.HasMedecin, 10)
	pharmacie := serviceAccessScore(s.PharmacieKm, s.HasPharmacie, 8)

	score := scale.WeightedMean([]scale.Weighted{
		{Score: hopital, Weight: wHopital},
		{Score: medecin, Weight: wMedecin},
		{Score: pharmacie, Weight: wPharmacie},
	})
	details := map[string]any{
		"hopital":   hopital,
		"medecin":   medecin,
		"pharmacie": pharmacie,
	}
	return scale.Computed(score), details
}

func ehpadSolvabilite(d *Demographics) (scale.Sample, map[string]any) {
	if d == nil || d.RevenuMedian <= 0 {
		return scale.Unavailable(), nil
	}
	score := scale.ScoreFromRange(d.RevenuMedian, ehpadRevenuMin, ehpadRevenuMax, true)
	return scale.Computed(score), map[string]any{"revenu_median": d.RevenuMedian}
}
