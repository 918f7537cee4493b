package smartscore

import "github.com/tlemarchand/aval/pkg/scale"

// BureauxInput feeds the office-development scorer.
type BureauxInput struct {
	Demographics *Demographics `json:"demographics,omitempty"`
	Emploi       *Emploi       `json:"emploi,omitempty"`
	Tertiaire    *Tertiaire    `json:"tertiaire,omitempty"`
	Transport    *Transport    `json:"transport,omitempty"`
}

// Component weights for bureaux.
const (
	bureauxWEmploi        = 0.30
	bureauxWMarche        = 0.25
	bureauxWAccessibilite = 0.25
	bureauxWVacance       = 0.20
)

const (
	bureauxEvolEmploisMin = -4.0
	bureauxEvolEmploisMax = 8.0
	bureauxCadresMin      = 8.0
	bureauxCadresMax      = 30.0
	bureauxLoyerMin       = 80.0
	bureauxLoyerMax       = 250.0
	bureauxDemandeMax     = 50000.0
	bureauxVacanceMin     = 4.0
	bureauxVacanceMax     = 15.0
)

var bureauxNarrative = []narrativeRule{
	{KeyEmploi, atLeast, 70, narrativeOpportunity, "Bassin d'emploi tertiaire en croissance"},
	{KeyEmploi, below, 40, narrativeRisk, "Dynamique d'emploi défavorable sur la zone"},
	{KeyMarche, atLeast, 70, narrativeOpportunity, "Demande placée soutenue : marché tertiaire actif"},
	{KeyVacance, below, 40, narrativeRisk, "Vacance tertiaire élevée : risque de commercialisation"},
	{KeyAccessibilite, below, 45, narrativeRecommendation, "Renforcer l'argumentaire d'accessibilité (gare, axes, transports)"},
	{KeyMarche, below, 40, narrativeRecommendation, "Sécuriser une pré-commercialisation avant engagement des travaux"},
}

// ComputeBureaux scores an office project.
func ComputeBureaux(in BureauxInput, opts ...Option) *Result {
	emploi, emploiDetails := bureauxEmploi(in.Emploi, in.Demographics)
	marche, marcheDetails := bureauxMarche(in.Tertiaire)
	access, accessDetails := bureauxAccessibilite(in.Transport)
	vacance, vacanceDetails := bureauxVacance(in.Tertiaire)

	scores := map[ComponentKey]float64{
		KeyEmploi:        emploi.Score(50),
		KeyMarche:        marche.Score(50),
		KeyAccessibilite: access.Score(50),
		KeyVacance:       vacance.Score(50),
	}

	components := []ScoreComponent{
		{Key: KeyEmploi, Label: "Emploi & économie", Weight: bureauxWEmploi, Score: scores[KeyEmploi], Details: emploiDetails},
		{Key: KeyMarche, Label: "Marché tertiaire", Weight: bureauxWMarche, Score: scores[KeyMarche], Details: marcheDetails},
		{Key: KeyAccessibilite, Label: "Accessibilité", Weight: bureauxWAccessibilite, Score: scores[KeyAccessibilite], Details: accessDetails},
		{Key: KeyVacance, Label: "Vacance tertiaire", Weight: bureauxWVacance, Score: scores[KeyVacance], Details: vacanceDetails},
	}

	ops, risks, recs := buildNarrative(bureauxNarrative, scores)
	opts = append(opts, WithNarrative(ops, risks, recs))
	return Compute(NatureBureaux, components, opts...)
}

func bureauxEmploi(e *Emploi, d *Demographics) (scale.Sample, map[string]any) {
	if e == nil && d == nil {
		return scale.Unavailable(), nil
	}
	var items []scale.Weighted
	details := map[string]any{}
	if e != nil {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(e.EvolutionEmplois5Ans, bureauxEvolEmploisMin, bureauxEvolEmploisMax, true), Weight: 0.5,
		})
		details["evolution_emplois_5ans"] = e.EvolutionEmplois5Ans
		if e.PartCadres > 0 {
			items = append(items, scale.Weighted{
				Score: scale.ScoreFromRange(e.PartCadres, bureauxCadresMin, bureauxCadresMax, true), Weight: 0.25,
			})
			details["part_cadres"] = e.PartCadres
		}
	}
	if d != nil && d.TauxChomage > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(d.TauxChomage, logementChomageMin, logementChomageMax, false), Weight: 0.25,
		})
		details["taux_chomage"] = d.TauxChomage
	}
	if len(items) == 0 {
		return scale.Unavailable(), nil
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

func bureauxMarche(t *Tertiaire) (scale.Sample, map[string]any) {
	if t == nil {
		return scale.Unavailable(), nil
	}
	var items []scale.Weighted
	details := map[string]any{}
	if t.LoyerM2An > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(t.LoyerM2An, bureauxLoyerMin, bureauxLoyerMax, true), Weight: 0.4,
		})
		details["loyer_m2_an"] = t.LoyerM2An
	}
	if t.DemandePlacee > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(t.DemandePlacee, 0, bureauxDemandeMax, true), Weight: 0.35,
		})
		details["demande_placee_m2"] = t.DemandePlacee
	}
	items = append(items, scale.Weighted{
		Score: scale.ScoreFromRange(t.Evolution1An, logementEvolPrixMin, logementEvolPrixMax, true), Weight: 0.25,
	})
	details["evolution_1an"] = t.Evolution1An
	return scale.Computed(scale.WeightedMean(items)), details
}

func bureauxAccessibilite(t *Transport) (scale.Sample, map[string]any) {
	if t == nil {
		return scale.Unavailable(), nil
	}
	items := []scale.Weighted{
		{Score: scale.ScoreFromRange(float64(t.ArretsA500m), 0, 10, true), Weight: 0.3},
	}
	details := map[string]any{"arrets_a_500m": t.ArretsA500m}
	if t.GareKm != nil {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(*t.GareKm, 0.3, 5, false), Weight: 0.5,
		})
		details["gare_km"] = *t.GareKm
	}
	if t.AutorouteKm != nil {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(*t.AutorouteKm, 1, 15, false), Weight: 0.2,
		})
		details["autoroute_km"] = *t.AutorouteKm
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

// bureauxVacance is a wholly inverted range: tertiary vacancy is the single
// strongest commercialization-risk signal for offices.
func bureauxVacance(t *Tertiaire) (scale.Sample, map[string]any) {
	if t == nil || t.TauxVacance <= 0 {
		return scale.Unavailable(), nil
	}
	score := scale.ScoreFromRange(t.TauxVacance, bureauxVacanceMin, bureauxVacanceMax, false)
	return scale.Computed(score), map[string]any{"taux_vacance": t.TauxVacance}
}
