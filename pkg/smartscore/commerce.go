package smartscore

import "github.com/tlemarchand/aval/pkg/scale"

// CommerceInput feeds the retail-unit scorer.
type CommerceInput struct {
	Demographics *Demographics `json:"demographics,omitempty"`
	Competition  *Competition  `json:"competition,omitempty"`
	Flux         *Flux         `json:"flux,omitempty"`
	Transport    *Transport    `json:"transport,omitempty"`
	Market       *Market       `json:"market,omitempty"`
}

// Component weights for commerce.
const (
	commerceWChalandise  = 0.30
	commerceWConcurrence = 0.25
	commerceWFlux        = 0.25
	commerceWMarche      = 0.20
)

// Retail-density bell curve (shops per 1000 inhabitants): an empty street
// has no footfall, a saturated one no room. Breakpoints (low anchor, peak,
// ceiling) with scores (40, 100, 20).
const (
	commerceOffreLo         = 2.0
	commerceOffrePeak       = 8.0
	commerceOffreHi         = 25.0
	commerceOffreLoScore    = 40.0
	commerceOffreFloorScore = 20.0
)

const (
	commercePopMin      = 5000.0
	commercePopMax      = 80000.0
	commerceRevenuMin   = 16000.0
	commerceRevenuMax   = 32000.0
	commercePassagesMin = 1000.0
	commercePassagesMax = 20000.0
	commerceLoyerMin    = 100.0
	commerceLoyerMax    = 600.0
	commerceVacanceMin  = 5.0
	commerceVacanceMax  = 15.0
)

var commerceNarrative = []narrativeRule{
	{KeyChalandise, atLeast, 70, narrativeOpportunity, "Zone de chalandise profonde et solvable"},
	{KeyChalandise, below, 40, narrativeRisk, "Zone de chalandise étroite pour un commerce de ce format"},
	{KeyConcurrence, atLeast, 70, narrativeOpportunity, "Tissu commercial équilibré : demande avérée sans saturation"},
	{KeyConcurrence, below, 40, narrativeRisk, "Densité commerciale défavorable (rue morte ou saturation)"},
	{KeyFlux, below, 40, narrativeRisk, "Flux piétons insuffisants pour le chiffre d'affaires cible"},
	{KeyFlux, below, 45, narrativeRecommendation, "Réaliser un comptage de flux sur site avant engagement"},
}

// ComputeCommerce scores a retail-unit project.
func ComputeCommerce(in CommerceInput, opts ...Option) *Result {
	chalandise, chalDetails := commerceChalandise(in.Demographics)
	concurrence, concDetails := commerceConcurrence(in.Competition, in.Demographics)
	flux, fluxDetails := commerceFlux(in.Flux, in.Transport)
	marche, marcheDetails := commerceMarche(in.Market)

	scores := map[ComponentKey]float64{
		KeyChalandise:  chalandise.Score(50),
		KeyConcurrence: concurrence.Score(50),
		KeyFlux:        flux.Score(50),
		KeyMarche:      marche.Score(50),
	}

	components := []ScoreComponent{
		{Key: KeyChalandise, Label: "Zone de chalandise", Weight: commerceWChalandise, Score: scores[KeyChalandise], Details: chalDetails},
		{Key: KeyConcurrence, Label: "Offre & concurrence", Weight: commerceWConcurrence, Score: scores[KeyConcurrence], Details: concDetails},
		{Key: KeyFlux, Label: "Flux & accessibilité", Weight: commerceWFlux, Score: scores[KeyFlux], Details: fluxDetails},
		{Key: KeyMarche, Label: "Marché des locaux", Weight: commerceWMarche, Score: scores[KeyMarche], Details: marcheDetails},
	}

	ops, risks, recs := buildNarrative(commerceNarrative, scores)
	opts = append(opts, WithNarrative(ops, risks, recs))
	return Compute(NatureCommerce, components, opts...)
}

func commerceChalandise(d *Demographics) (scale.Sample, map[string]any) {
	if d == nil {
		return scale.Unavailable(), nil
	}
	items := []scale.Weighted{
		{Score: scale.ScoreFromRange(d.Population, commercePopMin, commercePopMax, true), Weight: 0.4},
		{Score: scale.ScoreFromRange(d.EvolutionPop5Ans, logementEvolPopMin, logementEvolPopMax, true), Weight: 0.25},
	}
	if d.RevenuMedian > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(d.RevenuMedian, commerceRevenuMin, commerceRevenuMax, true), Weight: 0.35,
		})
	}
	details := map[string]any{
		"population":    d.Population,
		"revenu_median": d.RevenuMedian,
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

func commerceConcurrence(c *Competition, d *Demographics) (scale.Sample, map[string]any) {
	if c == nil {
		return scale.Unavailable(), nil
	}
	details := map[string]any{"commerces_proches": c.Count}

	// Preferred metric: shops per 1000 inhabitants through the bell curve.
	if d != nil && d.Population > 0 && c.LitsPour1000 == nil && c.Count > 0 {
		densite := float64(c.Count) / d.Population * 1000
		details["densite_pour_1000"] = densite
		score := bellCurve(densite,
			commerceOffreLo, commerceOffrePeak, commerceOffreHi,
			commerceOffreLoScore, commerceOffreFloorScore)
		return scale.Computed(score), details
	}

	// Raw-count fallback: one or two comparable shops validate the demand,
	// an empty or crowded street both read poorly.
	var score float64
	switch {
	case c.Count == 0:
		score = 70
	case c.Count <= 2:
		score = 85
	case c.Count <= 5:
		score = 55
	default:
		score = 25
	}
	return scale.Computed(score), details
}

func commerceFlux(f *Flux, t *Transport) (scale.Sample, map[string]any) {
	var items []scale.Weighted
	details := map[string]any{}
	if f != nil {
		if f.PassagesJour > 0 {
			items = append(items, scale.Weighted{
				Score: scale.ScoreFromRange(f.PassagesJour, commercePassagesMin, commercePassagesMax, true), Weight: 0.4,
			})
			details["passages_jour"] = f.PassagesJour
		}
		if f.PlacesParking > 0 {
			items = append(items, scale.Weighted{
				Score: scale.ScoreFromRange(float64(f.PlacesParking), 0, 200, true), Weight: 0.2,
			})
			details["places_parking"] = f.PlacesParking
		}
	}
	if t != nil {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(float64(t.ArretsA500m), 0, 12, true), Weight: 0.4,
		})
		details["arrets_a_500m"] = t.ArretsA500m
	}
	if len(items) == 0 {
		return scale.Unavailable(), nil
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

func commerceMarche(m *Market) (scale.Sample, map[string]any) {
	if m == nil {
		return scale.Unavailable(), nil
	}
	var items []scale.Weighted
	details := map[string]any{}
	if m.LoyerMedianM2 > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(m.LoyerMedianM2, commerceLoyerMin, commerceLoyerMax, true), Weight: 0.5,
		})
		details["loyer_median_m2"] = m.LoyerMedianM2
	}
	if m.TauxVacance > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(m.TauxVacance, commerceVacanceMin, commerceVacanceMax, false), Weight: 0.5,
		})
		details["taux_vacance"] = m.TauxVacance
	}
	if len(items) == 0 {
		return scale.Unavailable(), nil
	}
	return scale.Computed(scale.WeightedMean(items)), details
}
