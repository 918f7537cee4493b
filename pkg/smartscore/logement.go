package smartscore

import "github.com/tlemarchand/aval/pkg/scale"

// LogementInput feeds the housing-development scorer.
type LogementInput struct {
	Demographics *Demographics `json:"demographics,omitempty"`
	Market       *Market       `json:"market,omitempty"`
	Competition  *Competition  `json:"competition,omitempty"`
	BPE          *BPE          `json:"bpe,omitempty"`
	Transport    *Transport    `json:"transport,omitempty"`
}

// Component weights for logement.
const (
	logementWDemographie   = 0.30
	logementWMarche        = 0.30
	logementWConcurrence   = 0.15
	logementWServices      = 0.15
	logementWAccessibilite = 0.10
)

// Scoring bands for logement. Level metrics (unemployment, income, price)
// join the blend only when strictly positive: a zero there means the field
// was never populated, not a genuine observation.
const (
	logementEvolPopMin = -2.0
	logementEvolPopMax = 6.0
	logementChomageMin = 4.0
	logementChomageMax = 15.0
	logementRevenuMin  = 16000.0
	logementRevenuMax  = 30000.0

	logementEvolPrixMin = -5.0
	logementEvolPrixMax = 10.0
	logementTransacMax  = 300.0
	logementPrixM2Min   = 1500.0
	logementPrixM2Max   = 4500.0

	logementConcurrentsMax = 12.0
	logementVacanceMin     = 2.0
	logementVacanceMax     = 10.0
)

var logementNarrative = []narrativeRule{
	{KeyDemographie, atLeast, 70, narrativeOpportunity, "Croissance démographique soutenue sur la zone d'implantation"},
	{KeyDemographie, below, 40, narrativeRisk, "Démographie défavorable : population en déclin ou fragile"},
	{KeyMarche, atLeast, 70, narrativeOpportunity, "Marché immobilier dynamique : prix et volumes bien orientés"},
	{KeyMarche, below, 40, narrativeRisk, "Marché atone : volumes de transactions faibles"},
	{KeyConcurrence, below, 40, narrativeRisk, "Pression concurrentielle élevée sur le segment du neuf"},
	{KeyServices, below, 45, narrativeRecommendation, "Vérifier l'offre d'équipements et de services à proximité du site"},
	{KeyAccessibilite, below, 45, narrativeRecommendation, "Approfondir la desserte en transports en commun du secteur"},
}

// ComputeLogement scores a housing development project.
func ComputeLogement(in LogementInput, opts ...Option) *Result {
	demo, demoDetails := logementDemographie(in.Demographics)
	marche, marcheDetails := logementMarche(in.Market)
	concurrence, concDetails := logementConcurrence(in.Competition, in.Market)
	services, servDetails := logementServices(in.BPE, in.Demographics)
	access, accessDetails := logementAccessibilite(in.Transport)

	scores := map[ComponentKey]float64{
		KeyDemographie:   demo.Score(50),
		KeyMarche:        marche.Score(50),
		KeyConcurrence:   concurrence.Score(50),
		KeyServices:      services.Score(50),
		KeyAccessibilite: access.Score(50),
	}

	components := []ScoreComponent{
		{Key: KeyDemographie, Label: "Démographie", Weight: logementWDemographie, Score: scores[KeyDemographie], Details: demoDetails},
		{Key: KeyMarche, Label: "Marché immobilier", Weight: logementWMarche, Score: scores[KeyMarche], Details: marcheDetails},
		{Key: KeyConcurrence, Label: "Concurrence & tension", Weight: logementWConcurrence, Score: scores[KeyConcurrence], Details: concDetails},
		{Key: KeyServices, Label: "Services & équipements", Weight: logementWServices, Score: scores[KeyServices], Details: servDetails},
		{Key: KeyAccessibilite, Label: "Accessibilité", Weight: logementWAccessibilite, Score: scores[KeyAccessibilite], Details: accessDetails},
	}

	ops, risks, recs := buildNarrative(logementNarrative, scores)
	opts = append(opts, WithNarrative(ops, risks, recs))
	return Compute(NatureLogement, components, opts...)
}

func logementDemographie(d *Demographics) (scale.Sample, map[string]any) {
	if d == nil {
		return scale.Unavailable(), nil
	}
	items := []scale.Weighted{
		{Score: scale.ScoreFromRange(d.EvolutionPop5Ans, logementEvolPopMin, logementEvolPopMax, true), Weight: 0.5},
	}
	if d.TauxChomage > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(d.TauxChomage, logementChomageMin, logementChomageMax, false), Weight: 0.25,
		})
	}
	if d.RevenuMedian > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(d.RevenuMedian, logementRevenuMin, logementRevenuMax, true), Weight: 0.25,
		})
	}
	details := map[string]any{
		"evolution_pop_5ans": d.EvolutionPop5Ans,
		"taux_chomage":       d.TauxChomage,
		"revenu_median":      d.RevenuMedian,
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

func logementMarche(m *Market) (scale.Sample, map[string]any) {
	if m == nil {
		return scale.Unavailable(), nil
	}
	items := []scale.Weighted{
		{Score: scale.ScoreFromRange(m.Evolution1An, logementEvolPrixMin, logementEvolPrixMax, true), Weight: 0.5},
	}
	if m.Transactions != nil {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(float64(m.Transactions.Count), 0, logementTransacMax, true), Weight: 0.25,
		})
	}
	if m.MedianEURM2 > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(m.MedianEURM2, logementPrixM2Min, logementPrixM2Max, true), Weight: 0.25,
		})
	}
	details := map[string]any{
		"median_eur_m2": m.MedianEURM2,
		"evolution_1an": m.Evolution1An,
	}
	if m.Transactions != nil {
		details["transactions"] = m.Transactions.Count
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

func logementConcurrence(c *Competition, m *Market) (scale.Sample, map[string]any) {
	var items []scale.Weighted
	details := map[string]any{}
	if c != nil {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(float64(c.Count), 0, logementConcurrentsMax, false), Weight: 0.6,
		})
		details["programmes_concurrents"] = c.Count
	}
	if m != nil && m.TauxVacance > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(m.TauxVacance, logementVacanceMin, logementVacanceMax, false), Weight: 0.4,
		})
		details["taux_vacance"] = m.TauxVacance
	}
	if len(items) == 0 {
		return scale.Unavailable(), nil
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

func logementServices(b *BPE, d *Demographics) (scale.Sample, map[string]any) {
	if b == nil {
		return scale.Unavailable(), nil
	}
	score := scale.WeightedMean([]scale.Weighted{
		{Score: scale.ScoreFromRange(float64(b.Commerces), 0, 40, true), Weight: 0.4},
		{Score: scale.ScoreFromRange(float64(b.Sante), 0, 20, true), Weight: 0.3},
		{Score: scale.ScoreFromRange(float64(b.Education), 0, 15, true), Weight: 0.3},
	})
	zone := ZonePeriurbain
	if d != nil {
		zone = InferZone(d.Zone, d.DensiteKm2)
	}
	// Rural communes get by with less equipment; relax the bar.
	if zone == ZoneRural {
		score = scale.Clamp0100(score + 10)
	}
	details := map[string]any{
		"commerces": b.Commerces,
		"sante":     b.Sante,
		"education": b.Education,
		"zone":      string(zone),
	}
	return scale.Computed(score), details
}

func logementAccessibilite(t *Transport) (scale.Sample, map[string]any) {
	if t == nil {
		return scale.Unavailable(), nil
	}
	items := []scale.Weighted{
		{Score: scale.ScoreFromRange(float64(t.ArretsA500m), 0, 8, true), Weight: 0.6},
	}
	if t.GareKm != nil {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(*t.GareKm, 0.5, 10, false), Weight: 0.4,
		})
	}
	details := map[string]any{"arrets_a_500m": t.ArretsA500m}
	if t.GareKm != nil {
		details["gare_km"] = *t.GareKm
	}
	return scale.Computed(scale.WeightedMean(items)), details
}
