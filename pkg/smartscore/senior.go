package smartscore

import "github.com/tlemarchand/aval/pkg/scale"

// SeniorInput feeds the services-residence-for-seniors scorer.
type SeniorInput struct {
	Demographics *Demographics `json:"demographics,omitempty"`
	BPE          *BPE          `json:"bpe,omitempty"`
	Sante        *SanteAccess  `json:"sante,omitempty"`
	Market       *Market       `json:"market,omitempty"`
}

// Component weights for residence_senior.
const (
	seniorWDemographie   = 0.30
	seniorWServices      = 0.25
	seniorWSante         = 0.20
	seniorWMarche        = 0.15
	seniorWEnvironnement = 0.10
)

const (
	seniorPart65Min = 15.0
	seniorPart65Max = 30.0
	seniorPrixMin   = 1500.0
	seniorPrixMax   = 4000.0
)

// Flat services bonus per zone: non-urban residents accept a thinner
// equipment offer, rural markedly so.
const (
	seniorBonusRural      = 15.0
	seniorBonusPeriurbain = 8.0
)

var seniorNarrative = []narrativeRule{
	{KeyDemographie, atLeast, 70, narrativeOpportunity, "Bassin senior profond : part des 65+ élevée et croissante"},
	{KeyServices, atLeast, 70, narrativeOpportunity, "Commerces et services du quotidien accessibles à pied"},
	{KeyServices, below, 40, narrativeRisk, "Offre de services de proximité insuffisante pour un public senior"},
	{KeySante, below, 40, narrativeRisk, "Accès aux soins limité autour du site"},
	{KeyMarche, below, 40, narrativeRecommendation, "Valider les valeurs locatives senior sur une étude de marché dédiée"},
	{KeyDemographie, below, 40, narrativeRisk, "Bassin senior étroit : profondeur de demande à démontrer"},
}

// ComputeSenior scores a senior services-residence project.
func ComputeSenior(in SeniorInput, opts ...Option) *Result {
	demo, demoDetails := seniorDemographie(in.Demographics)
	services, servDetails := seniorServices(in.BPE, in.Demographics)
	sante, santeDetails := santeAccessScore(in.Sante, 0.25, 0.40, 0.35)
	marche, marcheDetails := seniorMarche(in.Market)
	env, envDetails := seniorEnvironnement(in.Demographics, in.BPE)

	scores := map[ComponentKey]float64{
		KeyDemographie:   demo.Score(50),
		KeyServices:      services.Score(50),
		KeySante:         sante.Score(0),
		KeyMarche:        marche.Score(50),
		KeyEnvironnement: env.Score(50),
	}

	components := []ScoreComponent{
		{Key: KeyDemographie, Label: "Démographie 65+", Weight: seniorWDemographie, Score: scores[KeyDemographie], Details: demoDetails},
		{Key: KeyServices, Label: "Services de proximité", Weight: seniorWServices, Score: scores[KeyServices], Details: servDetails},
		{Key: KeySante, Label: "Accès aux soins", Weight: seniorWSante, Score: scores[KeySante], Details: santeDetails},
		{Key: KeyMarche, Label: "Marché résidentiel", Weight: seniorWMarche, Score: scores[KeyMarche], Details: marcheDetails},
		{Key: KeyEnvironnement, Label: "Environnement", Weight: seniorWEnvironnement, Score: scores[KeyEnvironnement], Details: envDetails},
	}

	ops, risks, recs := buildNarrative(seniorNarrative, scores)
	opts = append(opts, WithNarrative(ops, risks, recs))
	return Compute(NatureSenior, components, opts...)
}

func seniorDemographie(d *Demographics) (scale.Sample, map[string]any) {
	if d == nil {
		return scale.Unavailable(), nil
	}
	items := []scale.Weighted{
		{Score: scale.ScoreFromRange(d.Part65Plus, seniorPart65Min, seniorPart65Max, true), Weight: 0.6},
		{Score: scale.ScoreFromRange(d.EvolutionPop5Ans, logementEvolPopMin, logementEvolPopMax, true), Weight: 0.4},
	}
	details := map[string]any{
		"part_65_plus":       d.Part65Plus,
		"evolution_pop_5ans": d.EvolutionPop5Ans,
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

func seniorServices(b *BPE, d *Demographics) (scale.Sample, map[string]any) {
	if b == nil {
		return scale.Unavailable(), nil
	}
	score := scale.WeightedMean([]scale.Weighted{
		{Score: scale.ScoreFromRange(float64(b.Commerces), 0, 30, true), Weight: 0.5},
		{Score: scale.ScoreFromRange(float64(b.Sante), 0, 15, true), Weight: 0.25},
		{Score: scale.ScoreFromRange(float64(b.Loisirs), 0, 10, true), Weight: 0.25},
	})
	zone := ZonePeriurbain
	if d != nil {
		zone = InferZone(d.Zone, d.DensiteKm2)
	}
	switch zone {
	case ZoneRural:
		score += seniorBonusRural
	case ZonePeriurbain:
		score += seniorBonusPeriurbain
	}
	details := map[string]any{
		"commerces": b.Commerces,
		"sante":     b.Sante,
		"loisirs":   b.Loisirs,
		"zone":      string(zone),
	}
	return scale.Computed(scale.Clamp0100(score)), details
}

func seniorMarche(m *Market) (scale.Sample, map[string]any) {
	if m == nil {
		return scale.Unavailable(), nil
	}
	items := []scale.Weighted{
		{Score: scale.ScoreFromRange(m.Evolution1An, logementEvolPrixMin, logementEvolPrixMax, true), Weight: 0.5},
	}
	if m.MedianEURM2 > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(m.MedianEURM2, seniorPrixMin, seniorPrixMax, true), Weight: 0.5,
		})
	}
	details := map[string]any{
		"median_eur_m2": m.MedianEURM2,
		"evolution_1an": m.Evolution1An,
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

// seniorEnvironnement starts neutral and applies the small zone adjustment:
// periurban settings fit the product best, dense urban cores are acceptable,
// isolated rural sites lose points.
func seniorEnvironnement(d *Demographics, b *BPE) (scale.Sample, map[string]any) {
	if d == nil {
		return scale.Unavailable(), nil
	}
	zone := InferZone(d.Zone, d.DensiteKm2)
	score := 50.0
	switch zone {
	case ZonePeriurbain:
		score += 10
	case ZoneUrbain:
		score += 5
	case ZoneRural:
		score -= 5
	}
	if b != nil && b.Loisirs >= 5 {
		score += 10
	}
	details := map[string]any{"zone": string(zone)}
	return scale.Computed(scale.Clamp0100(score)), details
}
