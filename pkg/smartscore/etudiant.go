package smartscore

import "github.com/tlemarchand/aval/pkg/scale"

// EtudiantInput feeds the student-residence scorer.
type EtudiantInput struct {
	Demographics *Demographics `json:"demographics,omitempty"`
	Etudiants    *float64      `json:"etudiants,omitempty"` // enrolled students in the catchment
	CampusKm     *float64      `json:"campus_km,omitempty"`
	Competition  *Competition  `json:"competition,omitempty"`
	Transport    *Transport    `json:"transport,omitempty"`
	Market       *Market       `json:"market,omitempty"`
}

// Component weights for residence_etudiante.
const (
	etudiantWDemographie = 0.30
	etudiantWCampus      = 0.25
	etudiantWOffre       = 0.20
	etudiantWTransport   = 0.15
	etudiantWMarche      = 0.10
)

// Campus distance band: at the doorstep scores 100, beyond 6 km the site is
// out of the student market. A missing distance scores 0, deliberately: a
// student residence with no identified campus has no demand anchor.
const (
	etudiantCampusMinKm = 0.5
	etudiantCampusMaxKm = 6.0
)

// Supply bell curve on existing student-housing coverage (beds per 100
// students): some existing supply proves the market, saturation kills it.
// Breakpoints: (low anchor, peak, ceiling) with scores (55, 100, 15).
const (
	etudiantOffreLo         = 2.0
	etudiantOffrePeak       = 8.0
	etudiantOffreHi         = 25.0
	etudiantOffreLoScore    = 55.0
	etudiantOffreFloorScore = 15.0
)

const (
	etudiantPart1524Min  = 8.0
	etudiantPart1524Max  = 20.0
	etudiantEffectifsMin = 2000.0
	etudiantEffectifsMax = 30000.0
	etudiantLoyerMin     = 8.0
	etudiantLoyerMax     = 20.0
)

var etudiantNarrative = []narrativeRule{
	{KeyDemographie, atLeast, 70, narrativeOpportunity, "Bassin étudiant profond sur la zone d'implantation"},
	{KeyCampus, atLeast, 70, narrativeOpportunity, "Site à distance immédiate du campus"},
	{KeyCampus, below, 30, narrativeRisk, "Éloignement du campus : demande étudiante incertaine"},
	{KeyOffre, below, 35, narrativeRisk, "Parc de résidences étudiantes saturé sur le secteur"},
	{KeyTransport, below, 45, narrativeRecommendation, "Vérifier la desserte en transports vers les sites universitaires"},
	{KeyMarche, below, 40, narrativeRecommendation, "Confronter les loyers cibles au marché locatif étudiant local"},
}

// ComputeEtudiant scores a student-residence project.
func ComputeEtudiant(in EtudiantInput, opts ...Option) *Result {
	demo, demoDetails := etudiantDemographie(in.Demographics, in.Etudiants)
	campus, campusDetails := etudiantCampus(in.CampusKm)
	offre, offreDetails := etudiantOffre(in.Competition)
	transport, transpDetails := etudiantTransport(in.Transport)
	marche, marcheDetails := etudiantMarche(in.Market)

	scores := map[ComponentKey]float64{
		KeyDemographie: demo.Score(50),
		// Campus distance is a demand anchor: unavailable scores 0, not 50.
		KeyCampus:    campus.Score(0),
		KeyOffre:     offre.Score(50),
		KeyTransport: transport.Score(50),
		KeyMarche:    marche.Score(50),
	}

	components := []ScoreComponent{
		{Key: KeyDemographie, Label: "Population étudiante", Weight: etudiantWDemographie, Score: scores[KeyDemographie], Details: demoDetails},
		{Key: KeyCampus, Label: "Accès campus", Weight: etudiantWCampus, Score: scores[KeyCampus], Details: campusDetails},
		{Key: KeyOffre, Label: "Offre existante", Weight: etudiantWOffre, Score: scores[KeyOffre], Details: offreDetails},
		{Key: KeyTransport, Label: "Transports", Weight: etudiantWTransport, Score: scores[KeyTransport], Details: transpDetails},
		{Key: KeyMarche, Label: "Marché locatif", Weight: etudiantWMarche, Score: scores[KeyMarche], Details: marcheDetails},
	}

	ops, risks, recs := buildNarrative(etudiantNarrative, scores)
	opts = append(opts, WithNarrative(ops, risks, recs))
	return Compute(NatureEtudiante, components, opts...)
}

func etudiantDemographie(d *Demographics, etudiants *float64) (scale.Sample, map[string]any) {
	if d == nil && etudiants == nil {
		return scale.Unavailable(), nil
	}
	var items []scale.Weighted
	details := map[string]any{}
	if etudiants != nil {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(*etudiants, etudiantEffectifsMin, etudiantEffectifsMax, true), Weight: 0.5,
		})
		details["etudiants"] = *etudiants
	}
	if d != nil {
		items = append(items,
			scale.Weighted{Score: scale.ScoreFromRange(d.Part1524, etudiantPart1524Min, etudiantPart1524Max, true), Weight: 0.3},
			scale.Weighted{Score: scale.ScoreFromRange(d.EvolutionPop5Ans, logementEvolPopMin, logementEvolPopMax, true), Weight: 0.2},
		)
		details["part_15_24"] = d.Part1524
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

func etudiantCampus(campusKm *float64) (scale.Sample, map[string]any) {
	if campusKm == nil {
		return scale.Unavailable(), nil
	}
	score := scale.ScoreFromRange(*campusKm, etudiantCampusMinKm, etudiantCampusMaxKm, false)
	return scale.Computed(score), map[string]any{"campus_km": *campusKm}
}

func etudiantOffre(c *Competition) (scale.Sample, map[string]any) {
	if c == nil {
		return scale.Unavailable(), nil
	}
	details := map[string]any{"residences": c.Count}
	if c.Pour100Cibles != nil {
		score := bellCurve(*c.Pour100Cibles,
			etudiantOffreLo, etudiantOffrePeak, etudiantOffreHi,
			etudiantOffreLoScore, etudiantOffreFloorScore)
		details["lits_pour_100_etudiants"] = *c.Pour100Cibles
		return scale.Computed(score), details
	}
	// Coverage unknown: fall back to a discrete step on residence count.
	var score float64
	switch {
	case c.Count == 0:
		score = 80
	case c.Count <= 2:
		score = 65
	case c.Count <= 5:
		score = 45
	default:
		score = 25
	}
	return scale.Computed(score), details
}

func etudiantTransport(t *Transport) (scale.Sample, map[string]any) {
	if t == nil {
		return scale.Unavailable(), nil
	}
	items := []scale.Weighted{
		{Score: scale.ScoreFromRange(float64(t.ArretsA500m), 0, 10, true), Weight: 0.6},
	}
	if t.GareKm != nil {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(*t.GareKm, 0.5, 8, false), Weight: 0.4,
		})
	}
	return scale.Computed(scale.WeightedMean(items)), map[string]any{"arrets_a_500m": t.ArretsA500m}
}

func etudiantMarche(m *Market) (scale.Sample, map[string]any) {
	if m == nil {
		return scale.Unavailable(), nil
	}
	var items []scale.Weighted
	details := map[string]any{}
	if m.LoyerMedianM2 > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(m.LoyerMedianM2, etudiantLoyerMin, etudiantLoyerMax, true), Weight: 0.5,
		})
		details["loyer_median_m2"] = m.LoyerMedianM2
	}
	if m.TauxVacance > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(m.TauxVacance, logementVacanceMin, logementVacanceMax, false), Weight: 0.5,
		})
		details["taux_vacance"] = m.TauxVacance
	}
	if len(items) == 0 {
		return scale.Unavailable(), nil
	}
	return scale.Computed(scale.WeightedMean(items)), details
}
