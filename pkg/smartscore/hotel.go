package smartscore

import "github.com/tlemarchand/aval/pkg/scale"

// HotelInput feeds the hotel scorer.
type HotelInput struct {
	Tourisme    *Tourisme    `json:"tourisme,omitempty"`
	Transport   *Transport   `json:"transport,omitempty"`
	Competition *Competition `json:"competition,omitempty"`
}

// Component weights for hotel.
const (
	hotelWTourisme      = 0.30
	hotelWAccessibilite = 0.25
	hotelWOffre         = 0.25
	hotelWSaisonnalite  = 0.20
)

// Competing-capacity bell curve on annual competing room-nights as a
// percentage of demand (nuitées). A market with almost no hotels is
// unproven, a balanced one is healthy, an oversupplied one is ruinous.
// Breakpoints (low anchor, peak, ceiling) with scores (50, 100, 10).
const (
	hotelOffreLo         = 10.0
	hotelOffrePeak       = 35.0
	hotelOffreHi         = 80.0
	hotelOffreLoScore    = 50.0
	hotelOffreFloorScore = 10.0
)

const (
	hotelNuiteesMin    = 50000.0
	hotelNuiteesMax    = 2000000.0
	hotelOccupationMin = 50.0
	hotelOccupationMax = 75.0
	hotelAttractionsMax = 20.0

	// Seasonality concentration index (share of room-nights in the peak
	// quarter): 0.30 is a flat year, 0.75 a purely seasonal destination.
	hotelSaisonMin = 0.30
	hotelSaisonMax = 0.75
)

var hotelNarrative = []narrativeRule{
	{KeyTourisme, atLeast, 70, narrativeOpportunity, "Destination touristique établie : demande hôtelière profonde"},
	{KeyTourisme, below, 40, narrativeRisk, "Demande touristique insuffisante pour un établissement pérenne"},
	{KeyOffre, below, 35, narrativeRisk, "Parc hôtelier en sur-capacité sur la destination"},
	{KeySaisonnalite, below, 40, narrativeRisk, "Forte saisonnalité : point mort annuel difficile à atteindre"},
	{KeySaisonnalite, below, 40, narrativeRecommendation, "Bâtir un plan de remplissage hors saison (affaires, groupes, événementiel)"},
	{KeyAccessibilite, below, 45, narrativeRecommendation, "Objectiver l'accessibilité (gare, aéroport) dans le dossier"},
}

// ComputeHotel scores a hotel project.
func ComputeHotel(in HotelInput, opts ...Option) *Result {
	tourisme, tourismeDetails := hotelTourisme(in.Tourisme)
	access, accessDetails := hotelAccessibilite(in.Transport)
	offre, offreDetails := hotelOffre(in.Competition, in.Tourisme)
	saison, saisonDetails := hotelSaisonnalite(in.Tourisme)

	scores := map[ComponentKey]float64{
		KeyTourisme:      tourisme.Score(50),
		KeyAccessibilite: access.Score(50),
		KeyOffre:         offre.Score(50),
		KeySaisonnalite:  saison.Score(50),
	}

	components := []ScoreComponent{
		{Key: KeyTourisme, Label: "Attractivité touristique", Weight: hotelWTourisme, Score: scores[KeyTourisme], Details: tourismeDetails},
		{Key: KeyAccessibilite, Label: "Accessibilité", Weight: hotelWAccessibilite, Score: scores[KeyAccessibilite], Details: accessDetails},
		{Key: KeyOffre, Label: "Offre hôtelière", Weight: hotelWOffre, Score: scores[KeyOffre], Details: offreDetails},
		{Key: KeySaisonnalite, Label: "Saisonnalité", Weight: hotelWSaisonnalite, Score: scores[KeySaisonnalite], Details: saisonDetails},
	}

	ops, risks, recs := buildNarrative(hotelNarrative, scores)
	opts = append(opts, WithNarrative(ops, risks, recs))
	return Compute(NatureHotel, components, opts...)
}

func hotelTourisme(t *Tourisme) (scale.Sample, map[string]any) {
	if t == nil {
		return scale.Unavailable(), nil
	}
	var items []scale.Weighted
	details := map[string]any{}
	if t.NuiteesAnnuelles > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(t.NuiteesAnnuelles, hotelNuiteesMin, hotelNuiteesMax, true), Weight: 0.4,
		})
		details["nuitees_annuelles"] = t.NuiteesAnnuelles
	}
	if t.TauxOccupation > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(t.TauxOccupation, hotelOccupationMin, hotelOccupationMax, true), Weight: 0.4,
		})
		details["taux_occupation"] = t.TauxOccupation
	}
	if t.Attractions > 0 {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(float64(t.Attractions), 0, hotelAttractionsMax, true), Weight: 0.2,
		})
		details["attractions"] = t.Attractions
	}
	if len(items) == 0 {
		return scale.Unavailable(), nil
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

func hotelAccessibilite(t *Transport) (scale.Sample, map[string]any) {
	if t == nil {
		return scale.Unavailable(), nil
	}
	items := []scale.Weighted{
		{Score: scale.ScoreFromRange(float64(t.ArretsA500m), 0, 8, true), Weight: 0.3},
	}
	details := map[string]any{"arrets_a_500m": t.ArretsA500m}
	if t.GareKm != nil {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(*t.GareKm, 0.5, 10, false), Weight: 0.4,
		})
		details["gare_km"] = *t.GareKm
	}
	if t.AeroportKm != nil {
		items = append(items, scale.Weighted{
			Score: scale.ScoreFromRange(*t.AeroportKm, 5, 60, false), Weight: 0.3,
		})
		details["aeroport_km"] = *t.AeroportKm
	}
	return scale.Computed(scale.WeightedMean(items)), details
}

func hotelOffre(c *Competition, t *Tourisme) (scale.Sample, map[string]any) {
	if c == nil {
		return scale.Unavailable(), nil
	}
	details := map[string]any{"hotels": c.Count}

	// Preferred metric: competing annual capacity against demand.
	if t != nil && t.NuiteesAnnuelles > 0 && c.CapaciteConnue > 0 {
		ratio := float64(c.CapaciteConnue) * 365 / t.NuiteesAnnuelles * 100
		details["capacite_vs_demande_pct"] = ratio
		score := bellCurve(ratio,
			hotelOffreLo, hotelOffrePeak, hotelOffreHi,
			hotelOffreLoScore, hotelOffreFloorScore)
		return scale.Computed(score), details
	}

	var score float64
	switch {
	case c.Count == 0:
		score = 75
	case c.Count <= 3:
		score = 85
	case c.Count <= 8:
		score = 60
	default:
		score = 30
	}
	return scale.Computed(score), details
}

func hotelSaisonnalite(t *Tourisme) (scale.Sample, map[string]any) {
	if t == nil || t.Saisonnalite <= 0 {
		return scale.Unavailable(), nil
	}
	score := scale.ScoreFromRange(t.Saisonnalite, hotelSaisonMin, hotelSaisonMax, false)
	return scale.Computed(score), map[string]any{"saisonnalite": t.Saisonnalite}
}
