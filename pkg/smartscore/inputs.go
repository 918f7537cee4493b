package smartscore

import "github.com/tlemarchand/aval/pkg/scale"

// Shared provider records. Every block is optional: scorers degrade to a
// neutral or zero sub-score per metric when a block is missing, they never
// fail. Field units are noted inline; percentages are 0-100, not 0-1.

// ZoneType classifies the catchment area.
type ZoneType string

const (
	ZoneUrbain     ZoneType = "urbain"
	ZonePeriurbain ZoneType = "periurbain"
	ZoneRural      ZoneType = "rural"
)

// Population-density thresholds for zone inference (hab/km2).
const (
	zoneUrbanDensity = 3000
	zoneRuralDensity = 300
)

// InferZone returns the explicit hint when present, otherwise classifies
// from population density: >=3000/km2 urban, <=300/km2 rural, else periurban.
func InferZone(hint ZoneType, densiteKm2 float64) ZoneType {
	switch hint {
	case ZoneUrbain, ZonePeriurbain, ZoneRural:
		return hint
	}
	if densiteKm2 >= zoneUrbanDensity {
		return ZoneUrbain
	}
	if densiteKm2 > 0 && densiteKm2 <= zoneRuralDensity {
		return ZoneRural
	}
	return ZonePeriurbain
}

// Demographics carries INSEE commune-level figures.
type Demographics struct {
	Population       float64  `json:"population,omitempty"`
	EvolutionPop5Ans float64  `json:"evolution_pop_5ans,omitempty"` // % over 5 years
	RevenuMedian     float64  `json:"revenu_median,omitempty"`      // EUR/year/household
	TauxChomage      float64  `json:"taux_chomage,omitempty"`       // %
	Part65Plus       float64  `json:"part_65_plus,omitempty"`       // %
	Part75Plus       float64  `json:"part_75_plus,omitempty"`       // %
	Part1524         float64  `json:"part_15_24,omitempty"`         // %
	DensiteKm2       float64  `json:"densite_km2,omitempty"`
	Zone             ZoneType `json:"zone,omitempty"` // explicit hint, optional
}

// Transactions summarizes DVF sales activity.
type Transactions struct {
	Count       int     `json:"count"`
	PrixMoyenM2 float64 `json:"prix_moyen_m2,omitempty"`
}

// Market carries DVF/observatory price data.
type Market struct {
	MedianEURM2   float64       `json:"median_eur_m2,omitempty"`
	Evolution1An  float64       `json:"evolution_1an,omitempty"` // % y/y
	LoyerMedianM2 float64       `json:"loyer_median_m2,omitempty"`
	TauxVacance   float64       `json:"taux_vacance,omitempty"` // %
	Transactions  *Transactions `json:"transactions,omitempty"`
}

// Competition describes comparable supply around the site. LitsPour1000 is
// the FINESS bed density per 1000 persons in the target population; nil when
// the denominator could not be established.
type Competition struct {
	Count          int      `json:"count"`
	CapaciteConnue int      `json:"capacite_connue,omitempty"` // total known beds/units
	LitsPour1000   *float64 `json:"lits_pour_1000,omitempty"`
	Pour100Cibles  *float64 `json:"pour_100_cibles,omitempty"` // coverage per 100 target persons
}

// Transport carries stop/station accessibility data.
type Transport struct {
	ArretsA500m int      `json:"arrets_a_500m"`
	GareKm      *float64 `json:"gare_km,omitempty"`
	AutorouteKm *float64 `json:"autoroute_km,omitempty"`
	AeroportKm  *float64 `json:"aeroport_km,omitempty"`
}

// BPE carries INSEE "base permanente des équipements" counts.
type BPE struct {
	Commerces int `json:"commerces"`
	Sante     int `json:"sante"`
	Education int `json:"education"`
	Loisirs   int `json:"loisirs"`
}

// SanteAccess carries distances to care services (FINESS). A nil distance
// with the presence flag set means the service exists nearby but the exact
// distance is unknown.
type SanteAccess struct {
	HopitalKm    *float64 `json:"hopital_km,omitempty"`
	MedecinKm    *float64 `json:"medecin_km,omitempty"`
	PharmacieKm  *float64 `json:"pharmacie_km,omitempty"`
	HasHopital   bool     `json:"has_hopital,omitempty"`
	HasMedecin   bool     `json:"has_medecin,omitempty"`
	HasPharmacie bool     `json:"has_pharmacie,omitempty"`
}

// Tourisme carries hotel-demand figures.
type Tourisme struct {
	NuiteesAnnuelles float64 `json:"nuitees_annuelles,omitempty"`
	TauxOccupation   float64 `json:"taux_occupation,omitempty"` // %
	Saisonnalite     float64 `json:"saisonnalite,omitempty"`    // 0-1 concentration index
	Attractions      int     `json:"attractions,omitempty"`
}

// Emploi carries employment-zone figures for office projects.
type Emploi struct {
	EvolutionEmplois5Ans float64 `json:"evolution_emplois_5ans,omitempty"` // %
	PartCadres           float64 `json:"part_cadres,omitempty"`            // %
}

// Tertiaire carries office-market figures.
type Tertiaire struct {
	LoyerM2An     float64 `json:"loyer_m2_an,omitempty"`
	DemandePlacee float64 `json:"demande_placee_m2,omitempty"` // m2/year take-up
	Evolution1An  float64 `json:"evolution_1an,omitempty"`     // %
	TauxVacance   float64 `json:"taux_vacance,omitempty"`      // %
}

// Flux carries footfall figures for retail projects.
type Flux struct {
	PassagesJour  float64 `json:"passages_jour,omitempty"` // pedestrians/day
	PlacesParking int     `json:"places_parking,omitempty"`
}

// bellCurve scores a metric that is good at moderate values and bad at
// extremes: the score rises linearly from (lo, loScore) to (peak, 100),
// falls linearly to (hi, floorScore), and stays at floorScore beyond hi.
// Below lo the low-anchor score applies.
func bellCurve(x, lo, peak, hi, loScore, floorScore float64) float64 {
	switch {
	case x <= lo:
		return loScore
	case x <= peak:
		return loScore + (x-lo)/(peak-lo)*(100-loScore)
	case x <= hi:
		return 100 - (x-peak)/(hi-peak)*(100-floorScore)
	default:
		return floorScore
	}
}

// serviceAccessScore scores one care service as the maximum of a
// distance-decay curve and a flat presence bonus: having the service nearby
// is worth something even when the exact distance is missing. An absent
// service contributes 0, not a neutral midpoint.
const presenceBonus = 40

func serviceAccessScore(distKm *float64, present bool, decayMaxKm float64) float64 {
	if distKm == nil {
		if present {
			return presenceBonus
		}
		return 0
	}
	// A known distance implies presence: floor the decay at the bonus.
	decay := scale.ScoreFromRange(*distKm, 0, decayMaxKm, false)
	if decay < presenceBonus {
		return presenceBonus
	}
	return decay
}
