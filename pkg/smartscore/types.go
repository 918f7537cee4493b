// Package smartscore implements the project-type scoring engines used by
// market studies: a generic weighted-component aggregator and seven scorers
// (logement, EHPAD, résidence senior, résidence étudiante, bureaux,
// commerce, hôtel), each deriving 4-5 sub-scores from provider records.
package smartscore

import "time"

// Version identifies the scoring algorithm revision stamped into results.
const Version = "1.3.0"

// ProjectNature identifies which scorer produced a result.
type ProjectNature string

const (
	NatureLogement  ProjectNature = "logement"
	NatureEhpad     ProjectNature = "ehpad"
	NatureSenior    ProjectNature = "residence_senior"
	NatureEtudiante ProjectNature = "residence_etudiante"
	NatureBureaux   ProjectNature = "bureaux"
	NatureCommerce  ProjectNature = "commerce"
	NatureHotel     ProjectNature = "hotel"
)

// Natures lists every supported project nature.
func Natures() []ProjectNature {
	return []ProjectNature{
		NatureLogement, NatureEhpad, NatureSenior, NatureEtudiante,
		NatureBureaux, NatureCommerce, NatureHotel,
	}
}

// ComponentKey identifies a sub-score within a result.
type ComponentKey string

const (
	KeyDemographie   ComponentKey = "demographie"
	KeyMarche        ComponentKey = "marche"
	KeyConcurrence   ComponentKey = "concurrence"
	KeyServices      ComponentKey = "services"
	KeyAccessibilite ComponentKey = "accessibilite"
	KeySante         ComponentKey = "sante"
	KeySolvabilite   ComponentKey = "solvabilite"
	KeyOffre         ComponentKey = "offre"
	KeyCampus        ComponentKey = "campus"
	KeyTransport     ComponentKey = "transport"
	KeyEmploi        ComponentKey = "emploi"
	KeyVacance       ComponentKey = "vacance"
	KeyChalandise    ComponentKey = "chalandise"
	KeyFlux          ComponentKey = "flux"
	KeyTourisme      ComponentKey = "tourisme"
	KeySaisonnalite  ComponentKey = "saisonnalite"
	KeyEnvironnement ComponentKey = "environnement"
)

// Verdict is the decision tier derived from the overall score.
type Verdict string

const (
	VerdictGo          Verdict = "GO"
	VerdictGoReserves  Verdict = "GO_AVEC_RESERVES"
	VerdictApprofondir Verdict = "A_APPROFONDIR"
	VerdictNoGo        Verdict = "NO_GO"
)

// VerdictThresholds defines the ladder: the verdict is the highest tier
// whose threshold the score meets or exceeds. Invariant: Go >
// GoWithReserves > Deepen.
type VerdictThresholds struct {
	Go             float64 `json:"go" koanf:"go" toml:"go"`
	GoWithReserves float64 `json:"go_with_reserves" koanf:"go_with_reserves" toml:"go_with_reserves"`
	Deepen         float64 `json:"deepen" koanf:"deepen" toml:"deepen"`
}

// DefaultThresholds returns the standard verdict ladder.
func DefaultThresholds() VerdictThresholds {
	return VerdictThresholds{Go: 75, GoWithReserves: 60, Deepen: 45}
}

// Valid reports whether the ladder is strictly decreasing.
func (t VerdictThresholds) Valid() bool {
	return t.Go > t.GoWithReserves && t.GoWithReserves > t.Deepen
}

// ScoreComponent is one weighted sub-score of a result. Details carries the
// raw figures the sub-score was derived from, for display and audit.
type ScoreComponent struct {
	Key     ComponentKey   `json:"key"`
	Label   string         `json:"label"`
	Weight  float64        `json:"weight"`
	Score   float64        `json:"score"`
	Details map[string]any `json:"details,omitempty"`
}

// Meta records how and when a result was computed.
type Meta struct {
	Version    string    `json:"version"`
	ComputedAt time.Time `json:"computed_at"`
}

// Result is the complete output of one scoring call. It is created fresh on
// every call and never mutated afterwards; callers decide whether to store it.
type Result struct {
	ProjectNature   ProjectNature    `json:"project_nature"`
	Score           int              `json:"score"`
	Verdict         Verdict          `json:"verdict"`
	Components      []ScoreComponent `json:"components"`
	Opportunities   []string         `json:"opportunities"`
	Risks           []string         `json:"risks"`
	Recommendations []string         `json:"recommendations"`
	Meta            Meta             `json:"meta"`
}

// Component returns the component with the given key, or nil.
func (r *Result) Component(key ComponentKey) *ScoreComponent {
	for i := range r.Components {
		if r.Components[i].Key == key {
			return &r.Components[i]
		}
	}
	return nil
}
