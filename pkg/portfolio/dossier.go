// Package portfolio scores collections of dossier files: per-file dispatch
// to the right project-type scorer, parallel batch runs with deduplication
// and result caching, and trend statistics across analysis dates.
package portfolio

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tlemarchand/aval/pkg/smartscore"
)

// Dossier is the on-disk input format: the project nature selects the
// scorer, Input carries that scorer's block in its own shape.
type Dossier struct {
	Nature     smartscore.ProjectNature `json:"project_nature"`
	Label      string                   `json:"label,omitempty"`
	AnalyzedAt *time.Time               `json:"analyzed_at,omitempty"`
	Input      json.RawMessage          `json:"input"`
}

// ParseDossier decodes a dossier file.
func ParseDossier(data []byte) (*Dossier, error) {
	var d Dossier
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse dossier: %w", err)
	}
	if d.Nature == "" {
		return nil, fmt.Errorf("parse dossier: missing project_nature")
	}
	return &d, nil
}

// Score dispatches the dossier to its project-type scorer.
func (d *Dossier) Score(opts ...smartscore.Option) (*smartscore.Result, error) {
	input := d.Input
	if len(input) == 0 {
		input = []byte("{}")
	}

	unmarshal := func(v any) error {
		if err := json.Unmarshal(input, v); err != nil {
			return fmt.Errorf("dossier input for %s: %w", d.Nature, err)
		}
		return nil
	}

	switch d.Nature {
	case smartscore.NatureLogement:
		var in smartscore.LogementInput
		if err := unmarshal(&in); err != nil {
			return nil, err
		}
		return smartscore.ComputeLogement(in, opts...), nil
	case smartscore.NatureEhpad:
		var in smartscore.EhpadInput
		if err := unmarshal(&in); err != nil {
			return nil, err
		}
		return smartscore.ComputeEhpad(in, opts...), nil
	case smartscore.NatureSenior:
		var in smartscore.SeniorInput
		if err := unmarshal(&in); err != nil {
			return nil, err
		}
		return smartscore.ComputeSenior(in, opts...), nil
	case smartscore.NatureEtudiante:
		var in smartscore.EtudiantInput
		if err := unmarshal(&in); err != nil {
			return nil, err
		}
		return smartscore.ComputeEtudiant(in, opts...), nil
	case smartscore.NatureBureaux:
		var in smartscore.BureauxInput
		if err := unmarshal(&in); err != nil {
			return nil, err
		}
		return smartscore.ComputeBureaux(in, opts...), nil
	case smartscore.NatureCommerce:
		var in smartscore.CommerceInput
		if err := unmarshal(&in); err != nil {
			return nil, err
		}
		return smartscore.ComputeCommerce(in, opts...), nil
	case smartscore.NatureHotel:
		var in smartscore.HotelInput
		if err := unmarshal(&in); err != nil {
			return nil, err
		}
		return smartscore.ComputeHotel(in, opts...), nil
	default:
		return nil, fmt.Errorf("unknown project nature %q", d.Nature)
	}
}
