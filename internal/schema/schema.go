// Package schema validates dossier and ratio-parameter files against
// embedded JSON Schemas before they reach the scorers.
package schema

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const (
	dossierSchema = "dossier.schema.json"
	ratiosSchema  = "ratios.schema.json"
)

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

func load() error {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.AssertFormat()
		names := []string{dossierSchema, ratiosSchema}
		for _, name := range names {
			data, err := schemaFiles.ReadFile("schemas/" + name)
			if err != nil {
				compileErr = fmt.Errorf("schema %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("schema %s: %w", name, err)
				return
			}
		}
		compiled = make(map[string]*jsonschema.Schema, len(names))
		for _, name := range names {
			sch, err := c.Compile(name)
			if err != nil {
				compileErr = fmt.Errorf("compile %s: %w", name, err)
				return
			}
			compiled[name] = sch
		}
	})
	return compileErr
}

func validate(schemaName string, data []byte) error {
	if err := load(); err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return compiled[schemaName].Validate(inst)
}

// ValidateDossier checks a dossier document against the dossier schema.
func ValidateDossier(data []byte) error {
	return validate(dossierSchema, data)
}

// ValidateRatios checks a ratio-parameters document against its schema.
func ValidateRatios(data []byte) error {
	return validate(ratiosSchema, data)
}

// Issues flattens a validation error into one line per failing leaf,
// "/instance/path: message". Non-validation errors pass through as a
// single line; nil yields nil.
func Issues(err error) []string {
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}

	printer := message.NewPrinter(language.English)
	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := "/" + strings.Join(e.InstanceLocation, "/")
			out = append(out, fmt.Sprintf("%s: %s", loc, e.ErrorKind.LocalizedString(printer)))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out
}
