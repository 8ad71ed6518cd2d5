// Package catalog holds the embedded question templates for the three
// instruments and validates them against a JSON Schema at load time.
// Question content is data, not logic: the ledger never looks inside.
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/luminamente/anima/internal/ledger"
)

//go:embed quiz.json anamnese.json burnout.json
var files embed.FS

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// instrumentFile is the on-disk catalog shape.
type instrumentFile struct {
	Instrument ledger.Instrument `json:"instrument"`
	Questions  []ledger.Question `json:"questions"`
}

// Load reads and validates the question template for an instrument.
// The returned questions have all answer slots nil.
func Load(instrument ledger.Instrument) ([]ledger.Question, error) {
	name := string(instrument) + ".json"
	raw, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("unknown instrument %q: %w", instrument, err)
	}

	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", name, err)
	}

	var f instrumentFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if f.Instrument != instrument {
		return nil, fmt.Errorf("catalog %s declares instrument %q", name, f.Instrument)
	}
	if err := checkQuestions(f.Questions); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", name, err)
	}
	return f.Questions, nil
}

// MustLoad is Load for embedded data: a failure is a programmer error
// in the shipped catalog and panics.
func MustLoad(instrument ledger.Instrument) []ledger.Question {
	qs, err := Load(instrument)
	if err != nil {
		panic(err)
	}
	return qs
}

// NewLedger constructs a ledger for an instrument from its catalog.
func NewLedger(instrument ledger.Instrument) *ledger.Ledger {
	return ledger.New(instrument, MustLoad(instrument))
}

// validate checks raw catalog JSON against the embedded schema.
func validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := s.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledSchema compiles the catalog schema once and caches it.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://instrument-catalog.json"
		if err := c.AddResource(url, parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile(url)
	})
	return schema, schemaErr
}

// checkQuestions enforces the structural rules the schema cannot
// express: unique ids and options on every choice question.
func checkQuestions(qs []ledger.Question) error {
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
		if q.Kind == ledger.KindChoice && len(q.Options) == 0 {
			return fmt.Errorf("question %d: choice without options", q.ID)
		}
		if q.Answer != nil || (q.Sub != nil && q.Sub.Answer != nil) {
			return fmt.Errorf("question %d: template carries an answer", q.ID)
		}
	}
	return nil
}
