package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

// File formats.
//
// Catalogs and background graphs are authored as YAML (JSON is a subset).
// Terms are encoded as scalars inside three-element [subject, predicate,
// object] arrays:
//
//   - "?X"       a variable
//   - "lit:foo"  the string literal "foo"
//   - 15 / true  int and bool literals
//   - "Name"     an entity reference
//
// Files are validated against an embedded JSON schema before decoding, so
// a malformed catalog is rejected at load time with a position-bearing
// error instead of surfacing later as a missing derivation.

type catalogFile struct {
	Version   string     `yaml:"version"`
	MinEngine string     `yaml:"min_engine"`
	Rules     []ruleFile `yaml:"rules"`
}

type ruleFile struct {
	ID    string  `yaml:"id"`
	Group string  `yaml:"group"`
	Body  [][]any `yaml:"body"`
	Head  [][]any `yaml:"head"`
	Guard string  `yaml:"guard"`
}

type backgroundFile struct {
	Triples [][]any `yaml:"triples"`
}

// LoadCatalog reads, validates and compiles a rule catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses catalog YAML/JSON bytes.
func ParseCatalog(data []byte) (*Catalog, error) {
	if err := validateSchema(catalogSchema, data); err != nil {
		return nil, fmt.Errorf("catalog schema: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{Version: f.Version, MinEngine: f.MinEngine}
	for _, rf := range f.Rules {
		r := &Rule{ID: rf.ID, Group: Group(rf.Group), Guard: rf.Guard}
		for _, atom := range rf.Body {
			p, err := decodePattern(atom)
			if err != nil {
				return nil, fmt.Errorf("rule %s body: %w", rf.ID, err)
			}
			r.Body = append(r.Body, p)
		}
		for _, atom := range rf.Head {
			p, err := decodePattern(atom)
			if err != nil {
				return nil, fmt.Errorf("rule %s head: %w", rf.ID, err)
			}
			r.Head = append(r.Head, p)
		}
		c.Rules = append(c.Rules, r)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadBackground reads and validates a background graph file into a store.
func LoadBackground(path string) (*triple.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read background graph: %w", err)
	}
	return ParseBackground(data)
}

// ParseBackground parses background graph YAML/JSON bytes.
func ParseBackground(data []byte) (*triple.Store, error) {
	if err := validateSchema(backgroundSchema, data); err != nil {
		return nil, fmt.Errorf("background schema: %w", err)
	}
	var f backgroundFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode background graph: %w", err)
	}

	store := triple.NewStore()
	for i, atom := range f.Triples {
		t, err := decodeTriple(atom)
		if err != nil {
			return nil, fmt.Errorf("triple %d: %w", i, err)
		}
		store.Insert(t)
	}
	return store, nil
}

func decodePattern(atom []any) (triple.Pattern, error) {
	if len(atom) != 3 {
		return triple.Pattern{}, fmt.Errorf("atom must have 3 elements, got %d", len(atom))
	}
	subj, err := decodeTerm(atom[0])
	if err != nil {
		return triple.Pattern{}, fmt.Errorf("subject: %w", err)
	}
	pred, ok := atom[1].(string)
	if !ok || pred == "" {
		return triple.Pattern{}, fmt.Errorf("predicate must be a non-empty string")
	}
	obj, err := decodeTerm(atom[2])
	if err != nil {
		return triple.Pattern{}, fmt.Errorf("object: %w", err)
	}
	return triple.P(subj, triple.PredicateID(pred), obj), nil
}

func decodeTriple(atom []any) (triple.Triple, error) {
	p, err := decodePattern(atom)
	if err != nil {
		return triple.Triple{}, err
	}
	subj, ok := p.Subject.(triple.EntityID)
	if !ok {
		return triple.Triple{}, fmt.Errorf("background triples may not contain variables")
	}
	obj, ok := p.Object.(triple.Object)
	if !ok {
		return triple.Triple{}, fmt.Errorf("background triples may not contain variables")
	}
	return triple.T(subj, p.Predicate, obj), nil
}

func decodeTerm(v any) (triple.Term, error) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil, fmt.Errorf("empty term")
		}
		if val[0] == '?' {
			if len(val) == 1 {
				return nil, fmt.Errorf("empty variable name")
			}
			return triple.Var(val[1:]), nil
		}
		if rest, ok := strings.CutPrefix(val, "lit:"); ok {
			return triple.Str(rest), nil
		}
		return triple.EntityID(val), nil
	case int:
		return triple.Int(val), nil
	case int64:
		return triple.Int(val), nil
	case bool:
		return triple.Bool(val), nil
	default:
		return nil, fmt.Errorf("unsupported term type %T", v)
	}
}

// validateSchema validates YAML bytes against an embedded JSON schema.
// The document is round-tripped through encoding/json so the validator
// sees canonical JSON-decoded values.
func validateSchema(schema *jsonschema.Schema, data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(jsonBytes))
	decoder.UseNumber()
	var normalized any
	if err := decoder.Decode(&normalized); err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	return schema.Validate(normalized)
}
