package triple

import (
	"encoding/json"
	"fmt"
)

// Wire format for a triple object. Kind is one of "entity", "string",
// "int", "bool". This is the representation used by the HTTP API, the
// catalog/background files, and the evidence pack export.
type wireObject struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

type wireTriple struct {
	Subject   string     `json:"subject"`
	Predicate string     `json:"predicate"`
	Object    wireObject `json:"object"`
}

// MarshalJSON implements json.Marshaler.
func (t Triple) MarshalJSON() ([]byte, error) {
	wo, err := encodeObject(t.Object)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireTriple{
		Subject:   string(t.Subject),
		Predicate: string(t.Predicate),
		Object:    wo,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Triple) UnmarshalJSON(data []byte) error {
	var w wireTriple
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Subject == "" {
		return fmt.Errorf("triple subject is required")
	}
	if w.Predicate == "" {
		return fmt.Errorf("triple predicate is required")
	}
	obj, err := DecodeObject(w.Object.Kind, w.Object.Value)
	if err != nil {
		return fmt.Errorf("triple object: %w", err)
	}
	t.Subject = EntityID(w.Subject)
	t.Predicate = PredicateID(w.Predicate)
	t.Object = obj
	return nil
}

func encodeObject(o Object) (wireObject, error) {
	switch v := o.(type) {
	case EntityID:
		raw, _ := json.Marshal(string(v))
		return wireObject{Kind: "entity", Value: raw}, nil
	case Str:
		raw, _ := json.Marshal(string(v))
		return wireObject{Kind: "string", Value: raw}, nil
	case Int:
		raw, _ := json.Marshal(int(v))
		return wireObject{Kind: "int", Value: raw}, nil
	case Bool:
		raw, _ := json.Marshal(bool(v))
		return wireObject{Kind: "bool", Value: raw}, nil
	default:
		return wireObject{}, fmt.Errorf("unsupported object type %T", o)
	}
}

// DecodeObject builds an Object from its wire kind and raw JSON value.
func DecodeObject(kind string, raw json.RawMessage) (Object, error) {
	switch kind {
	case "entity":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("entity value: %w", err)
		}
		return EntityID(s), nil
	case "string":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("string value: %w", err)
		}
		return Str(s), nil
	case "int":
		var i int
		if err := json.Unmarshal(raw, &i); err != nil {
			return nil, fmt.Errorf("int value: %w", err)
		}
		return Int(i), nil
	case "bool":
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("bool value: %w", err)
		}
		return Bool(b), nil
	default:
		return nil, fmt.Errorf("unknown object kind %q", kind)
	}
}
