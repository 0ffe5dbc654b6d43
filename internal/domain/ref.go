package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref is a reference the backend may send either as a bare ID string or as
// the populated document. ID is always set after decoding; Value only when
// the document was populated.
type Ref[T any] struct {
	ID    string
	Value *T
}

// RefTo builds a populated reference.
func RefTo[T any](id string, v *T) Ref[T] {
	return Ref[T]{ID: id, Value: v}
}

// Populated reports whether the full document is available.
func (r Ref[T]) Populated() bool { return r.Value != nil }

// IsZero reports whether the reference is absent.
func (r Ref[T]) IsZero() bool { return r.ID == "" && r.Value == nil }

func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = Ref[T]{}
		return nil
	case data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref[T]{ID: id}
		return nil
	case data[0] == '{':
		var head struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(data, &head); err != nil {
			return err
		}
		v := new(T)
		if err := json.Unmarshal(data, v); err != nil {
			return err
		}
		*r = Ref[T]{ID: head.ID, Value: v}
		return nil
	default:
		return fmt.Errorf("domain: reference must be an id string or an object, got %s", truncate(data))
	}
}

// MarshalJSON writes the populated document when present and the bare ID
// otherwise.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Value != nil {
		return json.Marshal(r.Value)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

func truncate(b []byte) string {
	if len(b) > 32 {
		return string(b[:32]) + "..."
	}
	return string(b)
}
