package content

import (
	"bytes"
	"encoding/json"
)

// RelationState describes how far a reference field has been resolved.
type RelationState int

const (
	// RelationAbsent means the record carries no reference at all, or the
	// reference could not be resolved to a real record. Both render the same.
	RelationAbsent RelationState = iota
	// RelationUnresolved means the field holds a bare object id that has not
	// been expanded yet.
	RelationUnresolved
	// RelationResolved means the field holds the fully populated sub-record.
	RelationResolved
)

// Relation models a reference field that the CMS returns either as a bare
// object id (depth 0) or as an expanded sub-object (depth 1). The zero value
// is absent.
type Relation[T any] struct {
	state RelationState
	id    string
	value *T
}

// Unresolved returns a relation holding only the referenced object id.
func Unresolved[T any](id string) Relation[T] {
	if id == "" {
		return Relation[T]{}
	}
	return Relation[T]{state: RelationUnresolved, id: id}
}

// Resolved returns a relation holding the fully populated record.
func Resolved[T any](id string, v T) Relation[T] {
	return Relation[T]{state: RelationResolved, id: id, value: &v}
}

// State reports the resolution state.
func (r Relation[T]) State() RelationState { return r.state }

// ID returns the referenced object id, or "" for an absent relation.
func (r Relation[T]) ID() string { return r.id }

// Value returns the resolved record. The second return is false unless the
// relation is resolved.
func (r Relation[T]) Value() (*T, bool) {
	if r.state != RelationResolved {
		return nil, false
	}
	return r.value, true
}

// UnmarshalJSON accepts null, a bare id string, or an expanded object.
func (r *Relation[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Relation[T]{}
		return nil
	}

	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Unresolved[T](id)
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	// The envelope id is needed for relation lookups even when the record
	// arrives pre-expanded.
	var envelope struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	*r = Relation[T]{state: RelationResolved, id: envelope.ID, value: &v}
	return nil
}

// MarshalJSON writes the same wire forms UnmarshalJSON accepts.
func (r Relation[T]) MarshalJSON() ([]byte, error) {
	switch r.state {
	case RelationResolved:
		return json.Marshal(r.value)
	case RelationUnresolved:
		return json.Marshal(r.id)
	default:
		return []byte("null"), nil
	}
}
