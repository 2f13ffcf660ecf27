// Package field implements the typed units a naming convention is built from.
//
// A Field decodes the text captured by one named group of a convention pattern,
// encodes a typed value back to its canonical text, and tests a decoded value
// against a typed Reference supplied as a filter.
package field

import (
	"slices"
	"sort"
)

// Field is a typed decode/encode/test unit bound to one capture group name.
type Field interface {
	// Name is the capture group name the field is bound to.
	Name() string
	// Description is a short human readable documentation of the field and
	// of the references it accepts.
	Description() string
	// Default returns the value used when an optional capture group did not
	// participate in a match.
	Default() (any, bool)
	// Decode parses raw captured text into the field value type.
	Decode(raw string) (any, error)
	// Encode renders a value into its canonical text.
	Encode(value any) (string, error)
	// Compare orders two decoded values.
	Compare(a, b any) int
	// Normalize coerces the values held by a reference into the field value type
	// and rejects reference kinds the field cannot test.
	Normalize(ref Reference) (Reference, error)
	// Test reports whether a decoded candidate satisfies a normalized reference.
	Test(candidate any, ref Reference) bool
	// ParseReference builds a reference from its textual form, e.g. `1,2`, `1..4` or `Exp*`.
	ParseReference(text string) (Reference, error)
}

// Filters maps field names to the reference each decoded value must satisfy.
type Filters map[string]Reference

// Names returns the filtered field names in lexical order.
func (filters Filters) Names() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Clone returns a shallow copy of the filters.
func (filters Filters) Clone() Filters {
	clone := make(Filters, len(filters))
	for name, ref := range filters {
		clone[name] = ref
	}

	return clone
}

// Option configures the attributes shared by every field.
type Option func(*Base)

// WithDescription overrides the generated field description.
func WithDescription(description string) Option {
	return func(base *Base) {
		base.description = description
	}
}

// WithDefault sets the value decoded when the capture group is absent.
func WithDefault(value any) Option {
	return func(base *Base) {
		base.defaultValue = value
		base.hasDefault = true
	}
}

// Base holds the attributes common to all fields. Custom fields embed it.
type Base struct {
	defaultValue any
	name         string
	description  string
	hasDefault   bool
}

// NewBase returns a Base for the given capture group name.
func NewBase(name string, opts ...Option) Base {
	base := Base{name: name}

	for _, opt := range opts {
		opt(&base)
	}

	return base
}

// Name implements Field.
func (base Base) Name() string {
	return base.name
}

// Default implements Field.
func (base Base) Default() (any, bool) {
	return base.defaultValue, base.hasDefault
}

// Describe returns the user description, or fallback when none was set.
func (base Base) Describe(fallback string) string {
	if base.description != "" {
		return base.description
	}

	return fallback
}

// TestWith evaluates the Not and AllOf combinators and hands every other
// reference to leaf. A nil reference always matches.
func TestWith(candidate any, ref Reference, leaf func(candidate any, ref Reference) bool) bool {
	switch ref := ref.(type) {
	case nil:
		return true
	case Not:
		return !TestWith(candidate, ref.Ref, leaf)
	case AllOf:
		for _, nested := range ref.Refs {
			if !TestWith(candidate, nested, leaf) {
				return false
			}
		}

		return true
	default:
		return leaf(candidate, ref)
	}
}

// NormalizeWith rebuilds the Not and AllOf combinators around leaf references
// normalized by leaf.
func NormalizeWith(ref Reference, leaf func(ref Reference) (Reference, error)) (Reference, error) {
	switch ref := ref.(type) {
	case nil:
		return nil, nil
	case Not:
		nested, err := NormalizeWith(ref.Ref, leaf)
		if err != nil {
			return nil, err
		}

		return Not{Ref: nested}, nil
	case AllOf:
		refs := make([]Reference, 0, len(ref.Refs))

		for _, nested := range ref.Refs {
			normalized, err := NormalizeWith(nested, leaf)
			if err != nil {
				return nil, err
			}

			refs = append(refs, normalized)
		}

		return AllOf{Refs: refs}, nil
	default:
		return leaf(ref)
	}
}

// Names returns the names of the given fields, keeping their order.
func Names(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name())
	}

	return names
}

// Find returns the field with the given name.
func Find(fields []Field, name string) (Field, bool) {
	idx := slices.IndexFunc(fields, func(f Field) bool { return f.Name() == name })
	if idx < 0 {
		return nil, false
	}

	return fields[idx], true
}
