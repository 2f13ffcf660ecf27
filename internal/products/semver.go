package products

import (
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
)

// SemVerField decodes dotted versions such as 1.0.2 into *version.Version
// values. Folder names spell the same version with another separator (v1_0_2).
type SemVerField struct {
	field.Base
	separator string
}

// NewSemVerField returns a field decoding `major.minor[.patch]` versions.
func NewSemVerField(name string, opts ...field.Option) *SemVerField {
	return &SemVerField{Base: field.NewBase(name, opts...), separator: "."}
}

// WithSeparator returns a copy of the field using separator between segments.
func (f *SemVerField) WithSeparator(separator string) *SemVerField {
	return &SemVerField{Base: f.Base, separator: separator}
}

// Description implements field.Field.
func (f *SemVerField) Description() string {
	return f.Describe("Tri-number version x.y.z: x denotes a major change in the product, y a minor change and z a fix. " +
		"Filter with a version (2.0), a list or a half-open range (1.0..2.0).")
}

// Decode implements field.Field.
func (f *SemVerField) Decode(raw string) (any, error) {
	v, err := version.NewVersion(strings.ReplaceAll(raw, f.separator, "."))
	if err != nil {
		return nil, field.NewDecodeError(f.Name(), raw, err)
	}

	return v, nil
}

// Encode implements field.Field.
func (f *SemVerField) Encode(value any) (string, error) {
	v, ok := value.(*version.Version)
	if !ok || v == nil {
		return "", field.NewEncodeError(f.Name(), value)
	}

	return strings.ReplaceAll(v.Original(), ".", f.separator), nil
}

// Compare implements field.Field.
func (f *SemVerField) Compare(a, b any) int {
	va, aok := a.(*version.Version)
	vb, bok := b.(*version.Version)

	switch {
	case aok && bok:
		return va.Compare(vb)
	case bok:
		return -1
	case aok:
		return 1
	default:
		return 0
	}
}

// Normalize implements field.Field.
func (f *SemVerField) Normalize(ref field.Reference) (field.Reference, error) {
	return f.ordered().Normalize(ref)
}

// Test implements field.Field.
func (f *SemVerField) Test(candidate any, ref field.Reference) bool {
	return f.ordered().Test(candidate, ref)
}

// ParseReference implements field.Field.
func (f *SemVerField) ParseReference(text string) (field.Reference, error) {
	return f.ordered().ParseReference(text, f.parse)
}

// parse reads reference text, which always uses dots.
func (f *SemVerField) parse(text string) (any, error) {
	v, err := version.NewVersion(text)
	if err != nil {
		return nil, field.NewDecodeError(f.Name(), text, err)
	}

	return v, nil
}

func (f *SemVerField) ordered() field.Ordered {
	return field.Ordered{
		Name: f.Name(),
		Coerce: func(value any) (any, error) {
			switch v := value.(type) {
			case *version.Version:
				return v, nil
			case string:
				return f.parse(v)
			default:
				return nil, errors.Errorf("expected a version, got %T", value)
			}
		},
		Compare: f.Compare,
		Encode:  f.Encode,
	}
}
