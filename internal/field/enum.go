package field

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/fcollections/fcollections/internal/errors"
)

// Case is the letter case applied to encoded enum labels.
type Case int

const (
	// CasePreserve encodes labels as declared.
	CasePreserve Case = iota
	// CaseUpper encodes labels in upper case.
	CaseUpper
	// CaseLower encodes labels in lower case.
	CaseLower
)

// Apply transforms text to the case.
func (c Case) Apply(text string) string {
	switch c {
	case CaseUpper:
		return strings.ToUpper(text)
	case CaseLower:
		return strings.ToLower(text)
	default:
		return text
	}
}

// Enum decodes one of a fixed list of labels. The decoded value is the label as
// declared, and values are ordered by declaration.
type Enum struct {
	Base
	labels  []string
	encoded Case
}

// NewEnum returns an enum field over the given labels.
func NewEnum(name string, labels []string, opts ...Option) *Enum {
	return &Enum{Base: NewBase(name, opts...), labels: slices.Clone(labels)}
}

// WithCase sets the case of encoded labels. Decoding ignores case, so a folder
// named `expert` decodes to the `Expert` label.
func (f *Enum) WithCase(encoded Case) *Enum {
	f.encoded = encoded
	return f
}

// Labels returns the declared labels in order.
func (f *Enum) Labels() []string {
	return slices.Clone(f.labels)
}

// Description implements Field.
func (f *Enum) Description() string {
	return f.Describe(fmt.Sprintf("Enum field. Filter with a label, a list or a glob pattern. Labels: %s.", strings.Join(f.labels, ", ")))
}

// Decode implements Field.
func (f *Enum) Decode(raw string) (any, error) {
	if idx := f.index(raw); idx >= 0 {
		return f.labels[idx], nil
	}

	return nil, NewDecodeError(f.Name(), raw, errors.Errorf("expected one of %v", f.labels))
}

// Encode implements Field.
func (f *Enum) Encode(value any) (string, error) {
	label, ok := value.(string)
	if !ok || !slices.Contains(f.labels, label) {
		return "", NewEncodeError(f.Name(), value)
	}

	return f.encoded.Apply(label), nil
}

// Compare implements Field.
func (f *Enum) Compare(a, b any) int {
	return compareAs(a, b, f.position, cmp.Compare[int])
}

// Normalize implements Field.
func (f *Enum) Normalize(ref Reference) (Reference, error) {
	return f.scalar().normalize(ref)
}

// Test implements Field.
func (f *Enum) Test(candidate any, ref Reference) bool {
	return f.scalar().test(candidate, ref)
}

// ParseReference implements Field.
func (f *Enum) ParseReference(text string) (Reference, error) {
	return parseReference(f.Name(), text, f.Decode, false, true)
}

func (f *Enum) index(text string) int {
	return slices.IndexFunc(f.labels, func(label string) bool { return strings.EqualFold(label, text) })
}

func (f *Enum) position(value any) (int, bool) {
	label, ok := value.(string)
	if !ok {
		return 0, false
	}

	idx := slices.Index(f.labels, label)

	return idx, idx >= 0
}

func (f *Enum) scalar() scalar {
	return scalar{
		name: f.Name(),
		coerce: func(value any) (any, error) {
			if text, ok := value.(string); ok {
				return f.Decode(text)
			}

			return nil, errors.Errorf("expected one of %v, got %T", f.labels, value)
		},
		compare: f.Compare,
		encode:  f.Encode,
		globs:   true,
	}
}
