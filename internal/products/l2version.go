package products

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
)

// Unset marks a numeric L2Version component left open by a partial version.
const Unset = -1

const wildcard = "?"

var l2VersionPattern = regexp.MustCompile(`^P([IG?])([A-Z?])([0-9?])(?:_?([0-9]{2}))?$`)

// L2Version is the version of a SWOT L2 LR SSH half orbit: the CRID (timeliness,
// baseline and minor version, e.g. PIC2) and the product counter incremented
// each time a half orbit is regenerated for the same CRID. Empty strings and
// Unset mark the components of a partial version, e.g. P?C? or PGC0.
type L2Version struct {
	Timeliness string
	Baseline   string
	Minor      int
	Counter    int
}

// ParseL2Version parses `PIC2_01`, `PIC2` or a partial version with `?`
// placeholders such as `P?C?`.
func ParseL2Version(text string) (L2Version, error) {
	match := l2VersionPattern.FindStringSubmatch(text)
	if match == nil {
		return L2Version{}, errors.Errorf("invalid L2 version %q, expected P<I|G><baseline><minor>[_<counter>]", text)
	}

	version := L2Version{Minor: Unset, Counter: Unset}

	if match[1] != wildcard {
		version.Timeliness = match[1]
	}

	if match[2] != wildcard {
		version.Baseline = match[2]
	}

	if match[3] != wildcard {
		version.Minor, _ = strconv.Atoi(match[3])
	}

	if match[4] != "" {
		version.Counter, _ = strconv.Atoi(match[4])
	}

	return version, nil
}

// IsComplete reports whether the CRID is fully set. The counter is optional.
func (v L2Version) IsComplete() bool {
	return v.Timeliness != "" && v.Baseline != "" && v.Minor != Unset
}

// CRID returns the version without its product counter.
func (v L2Version) CRID() L2Version {
	v.Counter = Unset
	return v
}

// Matches reports whether every component set in ref equals the one of v.
func (v L2Version) Matches(ref L2Version) bool {
	switch {
	case ref.Timeliness != "" && ref.Timeliness != v.Timeliness:
		return false
	case ref.Baseline != "" && ref.Baseline != v.Baseline:
		return false
	case ref.Minor != Unset && ref.Minor != v.Minor:
		return false
	case ref.Counter != Unset && ref.Counter != v.Counter:
		return false
	}

	return true
}

func (v L2Version) String() string {
	var sb strings.Builder

	sb.WriteString("P")
	sb.WriteString(orWildcard(v.Timeliness))
	sb.WriteString(orWildcard(v.Baseline))

	if v.Minor == Unset {
		sb.WriteString(wildcard)
	} else {
		sb.WriteString(strconv.Itoa(v.Minor))
	}

	if v.Counter != Unset {
		fmt.Fprintf(&sb, "_%02d", v.Counter)
	}

	return sb.String()
}

// CompareL2Versions orders versions by baseline, then timeliness (reprocessed G
// after forward I), then minor version, then product counter.
func CompareL2Versions(a, b L2Version) int {
	return cmp.Or(
		cmp.Compare(a.Baseline, b.Baseline),
		cmp.Compare(timelinessRank(a.Timeliness), timelinessRank(b.Timeliness)),
		cmp.Compare(a.Minor, b.Minor),
		cmp.Compare(a.Counter, b.Counter),
	)
}

func timelinessRank(timeliness string) int {
	switch timeliness {
	case "I":
		return 1
	case "G":
		return 2 //nolint:mnd
	default:
		return 0
	}
}

func orWildcard(component string) string {
	if component == "" {
		return wildcard
	}

	return component
}

// L2VersionField decodes L2Version values. Equality references may be partial
// versions, in which case only their set components are tested.
type L2VersionField struct {
	field.Base
	// crid drops the product counter, for folders named after the CRID only.
	crid bool
}

// NewL2VersionField returns the field decoding file versions such as PIC2_01.
func NewL2VersionField(name string, opts ...field.Option) *L2VersionField {
	return &L2VersionField{Base: field.NewBase(name, opts...)}
}

// CRIDOnly returns a copy of the field ignoring product counters, to decode and
// test folder names such as PIC2.
func (f *L2VersionField) CRIDOnly() *L2VersionField {
	return &L2VersionField{Base: f.Base, crid: true}
}

// Description implements field.Field.
func (f *L2VersionField) Description() string {
	return f.Describe("L2 version made of the CRID (timeliness I/G, baseline letter and minor version, e.g. PIC0) " +
		"and a product counter (e.g. PIC0_02). Filter with a full or partial version such as PGC?, P?C? or a list.")
}

// Decode implements field.Field. The CRID must be complete.
func (f *L2VersionField) Decode(raw string) (any, error) {
	version, err := ParseL2Version(raw)
	if err != nil {
		return nil, field.NewDecodeError(f.Name(), raw, err)
	}

	if !version.IsComplete() {
		return nil, field.NewDecodeError(f.Name(), raw, errors.Errorf("partial version %s", version))
	}

	return version, nil
}

// Encode implements field.Field.
func (f *L2VersionField) Encode(value any) (string, error) {
	version, err := coerceL2Version(value)
	if err != nil || !version.IsComplete() {
		return "", field.NewEncodeError(f.Name(), value)
	}

	if f.crid {
		version = version.CRID()
	}

	return version.String(), nil
}

// Compare implements field.Field.
func (f *L2VersionField) Compare(a, b any) int {
	va, aok := a.(L2Version)
	vb, bok := b.(L2Version)

	switch {
	case aok && bok:
		return CompareL2Versions(va, vb)
	case bok:
		return -1
	case aok:
		return 1
	default:
		return 0
	}
}

// Normalize implements field.Field.
func (f *L2VersionField) Normalize(ref field.Reference) (field.Reference, error) {
	return f.ordered().Normalize(ref)
}

// Test implements field.Field.
func (f *L2VersionField) Test(candidate any, ref field.Reference) bool {
	return f.ordered().Test(candidate, ref)
}

// ParseReference implements field.Field.
func (f *L2VersionField) ParseReference(text string) (field.Reference, error) {
	return f.ordered().ParseReference(text, func(text string) (any, error) {
		version, err := ParseL2Version(text)
		if err != nil {
			return nil, field.NewDecodeError(f.Name(), text, err)
		}

		return version, nil
	})
}

func (f *L2VersionField) match(candidate, value any) bool {
	version, ok := candidate.(L2Version)
	if !ok {
		return false
	}

	ref, ok := value.(L2Version)
	if !ok {
		return false
	}

	if f.crid {
		ref = ref.CRID()
	}

	return version.Matches(ref)
}

func (f *L2VersionField) ordered() field.Ordered {
	return field.Ordered{
		Name: f.Name(),
		Coerce: func(value any) (any, error) {
			return coerceL2Version(value)
		},
		Compare: f.Compare,
		Encode:  f.Encode,
		Match:   f.match,
	}
}

func coerceL2Version(value any) (L2Version, error) {
	switch v := value.(type) {
	case L2Version:
		return v, nil
	case string:
		return ParseL2Version(v)
	default:
		return L2Version{}, errors.Errorf("expected an L2 version, got %T", value)
	}
}
