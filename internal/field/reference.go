package field

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Reference is a typed filter value. The concrete variants are Equal, OneOf,
// Between, Within, Pattern, Not and AllOf.
type Reference interface {
	fmt.Stringer
	reference()
}

// Equal matches a candidate equal to Value. For period fields, a time.Time value
// matches the periods containing it and a period.Period value the periods
// intersecting it.
type Equal struct {
	Value any
}

// OneOf matches a candidate equal to any of Values.
type OneOf struct {
	Values []any
}

// Between matches candidates in the half-open range [Start, Stop[. A nil bound is
// unbounded.
type Between struct {
	Start any
	Stop  any
}

// Within matches candidates in the closed interval [Start, End]. Period
// candidates match when they overlap the interval.
type Within struct {
	Start any
	End   any
}

// Pattern matches the encoded text of a candidate against a shell glob.
type Pattern struct {
	compiled glob.Glob
	Text     string
}

// Not negates a reference.
type Not struct {
	Ref Reference
}

// AllOf matches when every reference matches.
type AllOf struct {
	Refs []Reference
}

// NewPattern compiles a glob pattern reference.
func NewPattern(text string) (Pattern, error) {
	compiled, err := glob.Compile(text)
	if err != nil {
		return Pattern{}, NewReferenceError("", Pattern{Text: text}, err.Error())
	}

	return Pattern{Text: text, compiled: compiled}, nil
}

// Match reports whether text matches the pattern.
func (p Pattern) Match(text string) bool {
	if p.compiled == nil {
		compiled, err := glob.Compile(p.Text)
		if err != nil {
			return false
		}

		return compiled.Match(text)
	}

	return p.compiled.Match(text)
}

func (Equal) reference()   {}
func (OneOf) reference()   {}
func (Between) reference() {}
func (Within) reference()  {}
func (Pattern) reference() {}
func (Not) reference()     {}
func (AllOf) reference()   {}

func (ref Equal) String() string {
	return fmt.Sprintf("%v", ref.Value)
}

func (ref OneOf) String() string {
	values := make([]string, 0, len(ref.Values))
	for _, value := range ref.Values {
		values = append(values, fmt.Sprintf("%v", value))
	}

	return strings.Join(values, ",")
}

func (ref Between) String() string {
	return boundString(ref.Start) + ".." + boundString(ref.Stop) + " (stop excluded)"
}

func (ref Within) String() string {
	return boundString(ref.Start) + ".." + boundString(ref.End)
}

func (ref Pattern) String() string {
	return ref.Text
}

func (ref Not) String() string {
	return "!" + ref.Ref.String()
}

func (ref AllOf) String() string {
	refs := make([]string, 0, len(ref.Refs))
	for _, nested := range ref.Refs {
		refs = append(refs, nested.String())
	}

	return strings.Join(refs, " & ")
}

func boundString(bound any) string {
	if bound == nil {
		return ""
	}

	return fmt.Sprintf("%v", bound)
}
