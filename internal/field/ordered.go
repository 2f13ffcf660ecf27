package field

// Ordered implements the reference protocol for custom fields whose values are
// totally ordered. A custom Field embeds Base and delegates Normalize, Test and
// ParseReference to an Ordered.
type Ordered struct {
	// Coerce converts a reference value, possibly a string, into a field value.
	Coerce func(value any) (any, error)
	// Compare orders two field values.
	Compare func(a, b any) int
	// Encode renders a field value, used to match Pattern references.
	Encode func(value any) (string, error)
	// Match tests a candidate against an Equal or OneOf value. It defaults to
	// Compare returning 0.
	Match func(candidate, value any) bool
	Name  string
	// Globs enables Pattern references.
	Globs bool
	// Closed parses `lo..hi` as a closed Within interval instead of Between.
	Closed bool
}

// Normalize validates ref and coerces its values.
func (o Ordered) Normalize(ref Reference) (Reference, error) {
	return o.scalar().normalize(ref)
}

// Test reports whether candidate satisfies ref.
func (o Ordered) Test(candidate any, ref Reference) bool {
	return o.scalar().test(candidate, ref)
}

// ParseReference parses the textual reference syntax, decoding values with parse.
func (o Ordered) ParseReference(text string, parse func(text string) (any, error)) (Reference, error) {
	return parseReference(o.Name, text, parse, o.Closed, o.Globs)
}

func (o Ordered) scalar() scalar {
	return scalar{
		name:    o.Name,
		coerce:  o.Coerce,
		compare: o.Compare,
		encode:  o.Encode,
		match:   o.Match,
		globs:   o.Globs,
	}
}
