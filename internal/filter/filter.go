package filter

import (
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
)

// Resolver gives access to the fields a query may name. A layout.Layout is a
// Resolver, and so is a Schema.
type Resolver interface {
	Field(name string) (field.Field, bool)
	Names() []string
}

// Schema is a Resolver over a list of fields.
type Schema []field.Field

// Field implements Resolver.
func (s Schema) Field(name string) (field.Field, bool) {
	return field.Find(s, name)
}

// Names implements Resolver.
func (s Schema) Names() []string {
	return field.Names(s)
}

// Filter represents a parsed filter query.
type Filter struct {
	expr          Expression
	originalQuery string
}

// Parse parses a filter query string and returns a Filter object.
// Returns an error if the query cannot be parsed.
func Parse(filterString string) (*Filter, error) {
	expr, err := NewParser(filterString).ParseExpression()
	if err != nil {
		return nil, err
	}

	return &Filter{expr: expr, originalQuery: filterString}, nil
}

// String returns the original filter query string.
func (f *Filter) String() string {
	return f.originalQuery
}

// Expression returns the parsed AST expression.
func (f *Filter) Expression() Expression {
	return f.expr
}

// Compile resolves the filter against the fields of resolver.
func (f *Filter) Compile(resolver Resolver) (field.Filters, error) {
	return Compile(f.expr, resolver)
}

// Compile turns an expression into typed references, one per field. Each value is
// parsed by its field. A field named several times gets an AllOf reference.
func Compile(expr Expression, resolver Resolver) (field.Filters, error) {
	filters := field.Filters{}

	if err := compile(expr, resolver, filters, false); err != nil {
		return nil, err
	}

	return filters, nil
}

func compile(expr Expression, resolver Resolver, filters field.Filters, negated bool) error {
	switch node := expr.(type) {
	case *InfixExpression:
		if negated {
			return errors.Errorf("cannot negate the intersection '%s'", node)
		}

		if err := compile(node.Left, resolver, filters, false); err != nil {
			return err
		}

		return compile(node.Right, resolver, filters, false)
	case *PrefixExpression:
		return compile(node.Right, resolver, filters, !negated)
	case *AttributeExpression:
		f, ok := resolver.Field(node.Key)
		if !ok {
			return field.NewUnknownFieldError(node.Key, resolver.Names())
		}

		ref, err := f.ParseReference(node.Value)
		if err != nil {
			return errors.New(InvalidValueError{Expression: node.String(), Err: err})
		}

		if negated {
			ref = field.Not{Ref: ref}
		}

		filters[node.Key] = combine(filters[node.Key], ref)

		return nil
	default:
		return errors.Errorf("unsupported filter expression %T", expr)
	}
}

func combine(existing, ref field.Reference) field.Reference {
	switch current := existing.(type) {
	case nil:
		return ref
	case field.AllOf:
		refs := append([]field.Reference{}, current.Refs...)
		return field.AllOf{Refs: append(refs, ref)}
	default:
		return field.AllOf{Refs: []field.Reference{existing, ref}}
	}
}

// ParseFilters parses and compiles several queries into one set of filters. The
// queries are intersected.
func ParseFilters(queries []string, resolver Resolver) (field.Filters, error) {
	filters := field.Filters{}

	for _, query := range queries {
		f, err := Parse(query)
		if err != nil {
			return nil, err
		}

		if err := compile(f.expr, resolver, filters, false); err != nil {
			return nil, err
		}
	}

	return filters, nil
}
