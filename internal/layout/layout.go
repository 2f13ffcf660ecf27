// Package layout describes the expected nesting of a file collection: one
// convention per directory level, the last one matching the files.
package layout

import (
	"path/filepath"
	"slices"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
)

// Layout is an ordered list of conventions. Index 0 is the outermost directory
// and the last index is the terminal level. A single convention is a flat layout.
type Layout struct {
	name        string
	conventions []*convention.Convention
}

// New returns a layout over the given conventions.
func New(conventions ...*convention.Convention) (*Layout, error) {
	if len(conventions) == 0 {
		return nil, errors.New("a layout needs at least one convention")
	}

	return &Layout{conventions: slices.Clone(conventions)}, nil
}

// MustNew is like New but panics on error.
func MustNew(conventions ...*convention.Convention) *Layout {
	l, err := New(conventions...)
	if err != nil {
		panic(err)
	}

	return l
}

// Named returns a copy of the layout labeled with name, used in diagnostics.
func (l *Layout) Named(name string) *Layout {
	clone := *l
	clone.name = name

	return &clone
}

// Name returns the layout label.
func (l *Layout) Name() string {
	return l.name
}

// Depth returns the number of levels, the terminal level included.
func (l *Layout) Depth() int {
	return len(l.conventions)
}

// IsFlat reports whether the layout interprets no directory.
func (l *Layout) IsFlat() bool {
	return len(l.conventions) == 1
}

// Level returns the convention at the given depth.
func (l *Layout) Level(depth int) *convention.Convention {
	return l.conventions[depth]
}

// Terminal returns the convention of the last level.
func (l *Layout) Terminal() *convention.Convention {
	return l.conventions[len(l.conventions)-1]
}

// Names returns the union of the field names of all levels: the terminal level
// names first, then the folder only names from the outermost level down.
func (l *Layout) Names() []string {
	names := l.Terminal().Names()

	for _, c := range l.conventions[:len(l.conventions)-1] {
		for _, name := range c.Names() {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}

	return names
}

// Fields returns the fields matching Names, preferring the terminal level
// declaration when a name appears at several levels.
func (l *Layout) Fields() []field.Field {
	names := l.Names()
	fields := make([]field.Field, 0, len(names))

	for _, name := range names {
		f, _ := l.Field(name)
		fields = append(fields, f)
	}

	return fields
}

// Field looks a field up, starting from the terminal level.
func (l *Layout) Field(name string) (field.Field, bool) {
	for i := len(l.conventions) - 1; i >= 0; i-- {
		if f, ok := l.conventions[i].Field(name); ok {
			return f, true
		}
	}

	return nil, false
}

// Parse matches a segment against the convention of the given level.
func (l *Layout) Parse(depth int, segment string) (convention.Values, error) {
	return l.conventions[depth].Match(segment)
}

// Generate renders the path of a record under root, one segment per level.
func (l *Layout) Generate(root string, values convention.Values) (string, error) {
	segments := make([]string, 0, len(l.conventions)+1)
	segments = append(segments, root)

	for _, c := range l.conventions {
		segment, err := c.Generate(values)
		if err != nil {
			return "", err
		}

		segments = append(segments, segment)
	}

	return filepath.Join(segments...), nil
}

// SetFilters splits filters per level. Each reference is normalized by the field
// of every level declaring its name, and a name declared nowhere is an
// UnknownFieldError.
func (l *Layout) SetFilters(filters field.Filters) (*Filters, error) {
	levels := make([]field.Filters, len(l.conventions))
	for i := range levels {
		levels[i] = field.Filters{}
	}

	for _, name := range filters.Names() {
		known := false

		for i, c := range l.conventions {
			f, ok := c.Field(name)
			if !ok {
				continue
			}

			ref, err := f.Normalize(filters[name])
			if err != nil {
				return nil, err
			}

			levels[i][name] = ref
			known = true
		}

		if !known {
			return nil, field.NewUnknownFieldError(name, l.Names())
		}
	}

	return &Filters{layout: l, levels: levels}, nil
}

// Filters are filters bound to the levels of a layout.
type Filters struct {
	layout *Layout
	levels []field.Filters
}

// Layout returns the layout the filters are bound to.
func (filters *Filters) Layout() *Layout {
	return filters.layout
}

// Level returns the filters applying to the given depth.
func (filters *Filters) Level(depth int) field.Filters {
	return filters.levels[depth]
}

// Test reports whether the values decoded at a level satisfy the filters of that
// level. A filtered value missing from values fails the test.
func (filters *Filters) Test(depth int, values convention.Values) bool {
	c := filters.layout.Level(depth)

	for name, ref := range filters.levels[depth] {
		value, ok := values[name]
		if !ok {
			return false
		}

		f, _ := c.Field(name)
		if !f.Test(value, ref) {
			return false
		}
	}

	return true
}
