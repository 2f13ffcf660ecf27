// Package record holds the rows produced by a discovery: one immutable Record per
// matched file, gathered in a Table whose schema lists the decoded fields.
package record

import (
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/errors"
)

// PathColumn is the name of the column holding the record path.
const PathColumn = "path"

// Stat columns that can be requested from the filesystem.
const (
	StatSize  = "size"
	StatMTime = "mtime"
	StatMode  = "mode"
)

// StatFields lists the supported stat columns.
var StatFields = []string{StatSize, StatMTime, StatMode}

// Record is one matched file: the values decoded at every level of its path, the
// path itself and the requested stat attributes.
type Record struct {
	values convention.Values
	stats  map[string]any
	path   string
}

// New returns a record. The maps are copied.
func New(path string, values convention.Values, stats map[string]any) Record {
	return Record{path: path, values: values.Clone(), stats: maps.Clone(stats)}
}

// Path returns the path of the matched file.
func (r Record) Path() string {
	return r.path
}

// Values returns a copy of the decoded values.
func (r Record) Values() convention.Values {
	return r.values.Clone()
}

// Value returns a decoded value.
func (r Record) Value(name string) (any, bool) {
	value, ok := r.values[name]
	return value, ok
}

// Stat returns a stat attribute.
func (r Record) Stat(name string) (any, bool) {
	value, ok := r.stats[name]
	return value, ok
}

// Get returns the value of any column: a field, the path or a stat attribute.
func (r Record) Get(column string) (any, bool) {
	if column == PathColumn {
		return r.path, true
	}

	if value, ok := r.values[column]; ok {
		return value, true
	}

	return r.Stat(column)
}

// ValidateStatFields rejects unsupported stat column names.
func ValidateStatFields(names []string) error {
	for _, name := range names {
		if !slices.Contains(StatFields, name) {
			return errors.Errorf("unsupported stat field %q, expected one of %s", name, strings.Join(StatFields, ", "))
		}
	}

	return nil
}

// StatValues extracts the requested stat attributes from info.
func StatValues(info os.FileInfo, names []string) map[string]any {
	if len(names) == 0 || info == nil {
		return nil
	}

	stats := make(map[string]any, len(names))

	for _, name := range names {
		switch name {
		case StatSize:
			stats[name] = info.Size()
		case StatMTime:
			stats[name] = info.ModTime()
		case StatMode:
			stats[name] = info.Mode()
		}
	}

	return stats
}
