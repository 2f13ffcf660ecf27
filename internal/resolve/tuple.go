package resolve

import (
	"fmt"
	"strings"

	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/record"
)

// keySeparator joins encoded values into a group key. It cannot appear in a path segment.
const keySeparator = "\x00"

// tuple returns the values of columns in r.
func tuple(r record.Record, columns []string) []any {
	values := make([]any, 0, len(columns))

	for _, column := range columns {
		value, _ := r.Get(column)
		values = append(values, value)
	}

	return values
}

// groupKey encodes the values of columns in r into a comparable key.
func groupKey(table *record.Table, r record.Record, columns []string) string {
	parts := make([]string, 0, len(columns))

	for _, column := range columns {
		value, ok := r.Get(column)
		if !ok {
			parts = append(parts, "")
			continue
		}

		parts = append(parts, encode(table, column, value))
	}

	return strings.Join(parts, keySeparator)
}

func encode(table *record.Table, column string, value any) string {
	if f, ok := table.Field(column); ok {
		if text, err := f.Encode(value); err == nil {
			return text
		}
	}

	return fmt.Sprintf("%v", value)
}

// compareTuples orders records on columns, left to right.
func compareTuples(table *record.Table, columns []string, a, b record.Record) int {
	for _, column := range columns {
		if c := table.CompareColumn(column, a, b); c != 0 {
			return c
		}
	}

	return 0
}

func checkColumns(table *record.Table, columns ...[]string) error {
	for _, names := range columns {
		for _, name := range names {
			if name == record.PathColumn {
				continue
			}

			if _, ok := table.Field(name); !ok {
				return field.NewUnknownFieldError(name, table.Columns())
			}
		}
	}

	return nil
}

// group is a set of records sharing a key, in table order.
type group struct {
	key     string
	records []record.Record
}

// partition groups records by the values of columns, keeping the order of first
// appearance of each group.
func partition(table *record.Table, columns []string) []*group {
	var groups []*group

	index := map[string]*group{}

	for _, r := range table.Records() {
		key := groupKey(table, r, columns)

		g, ok := index[key]
		if !ok {
			g = &group{key: key}
			index[key] = g
			groups = append(groups, g)
		}

		g.records = append(g.records, r)
	}

	return groups
}
