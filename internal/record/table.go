package record

import (
	"cmp"
	"os"
	"slices"
	"time"

	"github.com/fcollections/fcollections/internal/field"
)

// Table is an ordered list of records sharing a schema. Operations return new
// tables.
type Table struct {
	schema  []field.Field
	stats   []string
	records []Record
}

// NewTable returns a table. The slices are copied.
func NewTable(schema []field.Field, stats []string, records []Record) *Table {
	return &Table{
		schema:  slices.Clone(schema),
		stats:   slices.Clone(stats),
		records: slices.Clone(records),
	}
}

// Schema returns the fields of the table.
func (t *Table) Schema() []field.Field {
	return slices.Clone(t.schema)
}

// Field returns the schema field with the given name.
func (t *Table) Field(name string) (field.Field, bool) {
	return field.Find(t.schema, name)
}

// StatColumns returns the requested stat columns.
func (t *Table) StatColumns() []string {
	return slices.Clone(t.stats)
}

// Columns returns the field names, then the path column, then the stat columns.
func (t *Table) Columns() []string {
	columns := field.Names(t.schema)
	columns = append(columns, PathColumn)

	return append(columns, t.stats...)
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// IsEmpty reports whether the table has no record.
func (t *Table) IsEmpty() bool {
	return len(t.records) == 0
}

// Records returns the records.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}

// Record returns the i-th record.
func (t *Table) Record(i int) Record {
	return t.records[i]
}

// Paths returns the record paths in table order.
func (t *Table) Paths() []string {
	paths := make([]string, 0, len(t.records))
	for _, r := range t.records {
		paths = append(paths, r.Path())
	}

	return paths
}

// Column returns the values of one column in table order. Missing values are nil.
func (t *Table) Column(name string) ([]any, error) {
	if err := t.checkColumn(name); err != nil {
		return nil, err
	}

	values := make([]any, 0, len(t.records))

	for _, r := range t.records {
		value, _ := r.Get(name)
		values = append(values, value)
	}

	return values, nil
}

// WithRecords returns a table with the same schema and other records.
func (t *Table) WithRecords(records []Record) *Table {
	return NewTable(t.schema, t.stats, records)
}

// Filter returns the records for which keep returns true.
func (t *Table) Filter(keep func(Record) bool) *Table {
	var kept []Record

	for _, r := range t.records {
		if keep(r) {
			kept = append(kept, r)
		}
	}

	return t.WithRecords(kept)
}

// Sort returns the table stably sorted by the given columns, using each field
// ordering. Without keys the table is sorted by path.
func (t *Table) Sort(keys ...string) (*Table, error) {
	if len(keys) == 0 {
		keys = []string{PathColumn}
	}

	for _, key := range keys {
		if err := t.checkColumn(key); err != nil {
			return nil, err
		}
	}

	records := slices.Clone(t.records)

	slices.SortStableFunc(records, func(a, b Record) int {
		for _, key := range keys {
			if c := t.CompareColumn(key, a, b); c != 0 {
				return c
			}
		}

		return 0
	})

	return t.WithRecords(records), nil
}

// CompareColumn orders two records on one column. Missing values sort first.
func (t *Table) CompareColumn(column string, a, b Record) int {
	va, aok := a.Get(column)
	vb, bok := b.Get(column)

	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}

	if f, ok := t.Field(column); ok {
		return f.Compare(va, vb)
	}

	return compareStat(va, vb)
}

func (t *Table) checkColumn(name string) error {
	if name == PathColumn || slices.Contains(t.stats, name) {
		return nil
	}

	if _, ok := t.Field(name); ok {
		return nil
	}

	return field.NewUnknownFieldError(name, t.Columns())
}

func compareStat(a, b any) int {
	switch va := a.(type) {
	case string:
		vb, _ := b.(string)
		return cmp.Compare(va, vb)
	case int64:
		vb, _ := b.(int64)
		return cmp.Compare(va, vb)
	case time.Time:
		vb, _ := b.(time.Time)
		return va.Compare(vb)
	case os.FileMode:
		vb, _ := b.(os.FileMode)
		return cmp.Compare(va, vb)
	default:
		return 0
	}
}
