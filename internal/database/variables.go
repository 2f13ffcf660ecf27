package database

import (
	"context"
	"slices"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/record"
)

// Variables summarizes the subsets of a collection and describes the selected
// one.
type Variables struct {
	// Subsets holds the distinct values of each partition key, in field order,
	// before unmixing.
	Subsets map[string][]any
	// Selected holds the partition values of the subset picked by the unmixer.
	Selected convention.Values
	// Metadata is returned by a MetadataReader for Path, nil otherwise.
	Metadata any
	// Path is the first file of the selected subset.
	Path string
}

// VariablesInfo describes the subset selected by the filters, which may only
// target partition keys. It returns nil when no file matches.
func (db *Database) VariablesInfo(ctx context.Context, filters field.Filters) (*Variables, error) {
	keys := db.product.PartitionKeys()

	for _, name := range filters.Names() {
		if !slices.Contains(keys, name) {
			return nil, field.NewUnknownFieldError(name, keys)
		}
	}

	result, err := db.discover(ctx, filters, nil)
	if err != nil {
		return nil, err
	}

	subsets := distinct(result.Table, keys)

	table, err := db.postprocess(result.Table, ListOptions{Unmix: true})
	if err != nil {
		return nil, err
	}

	if table.IsEmpty() {
		db.logger.Warnf("No files found with filters %v", filters)
		return nil, nil
	}

	first := table.Record(0)

	vars := &Variables{
		Subsets:  subsets,
		Selected: convention.Values{},
		Path:     first.Path(),
	}

	for _, key := range keys {
		if value, ok := first.Value(key); ok {
			vars.Selected[key] = value
		}
	}

	if reader, ok := db.reader.(MetadataReader); ok {
		if vars.Metadata, err = reader.Metadata(ctx, db.fs, vars.Path); err != nil {
			return nil, errors.New(err)
		}
	}

	return vars, nil
}

func distinct(table *record.Table, keys []string) map[string][]any {
	subsets := make(map[string][]any, len(keys))

	for _, key := range keys {
		f, ok := table.Field(key)
		if !ok {
			continue
		}

		var values []any

		for _, r := range table.Records() {
			value, ok := r.Value(key)
			if !ok || slices.ContainsFunc(values, func(v any) bool { return f.Compare(v, value) == 0 }) {
				continue
			}

			values = append(values, value)
		}

		slices.SortFunc(values, f.Compare)
		subsets[key] = values
	}

	return subsets
}
