package database

import (
	"slices"

	"github.com/fcollections/fcollections/internal/convention"
	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/layout"
	"github.com/fcollections/fcollections/internal/record"
	"github.com/fcollections/fcollections/internal/resolve"
)

// Product describes a family of files sharing a naming convention and a
// recommended folder layout.
type Product struct {
	// Convention matches the file names. It also drives unguided discovery.
	Convention *convention.Convention
	// Deduplicator collapses records describing the same data, nil when the
	// product has no duplicates.
	Deduplicator *resolve.Deduplicator
	// Unmixer selects one homogeneous subset, nil when the product never mixes
	// subsets.
	Unmixer     *resolve.SubsetsUnmixer
	Name        string
	Description string
	// TimeField names the Period or PeriodDelta field analyzed by the coverage
	// capability. Empty disables it.
	TimeField string
	// Layouts are the alternative folder layouts tried by default.
	Layouts  []*layout.Layout
	SortKeys []string
}

// Schema returns the fields of the file convention followed by the fields only
// declared by folder levels.
func (p *Product) Schema() []field.Field {
	schema := p.Convention.Fields()

	for _, l := range p.Layouts {
		for _, f := range l.Fields() {
			if _, ok := field.Find(schema, f.Name()); !ok {
				schema = append(schema, f)
			}
		}
	}

	return schema
}

// Names returns the names of the schema fields.
func (p *Product) Names() []string {
	return field.Names(p.Schema())
}

// PartitionKeys returns the unmixer partition keys, nil without unmixer.
func (p *Product) PartitionKeys() []string {
	if p.Unmixer == nil {
		return nil
	}

	return slices.Clone(p.Unmixer.PartitionKeys)
}

func (p *Product) validate() error {
	names := p.Names()

	check := func(component string, keys ...[]string) error {
		for _, key := range slices.Concat(keys...) {
			if !slices.Contains(names, key) {
				return NewInvalidProductError(p.Name, component, field.NewUnknownFieldError(key, names))
			}
		}

		return nil
	}

	if p.Deduplicator != nil {
		if err := check("deduplicator", p.Deduplicator.Unique, p.Deduplicator.AutoPickLast); err != nil {
			return err
		}
	}

	if p.Unmixer != nil {
		if err := check("unmixer", p.Unmixer.PartitionKeys, p.Unmixer.AutoPickLast); err != nil {
			return err
		}
	}

	sortable := slices.DeleteFunc(slices.Clone(p.SortKeys), func(key string) bool { return key == record.PathColumn })
	if err := check("sort keys", sortable); err != nil {
		return err
	}

	if p.TimeField != "" {
		return check("time field", []string{p.TimeField})
	}

	return nil
}
