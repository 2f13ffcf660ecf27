package resolve

import (
	"slices"

	"github.com/fcollections/fcollections/internal/record"
)

// SubsetsUnmixer keeps the records of a single subset, a subset being the records
// sharing the values of PartitionKeys. Partition keys listed in AutoPickLast are
// settled by keeping the subset with the highest values. The others must already
// be pinned to a single value, usually with a filter.
type SubsetsUnmixer struct {
	PartitionKeys []string
	AutoPickLast  []string
}

// Resolve returns the records of the selected subset in table order.
func (u SubsetsUnmixer) Resolve(table *record.Table) (*record.Table, error) {
	if len(u.PartitionKeys) == 0 || table.IsEmpty() {
		return table, nil
	}

	if err := checkColumns(table, u.PartitionKeys, u.AutoPickLast); err != nil {
		return nil, err
	}

	groups := partition(table, u.PartitionKeys)
	if len(groups) == 1 {
		return table, nil
	}

	var manual []string

	for _, key := range u.PartitionKeys {
		if !slices.Contains(u.AutoPickLast, key) {
			manual = append(manual, key)
		}
	}

	if keys, values := ambiguous(table, groups, manual); len(keys) > 0 {
		return nil, NewSubsetMismatchError(keys, values)
	}

	if len(u.AutoPickLast) == 0 {
		keys, values := ambiguous(table, groups, u.PartitionKeys)
		return nil, NewSubsetMismatchError(keys, values)
	}

	winners := []*group{groups[0]}
	best := u.best(table, groups[0])

	for _, g := range groups[1:] {
		candidate := u.best(table, g)

		switch c := compareTuples(table, u.AutoPickLast, candidate, best); {
		case c > 0:
			winners, best = []*group{g}, candidate
		case c == 0:
			winners = append(winners, g)
		}
	}

	if len(winners) > 1 {
		keys, values := ambiguous(table, winners, u.PartitionKeys)
		return nil, NewSubsetMismatchError(keys, values)
	}

	return table.WithRecords(winners[0].records), nil
}

// best returns the record of g with the highest AutoPickLast tuple.
func (u SubsetsUnmixer) best(table *record.Table, g *group) record.Record {
	best := g.records[0]

	for _, r := range g.records[1:] {
		if compareTuples(table, u.AutoPickLast, r, best) > 0 {
			best = r
		}
	}

	return best
}

// ambiguous returns the keys holding more than one value across groups, with
// their distinct values in order of appearance.
func ambiguous(table *record.Table, groups []*group, keys []string) ([]string, map[string][]any) {
	var found []string

	values := map[string][]any{}

	for _, key := range keys {
		seen := map[string]bool{}

		var distinct []any

		for _, g := range groups {
			for _, r := range g.records {
				value, _ := r.Get(key)

				text := groupKey(table, r, []string{key})
				if seen[text] {
					continue
				}

				seen[text] = true
				distinct = append(distinct, value)
			}
		}

		if len(distinct) > 1 {
			found = append(found, key)
			values[key] = distinct
		}
	}

	return found, values
}
