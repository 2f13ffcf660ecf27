package resolve

import (
	"github.com/fcollections/fcollections/internal/record"
)

// Deduplicator keeps one record per combination of the Unique fields. Among
// records sharing a combination, the one with the highest AutoPickLast tuple is
// kept.
type Deduplicator struct {
	Unique       []string
	AutoPickLast []string
}

// Resolve returns the deduplicated table, ordered by the first appearance of each
// combination. Resolving an already deduplicated table returns it unchanged.
func (d Deduplicator) Resolve(table *record.Table) (*record.Table, error) {
	if len(d.Unique) == 0 || table.IsEmpty() {
		return table, nil
	}

	if err := checkColumns(table, d.Unique, d.AutoPickLast); err != nil {
		return nil, err
	}

	groups := partition(table, d.Unique)
	if len(groups) == table.Len() {
		return table, nil
	}

	kept := make([]record.Record, 0, len(groups))

	for _, g := range groups {
		r, err := d.pick(table, g)
		if err != nil {
			return nil, err
		}

		kept = append(kept, r)
	}

	return table.WithRecords(kept), nil
}

func (d Deduplicator) pick(table *record.Table, g *group) (record.Record, error) {
	if len(g.records) == 1 {
		return g.records[0], nil
	}

	best := g.records

	if len(d.AutoPickLast) > 0 {
		best = []record.Record{g.records[0]}

		for _, r := range g.records[1:] {
			switch c := compareTuples(table, d.AutoPickLast, r, best[0]); {
			case c > 0:
				best = []record.Record{r}
			case c == 0:
				best = append(best, r)
			}
		}

		if len(best) == 1 {
			return best[0], nil
		}
	}

	candidates := make([]string, 0, len(best))
	for _, r := range best {
		candidates = append(candidates, r.Path())
	}

	return record.Record{}, NewDuplicateResolutionError(DuplicateResolutionError{
		Keys:         d.Unique,
		Values:       tuple(g.records[0], d.Unique),
		AutoPickLast: d.AutoPickLast,
		Tied:         tuple(best[0], d.AutoPickLast),
		Candidates:   candidates,
	})
}
