// Package coverage computes the temporal coverage of a record table from the
// periods decoded by a period field.
package coverage

import (
	"fmt"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/period"
	"github.com/fcollections/fcollections/internal/record"
)

// ColumnError is returned when the table has no usable period column.
type ColumnError struct {
	Column string
	Reason string
}

func (err ColumnError) Error() string {
	return fmt.Sprintf("cannot compute the coverage from column '%s': %s", err.Column, err.Reason)
}

// Analyzer reads the periods of one column.
type Analyzer struct {
	column string
}

// New returns an analyzer of the given period column.
func New(column string) *Analyzer {
	return &Analyzer{column: column}
}

// Column returns the analyzed column.
func (a *Analyzer) Column() string {
	return a.column
}

// Coverage returns the smallest period containing every file. The boolean is false
// for an empty table.
func (a *Analyzer) Coverage(table *record.Table) (period.Period, bool, error) {
	periods, err := a.periods(table)
	if err != nil {
		return period.Period{}, false, err
	}

	envelop, ok := period.Envelop(periods)

	return envelop, ok, nil
}

// Holes returns the periods between the files, once successive files are fused.
func (a *Analyzer) Holes(table *record.Table) ([]period.Period, error) {
	periods, err := a.periods(table)
	if err != nil {
		return nil, err
	}

	period.Sort(periods)

	return period.Holes(period.FuseSuccessive(periods)), nil
}

func (a *Analyzer) periods(table *record.Table) ([]period.Period, error) {
	if _, ok := table.Field(a.column); !ok {
		return nil, errors.New(ColumnError{Column: a.column, Reason: "no such field"})
	}

	periods := make([]period.Period, 0, table.Len())

	for _, r := range table.Records() {
		value, ok := r.Value(a.column)
		if !ok {
			continue
		}

		p, ok := value.(period.Period)
		if !ok {
			return nil, errors.New(ColumnError{Column: a.column, Reason: fmt.Sprintf("expected periods, got %T", value)})
		}

		periods = append(periods, p)
	}

	return periods, nil
}
