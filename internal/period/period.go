// Package period implements time intervals with open or closed bounds, and the few
// set operations needed to reason about the temporal coverage of a file collection.
package period

import (
	"slices"
	"time"
)

// Period is a time interval. The zero value of the exclusion flags gives a closed
// interval [Start, Stop].
type Period struct {
	Start        time.Time
	Stop         time.Time
	ExcludeStart bool
	ExcludeStop  bool
}

// New returns the closed period [start, stop].
func New(start, stop time.Time) Period {
	return Period{Start: start, Stop: stop}
}

// HalfOpen returns the period [start, stop[.
func HalfOpen(start, stop time.Time) Period {
	return Period{Start: start, Stop: stop, ExcludeStop: true}
}

// Duration returns Stop - Start.
func (p Period) Duration() time.Duration {
	return p.Stop.Sub(p.Start)
}

// Center returns the middle of the period.
func (p Period) Center() time.Time {
	return p.Start.Add(p.Duration() / 2) //nolint:mnd
}

// IsEmpty reports whether no instant satisfies the bounds.
func (p Period) IsEmpty() bool {
	if p.Stop.Before(p.Start) {
		return true
	}

	return p.Stop.Equal(p.Start) && (p.ExcludeStart || p.ExcludeStop)
}

// Contains reports whether t lies within the period bounds.
func (p Period) Contains(t time.Time) bool {
	if p.ExcludeStart {
		if !t.After(p.Start) {
			return false
		}
	} else if t.Before(p.Start) {
		return false
	}

	if p.ExcludeStop {
		return t.Before(p.Stop)
	}

	return !t.After(p.Stop)
}

// Intersection returns the common part of both periods. The boolean is false when
// the periods do not intersect.
func (p Period) Intersection(other Period) (Period, bool) {
	var result Period

	switch p.Start.Compare(other.Start) {
	case -1:
		result.Start, result.ExcludeStart = other.Start, other.ExcludeStart
	case 1:
		result.Start, result.ExcludeStart = p.Start, p.ExcludeStart
	default:
		result.Start, result.ExcludeStart = p.Start, p.ExcludeStart || other.ExcludeStart
	}

	switch p.Stop.Compare(other.Stop) {
	case -1:
		result.Stop, result.ExcludeStop = p.Stop, p.ExcludeStop
	case 1:
		result.Stop, result.ExcludeStop = other.Stop, other.ExcludeStop
	default:
		result.Stop, result.ExcludeStop = p.Stop, p.ExcludeStop || other.ExcludeStop
	}

	if result.IsEmpty() {
		return Period{}, false
	}

	return result, true
}

// Intersects reports whether both periods share at least one instant.
func (p Period) Intersects(other Period) bool {
	_, ok := p.Intersection(other)
	return ok
}

// Union returns the smallest period covering both periods.
func (p Period) Union(other Period) Period {
	var result Period

	switch p.Start.Compare(other.Start) {
	case -1:
		result.Start, result.ExcludeStart = p.Start, p.ExcludeStart
	case 1:
		result.Start, result.ExcludeStart = other.Start, other.ExcludeStart
	default:
		result.Start, result.ExcludeStart = p.Start, p.ExcludeStart && other.ExcludeStart
	}

	switch p.Stop.Compare(other.Stop) {
	case 1:
		result.Stop, result.ExcludeStop = p.Stop, p.ExcludeStop
	case -1:
		result.Stop, result.ExcludeStop = other.Stop, other.ExcludeStop
	default:
		result.Stop, result.ExcludeStop = p.Stop, p.ExcludeStop && other.ExcludeStop
	}

	return result
}

// Equal reports whether both periods have the same bounds.
func (p Period) Equal(other Period) bool {
	return p.Start.Equal(other.Start) && p.Stop.Equal(other.Stop) &&
		p.ExcludeStart == other.ExcludeStart && p.ExcludeStop == other.ExcludeStop
}

// String renders the period with bracket notation, e.g. `[2023-01-01T00:00:00Z, 2023-01-02T00:00:00Z[`.
func (p Period) String() string {
	left, right := "[", "]"

	if p.ExcludeStart {
		left = "]"
	}

	if p.ExcludeStop {
		right = "["
	}

	return left + p.Start.Format(time.RFC3339) + ", " + p.Stop.Format(time.RFC3339) + right
}

// Compare orders periods by start, then by stop.
func Compare(a, b Period) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}

	return a.Stop.Compare(b.Stop)
}

// Sort sorts periods in place by start then stop.
func Sort(periods []Period) {
	slices.SortFunc(periods, Compare)
}

// Envelop returns the union of all periods. It returns false for an empty input.
func Envelop(periods []Period) (Period, bool) {
	if len(periods) == 0 {
		return Period{}, false
	}

	envelop := periods[0]
	for _, p := range periods[1:] {
		envelop = envelop.Union(p)
	}

	return envelop, true
}

// FuseSuccessive merges sorted periods that touch or overlap, for example a
// succession of daily files [1st may, 2nd may[ | [2nd may, 3rd may[ becomes
// [1st may, 3rd may[.
func FuseSuccessive(periods []Period) []Period {
	if len(periods) == 0 {
		return nil
	}

	fused := []Period{periods[0]}

	for _, p := range periods[1:] {
		last := &fused[len(fused)-1]

		if p.Start.After(last.Stop) {
			fused = append(fused, p)
			continue
		}

		if p.Start.Equal(last.Stop) && last.ExcludeStop && p.ExcludeStart {
			// ]a, b[ followed by ]b, c[ leaves b uncovered.
			fused = append(fused, p)
			continue
		}

		if p.Stop.After(last.Stop) || (p.Stop.Equal(last.Stop) && !p.ExcludeStop) {
			last.Stop, last.ExcludeStop = p.Stop, p.ExcludeStop
		}
	}

	return fused
}

// Holes returns the gaps between sorted, non overlapping periods. The bounds of each
// hole are the complement of the surrounding period bounds.
func Holes(periods []Period) []Period {
	if len(periods) < 2 { //nolint:mnd
		return nil
	}

	holes := make([]Period, 0, len(periods)-1)

	for i := range len(periods) - 1 {
		hole := Period{
			Start:        periods[i].Stop,
			Stop:         periods[i+1].Start,
			ExcludeStart: !periods[i].ExcludeStop,
			ExcludeStop:  !periods[i+1].ExcludeStart,
		}

		if !hole.IsEmpty() {
			holes = append(holes, hole)
		}
	}

	return holes
}
