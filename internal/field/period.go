package field

import (
	"fmt"
	"strings"
	"time"

	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/period"
)

// DefaultPeriodSeparator separates the start and stop of an encoded period.
const DefaultPeriodSeparator = "_"

var (
	minTime = time.Time{}
	maxTime = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// Period decodes a `start<sep>stop` pair of timestamps into a closed period.
type Period struct {
	Base
	layout    string
	separator string
}

// NewPeriod returns a period field whose bounds share one time layout.
func NewPeriod(name, layout string, opts ...Option) *Period {
	return &Period{Base: NewBase(name, opts...), layout: layout, separator: DefaultPeriodSeparator}
}

// WithSeparator changes the text between the encoded bounds.
func (f *Period) WithSeparator(separator string) *Period {
	f.separator = separator
	return f
}

// Description implements Field.
func (f *Period) Description() string {
	return f.Describe(periodDescription("Period", f.layout))
}

// Decode implements Field.
func (f *Period) Decode(raw string) (any, error) {
	bounds, ok := f.split(raw)
	if !ok {
		return nil, NewDecodeError(f.Name(), raw, errors.Errorf("expected two timestamps separated by %q", f.separator))
	}

	start, err := time.Parse(f.layout, bounds[0])
	if err != nil {
		return nil, NewDecodeError(f.Name(), raw, err)
	}

	stop, err := time.Parse(f.layout, bounds[1])
	if err != nil {
		return nil, NewDecodeError(f.Name(), raw, err)
	}

	if stop.Before(start) {
		return nil, NewDecodeError(f.Name(), raw, errors.Errorf("stop %s is before start %s", bounds[1], bounds[0]))
	}

	return period.New(start, stop), nil
}

// split cuts raw between its bounds. When the layout itself holds the
// separator, the bounds are taken as fixed width strings of the layout length.
func (f *Period) split(raw string) ([2]string, bool) {
	if !strings.Contains(f.layout, f.separator) {
		start, stop, ok := strings.Cut(raw, f.separator)
		return [2]string{start, stop}, ok && !strings.Contains(stop, f.separator)
	}

	width := len(f.layout)
	if len(raw) != 2*width+len(f.separator) || raw[width:width+len(f.separator)] != f.separator {
		return [2]string{}, false
	}

	return [2]string{raw[:width], raw[width+len(f.separator):]}, true
}

// Encode implements Field.
func (f *Period) Encode(value any) (string, error) {
	p, ok := value.(period.Period)
	if !ok {
		return "", NewEncodeError(f.Name(), value)
	}

	return p.Start.Format(f.layout) + f.separator + p.Stop.Format(f.layout), nil
}

// Compare implements Field.
func (f *Period) Compare(a, b any) int {
	return comparePeriods(a, b)
}

// Normalize implements Field.
func (f *Period) Normalize(ref Reference) (Reference, error) {
	return normalizePeriodReference(f.Name(), []string{f.layout}, ref)
}

// Test implements Field.
func (f *Period) Test(candidate any, ref Reference) bool {
	return testPeriod(candidate, ref)
}

// ParseReference implements Field. Ranges are closed intervals.
func (f *Period) ParseReference(text string) (Reference, error) {
	return parsePeriodReference(f.Name(), []string{f.layout}, text)
}

// PeriodDelta decodes the start of a period of fixed duration, e.g. the day of a
// daily file named `20230101`.
type PeriodDelta struct {
	Base
	layouts     []string
	delta       time.Duration
	includeStop bool
}

// NewPeriodDelta returns a field decoding [start, start+delta[.
func NewPeriodDelta(name, layout string, delta time.Duration, opts ...Option) *PeriodDelta {
	return &PeriodDelta{Base: NewBase(name, opts...), layouts: []string{layout}, delta: delta}
}

// WithAlternateLayouts adds layouts tried in order when the main one does not
// decode. Values are always encoded with the main layout.
func (f *PeriodDelta) WithAlternateLayouts(layouts ...string) *PeriodDelta {
	f.layouts = append(f.layouts, layouts...)
	return f
}

// WithIncludeStop makes decoded periods closed: [start, start+delta].
func (f *PeriodDelta) WithIncludeStop() *PeriodDelta {
	f.includeStop = true
	return f
}

// Description implements Field.
func (f *PeriodDelta) Description() string {
	return f.Describe(periodDescription(fmt.Sprintf("Period of %s", f.delta), strings.Join(f.layouts, " or ")))
}

// Decode implements Field.
func (f *PeriodDelta) Decode(raw string) (any, error) {
	var (
		start time.Time
		err   error
	)

	for _, layout := range f.layouts {
		if start, err = time.Parse(layout, raw); err == nil {
			break
		}
	}

	if err != nil {
		return nil, NewDecodeError(f.Name(), raw, err)
	}

	if f.includeStop {
		return period.New(start, start.Add(f.delta)), nil
	}

	return period.HalfOpen(start, start.Add(f.delta)), nil
}

// Encode implements Field.
func (f *PeriodDelta) Encode(value any) (string, error) {
	switch v := value.(type) {
	case period.Period:
		return v.Start.Format(f.layouts[0]), nil
	case time.Time:
		return v.Format(f.layouts[0]), nil
	default:
		return "", NewEncodeError(f.Name(), value)
	}
}

// Compare implements Field.
func (f *PeriodDelta) Compare(a, b any) int {
	return comparePeriods(a, b)
}

// Normalize implements Field.
func (f *PeriodDelta) Normalize(ref Reference) (Reference, error) {
	return normalizePeriodReference(f.Name(), f.layouts, ref)
}

// Test implements Field.
func (f *PeriodDelta) Test(candidate any, ref Reference) bool {
	return testPeriod(candidate, ref)
}

// ParseReference implements Field.
func (f *PeriodDelta) ParseReference(text string) (Reference, error) {
	return parsePeriodReference(f.Name(), f.layouts, text)
}

func periodDescription(kind, layout string) string {
	return kind + " field (layout " + layout + "). Filter with a time contained in the period (2024-01-01), " +
		"a list, a period or a closed interval (2024-01-01..2024-02-01) intersecting it."
}

func comparePeriods(a, b any) int {
	return compareAs(a, b, asPeriod, period.Compare)
}

func asPeriod(value any) (period.Period, bool) {
	p, ok := value.(period.Period)
	return p, ok
}

func parsePeriodReference(name string, layouts []string, text string) (Reference, error) {
	return parseReference(name, text, func(text string) (any, error) { return coerceTime(text, layouts) }, true, false)
}

func normalizePeriodReference(name string, layouts []string, ref Reference) (Reference, error) {
	point := func(ref Reference, value any) (any, error) {
		if p, ok := value.(period.Period); ok {
			return p, nil
		}

		t, err := coerceTime(value, layouts)
		if err != nil {
			return nil, NewReferenceError(name, ref, err.Error())
		}

		return t, nil
	}

	bound := func(ref Reference, value any) (any, error) {
		if value == nil {
			return nil, nil
		}

		t, err := coerceTime(value, layouts)
		if err != nil {
			return nil, NewReferenceError(name, ref, err.Error())
		}

		return t, nil
	}

	return NormalizeWith(ref, func(ref Reference) (Reference, error) {
		switch ref := ref.(type) {
		case Equal:
			value, err := point(ref, ref.Value)
			if err != nil {
				return nil, err
			}

			return Equal{Value: value}, nil
		case OneOf:
			values := make([]any, 0, len(ref.Values))

			for _, value := range ref.Values {
				normalized, err := point(ref, value)
				if err != nil {
					return nil, err
				}

				values = append(values, normalized)
			}

			return OneOf{Values: values}, nil
		case Between:
			start, err := bound(ref, ref.Start)
			if err != nil {
				return nil, err
			}

			stop, err := bound(ref, ref.Stop)
			if err != nil {
				return nil, err
			}

			return Between{Start: start, Stop: stop}, nil
		case Within:
			start, err := bound(ref, ref.Start)
			if err != nil {
				return nil, err
			}

			end, err := bound(ref, ref.End)
			if err != nil {
				return nil, err
			}

			return Within{Start: start, End: end}, nil
		default:
			return nil, NewReferenceError(name, ref, fmt.Sprintf("unsupported reference type %T", ref))
		}
	})
}

func testPeriod(candidate any, ref Reference) bool {
	return TestWith(candidate, ref, func(candidate any, ref Reference) bool {
		c, ok := candidate.(period.Period)
		if !ok {
			return false
		}

		switch ref := ref.(type) {
		case Equal:
			return matchPeriodPoint(c, ref.Value)
		case OneOf:
			for _, value := range ref.Values {
				if matchPeriodPoint(c, value) {
					return true
				}
			}

			return false
		case Between:
			return c.Intersects(period.Period{
				Start:       timeOr(ref.Start, minTime),
				Stop:        timeOr(ref.Stop, maxTime),
				ExcludeStop: ref.Stop != nil,
			})
		case Within:
			return c.Intersects(period.New(timeOr(ref.Start, minTime), timeOr(ref.End, maxTime)))
		default:
			return false
		}
	})
}

func matchPeriodPoint(c period.Period, value any) bool {
	switch v := value.(type) {
	case time.Time:
		return c.Contains(v)
	case period.Period:
		return c.Intersects(v)
	default:
		return false
	}
}

func timeOr(value any, fallback time.Time) time.Time {
	if t, ok := value.(time.Time); ok {
		return t
	}

	return fallback
}
