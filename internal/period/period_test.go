package period_test

import (
	"testing"
	"time"

	"github.com/fcollections/fcollections/internal/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2023, time.May, d, 0, 0, 0, 0, time.UTC)
}

func TestContains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		p        period.Period
		t        time.Time
		expected bool
	}{
		{name: "inside", p: period.New(day(1), day(3)), t: day(2), expected: true},
		{name: "closed start", p: period.New(day(1), day(3)), t: day(1), expected: true},
		{name: "closed stop", p: period.New(day(1), day(3)), t: day(3), expected: true},
		{name: "open stop", p: period.HalfOpen(day(1), day(3)), t: day(3), expected: false},
		{name: "open start", p: period.Period{Start: day(1), Stop: day(3), ExcludeStart: true}, t: day(1), expected: false},
		{name: "before", p: period.New(day(2), day(3)), t: day(1), expected: false},
		{name: "after", p: period.New(day(1), day(2)), t: day(3), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.p.Contains(tt.t))
		})
	}
}

func TestIntersects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     period.Period
		expected bool
	}{
		{name: "overlap", a: period.New(day(1), day(3)), b: period.New(day(2), day(4)), expected: true},
		{name: "contained", a: period.New(day(1), day(5)), b: period.New(day(2), day(3)), expected: true},
		{name: "touching closed", a: period.New(day(1), day(2)), b: period.New(day(2), day(3)), expected: true},
		{name: "touching half open", a: period.HalfOpen(day(1), day(2)), b: period.New(day(2), day(3)), expected: false},
		{name: "disjoint", a: period.New(day(1), day(2)), b: period.New(day(3), day(4)), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.expected, tt.b.Intersects(tt.a))
		})
	}
}

func TestIntersectionAndUnion(t *testing.T) {
	t.Parallel()

	a := period.HalfOpen(day(1), day(4))
	b := period.New(day(2), day(6))

	inter, ok := a.Intersection(b)
	require.True(t, ok)
	assert.True(t, inter.Equal(period.HalfOpen(day(2), day(4))), inter.String())

	union := a.Union(b)
	assert.True(t, union.Equal(period.New(day(1), day(6))), union.String())
}

func TestEnvelop(t *testing.T) {
	t.Parallel()

	_, ok := period.Envelop(nil)
	assert.False(t, ok)

	envelop, ok := period.Envelop([]period.Period{
		period.New(day(3), day(4)),
		period.New(day(1), day(2)),
		period.New(day(5), day(7)),
	})
	require.True(t, ok)
	assert.True(t, envelop.Equal(period.New(day(1), day(7))))
}

func TestFuseSuccessiveAndHoles(t *testing.T) {
	t.Parallel()

	periods := []period.Period{
		period.HalfOpen(day(3), day(4)),
		period.HalfOpen(day(1), day(2)),
		period.HalfOpen(day(2), day(3)),
		period.HalfOpen(day(6), day(7)),
		period.HalfOpen(day(9), day(10)),
	}

	period.Sort(periods)

	fused := period.FuseSuccessive(periods)
	require.Len(t, fused, 3)
	assert.True(t, fused[0].Equal(period.HalfOpen(day(1), day(4))), fused[0].String())
	assert.True(t, fused[1].Equal(period.HalfOpen(day(6), day(7))))

	holes := period.Holes(fused)
	require.Len(t, holes, 2)
	// The hole starts where the covered half-open interval stops.
	assert.True(t, holes[0].Equal(period.HalfOpen(day(4), day(6))), holes[0].String())
	assert.True(t, holes[1].Equal(period.HalfOpen(day(7), day(9))), holes[1].String())
}

func TestHolesOfClosedPeriods(t *testing.T) {
	t.Parallel()

	holes := period.Holes([]period.Period{
		period.New(day(1), day(2)),
		period.New(day(3), day(4)),
	})

	require.Len(t, holes, 1)
	assert.Equal(t, period.Period{Start: day(2), Stop: day(3), ExcludeStart: true, ExcludeStop: true}, holes[0])
}
