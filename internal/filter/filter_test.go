package filter_test

import (
	"testing"
	"time"

	"github.com/fcollections/fcollections/internal/field"
	"github.com/fcollections/fcollections/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schema() filter.Schema {
	return filter.Schema{
		field.NewInteger("cycle_number"),
		field.NewInteger("pass_number"),
		field.NewEnum("subset", []string{"Basic", "Expert", "Unsmoothed"}),
		field.NewDateTime("time", []string{"20060102T150405"}),
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expected filter.Expression
		name     string
		input    string
	}{
		{
			name:     "attribute",
			input:    "cycle_number=12",
			expected: &filter.AttributeExpression{Key: "cycle_number", Value: "12"},
		},
		{
			name:  "negation",
			input: "!subset=Basic",
			expected: &filter.PrefixExpression{
				Operator: "!",
				Right:    &filter.AttributeExpression{Key: "subset", Value: "Basic", Position: 1},
			},
		},
		{
			name:  "intersection",
			input: "cycle_number=1|!pass_number=2",
			expected: &filter.InfixExpression{
				Operator: "|",
				Left:     &filter.AttributeExpression{Key: "cycle_number", Value: "1"},
				Right: &filter.PrefixExpression{
					Operator: "!",
					Right:    &filter.AttributeExpression{Key: "pass_number", Value: "2", Position: 16},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := filter.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.Expression())
			assert.Equal(t, tt.input, f.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		code     filter.ErrorCode
		position int
	}{
		{name: "empty", input: "", code: filter.ErrorCodeEmptyExpression},
		{name: "missing value", input: "cycle_number=", code: filter.ErrorCodeMissingValue, position: 13},
		{name: "missing operand", input: "cycle_number=1 |", code: filter.ErrorCodeUnexpectedEOF, position: 16},
		{name: "leading pipe", input: "| cycle_number=1", code: filter.ErrorCodeUnexpectedToken},
		{name: "missing equal", input: "cycle_number", code: filter.ErrorCodeUnexpectedToken, position: 12},
		{name: "illegal", input: "#cycle=1", code: filter.ErrorCodeIllegalToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := filter.Parse(tt.input)
			require.Error(t, err)

			var parseErr filter.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.code, parseErr.ErrorCode)
			assert.Equal(t, tt.position, parseErr.Position)
			assert.Equal(t, tt.input, parseErr.Query)
		})
	}
}

func TestCompile(t *testing.T) {
	t.Parallel()

	f, err := filter.Parse("cycle_number=1..10 | subset=Expert,Unsmoothed | !pass_number=3 | cycle_number=2,4")
	require.NoError(t, err)

	filters, err := f.Compile(schema())
	require.NoError(t, err)

	assert.Equal(t, []string{"cycle_number", "pass_number", "subset"}, filters.Names())
	assert.Equal(t, field.AllOf{Refs: []field.Reference{
		field.Between{Start: 1, Stop: 10},
		field.OneOf{Values: []any{2, 4}},
	}}, filters["cycle_number"])
	assert.Equal(t, field.Not{Ref: field.Equal{Value: 3}}, filters["pass_number"])
	assert.Equal(t, field.OneOf{Values: []any{"Expert", "Unsmoothed"}}, filters["subset"])
}

func TestCompileTimeRangeIsClosed(t *testing.T) {
	t.Parallel()

	filters, err := filter.ParseFilters([]string{"time=2023-05-01..2023-05-02"}, schema())
	require.NoError(t, err)

	assert.Equal(t, field.Within{
		Start: time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, time.May, 2, 0, 0, 0, 0, time.UTC),
	}, filters["time"])
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	_, err := filter.ParseFilters([]string{"level=L2"}, schema())
	require.Error(t, err)

	var unknown field.UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "level", unknown.Name)
	assert.Contains(t, unknown.Known, "cycle_number")

	_, err = filter.ParseFilters([]string{"cycle_number=abc"}, schema())
	require.Error(t, err)

	var invalid filter.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "cycle_number=abc", invalid.Expression)
}

func TestParseFiltersIntersectsQueries(t *testing.T) {
	t.Parallel()

	filters, err := filter.ParseFilters([]string{"cycle_number=1", "pass_number=2"}, schema())
	require.NoError(t, err)

	assert.Equal(t, field.Filters{
		"cycle_number": field.Equal{Value: 1},
		"pass_number":  field.Equal{Value: 2},
	}, filters)
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	_, err := filter.Parse("cycle_number=")

	var parseErr filter.ParseError
	require.ErrorAs(t, err, &parseErr)

	diagnostic := filter.FormatDiagnostic(parseErr, 0, false)
	assert.Contains(t, diagnostic, "--filter 'cycle_number='")
	assert.Contains(t, diagnostic, "     cycle_number=\n")
	assert.Contains(t, diagnostic, "                  ^")
	assert.Contains(t, diagnostic, "hint: Give a value")
}
