package field

import (
	"slices"
	"strings"
	"time"

	"github.com/fcollections/fcollections/internal/errors"
)

const (
	listSeparator  = ","
	rangeSeparator = ".."
	globChars      = "*?["
)

// referenceLayouts are the time layouts accepted in textual references on top of
// the layouts of the field itself.
var referenceLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
}

// parseReference builds a reference from its textual form:
//
//	a,b,c    OneOf
//	lo..hi   Between (half-open) or Within (closed) with optional bounds
//	Exp*     Pattern, when globs is set
//	value    Equal
func parseReference(name, text string, parse func(string) (any, error), closed, globs bool) (Reference, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewReferenceError(name, Equal{Value: text}, "empty reference")
	}

	if globs && strings.ContainsAny(text, globChars) {
		pattern, err := NewPattern(text)
		if err != nil {
			return nil, NewReferenceError(name, Pattern{Text: text}, "invalid pattern")
		}

		return pattern, nil
	}

	if lower, upper, ok := strings.Cut(text, rangeSeparator); ok {
		start, err := parseBound(lower, parse)
		if err != nil {
			return nil, err
		}

		stop, err := parseBound(upper, parse)
		if err != nil {
			return nil, err
		}

		if closed {
			return Within{Start: start, End: stop}, nil
		}

		return Between{Start: start, Stop: stop}, nil
	}

	if strings.Contains(text, listSeparator) {
		parts := strings.Split(text, listSeparator)
		values := make([]any, 0, len(parts))

		for _, part := range parts {
			value, err := parse(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}

			values = append(values, value)
		}

		return OneOf{Values: values}, nil
	}

	value, err := parse(text)
	if err != nil {
		return nil, err
	}

	return Equal{Value: value}, nil
}

func parseBound(text string, parse func(string) (any, error)) (any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	return parse(text)
}

// ParseTime parses text with the first matching layout, then with the generic
// ISO layouts. Times without a zone are UTC.
func ParseTime(text string, layouts ...string) (time.Time, error) {
	candidates := slices.Concat(layouts, referenceLayouts)

	for _, layout := range candidates {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Errorf("%q does not match any of the time layouts %v", text, candidates)
}
