package filter

import (
	"fmt"
	"strings"

	"github.com/mgutz/ansi"
)

// FormatDiagnostic renders a ParseError with the query and a caret under the
// faulty token.
func FormatDiagnostic(err ParseError, filterIndex int, useColor bool) string {
	var sb strings.Builder

	bold, red, blue, cyan, reset := "", "", "", "", ""
	if useColor {
		bold, red, blue, cyan, reset = ansi.ColorCode("default+b"), ansi.ColorCode("red+b"),
			ansi.ColorCode("blue+b"), ansi.ColorCode("cyan+b"), ansi.Reset
	}

	fmt.Fprintf(&sb, "%sFilter parsing error:%s %s\n", bold, reset, err.Message)

	if filterIndex > 0 {
		fmt.Fprintf(&sb, "%s --> %s--filter[%d] '%s'\n", blue, reset, filterIndex, err.Query)
	} else {
		fmt.Fprintf(&sb, "%s --> %s--filter '%s'\n", blue, reset, err.Query)
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "     %s\n", err.Query)

	position := min(max(err.Position, 0), len(err.Query))
	fmt.Fprintf(&sb, "     %s%s^%s\n", strings.Repeat(" ", position), red, reset)

	if hint := GetHint(err.ErrorCode, err.TokenLiteral); hint != "" {
		fmt.Fprintf(&sb, "\n  %shint:%s %s\n", cyan, reset, hint)
	}

	return sb.String()
}

// GetHint returns a hint for a parse error, or an empty string.
func GetHint(code ErrorCode, token string) string {
	switch code {
	case ErrorCodeUnexpectedToken:
		switch token {
		case "=":
			return "A filter names a field before the equals sign. e.g. 'cycle_number=12'"
		case "|":
			return "The '|' operator needs a filter on each side. e.g. 'cycle_number=12 | subset=Expert'"
		}

		return "Filters have the form 'name=value', joined with '|'."
	case ErrorCodeMissingValue:
		return "Give a value, a list (1,2), a range (1..4) or a glob pattern (Ex*)."
	case ErrorCodeUnexpectedEOF, ErrorCodeMissingOperand:
		return "The expression is incomplete. Make sure every operator has an operand."
	case ErrorCodeIllegalToken:
		return "This character is not recognized. Valid operators: | (intersection), ! (negation), = (attribute)"
	case ErrorCodeEmptyExpression, ErrorCodeUnknown:
		return ""
	}

	return ""
}
