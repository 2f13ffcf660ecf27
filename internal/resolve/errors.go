package resolve

import (
	"fmt"
	"strings"

	"github.com/fcollections/fcollections/internal/errors"
)

// DuplicateResolutionError reports records sharing a uniqueness key that the
// auto pick keys cannot rank. Adding a filter removes the ambiguity.
type DuplicateResolutionError struct {
	// Keys are the uniqueness key names and Values their values for the group.
	Keys   []string
	Values []any
	// AutoPickLast are the ranking key names and Tied the tuple shared by the
	// best ranked candidates.
	AutoPickLast []string
	Tied         []any
	// Candidates are the paths of the records that could not be ranked.
	Candidates []string
}

// NewDuplicateResolutionError returns a DuplicateResolutionError with a stack trace.
func NewDuplicateResolutionError(err DuplicateResolutionError) error {
	return errors.New(err)
}

func (err DuplicateResolutionError) Error() string {
	reason := "no auto pick key is configured"
	if len(err.AutoPickLast) > 0 {
		reason = fmt.Sprintf("they share %s", formatTuple(err.AutoPickLast, err.Tied))
	}

	return fmt.Sprintf("%d files share %s and cannot be ranked, %s: %s. Add a filter to select one of them",
		len(err.Candidates), formatTuple(err.Keys, err.Values), reason, strings.Join(err.Candidates, ", "))
}

// SubsetMismatchError reports records belonging to several incompatible subsets.
// Pinning one value of the listed keys with a filter removes the ambiguity.
type SubsetMismatchError struct {
	// Values holds the distinct values found for each ambiguous partition key.
	Values map[string][]any
	// Keys are the ambiguous partition keys.
	Keys []string
}

// NewSubsetMismatchError returns a SubsetMismatchError with a stack trace.
func NewSubsetMismatchError(keys []string, values map[string][]any) error {
	return errors.New(SubsetMismatchError{Keys: keys, Values: values})
}

func (err SubsetMismatchError) Error() string {
	parts := make([]string, 0, len(err.Keys))

	for _, key := range err.Keys {
		values := make([]string, 0, len(err.Values[key]))
		for _, value := range err.Values[key] {
			values = append(values, fmt.Sprintf("%v", value))
		}

		parts = append(parts, fmt.Sprintf("%s=[%s]", key, strings.Join(values, ", ")))
	}

	return fmt.Sprintf("subsets could not be unmixed, filter one value of: %s", strings.Join(parts, " "))
}

func formatTuple(keys []string, values []any) string {
	parts := make([]string, 0, len(keys))

	for i, key := range keys {
		var value any
		if i < len(values) {
			value = values[i]
		}

		parts = append(parts, fmt.Sprintf("%s=%v", key, value))
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
