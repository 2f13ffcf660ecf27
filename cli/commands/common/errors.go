package common

import "fmt"

// MissingFlagError is returned when neither a flag nor the selected database
// declaration sets a required value.
type MissingFlagError struct {
	Flag string
}

func (err MissingFlagError) Error() string {
	return fmt.Sprintf("the --%s flag is required when no --%s is selected", err.Flag, DatabaseFlagName)
}

// InvalidFilterError is returned for a --filter value that is not name=reference.
type InvalidFilterError struct {
	Arg string
}

func (err InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter %q, expected <field>=<reference>", err.Arg)
}

// InvalidFormatError is returned for an unsupported --format value.
type InvalidFormatError struct {
	Format    string
	Supported []string
}

func (err InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format %q, supported formats: %v", err.Format, err.Supported)
}
