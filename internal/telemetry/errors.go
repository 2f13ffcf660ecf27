package telemetry

import "fmt"

// ErrorMissingEnvVariable error for missing environment variable.
type ErrorMissingEnvVariable struct {
	Vars []string
}

func (e *ErrorMissingEnvVariable) Error() string {
	return fmt.Sprintf("missing environment variable: %v", e.Vars)
}

// UnknownExporterError is returned for an exporter name that is not supported.
type UnknownExporterError struct {
	Kind string
	Name string
}

func (e UnknownExporterError) Error() string {
	return fmt.Sprintf("unknown %s exporter %q", e.Kind, e.Name)
}
