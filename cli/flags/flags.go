// Package flags declares the naming rules of the command line flags.
package flags

// EnvVars returns the environment variables read by the flag called name,
// e.g. FCOLLECTIONS_LOG_LEVEL for log-level.
func EnvVars(name string) []string {
	return Prefix{EnvPrefix}.EnvVars(name)
}
