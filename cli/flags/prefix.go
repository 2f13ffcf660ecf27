package flags

import (
	"strings"
)

// EnvPrefix prefixes the environment variables of every flag.
const EnvPrefix = "FCOLLECTIONS"

type Prefix []string

func (prefix Prefix) Prepend(val string) Prefix {
	return append([]string{val}, prefix...)
}

func (prefix Prefix) EnvVar(name string) string {
	name = strings.Join(append(prefix, name), "_")

	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func (prefix Prefix) EnvVars(names ...string) []string {
	var envVars = make([]string, len(names))

	for i := range names {
		envVars[i] = prefix.EnvVar(names[i])
	}

	return envVars
}
