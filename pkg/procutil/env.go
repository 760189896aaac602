package procutil

import (
	"os"
	"strings"
)

// EnvVar names an environment variable read by the tools.
type EnvVar string

const (
	// BuiltinsEnv is the default declaration file of the built-in packages.
	BuiltinsEnv EnvVar = "INTEROP_BUILTINS"
	// LibrariesEnv is the default comma-separated list of library roots.
	LibrariesEnv EnvVar = "INTEROP_LIBS"
	// DebugEnv turns on debug logging when true.
	DebugEnv EnvVar = "INTEROP_DEBUG"
)

// LookupBoolEnv returns the value of a boolean variable, accepting
// true/false and 1/0 in any case.  Other values give defaultValue.
func LookupBoolEnv(name EnvVar, defaultValue bool) bool {
	if val, ok := os.LookupEnv(string(name)); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1":
			return true
		case "false", "0":
			return false
		}
	}
	return defaultValue
}

// LookupEnv returns the value of the variable and whether it is set.
func LookupEnv(name EnvVar) (string, bool) {
	return os.LookupEnv(string(name))
}

// GetEnv returns the value of the variable, or defaultValue when unset or
// empty.
func GetEnv(name EnvVar, defaultValue string) string {
	if val, ok := LookupEnv(name); ok && val != "" {
		return val
	}
	return defaultValue
}
