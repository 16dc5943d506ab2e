package env

import (
	"os"
	"strconv"
)

// Get reads an environment variable, falling back when it is unset or
// empty. Used for the few toggles that sit outside the envconfig
// struct, such as LOG_FORMAT.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

// GetBool parses a boolean toggle, treating unset, empty, and
// unparseable values as the fallback.
func GetBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
