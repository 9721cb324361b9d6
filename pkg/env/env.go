// Package env provides small helpers for reading environment variables
// outside the envconfig-managed configuration, e.g. before config loads.
package env

import "os"

// Get reads key from the environment, returning fallback when the
// variable is unset or empty.
func Get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
