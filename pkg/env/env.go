// Package env reads raw process environment values for the handful of knobs
// that must resolve before the cart worker's envconfig layer is up, such as
// the log output format.
package env

import "os"

// Get returns the value of the given environment variable or a fallback.
// Empty values count as unset.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
