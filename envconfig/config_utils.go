package envconfig

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Bool returns a getter for a boolean variable (default: false).
func Bool(k string) func() bool {
	return func() bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return false
	}
}

// String returns a getter for a string variable.
func String(s string) func() string {
	return func() string {
		return Var(s)
	}
}

// Uint returns a getter for an unsigned integer variable with a default.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

var (
	// Debug enables verbose request logging in the preview server.
	Debug = Bool("SIONNA_DEBUG")

	// Origins is the raw comma separated allowed-origin list.
	Origins = String("SIONNA_ORIGINS")

	// ThumbnailMax caps the requested thumbnail edge length in pixels.
	ThumbnailMax = Uint("SIONNA_THUMB_MAX", 4096)
)

// EnvVar describes one environment variable for usage documentation.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns all settings with their current values and descriptions.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"SIONNA_HOST":      {"SIONNA_HOST", Host(), "IP address for the preview server (default 127.0.0.1:8941)"},
		"SIONNA_ORIGINS":   {"SIONNA_ORIGINS", AllowedOrigins(), "A comma separated list of allowed origins"},
		"SIONNA_SCENES":    {"SIONNA_SCENES", Scenes(), "The path to the scene description directory"},
		"SIONNA_DEBUG":     {"SIONNA_DEBUG", LogLevel(), "Show additional debug information (e.g. SIONNA_DEBUG=1)"},
		"SIONNA_THUMB_MAX": {"SIONNA_THUMB_MAX", ThumbnailMax(), "Maximum thumbnail edge length in pixels (default 4096)"},
	}
}

// Values returns all settings as a string map.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
