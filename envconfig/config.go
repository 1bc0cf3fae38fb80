// Package envconfig reads sionna-utils configuration from the environment.
//
// Settings:
//   - SIONNA_HOST: address the preview server binds to
//   - SIONNA_ORIGINS: allowed origins for the preview server
//   - SIONNA_SCENES: directory searched for scene description files
//   - SIONNA_DEBUG: log level (0/false = INFO, 1/true = DEBUG)
//   - SIONNA_THUMB_MAX: maximum thumbnail edge length in pixels
package envconfig

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Host returns the scheme and host the preview server binds to.
// Configurable via SIONNA_HOST. Default: http://127.0.0.1:8941
func Host() *url.URL {
	defaultPort := "8941"

	s := strings.TrimSpace(Var("SIONNA_HOST"))
	scheme, hostport, ok := strings.Cut(s, "://")
	switch {
	case !ok:
		scheme, hostport = "http", s
	case scheme == "http":
		defaultPort = "80"
	case scheme == "https":
		defaultPort = "443"
	}

	hostport, path, _ := strings.Cut(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = "127.0.0.1", defaultPort
		if ip := net.ParseIP(strings.Trim(hostport, "[]")); ip != nil {
			host = ip.String()
		} else if hostport != "" {
			host = hostport
		}
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, port),
		Path:   path,
	}
}

// AllowedOrigins returns the origins the preview server accepts.
// Configurable via SIONNA_ORIGINS (comma separated). Localhost origins
// are always included.
func AllowedOrigins() (origins []string) {
	if s := Origins(); s != "" {
		origins = strings.Split(s, ",")
	}

	for _, origin := range []string{"localhost", "127.0.0.1", "0.0.0.0"} {
		origins = append(origins,
			fmt.Sprintf("http://%s", origin),
			fmt.Sprintf("https://%s", origin),
			fmt.Sprintf("http://%s", net.JoinHostPort(origin, "*")),
			fmt.Sprintf("https://%s", net.JoinHostPort(origin, "*")),
		)
	}

	origins = append(origins,
		"app://*",
		"file://*",
		"vscode-webview://*",
		"vscode-file://*",
	)

	return origins
}

// Scenes returns the directory searched for scene description files.
// Configurable via SIONNA_SCENES. Default: $HOME/.sionna-utils/scenes
func Scenes() string {
	if s := Var("SIONNA_SCENES"); s != "" {
		return s
	}

	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	return filepath.Join(home, ".sionna-utils", "scenes")
}

// LogLevel returns the log level. Configurable via SIONNA_DEBUG:
// 0/false = INFO (default), 1/true = DEBUG, higher values map to
// correspondingly lower slog levels.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("SIONNA_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Var reads an environment variable, trimming whitespace and quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
