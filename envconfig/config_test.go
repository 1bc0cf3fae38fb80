package envconfig

import (
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHost(t *testing.T) {
	cases := map[string]struct {
		value  string
		scheme string
		host   string
	}{
		"empty":               {"", "http", "127.0.0.1:8941"},
		"only address":        {"1.2.3.4", "http", "1.2.3.4:8941"},
		"only port":           {":1234", "http", ":1234"},
		"address and port":    {"1.2.3.4:1234", "http", "1.2.3.4:1234"},
		"hostname":            {"example.com", "http", "example.com:8941"},
		"hostname and port":   {"example.com:1234", "http", "example.com:1234"},
		"zero port":           {":0", "http", ":0"},
		"too large port":      {":66000", "http", ":8941"},
		"ipv6 localhost":      {"[::1]", "http", "[::1]:8941"},
		"ipv6 world open":     {"[::]", "http", "[::]:8941"},
		"ipv6 no brackets":    {"::1", "http", "[::1]:8941"},
		"http":                {"http://1.2.3.4", "http", "1.2.3.4:80"},
		"http port":           {"http://1.2.3.4:4321", "http", "1.2.3.4:4321"},
		"https":               {"https://1.2.3.4", "https", "1.2.3.4:443"},
		"https port":          {"https://1.2.3.4:4321", "https", "1.2.3.4:4321"},
		"proxy path":          {"https://example.com/sionna", "https", "example.com:443"},
		"extra space":         {" 1.2.3.4 ", "http", "1.2.3.4:8941"},
		"extra quotes":        {"\"1.2.3.4\"", "http", "1.2.3.4:8941"},
		"extra space+quotes":  {" \" 1.2.3.4 \" ", "http", "1.2.3.4:8941"},
		"extra single quotes": {"'1.2.3.4'", "http", "1.2.3.4:8941"},
	}

	for name, tt := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("SIONNA_HOST", tt.value)
			u := Host()
			if u.Scheme != tt.scheme {
				t.Errorf("scheme = %q, want %q", u.Scheme, tt.scheme)
			}
			if u.Host != tt.host {
				t.Errorf("host = %q, want %q", u.Host, tt.host)
			}
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	cases := []struct {
		value  string
		expect []string
	}{
		{"", []string{
			"http://localhost", "https://localhost",
			"http://localhost:*", "https://localhost:*",
			"http://127.0.0.1", "https://127.0.0.1",
			"http://127.0.0.1:*", "https://127.0.0.1:*",
			"http://0.0.0.0", "https://0.0.0.0",
			"http://0.0.0.0:*", "https://0.0.0.0:*",
			"app://*", "file://*", "vscode-webview://*", "vscode-file://*",
		}},
		{"http://10.0.0.1", []string{
			"http://10.0.0.1",
			"http://localhost", "https://localhost",
			"http://localhost:*", "https://localhost:*",
			"http://127.0.0.1", "https://127.0.0.1",
			"http://127.0.0.1:*", "https://127.0.0.1:*",
			"http://0.0.0.0", "https://0.0.0.0",
			"http://0.0.0.0:*", "https://0.0.0.0:*",
			"app://*", "file://*", "vscode-webview://*", "vscode-file://*",
		}},
	}

	for _, tt := range cases {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SIONNA_ORIGINS", tt.value)
			if diff := cmp.Diff(tt.expect, AllowedOrigins()); diff != "" {
				t.Errorf("origins mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScenes(t *testing.T) {
	t.Setenv("SIONNA_SCENES", "/srv/scenes")
	if got := Scenes(); got != "/srv/scenes" {
		t.Errorf("Scenes() = %q, want /srv/scenes", got)
	}
}

func TestDebug(t *testing.T) {
	cases := map[string]bool{
		"":        false,
		"0":       false,
		"false":   false,
		"1":       true,
		"true":    true,
		"garbage": true, // any set but unparsable value counts as enabled
	}

	for value, want := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("SIONNA_DEBUG", value)
			if got := Debug(); got != want {
				t.Errorf("Debug() = %v, want %v", got, want)
			}
		})
	}
}

func TestThumbnailMax(t *testing.T) {
	cases := map[string]uint{
		"":      4096,
		"1024":  1024,
		"bogus": 4096,
		"-1":    4096,
	}

	for value, want := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("SIONNA_THUMB_MAX", value)
			if got := ThumbnailMax(); got != want {
				t.Errorf("ThumbnailMax() = %v, want %v", got, want)
			}
		})
	}
}

func TestValues(t *testing.T) {
	t.Setenv("SIONNA_SCENES", "/srv/scenes")
	vals := Values()
	if vals["SIONNA_SCENES"] != "/srv/scenes" {
		t.Errorf("Values()[SIONNA_SCENES] = %q, want /srv/scenes", vals["SIONNA_SCENES"])
	}
	if _, ok := vals["SIONNA_HOST"]; !ok {
		t.Error("Values() lacks SIONNA_HOST")
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"f":     slog.LevelInfo,
		"true":  slog.LevelDebug,
		"1":     slog.LevelDebug,
		"2":     slog.Level(-8),
		"-1":    slog.Level(4),
	}

	for value, want := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("SIONNA_DEBUG", value)
			if got := LogLevel(); got != want {
				t.Errorf("LogLevel() = %v, want %v", got, want)
			}
		})
	}
}
