package hostrouter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/aria/pkg/hostrouter"
)

func namedHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(name))
	})
}

func serve(t *testing.T, router *hostrouter.Router, host string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = host
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestRouterServeHTTP(t *testing.T) {
	router := hostrouter.New(hostrouter.Routes{
		"api.example.com": namedHandler("api"),
		"*.example.com":   namedHandler("tenant"),
	}, namedHandler("fallback"))

	tests := []struct {
		host string
		want string
	}{
		{"api.example.com", "api"},
		{"API.Example.COM:8080", "api"},
		{"foo.example.com", "tenant"},
		{"bar.example.com:443", "tenant"},
		{"example.com", "fallback"},
		{"other.com", "fallback"},
		{"a.b.example.com", "fallback"}, // wildcard is single-level
	}
	for _, tt := range tests {
		if got := serve(t, router, tt.host); got != tt.want {
			t.Errorf("host %q routed to %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "example.com"},
		{"example.com:8080", "example.com"},
		{"Example.COM", "example.com"},
		{"[::1]:8080", "[::1]"},
		{"[::1]", "[::1]"},
	}
	for _, tt := range tests {
		if got := hostrouter.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		host    string
		want    bool
	}{
		{"api.example.com", "api.example.com", true},
		{"api.example.com", "api.example.com:8080", true},
		{"api.example.com", "www.example.com", false},
		{"*.example.com", "foo.example.com", true},
		{"*.example.com", "FOO.example.com:443", true},
		{"*.example.com", "example.com", false},
		{"*.example.com", "a.b.example.com", false},
		{"", "example.com", false},
		{"example.com", "", false},
	}
	for _, tt := range tests {
		if got := hostrouter.Match(tt.pattern, tt.host); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.host, got, tt.want)
		}
	}
}

func TestGetSubdomain(t *testing.T) {
	tests := []struct {
		host string
		base string
		want string
	}{
		{"foo.example.com", "example.com", "foo"},
		{"bar.foo.example.com", "example.com", "bar.foo"},
		{"example.com", "example.com", ""},
		{"other.com", "example.com", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = tt.host
		if got := hostrouter.GetSubdomain(req, tt.base); got != tt.want {
			t.Errorf("GetSubdomain(%q, %q) = %q, want %q", tt.host, tt.base, got, tt.want)
		}
	}
}
