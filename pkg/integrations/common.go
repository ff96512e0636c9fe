package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist upstream.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizePkgName converts a package name to its canonical form.
// Applies lowercase and replaces underscores with hyphens, following PEP 503
// normalization rules used by PyPI and other registries.
func NormalizePkgName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
