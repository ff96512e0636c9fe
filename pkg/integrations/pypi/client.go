package pypi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pipwise/pipwise/pkg/cache"
	"github.com/pipwise/pipwise/pkg/integrations"
)

// PackageInfo holds metadata for a Python package from PyPI.
//
// Package names are normalized following PEP 503 (lowercase, underscores→hyphens).
//
// Zero values: all string fields are empty. This struct is safe for
// concurrent reads after construction.
type PackageInfo struct {
	Name        string // Normalized package name (never empty in valid info)
	Version     string // Version string (e.g., "2.31.0")
	Summary     string // Short one-line package description (may be empty)
	Description string // Longer description, truncated to 500 chars (may be empty)
	Author      string // Author name (may be empty)
	HomePage    string // Homepage URL (may be empty)
	License     string // License name or expression (may be empty)
}

// Client provides access to the PyPI package registry API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PyPI client with the given cache backend.
// Responses are cached for cacheTTL; pass cache.NewNullCache() to disable.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "pypi:", cacheTTL, nil),
		baseURL: "https://pypi.org/pypi",
	}
}

// FetchPackage retrieves metadata for a Python package from PyPI.
//
// The pkg parameter is normalized automatically. If refresh is true, the
// cache is bypassed and a fresh API call is made.
//
// Returns:
//   - PackageInfo populated with metadata on success
//   - [integrations.ErrNotFound] if the package doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = integrations.NormalizePkgName(pkg)

	var info PackageInfo
	err := c.Cached(ctx, pkg, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Describe returns a short human-readable description for a package.
// It prefers the summary field and falls back to a truncated long
// description. Returns [integrations.ErrNotFound] if the package does
// not exist; an existing package with no description yields "".
func (c *Client) Describe(ctx context.Context, pkg string) (string, error) {
	info, err := c.FetchPackage(ctx, pkg, false)
	if err != nil {
		return "", err
	}
	if info.Summary != "" {
		return info.Summary, nil
	}
	desc := strings.TrimSpace(strings.ReplaceAll(info.Description, "\n", " "))
	if len(desc) > 200 {
		desc = desc[:200] + "..."
	}
	return desc, nil
}

// Exists reports whether a package is published on PyPI.
// Lookup failures other than 404 are reported as errors so callers can
// distinguish "absent" from "unknown".
func (c *Client) Exists(ctx context.Context, pkg string) (bool, error) {
	_, err := c.FetchPackage(ctx, pkg, false)
	if errors.Is(err, integrations.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: pypi package %s", err, pkg)
		}
		return err
	}

	desc := data.Info.Description
	if len(desc) > 500 {
		desc = desc[:500]
	}

	*info = PackageInfo{
		Name:        integrations.NormalizePkgName(data.Info.Name),
		Version:     data.Info.Version,
		Summary:     data.Info.Summary,
		Description: desc,
		Author:      data.Info.Author,
		HomePage:    data.Info.HomePage,
		License:     data.Info.License,
	}
	return nil
}

type apiResponse struct {
	Info apiInfo `json:"info"`
}

type apiInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Author      string `json:"author"`
	HomePage    string `json:"home_page"`
	License     string `json:"license"`
}
