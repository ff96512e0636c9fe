// Package pypi provides an HTTP client for the Python Package Index API.
//
// # Overview
//
// This package fetches package metadata from PyPI (https://pypi.org), the
// official repository for Python packages. It backs the description
// decoration of suggested packages: [Client.Describe] returns the summary
// line shown next to each suggestion, and [Client.Exists] checks whether a
// suggested name resolves at all.
//
// # Usage
//
//	client := pypi.NewClient(backend, 24*time.Hour)
//
//	desc, err := client.Describe(ctx, "fastapi")
//	if err != nil {
//	    // errors.Is(err, integrations.ErrNotFound) for unknown packages
//	}
//
// # Caching
//
// Responses are cached to reduce load on PyPI and speed up repeated
// lookups. Pass refresh=true to [Client.FetchPackage] to bypass the cache.
package pypi
