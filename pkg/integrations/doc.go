// Package integrations provides HTTP clients for external services.
//
// Subpackages implement clients for specific APIs (GitHub, PyPI) on top of
// the shared [Client], which adds response caching, bounded retries with
// exponential backoff, and a standard request timeout.
//
// # Error Handling
//
// Clients return sentinel errors that callers can test with errors.Is:
//
//   - [ErrNotFound]: the resource does not exist upstream (404)
//   - [ErrNetwork]: transport failures, timeouts, or 5xx responses
//
// Transient failures (network errors, 5xx) are retried up to 3 times before
// being returned. Callers decide whether a failure degrades to "no data" or
// propagates; the clients themselves never swallow errors.
package integrations
