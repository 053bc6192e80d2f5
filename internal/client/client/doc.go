// Package client talks to the eLegacy vault REST API and bootstraps the
// client's local SQLite store.
//
// The Client interface is the API contract used by the services; HTTPClient
// implements it over net/http. Failures are reported as:
//
//   - ErrUnavailable when the server cannot be reached;
//   - *APIError for any non-2xx answer, carrying the server's message
//     verbatim. 401/403 also match ErrUnauthorized and 404 matches
//     ErrNotFound via errors.Is;
//   - ErrMalformedResponse when a 2xx body cannot be decoded.
//
// There are no retries. InitDatabase and RunMigrations open the local store
// and apply the embedded goose migrations.
package client
