// Package api contains the HTTP client for the logbook backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register/Login issue bearer tokens, CurrentUser resolves the identity
//     behind a token, Notifications fetches the delivery feed, and
//     SetFollowBack sets or clears a follow relationship.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that attaches
//     the bearer token, bounds every call with the configured timeout, rate
//     limits outbound requests, and maps transport failures to sentinel
//     errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable (network failure), ErrUnauthorized (invalid
// or expired token), ErrRejected (the server refused the request; the wrapped
// message is human-readable and safe to surface).
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package api
