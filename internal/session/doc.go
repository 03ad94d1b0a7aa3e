// Package session owns the authentication state of the client.
//
// # Overview
//
// Store holds the bearer token and the identity resolved for it. The token
// persists across restarts through storage.CredentialStore; the identity is
// never persisted and is re-resolved on every start.
//
// # Races guarded
//
// Identity resolution is asynchronous, so Login/Logout can overtake an
// in-flight fetch. The store guards this with an epoch counter: mutations
// bump it, resolutions carry the epoch they started under, and results from
// an old epoch are dropped. Recency of initiation wins, not completion order.
//
// # Failure semantics
//
// A failed resolution (network or authorization) degrades the session to
// anonymous, clears the persisted credential, and is logged rather than
// surfaced as a blocking error. It is never retried automatically.
package session
