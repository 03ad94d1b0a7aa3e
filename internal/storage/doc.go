// Package storage persists client-local state in a sqlite database.
//
// The only durable value is the session token: one scalar under a fixed key
// in the credentials table. TokenStore is the CredentialStore the session
// layer uses; SQLiteRepository is the underlying key/value access shared
// with the embedded goose migrations in migrations/.
//
// Ownership: the session store is the sole writer of the credential. Other
// components read session state through the session store, never from here.
package storage
