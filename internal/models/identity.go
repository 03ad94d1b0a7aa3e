// Package models defines the client-side data model: the resolved user
// identity and the notification variants shown in the feed.
package models

// Identity is the user profile resolved from the server for the current
// session. It is never persisted locally; it is re-resolved on every start.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IconURL  string `json:"iconUrl"`
}
