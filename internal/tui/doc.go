// Package tui is the terminal shell over the session store, the
// confirmation broker, and the notification feed.
//
// The bubbletea program is the single logical thread of the client: UI key
// events and completions of background work (identity resolution, feed
// refresh, follow-back calls) arrive as messages on one loop. The app model
// owns no domain state; it renders snapshots of the three state owners and
// dispatches actions back into them. Each owner exposes a coalescing change
// channel, which the app converts into messages via waitFor.
//
// Surfaces: a sign-in/registration form, the notification list (bell digest
// or full list), and the acknowledgement modal, which takes over the screen
// while a confirmation is pending.
package tui
