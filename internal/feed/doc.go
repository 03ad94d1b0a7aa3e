// Package feed owns the notification collection shown by the bell widget
// and the full-list view.
//
// # State machine
//
// Per item: Delivered(unread) → Read via MarkRead, and Delivered → Removed
// via Remove. Read never transitions back; removal is permanent. Follower
// items carry an orthogonal follow-back toggle, independent of read state.
//
// # Invariants
//
//   - IDs are unique; redelivery of a known or removed ID is ignored.
//   - UnreadCount is derived from the collection on every call.
//   - Digest and All are views over the same collection, ordered newest
//     first with ties broken by ID.
//   - Operations on missing IDs are no-ops, so duplicate UI events (a
//     double-click, a repeated key) are harmless.
//
// The follow-back toggle is a two-phase optimistic mutation: applied
// locally, confirmed remotely, reverted on remote failure. A per-item
// operation counter keeps a stale failure from clobbering a newer toggle.
package feed
