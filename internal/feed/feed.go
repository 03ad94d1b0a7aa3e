package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dkorchagin/logbook/internal/api"
	"github.com/dkorchagin/logbook/internal/logging"
	"github.com/dkorchagin/logbook/internal/models"
)

// ErrNotFollower is returned when a follow-back is requested on a
// notification that does not carry a follower payload.
var ErrNotFollower = errors.New("not a follower notification")

type item struct {
	n models.Notification

	// followOp counts follow-back toggles on this item. A revert from a
	// failed remote call applies only if no newer toggle happened meanwhile.
	followOp uint64
}

// Feed owns the notification collection and its lifecycle:
// delivered → read → removed, plus the follow-back toggle on follower items.
//
// All accessors and mutations are in-memory and never block; the only
// suspension is the remote call behind ToggleFollowBack, which runs in the
// background with the toggle already applied optimistically.
type Feed struct {
	api     api.Client
	tokenFn func() string
	log     logging.Logger
	timeout time.Duration

	// OnFollowError, when set, is invoked after a failed follow-back call has
	// been reverted, so the UI can surface the failure. Set it at wiring
	// time, before the feed is used.
	OnFollowError func(actor string, err error)

	mu      sync.Mutex
	items   map[string]*item
	removed map[string]struct{}

	changed chan struct{}
}

// New wires a notification feed. tokenFn supplies the current bearer token
// for remote calls; timeout bounds each of them.
func New(apiClient api.Client, tokenFn func() string, log logging.Logger, timeout time.Duration) *Feed {
	return &Feed{
		api:     apiClient,
		tokenFn: tokenFn,
		log:     log,
		timeout: timeout,
		items:   make(map[string]*item),
		removed: make(map[string]struct{}),
		changed: make(chan struct{}, 1),
	}
}

// Changed returns a coalescing signal fired after any mutation.
func (f *Feed) Changed() <-chan struct{} {
	return f.changed
}

func (f *Feed) notify() {
	select {
	case f.changed <- struct{}{}:
	default:
	}
}

// Refresh fetches the delivery feed from the server and merges it in.
func (f *Feed) Refresh(ctx context.Context) error {
	items, err := f.api.Notifications(ctx, f.tokenFn())
	if err != nil {
		return fmt.Errorf("fetch notifications: %w", err)
	}
	f.Deliver(items...)
	return nil
}

// Deliver merges externally delivered notifications into the collection.
// An ID already present is left untouched, and an ID removed earlier in this
// session is not resurrected.
func (f *Feed) Deliver(notifications ...models.Notification) {
	f.mu.Lock()
	added := 0
	for _, n := range notifications {
		if n.ID == "" {
			continue
		}
		if _, ok := f.items[n.ID]; ok {
			continue
		}
		if _, ok := f.removed[n.ID]; ok {
			continue
		}
		f.items[n.ID] = &item{n: n.Clone()}
		added++
	}
	f.mu.Unlock()

	if added > 0 {
		f.notify()
	}
}

// MarkRead marks a notification read. Idempotent: already-read and unknown
// IDs are no-ops.
func (f *Feed) MarkRead(id string) {
	f.mu.Lock()
	it, ok := f.items[id]
	if !ok || it.n.Read {
		f.mu.Unlock()
		return
	}
	it.n.Read = true
	f.mu.Unlock()

	f.notify()
}

// Remove deletes a notification permanently. Unknown IDs are no-ops.
func (f *Feed) Remove(id string) {
	f.mu.Lock()
	if _, ok := f.items[id]; !ok {
		f.mu.Unlock()
		return
	}
	delete(f.items, id)
	f.removed[id] = struct{}{}
	f.mu.Unlock()

	f.notify()
}

// UnreadCount derives the number of unread notifications from the
// collection. It is recomputed on every call, never cached.
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, it := range f.items {
		if !it.n.Read {
			count++
		}
	}
	return count
}

// All returns every notification, newest first.
func (f *Feed) All() []models.Notification {
	return f.snapshot(0)
}

// Digest returns the newest limit notifications, for the compact bell view.
// A non-positive limit yields an empty digest.
func (f *Feed) Digest(limit int) []models.Notification {
	if limit <= 0 {
		return nil
	}
	return f.snapshot(limit)
}

func (f *Feed) snapshot(limit int) []models.Notification {
	f.mu.Lock()
	out := make([]models.Notification, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it.n.Clone())
	}
	f.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ToggleFollowBack flips the follow-back state of a follower notification.
// The flip is applied locally first; the remote call runs in the background,
// and on failure the flip is reverted (unless a newer toggle already
// superseded it) and OnFollowError fires. Unknown IDs are no-ops.
func (f *Feed) ToggleFollowBack(id string) error {
	f.mu.Lock()
	it, ok := f.items[id]
	if !ok {
		f.mu.Unlock()
		return nil
	}
	if it.n.Kind != models.KindFollower || it.n.Follower == nil {
		f.mu.Unlock()
		return ErrNotFollower
	}

	it.n.Follower.FollowingBack = !it.n.Follower.FollowingBack
	it.followOp++
	op := it.followOp
	target := it.n.Follower.FollowingBack
	actor := it.n.Follower.Actor.Username
	f.mu.Unlock()

	f.notify()
	go f.pushFollowState(id, actor, target, op)
	return nil
}

// pushFollowState confirms an optimistic toggle with the server and reverts
// it if the call fails and the toggle is still the latest one.
func (f *Feed) pushFollowState(id, actor string, follow bool, op uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	err := f.api.SetFollowBack(ctx, f.tokenFn(), actor, follow)
	if err == nil {
		return
	}

	f.log.Warn(ctx, "follow-back call failed, reverting", "actor", actor, "err", err)

	reverted := false
	f.mu.Lock()
	if it, ok := f.items[id]; ok && it.followOp == op && it.n.Follower != nil {
		it.n.Follower.FollowingBack = !follow
		reverted = true
	}
	f.mu.Unlock()

	if reverted {
		f.notify()
	}
	if f.OnFollowError != nil {
		f.OnFollowError(actor, err)
	}
}
