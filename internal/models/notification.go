package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind classifies a notification variant.
type Kind string

const (
	KindUpdate   Kind = "update"
	KindFollower Kind = "follower"
	KindGeneric  Kind = "generic"
)

// Actor identifies the user behind a follower notification.
type Actor struct {
	Username string `json:"username"`
	IconURL  string `json:"iconUrl"`
}

// UpdateDetails is the payload of an application-update notification.
type UpdateDetails struct {
	ChangelogRef string `json:"changelogReference"`
}

// FollowerDetails is the payload of a new-follower notification.
// FollowingBack is client-observable state: it flips optimistically when the
// user follows back and may be reverted if the remote call fails.
type FollowerDetails struct {
	FollowingBack bool  `json:"isFollowingBack"`
	Actor         Actor `json:"actor"`
}

// Notification is a single feed item. Exactly one of Update/Follower is
// non-nil, depending on Kind; generic notifications carry no payload.
//
// The wire format is an envelope with a "type" discriminator and a raw
// "details" object; UnmarshalJSON dispatches on the discriminator so each
// variant's fields stay statically typed.
type Notification struct {
	ID        string
	Kind      Kind
	Title     string
	Timestamp time.Time
	Read      bool

	Update   *UpdateDetails
	Follower *FollowerDetails
}

type envelope struct {
	ID        string          `json:"id"`
	Type      Kind            `json:"type"`
	Title     string          `json:"title"`
	Timestamp time.Time       `json:"timestamp"`
	Read      bool            `json:"read"`
	Details   json.RawMessage `json:"details"`
}

// NewUpdate builds an update notification.
func NewUpdate(id, title string, ts time.Time, changelogRef string) Notification {
	return Notification{
		ID:        id,
		Kind:      KindUpdate,
		Title:     title,
		Timestamp: ts,
		Update:    &UpdateDetails{ChangelogRef: changelogRef},
	}
}

// NewFollower builds a new-follower notification.
func NewFollower(id, title string, ts time.Time, actor Actor) Notification {
	return Notification{
		ID:        id,
		Kind:      KindFollower,
		Title:     title,
		Timestamp: ts,
		Follower:  &FollowerDetails{Actor: actor},
	}
}

// NewGeneric builds a payload-free notification.
func NewGeneric(id, title string, ts time.Time) Notification {
	return Notification{ID: id, Kind: KindGeneric, Title: title, Timestamp: ts}
}

// Clone returns a deep copy, so callers can hand out notifications without
// aliasing the feed's internal state.
func (n Notification) Clone() Notification {
	c := n
	if n.Update != nil {
		u := *n.Update
		c.Update = &u
	}
	if n.Follower != nil {
		f := *n.Follower
		c.Follower = &f
	}
	return c
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	*n = Notification{
		ID:        env.ID,
		Kind:      env.Type,
		Title:     env.Title,
		Timestamp: env.Timestamp,
		Read:      env.Read,
	}

	switch env.Type {
	case KindUpdate:
		n.Update = &UpdateDetails{}
		if len(env.Details) > 0 {
			if err := json.Unmarshal(env.Details, n.Update); err != nil {
				return fmt.Errorf("decode update details: %w", err)
			}
		}
	case KindFollower:
		n.Follower = &FollowerDetails{}
		if len(env.Details) > 0 {
			if err := json.Unmarshal(env.Details, n.Follower); err != nil {
				return fmt.Errorf("decode follower details: %w", err)
			}
		}
	default:
		// Unknown kinds degrade to generic so a newer server does not break
		// an older client.
		n.Kind = KindGeneric
	}
	return nil
}

func (n Notification) MarshalJSON() ([]byte, error) {
	env := envelope{
		ID:        n.ID,
		Type:      n.Kind,
		Title:     n.Title,
		Timestamp: n.Timestamp,
		Read:      n.Read,
	}

	var details any
	switch n.Kind {
	case KindUpdate:
		details = n.Update
	case KindFollower:
		details = n.Follower
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return nil, err
		}
		env.Details = raw
	}
	return json.Marshal(env)
}
