package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNotificationUnmarshal_Follower(t *testing.T) {
	raw := `{
		"id": "n1",
		"type": "follower",
		"title": "alice started following you",
		"timestamp": "2025-06-01T10:00:00Z",
		"read": false,
		"details": {"isFollowingBack": false, "actor": {"username": "alice", "iconUrl": "https://cdn.example/a.png"}}
	}`

	var n Notification
	require.NoError(t, json.Unmarshal([]byte(raw), &n))

	require.Equal(t, "n1", n.ID)
	require.Equal(t, KindFollower, n.Kind)
	require.NotNil(t, n.Follower)
	require.Nil(t, n.Update)
	require.Equal(t, "alice", n.Follower.Actor.Username)
	require.False(t, n.Follower.FollowingBack)
	require.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), n.Timestamp)
}

func TestNotificationUnmarshal_Update(t *testing.T) {
	raw := `{
		"id": "n2",
		"type": "update",
		"title": "v2.3 released",
		"timestamp": "2025-06-02T09:30:00Z",
		"read": true,
		"details": {"changelogReference": "v2.3.0"}
	}`

	var n Notification
	require.NoError(t, json.Unmarshal([]byte(raw), &n))

	require.Equal(t, KindUpdate, n.Kind)
	require.NotNil(t, n.Update)
	require.Equal(t, "v2.3.0", n.Update.ChangelogRef)
	require.True(t, n.Read)
}

func TestNotificationUnmarshal_UnknownKindDegradesToGeneric(t *testing.T) {
	raw := `{"id": "n3", "type": "billing", "title": "invoice ready", "timestamp": "2025-06-03T08:00:00Z"}`

	var n Notification
	require.NoError(t, json.Unmarshal([]byte(raw), &n))

	require.Equal(t, KindGeneric, n.Kind)
	require.Nil(t, n.Update)
	require.Nil(t, n.Follower)
}

func TestNotificationClone_DoesNotAliasDetails(t *testing.T) {
	orig := NewFollower("n4", "bob started following you", time.Now(), Actor{Username: "bob"})

	c := orig.Clone()
	c.Follower.FollowingBack = true

	require.False(t, orig.Follower.FollowingBack)
	require.True(t, c.Follower.FollowingBack)
}

func TestNotificationMarshal_RoundTripsFollower(t *testing.T) {
	orig := NewFollower("n5", "carol started following you", time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC), Actor{Username: "carol", IconURL: "https://cdn.example/c.png"})

	raw, err := json.Marshal(orig)
	require.NoError(t, err)

	var got Notification
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, orig, got)
}
