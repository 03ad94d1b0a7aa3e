package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/dkorchagin/logbook/internal/confirm"
	"github.com/dkorchagin/logbook/internal/feed"
	"github.com/dkorchagin/logbook/internal/logging"
	"github.com/dkorchagin/logbook/internal/models"
	"github.com/dkorchagin/logbook/internal/session"
)

// ---- fakes ----

type fakeAPI struct {
	mu sync.Mutex

	LoginRet       string
	LoginErr       error
	CurrentUserRet *models.Identity
	CurrentUserErr error
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) Register(ctx context.Context, username, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LoginRet, f.LoginErr
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LoginRet, f.LoginErr
}

func (f *fakeAPI) CurrentUser(ctx context.Context, token string) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CurrentUserRet, f.CurrentUserErr
}

func (f *fakeAPI) Notifications(ctx context.Context, token string) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeAPI) SetFollowBack(ctx context.Context, token, username string, follow bool) error {
	return nil
}

type fakeCreds struct {
	mu    sync.Mutex
	token string
}

func (f *fakeCreds) Load(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeCreds) Save(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

func (f *fakeCreds) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	return nil
}

func newTestApp(t *testing.T, f *fakeAPI) App {
	t.Helper()
	sess := session.NewStore(f, &fakeCreds{}, logging.Nop(), time.Second)
	broker := confirm.NewBroker()
	fd := feed.New(f, sess.Token, logging.Nop(), time.Second)
	a := NewApp(sess, fd, broker, f, logging.Nop(), time.Second, 5)
	a.width, a.height = 80, 24
	return a
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func apply(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next, cmd
}

// ---- tests ----

func TestModal_OwnsKeyboardUntilDismissed(t *testing.T) {
	a := newTestApp(t, &fakeAPI{})
	a.view = viewFeed
	a.feed.Deliver(models.NewGeneric("n1", "hello", time.Now()))

	a.broker.Confirm("Error", "something happened")

	// A feed key while the modal is up must not reach the feed.
	a, _ = apply(t, a, keyRune('x'))
	require.Len(t, a.feed.All(), 1)
	require.NotNil(t, a.broker.Current())

	a, _ = apply(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, a.broker.Current())
}

func TestRemove_WaitsForAcknowledgement(t *testing.T) {
	a := newTestApp(t, &fakeAPI{})
	a.view = viewFeed
	a.feed.Deliver(models.NewGeneric("n1", "hello", time.Now()))

	a, cmd := apply(t, a, keyRune('x'))
	require.NotNil(t, cmd)
	require.NotNil(t, a.broker.Current(), "removal must ask first")
	require.Len(t, a.feed.All(), 1, "nothing is removed before acknowledgement")

	a.broker.Dismiss()
	msg := cmd() // completes now that the request is acknowledged
	require.IsType(t, removeConfirmedMsg{}, msg)

	a, _ = apply(t, a, msg)
	require.Empty(t, a.feed.All())
}

func TestLogin_EmptyFormIsRejectedLocally(t *testing.T) {
	a := newTestApp(t, &fakeAPI{})

	a, cmd := apply(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)

	req := a.broker.Current()
	require.NotNil(t, req)
	require.Equal(t, "Missing input", req.Title())
}

func TestLoginResult_FailureSurfacesModal(t *testing.T) {
	a := newTestApp(t, &fakeAPI{})

	a, _ = apply(t, a, loginResultMsg{err: context.DeadlineExceeded})

	req := a.broker.Current()
	require.NotNil(t, req)
	require.Equal(t, "Login failed", req.Title())
	require.False(t, a.login.submitting)
}

func TestSessionChange_SwitchesViews(t *testing.T) {
	f := &fakeAPI{CurrentUserRet: &models.Identity{Username: "alice"}}
	a := newTestApp(t, f)
	require.Equal(t, viewLogin, a.view)

	require.NoError(t, a.session.Login(context.Background(), "tok"))
	a, _ = apply(t, a, sessionChangedMsg{})
	require.Equal(t, viewFeed, a.view)

	a.session.Logout(context.Background())
	a, _ = apply(t, a, sessionChangedMsg{})
	require.Equal(t, viewLogin, a.view)
}

func TestFeedCursor_StaysInBounds(t *testing.T) {
	a := newTestApp(t, &fakeAPI{})
	a.view = viewFeed
	a.feed.Deliver(
		models.NewGeneric("n1", "a", time.Now()),
		models.NewGeneric("n2", "b", time.Now().Add(time.Minute)),
	)

	a, _ = apply(t, a, keyRune('k'))
	require.Zero(t, a.feedView.cursor, "cursor must not go above the first row")

	a, _ = apply(t, a, keyRune('j'))
	a, _ = apply(t, a, keyRune('j'))
	a, _ = apply(t, a, keyRune('j'))
	require.Equal(t, 1, a.feedView.cursor, "cursor must not pass the last row")
}

func TestFollowKey_IgnoredOnNonFollower(t *testing.T) {
	a := newTestApp(t, &fakeAPI{})
	a.view = viewFeed
	a.feed.Deliver(models.NewGeneric("n1", "a", time.Now()))

	a, _ = apply(t, a, keyRune('f'))
	require.Nil(t, a.broker.Current())
	require.Len(t, a.feed.All(), 1)
}
