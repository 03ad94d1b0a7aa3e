package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkorchagin/logbook/internal/api"
	"github.com/dkorchagin/logbook/internal/confirm"
	"github.com/dkorchagin/logbook/internal/feed"
	"github.com/dkorchagin/logbook/internal/logging"
	"github.com/dkorchagin/logbook/internal/session"
)

type viewState int

const (
	viewLogin viewState = iota
	viewFeed
)

// Messages produced by background work and state-change listeners.
type (
	sessionChangedMsg struct{}
	feedChangedMsg    struct{}
	brokerChangedMsg  struct{}

	loginResultMsg struct {
		register bool
		err      error
	}
	refreshDoneMsg struct{ err error }

	removeConfirmedMsg struct{ id string }
	logoutConfirmedMsg struct{}
)

// App is the bubbletea root model. It owns no domain state: the session
// store, the feed, and the broker are the state owners, and the app renders
// their current snapshots, dispatching actions back into them.
type App struct {
	session *session.Store
	feed    *feed.Feed
	broker  *confirm.Broker
	api     api.Client
	log     logging.Logger

	timeout     time.Duration
	digestLimit int

	view      viewState
	width     int
	height    int
	login     loginModel
	feedView  feedViewModel
	spin      spinner.Model
	refreshed bool
}

// NewApp wires the root model. It also points the feed's follow-back failure
// hook at the broker, so reverts surface as acknowledgement modals.
func NewApp(sess *session.Store, fd *feed.Feed, br *confirm.Broker, apiClient api.Client, log logging.Logger, timeout time.Duration, digestLimit int) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	fd.OnFollowError = func(actor string, err error) {
		br.Confirm("Follow failed", "Could not follow "+actor+": "+humanMessage(err))
	}

	a := App{
		session:     sess,
		feed:        fd,
		broker:      br,
		api:         apiClient,
		log:         log,
		timeout:     timeout,
		digestLimit: digestLimit,
		login:       newLoginModel(),
		spin:        sp,
	}
	if sess.Authenticated() {
		a.view = viewFeed
	}
	return a
}

// waitFor turns a coalescing signal channel into a bubbletea message.
// The command is re-issued after every receipt to keep listening.
func waitFor(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return msg
	}
}

// awaitThen delivers msg once the acknowledgement completes. This is how
// destructive actions wait for the user before proceeding.
func awaitThen(req *confirm.Request, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		<-req.Done()
		return msg
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.spin.Tick,
		waitFor(a.session.Changed(), sessionChangedMsg{}),
		waitFor(a.feed.Changed(), feedChangedMsg{}),
		waitFor(a.broker.Changed(), brokerChangedMsg{}),
	}
	if a.view == viewFeed {
		cmds = append(cmds, a.refreshFeed())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case sessionChangedMsg:
		cmds := []tea.Cmd{waitFor(a.session.Changed(), sessionChangedMsg{})}
		if a.session.Authenticated() {
			a.view = viewFeed
			if !a.refreshed {
				a.refreshed = true
				cmds = append(cmds, a.refreshFeed())
			}
		} else {
			a.view = viewLogin
			a.refreshed = false
			a.feedView = feedViewModel{}
		}
		return a, tea.Batch(cmds...)

	case feedChangedMsg:
		a.feedView.clamp(len(a.visibleItems()))
		return a, waitFor(a.feed.Changed(), feedChangedMsg{})

	case brokerChangedMsg:
		return a, waitFor(a.broker.Changed(), brokerChangedMsg{})

	case loginResultMsg:
		a.login.submitting = false
		if msg.err != nil {
			title := "Login failed"
			if msg.register {
				title = "Registration failed"
			}
			a.broker.Confirm(title, humanMessage(msg.err))
			return a, nil
		}
		a.login = newLoginModel()
		return a, nil

	case refreshDoneMsg:
		if msg.err != nil {
			a.broker.Confirm("Notifications unavailable", humanMessage(msg.err))
		}
		return a, nil

	case removeConfirmedMsg:
		a.feed.Remove(msg.id)
		return a, nil

	case logoutConfirmedMsg:
		return a, a.doLogout()

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	if a.view == viewLogin {
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The modal owns the keyboard while visible.
	if a.broker.Current() != nil {
		if key.Matches(msg, keys.Dismiss) {
			a.broker.Dismiss()
		}
		return a, nil
	}

	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch a.view {
	case viewLogin:
		return a.updateLoginKeys(msg)
	case viewFeed:
		return a.updateFeedKeys(msg)
	}
	return a, nil
}

func (a App) doLogout() tea.Cmd {
	sess := a.session
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		sess.Logout(ctx)
		return nil
	}
}

func (a App) refreshFeed() tea.Cmd {
	fd := a.feed
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return refreshDoneMsg{err: fd.Refresh(ctx)}
	}
}

// submitAuth performs registration or login against the server and, on
// success, hands the issued token to the session store.
func (a App) submitAuth() tea.Cmd {
	var (
		username = a.login.username.Value()
		email    = a.login.email.Value()
		password = a.login.password.Value()
		register = a.login.register
		apiC     = a.api
		sess     = a.session
		timeout  = a.timeout
	)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var (
			token string
			err   error
		)
		if register {
			token, err = apiC.Register(ctx, username, email, password)
		} else {
			token, err = apiC.Login(ctx, username, password)
		}
		if err != nil {
			return loginResultMsg{register: register, err: err}
		}
		if err := sess.Login(ctx, token); err != nil {
			return loginResultMsg{register: register, err: err}
		}
		return loginResultMsg{register: register}
	}
}

func (a App) updateLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.NextField):
		var cmd tea.Cmd
		a.login, cmd = a.login.nextField()
		return a, cmd

	case key.Matches(msg, keys.ToggleRegister):
		var cmd tea.Cmd
		a.login, cmd = a.login.toggleRegister()
		return a, cmd

	case msg.Type == tea.KeyEnter:
		if a.login.submitting {
			return a, nil
		}
		if !a.login.filled() {
			a.broker.Confirm("Missing input", "Fill in every field before submitting.")
			return a, nil
		}
		a.login.submitting = true
		return a, a.submitAuth()
	}

	var cmd tea.Cmd
	a.login, cmd = a.login.Update(msg)
	return a, cmd
}

func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	var body string
	switch a.view {
	case viewLogin:
		body = a.login.view(a.spin.View())
	case viewFeed:
		body = a.feedBody()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		a.headerView(),
		body,
		helpStyle.Render(a.helpLine()),
	)

	if req := a.broker.Current(); req != nil {
		return a.modalView(req)
	}
	return content
}

func (a App) headerView() string {
	title := headerStyle.Render("logbook")

	status := "anonymous"
	switch {
	case a.session.Resolving():
		status = a.spin.View() + " signing in…"
	case a.session.CurrentIdentity() != nil:
		status = a.session.CurrentIdentity().Username
	case a.session.Authenticated():
		status = "signed in"
	}

	line := title + " " + statusStyle.Render(status)
	if unread := a.feed.UnreadCount(); unread > 0 {
		line += "  " + badgeStyle.Render(unreadBadge(unread))
	}
	return line
}

func (a App) helpLine() string {
	if a.view == viewLogin {
		return "tab next field • ctrl+r sign in/register • enter submit • ctrl+c quit"
	}
	return "j/k move • enter/r read • x remove • f follow back • a all/digest • R refresh • ctrl+l log out • q quit"
}

// humanMessage strips transport noise down to something a modal can show.
func humanMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return "The server is unreachable. Check your connection and try again."
	case errors.Is(err, api.ErrUnauthorized):
		return "Your credentials were not accepted."
	case err == nil:
		return ""
	}
	return err.Error()
}
