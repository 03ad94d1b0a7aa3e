package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkorchagin/logbook/internal/models"
)

// feedViewModel is the cursor state of the notification list. The items
// themselves live in the feed; the view re-reads them on every render.
type feedViewModel struct {
	cursor  int
	showAll bool
}

func (v *feedViewModel) clamp(n int) {
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (a App) visibleItems() []models.Notification {
	if a.feedView.showAll {
		return a.feed.All()
	}
	return a.feed.Digest(a.digestLimit)
}

func (a App) selectedItem() (models.Notification, bool) {
	items := a.visibleItems()
	if len(items) == 0 || a.feedView.cursor >= len(items) {
		return models.Notification{}, false
	}
	return items[a.feedView.cursor], true
}

func (a App) updateFeedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Up):
		a.feedView.cursor--
		a.feedView.clamp(len(a.visibleItems()))
		return a, nil

	case key.Matches(msg, keys.Down):
		a.feedView.cursor++
		a.feedView.clamp(len(a.visibleItems()))
		return a, nil

	case key.Matches(msg, keys.ShowAll):
		a.feedView.showAll = !a.feedView.showAll
		a.feedView.cursor = 0
		return a, nil

	case key.Matches(msg, keys.MarkRead):
		if it, ok := a.selectedItem(); ok {
			a.feed.MarkRead(it.ID)
		}
		return a, nil

	case key.Matches(msg, keys.Remove):
		it, ok := a.selectedItem()
		if !ok {
			return a, nil
		}
		req := a.broker.Confirm("Remove notification",
			fmt.Sprintf("%q will be removed permanently.", it.Title))
		return a, awaitThen(req, removeConfirmedMsg{id: it.ID})

	case key.Matches(msg, keys.Follow):
		if it, ok := a.selectedItem(); ok && it.Kind == models.KindFollower {
			_ = a.feed.ToggleFollowBack(it.ID)
		}
		return a, nil

	case key.Matches(msg, keys.Refresh):
		return a, a.refreshFeed()

	case key.Matches(msg, keys.Logout):
		req := a.broker.Confirm("Log out", "You will need to sign in again.")
		return a, awaitThen(req, logoutConfirmedMsg{})
	}
	return a, nil
}

func (a App) feedBody() string {
	items := a.visibleItems()
	if len(items) == 0 {
		return statusStyle.Render("No notifications.")
	}

	var b strings.Builder
	if a.feedView.showAll {
		b.WriteString(titleStyle.Render("All notifications"))
	} else {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Latest %d", len(items))))
	}
	b.WriteString("\n\n")

	for i, it := range items {
		b.WriteString(a.renderItem(it, i == a.feedView.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderItem(n models.Notification, selected bool) string {
	marker := "  "
	if selected {
		marker = selectedStyle.Render("> ")
	}

	dot := " "
	if !n.Read {
		dot = badgeStyle.Render("●")
	}

	// Timestamp formatting is presentation only; the feed itself never
	// formats time.
	line := fmt.Sprintf("%s %s  %s", dot, n.Timestamp.Format("Jan 02 15:04"), n.Title)
	if n.Kind == models.KindFollower && n.Follower != nil && n.Follower.FollowingBack {
		line += " " + followTagStyle.Render("[following]")
	}
	if n.Kind == models.KindUpdate && n.Update != nil && n.Update.ChangelogRef != "" {
		line += " " + statusStyle.Render("("+n.Update.ChangelogRef+")")
	}

	if n.Read {
		line = readStyle.Render(line)
	} else {
		line = unreadStyle.Render(line)
	}
	return marker + line
}

func unreadBadge(n int) string {
	return fmt.Sprintf("● %d unread", n)
}
