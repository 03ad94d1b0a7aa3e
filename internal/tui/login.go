package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginModel is the sign-in / registration form. Whether it registers or
// signs in is a toggle; registration adds the email field.
type loginModel struct {
	username textinput.Model
	email    textinput.Model
	password textinput.Model

	register   bool
	focus      int
	submitting bool
}

func newLoginModel() loginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	m := loginModel{username: username, email: email, password: password}
	m.username.Focus()
	return m
}

func (m loginModel) fieldCount() int {
	if m.register {
		return 3
	}
	return 2
}

// applyFocus focuses the input selected by m.focus and blurs the rest.
func (m loginModel) applyFocus() (loginModel, tea.Cmd) {
	m.username.Blur()
	m.email.Blur()
	m.password.Blur()

	var cmd tea.Cmd
	switch m.focus {
	case 0:
		cmd = m.username.Focus()
	case 1:
		if m.register {
			cmd = m.email.Focus()
		} else {
			cmd = m.password.Focus()
		}
	default:
		cmd = m.password.Focus()
	}
	return m, cmd
}

func (m loginModel) nextField() (loginModel, tea.Cmd) {
	m.focus = (m.focus + 1) % m.fieldCount()
	return m.applyFocus()
}

func (m loginModel) toggleRegister() (loginModel, tea.Cmd) {
	m.register = !m.register
	m.focus = 0
	return m.applyFocus()
}

// Update forwards messages to the focused input.
func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.username.Focused():
		m.username, cmd = m.username.Update(msg)
	case m.email.Focused():
		m.email, cmd = m.email.Update(msg)
	case m.password.Focused():
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) filled() bool {
	if strings.TrimSpace(m.username.Value()) == "" || m.password.Value() == "" {
		return false
	}
	if m.register && strings.TrimSpace(m.email.Value()) == "" {
		return false
	}
	return true
}

func (m loginModel) view(spin string) string {
	var b strings.Builder

	if m.register {
		b.WriteString(titleStyle.Render("Create account"))
	} else {
		b.WriteString(titleStyle.Render("Sign in"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.username.View())
	b.WriteString("\n")
	if m.register {
		b.WriteString(m.email.View())
		b.WriteString("\n")
	}
	b.WriteString(m.password.View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n" + spin + " authenticating…")
	}
	return b.String()
}
