package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sachen-pather/voltboard/pkg/client"
)

type loginField int

const (
	loginEmail loginField = iota
	loginPassword
	numLoginFields
)

// loginResultMsg carries the outcome of a login round-trip. The root App
// handles it first (it owns session state), then hands it back here for the
// inline message.
type loginResultMsg struct {
	email string
	err   error
}

type loginModel struct {
	client  *client.Client
	fields  [numLoginFields]string
	focus   loginField
	errMsg  string
	loading bool
}

func newLoginModel(c *client.Client, prefillEmail string) loginModel {
	m := loginModel{client: c}
	m.fields[loginEmail] = prefillEmail
	return m
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.loading = false
		if msg.err != nil {
			if client.IsHTTP(msg.err) {
				m.errMsg = client.Message(msg.err, "Invalid login attempt")
			} else {
				m.errMsg = "An error occurred while trying to login. Please check your connection."
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	m.errMsg = ""

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numLoginFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numLoginFields) % numLoginFields
	case "enter":
		if m.focus == loginPassword {
			return m.submit()
		}
		m.focus = loginPassword
	case "ctrl+s":
		return m.submit()
	case "backspace":
		m.fields[m.focus] = editRune(m.fields[m.focus], "backspace")
	default:
		m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[loginEmail])
	password := m.fields[loginPassword]

	// Local validation failure: no network call.
	if email == "" || password == "" {
		m.errMsg = "email and password are required"
		return m, nil
	}

	m.loading = true
	c := m.client
	return m, func() tea.Msg {
		err := c.Login(context.Background(), email, password)
		return loginResultMsg{email: email, err: err}
	}
}

func (m loginModel) View() string {
	var sb strings.Builder
	sb.WriteString(" " + headerStyle.Render("Welcome back") + "\n")
	sb.WriteString(" " + dimStyle.Render("Please sign in to your account") + "\n\n")

	sb.WriteString(renderField("email", m.fields[loginEmail], m.focus == loginEmail, false))
	sb.WriteString(renderField("password", m.fields[loginPassword], m.focus == loginPassword, true))

	sb.WriteString("\n")
	switch {
	case m.loading:
		sb.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	case m.errMsg != "":
		sb.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	}

	sb.WriteString("\n " + helpStyle.Render("enter submit · tab next field · ctrl+r create account · ctrl+c quit"))
	return sb.String()
}

// renderField draws one labeled form input with a focus marker.
func renderField(label, value string, focused, secret bool) string {
	shown := value
	if secret {
		shown = mask(value)
	}
	marker := "  "
	style := labelStyle
	if focused {
		marker = accentStyle.Render("> ")
		style = focusedStyle
	}
	cursor := ""
	if focused {
		cursor = accentStyle.Render("█")
	}
	return " " + marker + style.Render(label) + ": " + shown + cursor + "\n"
}
