package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sachen-pather/voltboard/pkg/client"
)

type registerField int

const (
	regEmail registerField = iota
	regPassword
	regConfirm
	numRegisterFields
)

type registerResultMsg struct {
	err error
}

type registerModel struct {
	client  *client.Client
	fields  [numRegisterFields]string
	focus   registerField
	errMsg  string
	success string
	loading bool
}

func newRegisterModel(c *client.Client) registerModel {
	return registerModel{client: c}
}

func (m registerModel) Init() tea.Cmd {
	return nil
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		m.loading = false
		if msg.err != nil {
			if client.IsHTTP(msg.err) {
				m.errMsg = client.Message(msg.err, "Registration failed. Please try again.")
			} else {
				m.errMsg = "An error occurred during registration. Please try again."
			}
			return m, nil
		}
		// Success changes no session state and navigates nowhere; the user
		// still has to verify their email and sign in.
		m.success = "Registration successful! Please check your email to verify your account."
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m registerModel) updateKeys(msg tea.KeyMsg) (registerModel, tea.Cmd) {
	m.errMsg = ""

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numRegisterFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numRegisterFields) % numRegisterFields
	case "enter":
		if m.focus == regConfirm {
			return m.submit()
		}
		m.focus++
	case "ctrl+s":
		return m.submit()
	case "backspace":
		m.fields[m.focus] = editRune(m.fields[m.focus], "backspace")
	default:
		m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
	}
	return m, nil
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[regEmail])
	password := m.fields[regPassword]
	confirm := m.fields[regConfirm]

	if email == "" || password == "" {
		m.errMsg = "email and password are required"
		return m, nil
	}
	// Mismatch is caught locally, before any network call.
	if password != confirm {
		m.errMsg = "Passwords do not match"
		return m, nil
	}

	m.loading = true
	m.success = ""
	c := m.client
	return m, func() tea.Msg {
		err := c.Register(context.Background(), email, password, confirm)
		return registerResultMsg{err: err}
	}
}

func (m registerModel) View() string {
	var sb strings.Builder
	sb.WriteString(" " + headerStyle.Render("Create Account") + "\n")
	sb.WriteString(" " + dimStyle.Render("Sign up to get started") + "\n\n")

	sb.WriteString(renderField("email", m.fields[regEmail], m.focus == regEmail, false))
	sb.WriteString(renderField("password", m.fields[regPassword], m.focus == regPassword, true))
	sb.WriteString(renderField("confirm password", m.fields[regConfirm], m.focus == regConfirm, true))

	sb.WriteString("\n")
	switch {
	case m.loading:
		sb.WriteString(" " + dimStyle.Render("creating account...") + "\n")
	case m.errMsg != "":
		sb.WriteString(" " + errStyle.Render(m.errMsg) + "\n")
	case m.success != "":
		sb.WriteString(" " + okStyle.Render(m.success) + "\n")
	}

	sb.WriteString("\n " + helpStyle.Render("enter submit · tab next field · esc back to sign in · ctrl+c quit"))
	return sb.String()
}
