package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sachen-pather/voltboard/pkg/client"
)

// verifyFallbackDelay bounds how long the screen may stay in "verifying".
// The timer races the network result; whichever settles first wins. The
// delay applies to the status transition, not to the request itself.
const verifyFallbackDelay = 3 * time.Second

type verifyState int

const (
	verifying verifyState = iota
	verifySuccess
	verifyError
)

type verifyResultMsg struct {
	err error
}

type verifyFallbackMsg struct{}

// verifyRedirectMsg sends the user back to the login view after a successful
// verification.
type verifyRedirectMsg struct{}

type verifyModel struct {
	client *client.Client
	token  string
	state  verifyState
}

func newVerifyModel(c *client.Client, token string) verifyModel {
	return verifyModel{client: c, token: strings.Join(strings.Fields(token), "")}
}

func (m verifyModel) Init() tea.Cmd {
	fallback := tea.Tick(verifyFallbackDelay, func(time.Time) tea.Msg {
		return verifyFallbackMsg{}
	})
	// A missing token never reaches the network; the fallback timer alone
	// drives the transition to error.
	if m.token == "" {
		return fallback
	}
	c, token := m.client, m.token
	verify := func() tea.Msg {
		return verifyResultMsg{err: c.VerifyEmail(context.Background(), token)}
	}
	return tea.Batch(verify, fallback)
}

func (m verifyModel) Update(msg tea.Msg) (verifyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case verifyResultMsg:
		// Both outcomes are terminal; a result landing after the fallback
		// already fired is absorbed.
		if m.state != verifying {
			return m, nil
		}
		if msg.err != nil {
			m.state = verifyError
			return m, nil
		}
		m.state = verifySuccess
		return m, tea.Tick(verifyFallbackDelay, func(time.Time) tea.Msg {
			return verifyRedirectMsg{}
		})

	case verifyFallbackMsg:
		if m.state == verifying {
			m.state = verifyError
		}
		return m, nil
	}
	return m, nil
}

func (m verifyModel) View() string {
	var sb strings.Builder
	sb.WriteString(" " + headerStyle.Render("Email Verification") + "\n\n")
	switch m.state {
	case verifying:
		sb.WriteString(" " + dimStyle.Render("Verifying your email address..."))
	case verifySuccess:
		sb.WriteString(" " + okStyle.Render("Your email has been verified successfully! Redirecting to login..."))
	case verifyError:
		sb.WriteString(" " + errStyle.Render("Failed to verify email. The link may be invalid or expired."))
	}
	sb.WriteString("\n\n " + helpStyle.Render("esc back to sign in · ctrl+c quit"))
	return sb.String()
}
