package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sachen-pather/voltboard/pkg/client"
)

func TestRegisterPasswordMismatchIsLocal(t *testing.T) {
	m := newRegisterModel(nil)
	m.fields[regEmail] = "a@b.com"
	m.fields[regPassword] = "one"
	m.fields[regConfirm] = "two"
	m.focus = regConfirm

	m, cmd := m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("mismatched passwords must not issue a network call")
	}
	if m.errMsg != "Passwords do not match" {
		t.Errorf("errMsg = %q, want the mismatch message", m.errMsg)
	}
}

func TestRegisterSuccessIsStatic(t *testing.T) {
	m := newRegisterModel(nil)
	m.loading = true

	m, cmd := m.Update(registerResultMsg{})
	if cmd != nil {
		t.Error("registration success must not navigate anywhere")
	}
	if !strings.Contains(m.success, "check your email") {
		t.Errorf("success = %q, want the verification hint", m.success)
	}
	if m.loading {
		t.Error("loading must end with the result")
	}
}

func TestRegisterServerRejection(t *testing.T) {
	m := newRegisterModel(nil)
	m, _ = m.Update(registerResultMsg{err: &client.HTTPError{StatusCode: 400, Message: "Email already taken"}})
	if m.errMsg != "Email already taken" {
		t.Errorf("errMsg = %q, want the server message verbatim", m.errMsg)
	}
	if m.success != "" {
		t.Error("a rejection must not leave a success message")
	}
}

func TestRegisterFocusAdvancesOnEnter(t *testing.T) {
	m := newRegisterModel(nil)

	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != regPassword {
		t.Errorf("focus = %d, want password after enter on email", m.focus)
	}
	m, _ = m.updateKeys(tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != regConfirm {
		t.Errorf("focus = %d, want confirm after enter on password", m.focus)
	}
}
