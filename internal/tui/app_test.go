package tui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sachen-pather/voltboard/internal/session"
)

func newTestApp(t *testing.T, authenticated bool) (App, *session.Store, string) {
	t.Helper()
	dir := t.TempDir()
	sess := session.New(dir)
	if authenticated {
		sess.SetAuthenticated(true)
	}
	a := NewApp(Options{
		Client:   nil,
		Session:  sess,
		Diag:     log.New(io.Discard),
		DeviceID: "battery-1",
		DataType: "voltage",
	})
	a.width = 100
	a.height = 30
	return a, sess, dir
}

func sessionFlagExists(t *testing.T, dir string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(dir, "authenticated"))
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("stat session flag: %v", err)
	}
	return err == nil
}

func TestAppStartsOnLoginWhenLoggedOut(t *testing.T) {
	a, _, _ := newTestApp(t, false)
	if a.view != viewLogin {
		t.Errorf("start view = %d, want login", a.view)
	}
}

func TestAppStartsOnDashboardWhenAuthenticated(t *testing.T) {
	a, _, _ := newTestApp(t, true)
	if a.view != viewDashboard {
		t.Errorf("start view = %d, want dashboard", a.view)
	}
	// Init must kick off the telemetry fetch, and only because the auth
	// check already resolved.
	cmd := a.Init()
	if cmd == nil {
		t.Fatal("expected a startup command for the authenticated view")
	}
	if _, ok := cmd().(dashRefreshMsg); !ok {
		t.Error("startup command should request a dashboard refresh")
	}
}

func TestAppStartsOnVerifyWithToken(t *testing.T) {
	a := NewApp(Options{
		Session:     session.New(t.TempDir()),
		Diag:        log.New(io.Discard),
		StartVerify: true,
		VerifyToken: "tok",
	})
	if a.view != viewVerify {
		t.Errorf("start view = %d, want verify", a.view)
	}
}

func TestLoginSuccessPersistsAndNavigates(t *testing.T) {
	a, sess, dir := newTestApp(t, false)

	model, cmd := a.Update(loginResultMsg{email: "a@b.com"})
	got := model.(App)

	if !sess.Authenticated() {
		t.Error("session flag not set after successful login")
	}
	if !sessionFlagExists(t, dir) {
		t.Error("session flag not persisted after successful login")
	}
	if sess.Email() != "a@b.com" {
		t.Errorf("remembered email = %q, want a@b.com", sess.Email())
	}
	if got.view != viewDashboard {
		t.Errorf("view = %d, want dashboard", got.view)
	}
	if cmd == nil {
		t.Fatal("expected a refresh command after login")
	}
	if _, ok := cmd().(dashRefreshMsg); !ok {
		t.Error("post-login command should request a dashboard refresh")
	}
}

func TestLoginFailureClearsSessionDefensively(t *testing.T) {
	a, sess, dir := newTestApp(t, false)
	// Simulate stale persisted state from an earlier run.
	sess.SetAuthenticated(true)
	sess.RememberEmail("old@b.com")

	model, _ := a.Update(loginResultMsg{email: "a@b.com", err: errors.New("rejected")})
	got := model.(App)

	if sess.Authenticated() {
		t.Error("session flag still true after failed login")
	}
	if sessionFlagExists(t, dir) {
		t.Error("persisted flag still present after failed login")
	}
	if sess.Email() != "" {
		t.Error("remembered email must be cleared on failed login")
	}
	if got.view != viewLogin {
		t.Errorf("view = %d, want login", got.view)
	}
}

func TestForceLogoutEndState(t *testing.T) {
	a, sess, dir := newTestApp(t, true)

	model, _ := a.Update(forceLogoutMsg{})
	got := model.(App)

	// The observable end state of a 401: flag removed, memory false,
	// unauthenticated view.
	if sessionFlagExists(t, dir) {
		t.Error("persisted flag still present after forced logout")
	}
	if sess.Authenticated() {
		t.Error("in-memory flag still true after forced logout")
	}
	if got.view != viewLogin {
		t.Errorf("view = %d, want login", got.view)
	}
}

func TestSignOutFailOpen(t *testing.T) {
	a, sess, dir := newTestApp(t, true)

	// The logout round-trip failed (offline), yet the local session must
	// still end logged-out.
	model, _ := a.Update(signOutResultMsg{err: errors.New("network down")})
	got := model.(App)

	if sess.Authenticated() || sessionFlagExists(t, dir) {
		t.Error("session must end logged-out even when the logout call fails")
	}
	if got.view != viewLogin {
		t.Errorf("view = %d, want login", got.view)
	}
}

func TestVerifyRedirectReturnsToLogin(t *testing.T) {
	a, _, _ := newTestApp(t, false)
	a.view = viewVerify

	model, _ := a.Update(verifyRedirectMsg{})
	if got := model.(App); got.view != viewLogin {
		t.Errorf("view = %d, want login after verify redirect", got.view)
	}
}

func TestAppQuitOnCtrlC(t *testing.T) {
	a, _, _ := newTestApp(t, false)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command on ctrl+c")
	}
}

func TestAppRegisterNavigation(t *testing.T) {
	a, _, _ := newTestApp(t, false)

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	got := model.(App)
	if got.view != viewRegister {
		t.Fatalf("view = %d, want register after ctrl+r", got.view)
	}

	model, _ = got.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := model.(App); got.view != viewLogin {
		t.Errorf("view = %d, want login after esc", got.view)
	}
}

func TestAppResizePropagatesToDashboard(t *testing.T) {
	a, _, _ := newTestApp(t, true)

	model, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 42})
	got := model.(App)
	if got.dash.layout.Width != 120 {
		t.Errorf("dashboard layout width = %d, want 120", got.dash.layout.Width)
	}
	if got.dash.layout.MarginRight != 12 {
		t.Errorf("dashboard right margin = %d, want 10%% of width", got.dash.layout.MarginRight)
	}
}
