package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sachen-pather/voltboard/internal/session"
	"github.com/sachen-pather/voltboard/pkg/client"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewVerify
	viewDashboard
)

// dashRefreshMsg asks the root model to kick off a dashboard fetch. Emitted
// on startup for an already-authenticated session and after a fresh login.
type dashRefreshMsg struct{}

// Options wires the App's collaborators. Every session mutation in the whole
// program goes through the App's handling below — views never touch the
// store.
type Options struct {
	Client  *client.Client
	Session *session.Store
	Diag    *log.Logger

	// Dashboard prefill.
	DeviceID string
	DataType string

	// StartVerify opens the verification screen with VerifyToken instead of
	// the usual login/dashboard choice.
	StartVerify bool
	VerifyToken string
}

// App is the root Bubbletea model.
type App struct {
	client   *client.Client
	session  *session.Store
	diag     *log.Logger
	view     view
	login    loginModel
	register registerModel
	verify   verifyModel
	dash     dashboardModel
	width    int
	height   int
}

// NewApp creates the TUI application. The session store decides the first
// view: authenticated sessions land on the dashboard, everything else on
// login.
func NewApp(opts Options) App {
	a := App{
		client:   opts.Client,
		session:  opts.Session,
		diag:     opts.Diag,
		login:    newLoginModel(opts.Client, opts.Session.Email()),
		register: newRegisterModel(opts.Client),
		verify:   newVerifyModel(opts.Client, opts.VerifyToken),
		dash:     newDashboardModel(opts.Client, opts.Diag, opts.DeviceID, opts.DataType),
	}
	switch {
	case opts.StartVerify:
		a.view = viewVerify
	case opts.Session.Authenticated():
		a.view = viewDashboard
	default:
		a.view = viewLogin
	}
	return a
}

func (a App) Init() tea.Cmd {
	switch a.view {
	case viewVerify:
		return a.verify.Init()
	case viewDashboard:
		return func() tea.Msg { return dashRefreshMsg{} }
	default:
		return a.login.Init()
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Header takes two lines; the rest belongs to the active view.
		body := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2}
		a.dash, _ = a.dash.Update(body)
		return a, nil

	case dashRefreshMsg:
		var cmd tea.Cmd
		a.dash, cmd = a.dash.startFetch()
		return a, cmd

	case loginResultMsg:
		if msg.err == nil {
			a.session.SetAuthenticated(true)
			a.session.RememberEmail(msg.email)
			a.view = viewDashboard
			return a, func() tea.Msg { return dashRefreshMsg{} }
		}
		// Failed attempt clears any stale persisted state defensively.
		a.session.SetAuthenticated(false)
		a.session.ForgetEmail()
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case forceLogoutMsg:
		// 401 on a protected fetch is fatal to the session: flag removed,
		// memory false, back to login.
		a.session.SetAuthenticated(false)
		a.view = viewLogin
		a.login = newLoginModel(a.client, a.session.Email())
		return a, nil

	case signOutResultMsg:
		// Fail-open: the local session ends logged-out even when the server
		// round-trip failed.
		if msg.err != nil {
			a.diag.Error("logout failed", "error", msg.err)
		}
		a.session.SetAuthenticated(false)
		a.view = viewLogin
		a.login = newLoginModel(a.client, a.session.Email())
		return a, nil

	case verifyRedirectMsg:
		a.view = viewLogin
		return a, nil

	case seriesLoadedMsg:
		var cmd tea.Cmd
		a.dash, cmd = a.dash.Update(msg)
		return a, cmd

	case registerResultMsg:
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		return a, cmd

	case verifyResultMsg, verifyFallbackMsg:
		var cmd tea.Cmd
		a.verify, cmd = a.verify.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.view {
	case viewLogin:
		if msg.String() == "ctrl+r" {
			a.view = viewRegister
			a.register = newRegisterModel(a.client)
			return a, nil
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case viewRegister:
		if msg.String() == "esc" {
			a.view = viewLogin
			return a, nil
		}
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		return a, cmd

	case viewVerify:
		if msg.String() == "esc" {
			a.view = viewLogin
			return a, nil
		}
		var cmd tea.Cmd
		a.verify, cmd = a.verify.Update(msg)
		return a, cmd

	default:
		var cmd tea.Cmd
		a.dash, cmd = a.dash.Update(msg)
		return a, cmd
	}
}

func (a App) View() string {
	var sb strings.Builder

	sb.WriteString(" " + headerStyle.Render("voltboard"))
	if a.session.Authenticated() && a.session.Email() != "" {
		sb.WriteString("  " + dimStyle.Render(a.session.Email()))
	}
	sb.WriteString("\n\n")

	switch a.view {
	case viewLogin:
		sb.WriteString(a.login.View())
	case viewRegister:
		sb.WriteString(a.register.View())
	case viewVerify:
		sb.WriteString(a.verify.View())
	default:
		sb.WriteString(a.dash.View())
	}
	return sb.String()
}
