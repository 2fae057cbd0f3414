package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sachen-pather/voltboard/internal/chart"
	"github.com/sachen-pather/voltboard/pkg/client"
	"github.com/sachen-pather/voltboard/pkg/domain"
)

// timestampKey is the epoch-seconds field every telemetry record carries.
const timestampKey = "timestamp"

// dataTypePresets are cycled with the d key; free-form entry stays available
// through field editing.
var dataTypePresets = []string{"voltage", "current", "temperature", "power"}

// brushStep is how many points one brush keystroke moves or resizes.
const brushStep = 5

type dashField int

const (
	dashDevice dashField = iota
	dashType
	dashStart
	dashEnd
	numDashFields
)

var dashFieldNames = [numDashFields]string{"device", "type", "start", "end"}

// seriesLoadedMsg carries one fetch outcome tagged with its sequence number.
// Stale responses (an input changed while the fetch was in flight) are
// dropped instead of overwriting newer data.
type seriesLoadedMsg struct {
	seq     int
	records []domain.Record
	err     error
}

// forceLogoutMsg is emitted when a protected fetch answers 401: the session
// is over no matter what the client believed.
type forceLogoutMsg struct{}

// signOutResultMsg reports the logout round-trip. Logout is fail-open: the
// root App ends the local session whether or not err is set.
type signOutResultMsg struct {
	err error
}

type dashboardModel struct {
	client *client.Client
	diag   *log.Logger

	fields  [numDashFields]string
	focus   dashField
	editing bool

	series  chart.Series
	brush   chart.Brush
	layout  chart.Layout
	loading bool

	// fetchSeq guards overlapping fetches: only the newest wins.
	fetchSeq int

	statusMsg string
	width     int
	height    int
}

func newDashboardModel(c *client.Client, diag *log.Logger, deviceID, dataType string) dashboardModel {
	m := dashboardModel{client: c, diag: diag}
	m.fields[dashDevice] = deviceID
	m.fields[dashType] = dataType
	m.fields[dashStart], m.fields[dashEnd] = domain.DefaultRange(time.Now())
	return m
}

// Init is a no-op; the first fetch goes through startFetch so the model's
// sequence counter advances with it. The root App triggers it only once the
// session check has resolved as authenticated, so telemetry is never
// requested before that.
func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) request() domain.SeriesRequest {
	return domain.SeriesRequest{
		DeviceID:  m.fields[dashDevice],
		DataType:  m.fields[dashType],
		StartDate: m.fields[dashStart],
		EndDate:   m.fields[dashEnd],
	}
}

func (m dashboardModel) chartConfig() chart.Config {
	req := m.request()
	start, end := req.Range()
	return chart.Config{
		XKey:      timestampKey,
		YKey:      strings.TrimSpace(m.fields[dashType]),
		Title:     fmt.Sprintf("%s · %s", strings.TrimSpace(m.fields[dashDevice]), strings.TrimSpace(m.fields[dashType])),
		StartDate: start,
		EndDate:   end,
	}
}

// startFetch issues a telemetry query for the current inputs. If any input
// is blank the request is skipped entirely and the displayed data cleared.
func (m dashboardModel) startFetch() (dashboardModel, tea.Cmd) {
	req := m.request()
	if !req.Complete() {
		m.series = chart.Series{}
		m.brush = m.brush.Reset()
		m.loading = false
		return m, nil
	}

	m.fetchSeq++
	m.loading = true
	seq := m.fetchSeq
	c := m.client
	return m, func() tea.Msg {
		records, err := c.FetchSeries(context.Background(), req)
		return seriesLoadedMsg{seq: seq, records: records, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// The chart tracks its container: full width, body height below the
		// form and status chrome. Margins are recomputed from these on every
		// resize.
		m.layout = chart.NewLayout(msg.Width, msg.Height-4)
		return m, nil

	case seriesLoadedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil // stale response, a newer fetch is in flight
		}
		m.loading = false
		if msg.err != nil {
			if client.IsStatus(msg.err, 401) {
				return m, func() tea.Msg { return forceLogoutMsg{} }
			}
			// Telemetry failures are silent to the user: clear the chart,
			// log for diagnostics only.
			m.diag.Error("telemetry fetch failed", "error", msg.err)
			m.series = chart.Series{}
			m.brush = m.brush.Reset()
			return m, nil
		}
		m.series = chart.Build(msg.records, m.chartConfig())
		m.brush = m.brush.Reset()
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m dashboardModel) updateKeys(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	m.statusMsg = ""

	if m.editing {
		switch msg.String() {
		case "esc":
			m.editing = false
		case "tab", "down":
			m.focus = (m.focus + 1) % numDashFields
		case "shift+tab", "up":
			m.focus = (m.focus - 1 + numDashFields) % numDashFields
		case "enter":
			m.editing = false
			return m.startFetch()
		case "backspace":
			m.fields[m.focus] = editRune(m.fields[m.focus], "backspace")
		default:
			m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
		}
		return m, nil
	}

	switch msg.String() {
	case "i", "enter":
		m.editing = true
	case "r":
		return m.startFetch()
	case "d":
		m.fields[dashType] = nextPreset(m.fields[dashType])
		return m.startFetch()
	case "[":
		m.brush = m.brush.Shift(-brushStep, len(m.series.Points))
	case "]":
		m.brush = m.brush.Shift(brushStep, len(m.series.Points))
	case "{":
		m.brush = m.brush.Resize(-brushStep, len(m.series.Points))
	case "}":
		m.brush = m.brush.Resize(brushStep, len(m.series.Points))
	case "0":
		m.brush = m.brush.Reset()
	case "c":
		return m.copyLatest()
	case "e":
		return m.exportPNG()
	case "x":
		c := m.client
		return m, func() tea.Msg {
			return signOutResultMsg{err: c.Logout(context.Background())}
		}
	}
	return m, nil
}

// copyLatest puts the newest visible data point on the clipboard.
func (m dashboardModel) copyLatest() (dashboardModel, tea.Cmd) {
	visible := m.series.Window(m.brush)
	if len(visible.Points) == 0 {
		m.statusMsg = "nothing to copy"
		return m, nil
	}
	p := visible.Points[len(visible.Points)-1]
	text := fmt.Sprintf("%s  %s=%g", p.Label, m.series.Config.YKey, p.Value)
	if err := clipboard.WriteAll(text); err != nil {
		m.statusMsg = "copy failed"
		m.diag.Error("clipboard write failed", "error", err)
		return m, nil
	}
	m.statusMsg = "copied latest point"
	return m, nil
}

// exportPNG writes the brushed window to a timestamped PNG in the working
// directory.
func (m dashboardModel) exportPNG() (dashboardModel, tea.Cmd) {
	name := fmt.Sprintf("voltboard-%s.png", time.Now().Format("20060102-150405"))
	f, err := os.Create(name)
	if err != nil {
		m.statusMsg = "export failed"
		m.diag.Error("chart export failed", "error", err)
		return m, nil
	}
	defer f.Close() //nolint:errcheck // best-effort close

	if err := chart.ExportPNG(m.series.Window(m.brush), f); err != nil {
		m.statusMsg = "export failed"
		m.diag.Error("chart export failed", "error", err)
		return m, nil
	}
	m.statusMsg = "saved " + name
	return m, nil
}

func nextPreset(current string) string {
	for i, p := range dataTypePresets {
		if p == strings.TrimSpace(current) {
			return dataTypePresets[(i+1)%len(dataTypePresets)]
		}
	}
	return dataTypePresets[0]
}

func (m dashboardModel) View() string {
	var sb strings.Builder

	// Query form line.
	var form strings.Builder
	for f := dashField(0); f < numDashFields; f++ {
		style := labelStyle
		if m.editing && f == m.focus {
			style = focusedStyle
		}
		form.WriteString(" " + style.Render(dashFieldNames[f]) + ":" + m.fields[f])
		if m.editing && f == m.focus {
			form.WriteString(accentStyle.Render("█"))
		}
	}
	sb.WriteString(form.String() + "\n")

	// Status line: loading beats status text; telemetry errors never appear
	// here.
	switch {
	case m.loading:
		sb.WriteString(" " + dimStyle.Render("loading telemetry...") + "\n")
	case m.statusMsg != "":
		sb.WriteString(" " + dimStyle.Render(m.statusMsg) + "\n")
	default:
		sb.WriteString("\n")
	}

	sb.WriteString(chart.Render(m.series, m.layout, m.brush))

	sb.WriteString("\n " + helpStyle.Render("i edit · r refresh · d data type · [ ] move brush · { } resize · 0 reset · c copy · e export · x sign out"))
	return sb.String()
}
