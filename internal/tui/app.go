// internal/tui/app.go
//
// Live viewer for a cleaning run. It uses bubbletea, which follows The Elm
// Architecture: the model holds the state, Update reacts to messages, and
// View draws the current state as a string.
//
// The simulation itself runs inside a tea.Cmd goroutine. Frames cross over
// on the channel renderer and arrive here as messages, so the floor redraws
// once per successful move.

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/sweeper/internal/agent"
	"github.com/kingrea/sweeper/internal/logbook"
	"github.com/kingrea/sweeper/internal/render"
	"github.com/kingrea/sweeper/internal/scenario"
	"github.com/kingrea/sweeper/internal/sim"
)

var (
	labelStyleClean   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	labelStyleStopped = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	labelStyleFailed  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	detailTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

// frameMsg delivers one rendered frame from the running simulation.
type frameMsg render.Frame

// runFinishedMsg arrives once the simulation goroutine returns.
type runFinishedMsg struct {
	report sim.Report
	err    error
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogbook journals run milestones and feeds the log panel.
func WithLogbook(book *logbook.Logbook) AppOption {
	return func(a *App) { a.book = book }
}

// WithFrameDelay overrides the scenario's frame delay. Zero disables the
// throttle entirely.
func WithFrameDelay(d time.Duration) AppOption {
	return func(a *App) {
		if d >= 0 {
			a.delay = d
		}
	}
}

// WithRunnerOptions passes extra options through to the underlying runner.
func WithRunnerOptions(opts ...sim.Option) AppOption {
	return func(a *App) { a.runnerOpts = append(a.runnerOpts, opts...) }
}

// App is the viewer model. It holds the latest frame, the finished report,
// and the plumbing that connects the simulation goroutine to the Elm loop.
type App struct {
	runner *sim.Runner
	scn    scenario.Scenario
	book   *logbook.Logbook

	ctx    context.Context
	cancel context.CancelFunc
	frames *render.Channel

	runnerOpts []sim.Option
	delay      time.Duration

	bar       progress.Model
	frame     render.Frame
	haveFrame bool
	report    sim.Report
	runErr    error
	done      bool

	width  int
	height int
}

// NewApp wires a scenario into a ready-to-run viewer.
func NewApp(scn scenario.Scenario, opts ...AppOption) (*App, error) {
	a := &App{delay: -1}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	delay := a.delay
	if delay < 0 {
		delay = scn.FrameDelay()
		if delay <= 0 {
			delay = render.DefaultFrameDelay
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	frames := render.NewChannel(ctx, delay)
	runnerOpts := append(append([]sim.Option{}, a.runnerOpts...),
		sim.WithRenderer(frames),
		sim.WithLogbook(a.book),
	)
	runner, err := sim.NewRunner(scn, runnerOpts...)
	if err != nil {
		cancel()
		return nil, err
	}

	a.runner = runner
	a.scn = runner.Scenario()
	a.ctx = ctx
	a.cancel = cancel
	a.frames = frames
	a.bar = progress.New(progress.WithSolidFill("#5B8DEF"), progress.WithWidth(30))
	return a, nil
}

// Init kicks off the simulation and starts listening for frames.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.startRun(), a.waitForFrame())
}

// startRun executes the whole run in a goroutine. Closing the frame channel
// afterwards releases the frame listener.
func (a *App) startRun() tea.Cmd {
	return func() tea.Msg {
		rep, err := a.runner.Run(a.ctx)
		a.frames.Close()
		return runFinishedMsg{report: rep, err: err}
	}
}

// waitForFrame blocks on the next frame. It re-arms itself from Update until
// the channel closes.
func (a *App) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		f, ok := <-a.frames.Frames()
		if !ok {
			return nil
		}
		return frameMsg(f)
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if msg.Width > 0 {
			a.bar.Width = max(16, msg.Width/4)
			if a.bar.Width > 40 {
				a.bar.Width = 40
			}
		}
		return a, nil

	case frameMsg:
		a.frame = render.Frame(msg)
		a.haveFrame = true
		return a, a.waitForFrame()

	case runFinishedMsg:
		a.done = true
		a.report = msg.report
		a.runErr = msg.err
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			a.cancel()
			return a, tea.Quit
		}
	}

	return a, nil
}

// View renders the viewer screen.
func (a *App) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render(fmt.Sprintf("◉ SWEEPER · %s", a.scn.Name))

	sections := []string{header}
	if a.haveFrame {
		body := lipgloss.JoinHorizontal(lipgloss.Top, a.renderFloorPanel(), a.renderStatsPanel())
		sections = append(sections, body)
	} else if !a.done {
		sections = append(sections, detailTextStyle.Render("waiting for the first frame..."))
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	if a.done {
		sections = append(sections, a.renderOutcomePanel())
	}
	sections = append(sections, a.renderFooter())
	return strings.Join(sections, "\n")
}

func (a *App) renderFloorPanel() string {
	legend := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Render(render.Legend)
	floor := strings.Join(a.frame.Rows(), "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n\n%s", legend, floor))
}

func (a *App) renderStatsPanel() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("RUN")
	total := a.frame.Cleaned + a.frame.DirtLeft
	pct := 1.0
	if total > 0 {
		pct = float64(a.frame.Cleaned) / float64(total)
	}
	lines := []string{
		title,
		fmt.Sprintf("step      %d", a.frame.Step),
		fmt.Sprintf("position  (%d,%d)", a.frame.AgentX, a.frame.AgentY),
		fmt.Sprintf("cleaned   %d of %d", a.frame.Cleaned, total),
		"",
		a.bar.ViewAs(pct),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (a *App) renderLogPanel() string {
	if a.book == nil {
		return ""
	}
	lines := a.book.Tail(8)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.book.Path())
	if fileName == "." || fileName == "" {
		fileName = "journal"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderOutcomePanel() string {
	label := labelStyleStopped.Render("RUN STOPPED")
	switch {
	case a.runErr != nil:
		label = labelStyleFailed.Render(fmt.Sprintf("RUN FAILED · %v", a.runErr))
	case a.report.Clean():
		label = labelStyleClean.Render("FLOOR CLEAN")
	case agent.HaltReason(a.report.Reason) == agent.HaltTrapped:
		label = labelStyleFailed.Render("ROBOT TRAPPED")
	}
	body := detailTextStyle.Render(strings.TrimRight(a.report.Summary(), "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", label, body))
}

func (a *App) renderFooter() string {
	status := "cleaning in progress"
	if a.done {
		status = "run finished"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(fmt.Sprintf("%s    q → quit", status))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
