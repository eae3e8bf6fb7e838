// Package tui renders a live terminal dashboard for verification runs.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/sysmon"
	"github.com/agbru/bigcalc/internal/verify"
)

const (
	tickInterval  = 250 * time.Millisecond
	defaultWidth  = 80
	mismatchRows  = 8
	progressInset = 20
)

// runState is shared between the runner goroutine and the model. The runner
// writes done and found while it works; report and err are written once,
// before finished is closed.
type runState struct {
	done  atomic.Int64
	total int

	mu    sync.Mutex
	found []verify.Mismatch

	finished chan struct{}
	report   verify.Report
	err      error
}

func newRunState(total int) *runState {
	return &runState{total: total, finished: make(chan struct{})}
}

// progress is the runner's progress callback. Workers may report out of
// order, so done only moves forward.
func (s *runState) progress(done, _ int) {
	n := int64(done)
	for {
		cur := s.done.Load()
		if n <= cur || s.done.CompareAndSwap(cur, n) {
			return
		}
	}
}

func (s *runState) addMismatch(m verify.Mismatch) {
	s.mu.Lock()
	s.found = append(s.found, m)
	s.mu.Unlock()
}

func (s *runState) mismatches() []verify.Mismatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]verify.Mismatch(nil), s.found...)
}

type (
	tickMsg     time.Time
	sysStatsMsg sysmon.Stats
	memStatsMsg metrics.MemorySnapshot
	finishedMsg struct{}
)

// Model is the bubbletea model of the verification dashboard.
type Model struct {
	cfg    verify.Config
	state  *runState
	cancel context.CancelFunc

	keymap  KeyMap
	help    help.Model
	bar     progress.Model
	spinner spinner.Model
	memory  *metrics.MemoryCollector

	start      time.Time
	elapsed    time.Duration
	done       int
	sys        sysmon.Stats
	mem        metrics.MemorySnapshot
	mismatches []verify.Mismatch
	offset     int

	finished     bool
	exitWhenDone bool
	width        int
}

func newModel(cfg verify.Config, state *runState, cancel context.CancelFunc, exitWhenDone bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return Model{
		cfg:          cfg,
		state:        state,
		cancel:       cancel,
		keymap:       DefaultKeyMap(),
		help:         help.New(),
		bar:          progress.New(progress.WithDefaultGradient()),
		spinner:      sp,
		memory:       metrics.NewMemoryCollector(),
		start:        time.Now(),
		exitWhenDone: exitWhenDone,
		width:        defaultWidth,
	}
}

// Init starts the spinner, the refresh ticker and the completion watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd(), waitForRun(m.state))
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForRun(state *runState) tea.Cmd {
	return func() tea.Msg {
		<-state.finished
		return finishedMsg{}
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg { return sysStatsMsg(sysmon.Sample()) }
}

func sampleMemoryCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg { return memStatsMsg(mc.Snapshot()) }
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = max(msg.Width-progressInset, 10)
		return m, nil

	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.elapsed = time.Since(m.start)
		m.done = int(m.state.done.Load())
		m.mismatches = m.state.mismatches()
		return m, tea.Batch(tickCmd(), sampleSysStatsCmd(), sampleMemoryCmd(m.memory))

	case sysStatsMsg:
		m.sys = sysmon.Stats(msg)
		return m, nil

	case memStatsMsg:
		m.mem = metrics.MemorySnapshot(msg)
		return m, nil

	case finishedMsg:
		m.finished = true
		m.done = m.state.report.Cases
		m.mismatches = m.state.report.Mismatches
		m.elapsed = m.state.report.Duration
		m.mem = m.state.report.Memory
		if m.exitWhenDone {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Up):
		if m.offset > 0 {
			m.offset--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.offset < len(m.mismatches)-mismatchRows {
			m.offset++
		}
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	sections := []string{
		m.headerView(),
		m.progressView(),
		panelStyle.Width(max(m.width-2, 20)).Render(m.statsView()),
		panelStyle.Width(max(m.width-2, 20)).Render(m.mismatchView()),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	status := m.spinner.View() + " running"
	switch {
	case m.finished && m.state.err != nil:
		status = warnStyle.Render("stopped: " + m.state.err.Error())
	case m.finished && len(m.mismatches) > 0:
		status = failStyle.Render("✗ mismatches found")
	case m.finished:
		status = passStyle.Render("✓ all checks agree")
	}
	title := titleStyle.Render("bigcalc verify")
	seed := dimStyle.Render(fmt.Sprintf("seed %d", m.cfg.Seed))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", seed, "  ", status)
}

func (m Model) progressView() string {
	frac := 0.0
	if m.state.total > 0 {
		frac = float64(m.done) / float64(m.state.total)
	}
	return fmt.Sprintf("%s %s/%s", m.bar.ViewAs(min(frac, 1)),
		format.FormatNumberString(fmt.Sprint(m.done)),
		format.FormatNumberString(fmt.Sprint(m.state.total)))
}

func (m Model) statsView() string {
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	rows := []string{
		row("Elapsed", format.FormatExecutionDuration(m.elapsed)),
		row("Rate", format.FormatRate(m.done, m.elapsed)+" cases"),
		row("Limbs", fmt.Sprintf("≤ %d", m.cfg.MaxLimbs)),
		row("Workers", fmt.Sprint(max(m.cfg.Workers, 1))),
		row("Heap", format.FormatBytes(m.mem.HeapAlloc)),
		row("Host CPU", fmt.Sprintf("%.1f%%", m.sys.CPUPercent)),
		row("Host mem", fmt.Sprintf("%.1f%%", m.sys.MemPercent)),
	}
	if m.finished {
		rows = append(rows, row("Checks", fmt.Sprintf("%d (%d skipped)", m.state.report.Checks, m.state.report.Skipped)))
	}
	return strings.Join(rows, "\n")
}

func (m Model) mismatchView() string {
	title := titleStyle.Render(fmt.Sprintf("Mismatches (%d)", len(m.mismatches)))
	if len(m.mismatches) == 0 {
		return title + "\n" + dimStyle.Render("none")
	}
	end := min(m.offset+mismatchRows, len(m.mismatches))
	line := lipgloss.NewStyle().MaxWidth(max(m.width-6, 20))
	rows := []string{title}
	for _, mm := range m.mismatches[m.offset:end] {
		rows = append(rows, line.Render(failStyle.Render(string(mm.Op))+" "+mm.String()))
	}
	return strings.Join(rows, "\n")
}

// Options configures Run.
type Options struct {
	Logger  logging.Logger
	Metrics *metrics.Metrics
	Oracles []verify.Oracle
	// Input and Output default to the terminal when nil.
	Input  io.Reader
	Output io.Writer
	// AltScreen renders the dashboard in the terminal's alternate screen.
	AltScreen bool
	// ExitWhenDone quits once the run finishes instead of waiting for a key.
	ExitWhenDone bool
}

// Run executes a verification run while rendering the dashboard. Quitting
// the dashboard cancels the run. The report is returned in every case; err
// is the runner's error, or a dashboard failure.
func Run(ctx context.Context, cfg verify.Config, opts Options) (verify.Report, error) {
	initStyles()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	state := newRunState(cfg.Cases)
	runnerOpts := []verify.Option{
		verify.WithMetrics(opts.Metrics),
		verify.WithProgress(state.progress),
		verify.WithMismatchFunc(state.addMismatch),
	}
	if len(opts.Oracles) > 0 {
		runnerOpts = append(runnerOpts, verify.WithOracles(opts.Oracles...))
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger(io.Discard, "tui")
	}
	go func() {
		defer close(state.finished)
		state.report, state.err = verify.NewRunner(cfg, logger, runnerOpts...).Run(runCtx)
	}()

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	_, err := tea.NewProgram(newModel(cfg, state, cancel, opts.ExitWhenDone), progOpts...).Run()
	cancel()
	<-state.finished
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return state.report, fmt.Errorf("dashboard failed: %w", err)
	}
	return state.report, state.err
}
