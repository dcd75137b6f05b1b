package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/receipt/internal/logtail"
	"github.com/five82/receipt/internal/prefs"
	"github.com/five82/receipt/internal/printer"
	"github.com/five82/receipt/internal/request"
	"github.com/five82/receipt/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewCompose View = iota
	ViewHistory
	ViewLogs
)

const (
	defaultPollTick = time.Second
	logLineLimit    = 500
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *request.Controller
	Store      *state.Store
	Endpoint   func(path string) string
	LogPath    string
	Prefs      prefs.Prefs
	PrefsPath  string
	PollTick   time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	controller *request.Controller
	store      *state.Store
	endpoint   func(path string) string
	logPath    string
	prefs      prefs.Prefs
	prefsPath  string
	pollTick   time.Duration
	keys       keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Compose state
	form    composeForm
	drafts  map[string]composeForm
	spinner spinner.Model
	request request.State
	notice  string

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
	selectedRow int

	// Log state
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logFollow   bool
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = defaultPollTick
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	endpoint := opts.Endpoint
	if endpoint == nil {
		endpoint = func(path string) string { return path }
	}

	userPrefs := opts.Prefs
	if userPrefs.Theme == "" {
		userPrefs.Theme = prefs.Defaults().Theme
	}

	s := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:         ctx,
		controller:  opts.Controller,
		store:       opts.Store,
		endpoint:    endpoint,
		logPath:     opts.LogPath,
		prefs:       userPrefs,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(userPrefs.Theme),
		currentView: ViewCompose,
		drafts:      make(map[string]composeForm),
		spinner:     s,
		logFollow:   true,
	}
	m.form = newComposeForm(printer.KindText, m.prefs, 0)
	if m.controller != nil {
		m.request = m.controller.State()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.form.setFocus(m.form.focus),
	}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(m.width, m.logViewportHeight())
		}
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelection()
		return m, nil

	case requestEventMsg:
		return m.handleRequestEvent(request.Event(msg))

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case logsMsg:
		m.logEntries = msg
		m.logErr = nil
		m.updateLogViewport()
		return m, nil

	case logErrorMsg:
		m.logErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.request.Disabled {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blinks and other widget messages belong to the form.
	if m.currentView == ViewCompose {
		cmd := m.form.update(msg, m.keys)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle help overlay
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.ViewCompose), key.Matches(msg, m.keys.Escape):
		m.currentView = ViewCompose
		return m, nil

	case key.Matches(msg, m.keys.ViewHistory):
		m.currentView = ViewHistory
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewLogs
		return m, m.refreshLogs() // Fetch immediately
	}

	// View-specific keys
	switch m.currentView {
	case ViewCompose:
		return m.handleComposeKey(msg)
	case ViewHistory:
		return m.handleHistoryKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}

	return m, nil
}

// handleComposeKey processes keyboard input for the compose view.
func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.setFocus(m.form.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.setFocus(m.form.focus - 1)
	case key.Matches(msg, m.keys.NextKind):
		return m, m.switchKind(shiftKind(m.form.kind, 1))
	case key.Matches(msg, m.keys.PrevKind):
		return m, m.switchKind(shiftKind(m.form.kind, -1))
	}
	return m, m.form.update(msg, m.keys)
}

// switchKind keeps the current form as a draft and shows kind's form.
func (m *Model) switchKind(kind string) tea.Cmd {
	m.drafts[m.form.kind] = m.form
	if draft, ok := m.drafts[kind]; ok {
		m.form = draft
	} else {
		m.form = newComposeForm(kind, m.prefs, m.width)
	}
	m.notice = ""
	return m.form.setFocus(m.form.focus)
}

// submit builds the current document and hands it to the controller. The
// controller itself refuses to start while a submission is in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.controller == nil {
		return m, nil
	}
	if m.request.Disabled {
		m.notice = "still printing"
		return m, nil
	}

	doc, err := m.form.document()
	if err != nil {
		m.request.Failed = true
		m.request.Error = err.Error()
		return m, nil
	}
	sub, err := doc.Submission()
	if err != nil {
		m.request.Failed = true
		m.request.Error = err.Error()
		return m, nil
	}

	m.rememberPrefs()
	m.notice = ""
	m.request = request.State{Disabled: true}
	return m, tea.Batch(submitCmd(m.ctx, m.controller, sub), m.spinner.Tick)
}

// rememberPrefs persists form values worth keeping between runs.
func (m *Model) rememberPrefs() {
	next := m.prefs
	switch m.form.kind {
	case printer.KindChat:
		next.Username = strings.TrimSpace(m.form.value("username"))
	case printer.KindImage:
		if algo := strings.TrimSpace(m.form.value("algo")); algo != "" {
			next.Algo = algo
		}
	default:
		return
	}
	if next == m.prefs {
		return
	}
	m.prefs = next
	m.savePrefs()
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.notice = fmt.Sprintf("save prefs: %v", err)
	}
}

func (m Model) handleRequestEvent(ev request.Event) (tea.Model, tea.Cmd) {
	m.request = ev.State
	var cmds []tea.Cmd
	switch ev.Phase {
	case request.PhaseStarted:
		cmds = append(cmds, m.spinner.Tick)
	case request.PhaseDone:
		if !ev.State.Failed {
			m.notice = fmt.Sprintf("printed %s in %s", ev.Kind, ev.Elapsed.Round(10*time.Millisecond))
		}
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if m.controller != nil {
		m.request = m.controller.State()
	}
	if errors.Is(msg.err, request.ErrBusy) {
		m.notice = "still printing"
	}
	if m.store != nil {
		return m, fetchSnapshotCmd(m.store)
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Fetch latest snapshot
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	// Refresh logs if in log view and following
	if m.currentView == ViewLogs && m.logFollow {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	// Schedule next tick
	cmds = append(cmds, tickCmd(m.pollTick))

	return m, tea.Batch(cmds...)
}

func (m *Model) resize() {
	width := formWidth(m.width)
	m.form.setWidth(width)
	for _, draft := range m.drafts {
		draft.setWidth(width)
	}
	m.logViewport.Width = m.width
	m.logViewport.Height = m.logViewportHeight()
	m.updateLogViewport()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + backend status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: view tabs
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	// Main content
	b.WriteString(m.renderContent())
	b.WriteString("\n")

	// Status line: request state
	b.WriteString(m.renderStatusBar())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCompose:
		return m.renderCompose()
	case ViewHistory:
		return m.renderHistory()
	case ViewLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type requestEventMsg request.Event

type submitDoneMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// submitCmd runs the submission off the UI goroutine. It returns once the
// controller is idle again.
func submitCmd(ctx context.Context, controller *request.Controller, sub printer.Submission) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{err: controller.TrySubmit(ctx, sub)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if opts.Controller != nil {
		stop := forwardEvents(opts.Controller, p)
		defer stop()
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
