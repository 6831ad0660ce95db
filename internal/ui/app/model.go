package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	librarydto "readrise/internal/modules/library/dto"
	sessiondto "readrise/internal/modules/session/dto"
	statsdto "readrise/internal/modules/stats/dto"
	"readrise/internal/platform/civil"
	"readrise/internal/ui/components"
	"readrise/internal/ui/theme"
	libraryview "readrise/internal/ui/views/library"
	statsview "readrise/internal/ui/views/stats"
	timerview "readrise/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port mirrors the module's CLI handler; the model binds the user ID.

type LibraryPort interface {
	ListEntries(ctx context.Context, userID, shelf string) ([]librarydto.EntryOutput, error)
	ListProgress(ctx context.Context, userID, entryID string, limit int) ([]librarydto.ProgressOutput, error)
	MoveShelf(ctx context.Context, userID, entryID, shelf string, on *civil.Date) (librarydto.EntryOutput, error)
	LogProgress(ctx context.Context, input librarydto.LogProgressInput) (librarydto.LogProgressOutput, error)
	SetGoal(ctx context.Context, userID string, year, target int) (librarydto.GoalOutput, error)
}

type SessionPort interface {
	Start(ctx context.Context, userID, entryID string, startPage *int) (sessiondto.StartOutput, error)
	End(ctx context.Context, userID, sessionID string, endPage *int, note *string) (sessiondto.SessionOutput, error)
}

type StatsPort interface {
	Dashboard(ctx context.Context, userID string) (statsdto.DashboardOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabLibrary tabID = iota
	tabTimer
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Library", "Timer", "Stats"}

// ─── async messages ───────────────────────────────────────────────────────────

type sessionStartedMsg struct {
	out   sessiondto.StartOutput
	title string
	err   error
}

type sessionEndedMsg struct {
	out sessiondto.SessionOutput
	err error
}

type actionDoneMsg struct {
	status string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Session key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Session: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Session, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the running
// session, the help overlay and the command palette.
type Model struct {
	userID  string
	library LibraryPort
	session SessionPort

	libView   libraryview.Model
	timerView timerview.Model
	statsView statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
	pending   tea.Cmd
}

func NewModel(userID string, library LibraryPort, session SessionPort, stats StatsPort) Model {
	return Model{
		userID:    userID,
		library:   library,
		session:   session,
		libView:   libraryview.New(libraryPortBridge{p: library, userID: userID}),
		timerView: timerview.New(time.Now),
		statsView: statsview.New(statsPortBridge{p: stats, userID: userID}),
		activeTab: tabLibrary,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

// WithSession opens the model on the Timer tab for an already started session.
func (m Model) WithSession(s sessiondto.SessionOutput, title string) Model {
	m.pending = m.timerView.Start(s, title)
	m.activeTab = tabTimer
	m.status = "session started: " + title
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.libView.Init(), m.statsView.Init(), m.pending)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = "session start failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "session started: " + msg.title
		if msg.out.AutoClosed > 0 {
			m.status += " (closed a session left open)"
		}
		m.activeTab = tabTimer
		cmd := m.timerView.Start(msg.out.Session, msg.title)
		return m, cmd

	case timerview.EndRequestedMsg:
		return m, m.endSessionCmd(msg.SessionID, msg.EndPage, msg.Note)

	case sessionEndedMsg:
		if msg.err != nil {
			m.status = "session end failed: " + msg.err.Error()
			return m, nil
		}
		m.timerView.Stop()
		m.status = describeEnded(msg.out)
		return m, tea.Batch(m.libView.Reload(), m.statsView.Reload())

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, tea.Batch(m.libView.Reload(), m.statsView.Reload())

	case libraryview.EntriesLoadedMsg, libraryview.ProgressLoadedMsg:
		var cmd tea.Cmd
		m.libView, cmd = m.libView.Update(msg)
		return m, cmd

	case statsview.LoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case timerview.TickMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		// Yield to sub-views that are taking text input.
		if m.subViewTyping() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case msg.String() == "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			cmd := m.palette.Open()
			return m, cmd
		case key.Matches(msg, m.keys.Refresh) && m.activeTab != tabTimer:
			m.status = "refreshing"
			return m, tea.Batch(m.libView.Reload(), m.statsView.Reload())
		case key.Matches(msg, m.keys.Session) && m.activeTab == tabLibrary:
			return m.startSelected(nil)
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabLibrary:
		m.libView, tabCmd = m.libView.Update(msg)
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabLibrary:
		return m.libView.View()
	case tabTimer:
		return m.timerView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "readrise  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.timerView.Running() {
		left = theme.Hot.Render("● "+m.timerView.Title()+" "+timerview.ClockFace(m.timerView.Elapsed())) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	selected, hasSelected := m.libView.Selected()
	needsSelection := map[string]bool{"shelf": true, "progress": true, "session:start": true}
	if needsSelection[parts[0]] && !hasSelected {
		m.status = "no book selected"
		return m, nil
	}

	switch parts[0] {
	case "shelf":
		if len(parts) < 2 {
			m.status = "usage: shelf <want_to_read|reading|finished|abandoned>"
			return m, nil
		}
		shelf := parts[1]
		return m, m.action(func(ctx context.Context) (string, error) {
			out, err := m.library.MoveShelf(ctx, m.userID, selected.ID, shelf, nil)
			if err != nil {
				return "", fmt.Errorf("move shelf: %w", err)
			}
			return fmt.Sprintf("%s moved to %s", out.Title, strings.ReplaceAll(out.Shelf, "_", " ")), nil
		})
	case "progress":
		if len(parts) < 2 {
			m.status = "usage: progress <page> [note]"
			return m, nil
		}
		page, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid page"
			return m, nil
		}
		in := librarydto.LogProgressInput{UserID: m.userID, EntryID: selected.ID, Page: page}
		if note := restAfter(input, 2); note != "" {
			in.Note = &note
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			out, err := m.library.LogProgress(ctx, in)
			if err != nil {
				return "", fmt.Errorf("log progress: %w", err)
			}
			status := fmt.Sprintf("logged page %d (%.0f%%)", out.Progress.Page, out.Progress.Percent*100)
			if out.StartedReading {
				status += ", moved to reading"
			}
			return status, nil
		})
	case "session:start":
		var start *int
		if len(parts) >= 2 {
			p, err := strconv.Atoi(parts[1])
			if err != nil {
				m.status = "invalid page"
				return m, nil
			}
			start = &p
		}
		return m.startSelected(start)
	case "session:end":
		if !m.timerView.Running() {
			m.status = "no session running"
			return m, nil
		}
		var end *int
		if len(parts) >= 2 {
			p, err := strconv.Atoi(parts[1])
			if err != nil {
				m.status = "invalid page"
				return m, nil
			}
			end = &p
		}
		var note *string
		if n := restAfter(input, 2); n != "" {
			note = &n
		}
		return m, m.endSessionCmd(m.timerView.Session().ID, end, note)
	case "goal":
		if len(parts) < 2 {
			m.status = "usage: goal <target>"
			return m, nil
		}
		target, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid target"
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			out, err := m.library.SetGoal(ctx, m.userID, 0, target)
			if err != nil {
				return "", fmt.Errorf("set goal: %w", err)
			}
			return fmt.Sprintf("goal for %d: %d books", out.Year, out.Target), nil
		})
	case "refresh":
		m.status = "refreshing"
		return m, tea.Batch(m.libView.Reload(), m.statsView.Reload())
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) startSelected(startPage *int) (tea.Model, tea.Cmd) {
	if m.timerView.Running() {
		m.status = "end the running session first"
		m.activeTab = tabTimer
		return m, nil
	}
	entry, ok := m.libView.Selected()
	if !ok {
		m.status = "no book selected"
		return m, nil
	}
	return m, m.startSessionCmd(entry.ID, entry.Title, startPage)
}

func (m Model) subViewTyping() bool {
	switch m.activeTab {
	case tabLibrary:
		return m.libView.Filtering()
	case tabTimer:
		return m.timerView.Editing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.libView, _ = m.libView.Update(sz)
	m.timerView, _ = m.timerView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

func describeEnded(s sessiondto.SessionOutput) string {
	var parts []string
	if s.DurationSeconds != nil {
		parts = append(parts, timerview.ClockFace(time.Duration(max(*s.DurationSeconds, 0))*time.Second))
	}
	if s.PagesRead != nil {
		parts = append(parts, fmt.Sprintf("%d pages", *s.PagesRead))
	}
	if s.PagesPerHour != nil {
		parts = append(parts, fmt.Sprintf("%.0f p/h", *s.PagesPerHour))
	}
	status := "session ended"
	if len(parts) > 0 {
		status += ": " + strings.Join(parts, ", ")
	}
	if s.Anomalous {
		status += " (clock went backwards, duration recorded as negative)"
	}
	return status
}

// restAfter returns input with its first n fields removed.
func restAfter(input string, n int) string {
	rest := strings.TrimSpace(input)
	for i := 0; i < n; i++ {
		idx := strings.IndexFunc(rest, func(r rune) bool { return r == ' ' || r == '\t' })
		if idx < 0 {
			return ""
		}
		rest = strings.TrimSpace(rest[idx:])
	}
	return rest
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) startSessionCmd(entryID, title string, startPage *int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Start(context.Background(), m.userID, entryID, startPage)
		return sessionStartedMsg{out: out, title: title, err: err}
	}
}

func (m Model) endSessionCmd(sessionID string, endPage *int, note *string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.End(context.Background(), m.userID, sessionID, endPage, note)
		return sessionEndedMsg{out: out, err: err}
	}
}

func (m Model) action(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		return actionDoneMsg{status: status, err: err}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────

type libraryPortBridge struct {
	p      LibraryPort
	userID string
}

func (b libraryPortBridge) ListEntries(ctx context.Context) ([]librarydto.EntryOutput, error) {
	return b.p.ListEntries(ctx, b.userID, "")
}

func (b libraryPortBridge) ListProgress(ctx context.Context, entryID string) ([]librarydto.ProgressOutput, error) {
	return b.p.ListProgress(ctx, b.userID, entryID, 5)
}

type statsPortBridge struct {
	p      StatsPort
	userID string
}

func (b statsPortBridge) Dashboard(ctx context.Context) (statsdto.DashboardOutput, error) {
	return b.p.Dashboard(ctx, b.userID)
}
