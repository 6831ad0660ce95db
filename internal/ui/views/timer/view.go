package timer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "readrise/internal/modules/session/dto"
	"readrise/internal/ui/theme"
)

// EndRequestedMsg asks the owner to close the running session.
type EndRequestedMsg struct {
	SessionID string
	EndPage   *int
	Note      *string
}

// TickMsg redraws the clock; ticks from a replaced session are dropped.
type TickMsg struct {
	gen int
	At  time.Time
}

type keyMap struct {
	End    key.Binding
	Submit key.Binding
	Next   key.Binding
	Cancel key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.End, k.Submit, k.Next, k.Cancel}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeys() keyMap {
	return keyMap{
		End:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"), key.WithDisabled()),
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"), key.WithDisabled()),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "keep reading"), key.WithDisabled()),
	}
}

// Model shows the elapsed time of the running session and collects the
// end page and note when the reader stops.
type Model struct {
	session sessiondto.SessionOutput
	title   string
	running bool
	gen     int
	editing bool
	focus   int
	page    textinput.Model
	note    textinput.Model
	keys    keyMap
	help    help.Model
	now     func() time.Time
	err     string
	width   int
	height  int
}

func New(now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	page := textinput.New()
	page.Placeholder = "end page"
	page.CharLimit = 6
	page.Width = 10
	page.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}
	note := textinput.New()
	note.Placeholder = "note (optional)"
	note.CharLimit = 500
	note.Width = 40
	return Model{page: page, note: note, keys: defaultKeys(), help: help.New(), now: now}
}

// Start attaches a running session and begins ticking.
func (m *Model) Start(s sessiondto.SessionOutput, title string) tea.Cmd {
	m.session = s
	m.title = title
	m.running = true
	m.gen++
	m.err = ""
	m.setEditing(false)
	return tick(m.gen)
}

// Stop detaches the session after it has been closed.
func (m *Model) Stop() {
	m.running = false
	m.setEditing(false)
	m.session = sessiondto.SessionOutput{}
}

func (m Model) Running() bool { return m.running }

// Editing reports whether the end form has focus, in which case global keys must yield.
func (m Model) Editing() bool { return m.editing }

func (m Model) Session() sessiondto.SessionOutput { return m.session }

func (m Model) Title() string { return m.title }

// Elapsed is the wall time since the session started, never negative.
func (m Model) Elapsed() time.Duration {
	if !m.running {
		return 0
	}
	return max(m.now().Sub(m.session.StartedAt), 0)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		if m.running && msg.gen == m.gen {
			return m, tick(m.gen)
		}
		return m, nil
	case tea.KeyMsg:
		if !m.running {
			return m, nil
		}
		if !m.editing {
			if key.Matches(msg, m.keys.End) {
				cmd := m.setEditing(true)
				return m, cmd
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.setEditing(false)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.focus = (m.focus + 1) % 2
			cmd := m.focusField()
			return m, cmd
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}
	var cmd tea.Cmd
	if m.editing {
		if m.focus == 0 {
			m.page, cmd = m.page.Update(msg)
		} else {
			m.note, cmd = m.note.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) View() string {
	if !m.running {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No session running. Select a book in Library and press s."))
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.title) + "\n\n")
	sb.WriteString(theme.Big.Render(ClockFace(m.Elapsed())) + "\n")
	sb.WriteString(theme.Muted.Render("started "+m.session.StartedAt.Local().Format("15:04")))
	if m.session.PagesStart != nil {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf(" on page %d", *m.session.PagesStart)))
	}
	sb.WriteString("\n\n")
	if m.editing {
		sb.WriteString("page  " + m.page.View() + "\n")
		sb.WriteString("note  " + m.note.View() + "\n")
	}
	if m.err != "" {
		sb.WriteString(theme.Bad.Render(m.err) + "\n")
	}
	sb.WriteString("\n" + m.help.View(m.keys))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(sb.String()))
}

// ClockFace formats d as HH:MM:SS.
func ClockFace(d time.Duration) string {
	s := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

func (m Model) submit() (Model, tea.Cmd) {
	req := EndRequestedMsg{SessionID: m.session.ID}
	if raw := strings.TrimSpace(m.page.Value()); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			m.err = "end page must be a whole number"
			return m, nil
		}
		req.EndPage = &page
	}
	if note := strings.TrimSpace(m.note.Value()); note != "" {
		req.Note = &note
	}
	m.err = ""
	m.setEditing(false)
	return m, func() tea.Msg { return req }
}

func (m *Model) setEditing(on bool) tea.Cmd {
	m.editing = on
	m.keys.End.SetEnabled(!on)
	m.keys.Submit.SetEnabled(on)
	m.keys.Next.SetEnabled(on)
	m.keys.Cancel.SetEnabled(on)
	m.page.Blur()
	m.note.Blur()
	if !on {
		m.page.SetValue("")
		m.note.SetValue("")
		return nil
	}
	m.focus = 0
	return m.focusField()
}

func (m *Model) focusField() tea.Cmd {
	if m.focus == 0 {
		m.note.Blur()
		return m.page.Focus()
	}
	m.page.Blur()
	return m.note.Focus()
}

func tick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg{gen: gen, At: t} })
}
