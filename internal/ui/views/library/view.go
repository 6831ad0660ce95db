package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	libdto "readrise/internal/modules/library/dto"
	"readrise/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type LibraryPort interface {
	ListEntries(ctx context.Context) ([]libdto.EntryOutput, error)
	ListProgress(ctx context.Context, entryID string) ([]libdto.ProgressOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type EntriesLoadedMsg struct {
	Entries []libdto.EntryOutput
	Err     error
}

type ProgressLoadedMsg struct {
	EntryID  string
	Progress []libdto.ProgressOutput
	Err      error
}

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	entry libdto.EntryOutput
}

func (i entryItem) Title() string { return i.entry.Title }
func (i entryItem) Description() string {
	desc := theme.Shelf(i.entry.Shelf)
	if len(i.entry.Authors) > 0 {
		desc += "  " + strings.Join(i.entry.Authors, ", ")
	}
	return desc
}
func (i entryItem) FilterValue() string {
	return i.entry.Title + " " + strings.Join(i.entry.Authors, " ")
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     LibraryPort
	list     list.Model
	progress []libdto.ProgressOutput
	preview  viewport.Model
	spinner  spinner.Model
	loading  bool
	width    int
	height   int
}

func New(port LibraryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Shelves"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the shelves again, keeping the current selection when possible.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.port.ListEntries(context.Background())
		return EntriesLoadedMsg{Entries: entries, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case EntriesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Shelves: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Shelves"
		prev := m.list.Index()
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if prev < len(items) {
			m.list.Select(prev)
		}
		if item, ok := m.list.SelectedItem().(entryItem); ok {
			cmds = append(cmds, m.loadProgressCmd(item.entry.ID))
		}
		m.preview.SetContent(m.renderDetail())

	case ProgressLoadedMsg:
		if item, ok := m.list.SelectedItem().(entryItem); ok && item.entry.ID == msg.EntryID {
			m.progress = nil
			if msg.Err == nil {
				m.progress = msg.Progress
			}
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.progress = nil
			m.preview.SetContent(m.renderDetail())
			if item, ok := m.list.SelectedItem().(entryItem); ok {
				cmds = append(cmds, m.loadProgressCmd(item.entry.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading shelves…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (libdto.EntryOutput, bool) {
	if item, ok := m.list.SelectedItem().(entryItem); ok {
		return item.entry, true
	}
	return libdto.EntryOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = max(detailW-4, 1)
	m.preview.Height = max(m.height-4, 1)
}

func (m Model) renderDetail() string {
	e, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("Add a book with `readrise book add` to get started")
	}
	return RenderEntry(e, m.progress)
}

// RenderEntry formats an entry and its recent progress for the detail pane.
func RenderEntry(e libdto.EntryOutput, progress []libdto.ProgressOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(e.Title) + "\n\n")
	if len(e.Authors) > 0 {
		sb.WriteString(theme.Muted.Render("by:       ") + strings.Join(e.Authors, ", ") + "\n")
	}
	sb.WriteString(theme.Muted.Render("shelf:    ") + theme.Shelf(e.Shelf) + "\n")
	if len(e.Genres) > 0 {
		sb.WriteString(theme.Muted.Render("genres:   ") + strings.Join(e.Genres, ", ") + "\n")
	}
	if e.PageCount != nil {
		sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("pages:    "), *e.PageCount))
	}
	if e.StartedOn != nil {
		sb.WriteString(theme.Muted.Render("started:  ") + e.StartedOn.String() + "\n")
	}
	if e.FinishedOn != nil {
		sb.WriteString(theme.Muted.Render("finished: ") + e.FinishedOn.String() + "\n")
	}
	if e.AbandonedOn != nil {
		sb.WriteString(theme.Muted.Render("dropped:  ") + e.AbandonedOn.String() + "\n")
	}
	if len(progress) > 0 {
		latest := progress[0]
		sb.WriteString(fmt.Sprintf("\n%s %s %.0f%% (p. %d)\n",
			theme.Muted.Render("progress:"), theme.Bar(latest.Percent, 20), latest.Percent*100, latest.Page))
		for _, p := range progress[:min(len(progress), 5)] {
			line := fmt.Sprintf("  %s  p. %d", p.LoggedAt.Format("2006-01-02"), p.Page)
			if p.Note != nil && *p.Note != "" {
				line += "  " + *p.Note
			}
			sb.WriteString(theme.Muted.Render(line) + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("s: start session  :: palette"))
	return sb.String()
}

func (m Model) loadProgressCmd(id string) tea.Cmd {
	return func() tea.Msg {
		progress, err := m.port.ListProgress(context.Background(), id)
		return ProgressLoadedMsg{EntryID: id, Progress: progress, Err: err}
	}
}
