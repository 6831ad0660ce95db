package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "readrise/internal/modules/stats/dto"
	"readrise/internal/ui/theme"
)

type DashboardPort interface {
	Dashboard(ctx context.Context) (statsdto.DashboardOutput, error)
}

type LoadedMsg struct {
	Dashboard statsdto.DashboardOutput
	Err       error
}

type Model struct {
	port    DashboardPort
	data    statsdto.DashboardOutput
	err     error
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port DashboardPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		d, err := m.port.Dashboard(context.Background())
		return LoadedMsg{Dashboard: d, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.loading = false
		m.data = msg.Dashboard
		m.err = msg.Err
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch {
	case m.loading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Crunching numbers…")
	case m.err != nil:
		return theme.Bad.Render("stats: " + m.err.Error())
	}
	return Render(m.data, m.width)
}

// Render lays the dashboard out as panes: streak and goal, totals, then the monthly and genre breakdowns.
func Render(d statsdto.DashboardOutput, width int) string {
	if width < 40 {
		width = 80
	}
	half := width/2 - 2

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(half).Render(renderStreak(d.Stats.Streak)),
		theme.Pane.Width(half).Render(renderGoal(d.Goal, half-4)),
	)
	totals := theme.Pane.Width(width - 2).Render(renderTotals(d.Stats))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(half).Render(renderMonths(d.Stats.BooksPerMonth)),
		theme.Pane.Width(half).Render(renderGenres(d.Stats.GenreBreakdown, half-4)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, totals, bottom)
}

func renderStreak(s statsdto.StreakOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Streak") + "\n")
	sb.WriteString(theme.Big.Render(fmt.Sprintf("%d", s.CurrentStreak)) + theme.Muted.Render(" days current") + "\n")
	sb.WriteString(fmt.Sprintf("%d", s.LongestStreak) + theme.Muted.Render(" days longest"))
	if s.LastActiveDate != nil {
		sb.WriteString("\n" + theme.Muted.Render("last read "+s.LastActiveDate.String()))
	}
	return sb.String()
}

func renderGoal(g *statsdto.GoalProgress, barWidth int) string {
	if g == nil {
		return theme.Title.Render("Goal") + "\n" + theme.Muted.Render("no goal this year\nset one with `readrise goal set`")
	}
	return fmt.Sprintf("%s\n%d / %d books in %d\n%s %.0f%%",
		theme.Title.Render("Goal"), g.Finished, g.Target, g.Year,
		theme.Bar(g.Percent, max(barWidth-6, 1)), g.Percent*100)
}

func renderTotals(s statsdto.StatsOutput) string {
	pace := "n/a"
	if s.AveragePagesPerHour != nil {
		pace = fmt.Sprintf("%d p/h", *s.AveragePagesPerHour)
	}
	cells := []string{
		stat("books this year", fmt.Sprintf("%d", s.BooksReadThisYear)),
		stat("pages this year", fmt.Sprintf("%d", s.TotalPagesThisYear)),
		stat("pages all time", fmt.Sprintf("%d", s.TotalPagesAllTime)),
		stat("hours all time", fmt.Sprintf("%d", s.TotalHoursAllTime)),
		stat("average pace", pace),
	}
	return strings.Join(cells, "   ")
}

func stat(label, value string) string {
	return theme.Big.Render(value) + " " + theme.Muted.Render(label)
}

func renderMonths(months [12]int) string {
	peak := 0
	for _, n := range months {
		peak = max(peak, n)
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Finished per month"))
	for i, n := range months {
		label := time.Month(i + 1).String()[:3]
		frac := 0.0
		if peak > 0 {
			frac = float64(n) / float64(peak)
		}
		sb.WriteString(fmt.Sprintf("\n%s %s %d", theme.Muted.Render(label), theme.Bar(frac, 12), n))
	}
	return sb.String()
}

func renderGenres(genres []statsdto.GenreCount, width int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Top genres"))
	if len(genres) == 0 {
		sb.WriteString("\n" + theme.Muted.Render("finish a book to see genres"))
		return sb.String()
	}
	for _, g := range genres {
		name := g.Genre
		if r := []rune(name); width > 9 && len(r) > width-6 {
			name = string(r[:width-9]) + "..."
		}
		sb.WriteString(fmt.Sprintf("\n%s %s", theme.Big.Render(fmt.Sprintf("%3d", g.Count)), name))
	}
	return sb.String()
}
