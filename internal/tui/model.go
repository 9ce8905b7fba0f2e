// Package tui implements a read-only terminal viewer for one week of
// scheduled work: a color-coded grid built from the view package's
// table and modal helpers, a scrollable per-day breakdown, and a
// single keybinding to copy the week as plain text. It never writes
// to the repository.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gopherwork/taskdog/internal/summary"
	"github.com/gopherwork/taskdog/internal/task"
	"github.com/gopherwork/taskdog/internal/tui/theme"
	"github.com/gopherwork/taskdog/internal/tui/view"
)

// Model is a bubbletea model rendering one week at a time.
type Model struct {
	repo      task.Repository
	weekStart time.Time
	now       time.Time
	theme     *theme.Theme

	keys keyMap
	help help.Model

	summary *summary.WeekSummary
	detail  viewport.Model

	showDetail bool
	loading    bool
	status     string
	err        error

	width, height int
}

// New builds a viewer Model opened on the week containing weekStart,
// styled with th. now marks which calendar day is highlighted as
// "today" in the header, independent of which week is being viewed.
func New(repo task.Repository, weekStart, now time.Time, th *theme.Theme) Model {
	h := help.New()
	return Model{
		repo:      repo,
		weekStart: weekStart,
		now:       now,
		theme:     th,
		keys:      defaultKeys,
		help:      h,
		detail:    viewport.New(0, 0),
		loading:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return loadWeek(m.repo, m.weekStart)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.detail = viewport.New(detailWidth(m.width), detailHeight(m.height))
		if m.summary != nil {
			m.detail.SetContent(m.weekSummaryText())
		}
		return m, nil

	case weekLoadedMsg:
		m.loading = false
		m.summary = msg.summary
		m.err = nil
		m.detail.SetContent(m.weekSummaryText())
		m.status = ""
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.PrevWeek):
			m.weekStart = m.weekStart.AddDate(0, 0, -7)
			m.loading = true
			return m, loadWeek(m.repo, m.weekStart)
		case key.Matches(msg, m.keys.NextWeek):
			m.weekStart = m.weekStart.AddDate(0, 0, 7)
			m.loading = true
			return m, loadWeek(m.repo, m.weekStart)
		case key.Matches(msg, m.keys.Detail):
			m.showDetail = !m.showDetail
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			return m.copyWeek()
		}

		if m.showDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) copyWeek() (tea.Model, tea.Cmd) {
	if m.summary == nil {
		m.status = "nothing to copy yet"
		return m, nil
	}
	if err := clipboard.WriteAll(m.weekSummaryText()); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return m, nil
	}
	m.status = "copied week to clipboard"
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading...\n"
	}
	if m.err != nil {
		return fmt.Sprintf("error: %v\npress q to quit\n", m.err)
	}
	if m.loading || m.summary == nil {
		return "loading week...\n"
	}

	base := m.renderBase()
	overlay := modalOverlay{bg: m.modalBg()}

	return view.Render(view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      base,
		ModalContent:     m.renderDetail(),
		ShowModal:        m.showDetail,
		Overlay:          overlay,
		EmptyPlaceholder: "loading...",
	})
}

func (m Model) renderBase() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", m.titleStyle().Render(m.title()))
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.statusStyle().Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) title() string {
	return fmt.Sprintf("week %s to %s  (%.1fh total)",
		m.summary.Start.Format("2006-01-02"), m.summary.End.Format("2006-01-02"), m.summary.TotalHours)
}

func (m Model) renderGrid() string {
	headers, todayCols := view.HeaderLabels(m.weekStart, m.now)
	headerStyles := make([]lipgloss.Style, len(headers))
	for i := range headers {
		if todayCols[i] {
			headerStyles[i] = lipgloss.NewStyle().Foreground(theme.Color(m.theme.Current)).Bold(true)
		} else {
			headerStyles[i] = lipgloss.NewStyle().Foreground(theme.Color(m.theme.Accent)).Bold(true)
		}
	}

	hoursRow := make([]string, 0, len(headers))
	tasksRow := make([]string, 0, len(headers))
	hoursRow = append(hoursRow, "hours")
	tasksRow = append(tasksRow, "tasks")
	for _, d := range m.summary.Days {
		hoursRow = append(hoursRow, view.FormatDuration(d.AllocatedHours))
		tasksRow = append(tasksRow, taskNames(d))
	}

	rows := [][]string{hoursRow, tasksRow}
	cellStyles := make([][]lipgloss.Style, len(rows))
	for i := range rows {
		cellStyles[i] = make([]lipgloss.Style, len(rows[i]))
		for j := range rows[i] {
			cellStyles[i][j] = lipgloss.NewStyle().Foreground(theme.Color(m.theme.Fg))
		}
	}

	return view.RenderTable(view.TableViewState{
		InnerW:       gridWidth(m.width),
		GridH:        len(rows) + 3,
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content: view.TableContent{
			Rows:       rows,
			CellStyles: cellStyles,
		},
		BorderStyle: lipgloss.NewStyle().Foreground(theme.Color(m.theme.Accent)),
		VAlign:      lipgloss.Top,
		Bg:          theme.Color(m.theme.Bg),
		Render:      true,
	})
}

func (m Model) renderDetail() string {
	if !m.showDetail {
		return ""
	}
	palette := m.theme.Modal()
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Color(palette.ModalBorder)).
		Background(theme.Color(palette.BaseBg)).
		Padding(0, 1)
	return border.Render(m.detail.View())
}

func (m Model) weekSummaryText() string {
	lines := make([]view.WeekSummaryLine, 0, 32)
	lines = append(lines, view.WeekSummaryLine{Text: m.title(), Style: view.WeekSummaryLineSection})
	for _, d := range m.summary.Days {
		lines = append(lines, view.WeekSummaryLine{
			Text:  fmt.Sprintf("%s (%s) — %s", d.Date.Format("2006-01-02"), d.Date.Weekday(), view.FormatDuration(d.AllocatedHours)),
			Style: view.WeekSummaryLineMeta,
		})
		for _, t := range d.Tasks {
			lines = append(lines, view.WeekSummaryLine{
				Text:  fmt.Sprintf("  #%d %s (%s)", t.ID, t.Name, view.FormatDuration(allocationOn(t, d.Date))),
				Style: view.WeekSummaryLineBody,
			})
		}
	}

	styles := view.WeekSummaryStyles{
		BodyStyle:         lipgloss.NewStyle().Foreground(theme.Color(m.theme.Fg)),
		MetaStyle:         lipgloss.NewStyle().Foreground(theme.Color(m.theme.FgMuted)),
		SectionTitleStyle: lipgloss.NewStyle().Foreground(theme.Color(m.theme.Accent)).Bold(true),
	}
	return view.RenderWeekSummaryBody(lines, styles, view.ModalContentWidth(lipgloss.NewStyle().Width(detailWidth(m.width)), 40))
}

func (m Model) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Color(m.theme.Accent)).Bold(true)
}

func (m Model) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Color(m.theme.Warning))
}

func (m Model) modalBg() lipgloss.Color {
	return theme.Color(m.theme.Modal().BaseBg)
}

func taskNames(d summary.DaySummary) string {
	if len(d.Tasks) == 0 {
		return "-"
	}
	names := make([]string, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

func allocationOn(t *task.Task, date time.Time) float64 {
	return t.DailyAllocations[date.Format("2006-01-02")]
}

func gridWidth(termWidth int) int {
	w := termWidth - 4
	if w < 20 {
		return 20
	}
	return w
}

func detailWidth(termWidth int) int {
	w := termWidth * 2 / 3
	if w < 30 {
		return 30
	}
	return w
}

func detailHeight(termHeight int) int {
	h := termHeight - 6
	if h < 5 {
		return 5
	}
	return h
}

// modalOverlay adapts RenderModalOverlay to view.OverlayRenderer.
type modalOverlay struct {
	bg lipgloss.Color
}

func (o modalOverlay) Render(base string, width, height int, content string) string {
	return view.RenderModalOverlay(base, content, width, height, o.bg)
}
