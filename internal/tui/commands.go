package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gopherwork/taskdog/internal/summary"
	"github.com/gopherwork/taskdog/internal/task"
)

// weekLoadedMsg carries a freshly built week summary back into Update.
type weekLoadedMsg struct {
	summary *summary.WeekSummary
}

// errMsg carries a failed load back into Update.
type errMsg struct {
	err error
}

// loadWeek queries the repository for the week containing weekStart.
func loadWeek(repo task.Repository, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		s, err := summary.BuildWeekSummary(context.Background(), repo, weekStart)
		if err != nil {
			return errMsg{err: err}
		}
		return weekLoadedMsg{summary: s}
	}
}
