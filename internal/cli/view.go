package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gopherwork/taskdog/internal/summary"
	"github.com/gopherwork/taskdog/internal/tui"
	"github.com/gopherwork/taskdog/internal/tui/theme"
)

// RunWeek prints the week containing weekStart (Monday-Sunday), one
// line per day with its allocated hours and task names.
func (a *App) RunWeek(ctx context.Context, w io.Writer, weekStart time.Time) error {
	week, err := summary.BuildWeekSummary(ctx, a.Repo, weekStart)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "week %s to %s (%.1fh total)\n",
		week.Start.Format("2006-01-02"), week.End.Format("2006-01-02"), week.TotalHours)
	for _, day := range week.Days {
		fmt.Fprintf(w, "  %s (%s) %.1fh\n", day.Date.Format("2006-01-02"), day.Date.Weekday(), day.AllocatedHours)
		for _, t := range day.Tasks {
			fmt.Fprintf(w, "    #%d %s\n", t.ID, t.Name)
		}
	}
	return nil
}

// RunList prints every task in the repository, one line each.
func (a *App) RunList(ctx context.Context, w io.Writer) error {
	tasks, err := a.Repo.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		deadline := "-"
		if t.Deadline != nil {
			deadline = t.Deadline.Format("2006-01-02")
		}
		fmt.Fprintf(w, "#%-5d %-30s status=%-11s priority=%-3d deadline=%s\n",
			t.ID, t.Name, t.Status, t.Priority, deadline)
	}
	return nil
}

// RunTUIView launches the interactive read-only week viewer starting
// at weekStart, themed per the configured (or overridden) palette.
func (a *App) RunTUIView(ctx context.Context, weekStart time.Time, themeOverride string) error {
	name := a.Config.UI.Theme
	if themeOverride != "" {
		name = themeOverride
	}
	th, err := theme.Load(name)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}

	program := tea.NewProgram(tui.New(a.Repo, weekStart, a.Clock.Now(), th), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
