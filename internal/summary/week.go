// Package summary aggregates a completed optimization run into
// per-day/per-week totals for the TUI viewer and CLI output. It only
// reads the ledger and scheduled tasks; it never evaluates or mutates
// them.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/gopherwork/taskdog/internal/dateutil"
	"github.com/gopherwork/taskdog/internal/ledger"
	"github.com/gopherwork/taskdog/internal/task"
)

// DaySummary is one day's aggregated workload.
type DaySummary struct {
	Date           time.Time
	AllocatedHours float64
	Tasks          []*task.Task
}

// WeekSummary holds aggregated week data for a Monday-to-Sunday
// window.
type WeekSummary struct {
	Start      time.Time
	End        time.Time
	Days       [7]DaySummary
	TotalHours float64
}

// SummarizeWeek builds a WeekSummary for the week containing weekStart
// from the given tasks' DailyAllocations.
func SummarizeWeek(weekStart time.Time, tasks []*task.Task) *WeekSummary {
	start, end := dateutil.WeekRange(weekStart)
	week := task.NewWeekFromTasks(start, tasks)

	summary := &WeekSummary{Start: start, End: end}
	for i, day := range week.Days {
		summary.Days[i] = DaySummary{
			Date:           day.Date,
			AllocatedHours: day.AllocatedHours(),
			Tasks:          day.Tasks(),
		}
		summary.TotalHours += day.AllocatedHours()
	}
	return summary
}

// BuildWeekSummary loads every task from the repository and summarizes
// the week containing weekStart.
func BuildWeekSummary(ctx context.Context, repo task.Repository, weekStart time.Time) (*WeekSummary, error) {
	if weekStart.IsZero() {
		weekStart = time.Now()
	}

	tasks, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}

	return SummarizeWeek(weekStart, tasks), nil
}

// LedgerSummary describes the committed hours on a single ledger for a
// date range, independent of which tasks hold them — useful for
// previewing a simulate run's effect on capacity after the trial
// allocation has already been discarded.
type LedgerSummary struct {
	Dates []string
	Hours map[string]float64
	Total float64
}

// SummarizeLedger reports the committed hours in l for each date in
// [start, end] inclusive (formatted "2006-01-02").
func SummarizeLedger(l *ledger.Ledger, start, end time.Time) *LedgerSummary {
	summary := &LedgerSummary{Hours: make(map[string]float64)}

	for d := truncateToDay(start); !d.After(truncateToDay(end)); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		hours := l.Balance(key)
		summary.Dates = append(summary.Dates, key)
		summary.Hours[key] = hours
		summary.Total += hours
	}

	return summary
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
