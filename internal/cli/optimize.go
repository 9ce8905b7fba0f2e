package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gopherwork/taskdog/internal/task"
	"github.com/gopherwork/taskdog/internal/usecase"
)

// OptimizeOptions mirrors usecase.OptimizeRequest with CLI-friendly
// string inputs (dates, hours overrides) instead of pointers.
type OptimizeOptions struct {
	TaskIDs        []int64
	Algorithm      string
	Force          bool
	MaxHoursPerDay float64 // 0 means "use config default"
	StartDate      string  // "2006-01-02", empty means "now"
}

// RunOptimize executes C9 against the app's repository and prints a
// human-readable summary to w.
func (a *App) RunOptimize(ctx context.Context, w io.Writer, opts OptimizeOptions) error {
	req, err := a.buildOptimizeRequest(opts)
	if err != nil {
		return err
	}

	uc := &usecase.OptimizeUseCase{
		Repo:     a.Repo,
		Calendar: a.Calendar,
		Clock:    a.Clock,
		Logger:   a.Logger,
		Config:   a.Config,
	}

	summary, err := uc.Run(ctx, req)
	if err != nil {
		return err
	}

	printOptimizeSummary(w, summary)
	return nil
}

func (a *App) buildOptimizeRequest(opts OptimizeOptions) (usecase.OptimizeRequest, error) {
	req := usecase.OptimizeRequest{
		TaskIDs:       opts.TaskIDs,
		Algorithm:     opts.Algorithm,
		ForceOverride: opts.Force,
	}
	if req.Algorithm == "" {
		req.Algorithm = a.Config.Schedule.DefaultAlgorithm
	}
	if opts.MaxHoursPerDay > 0 {
		req.MaxHoursPerDay = &opts.MaxHoursPerDay
	}
	if opts.StartDate != "" {
		d, err := time.Parse("2006-01-02", opts.StartDate)
		if err != nil {
			return req, fmt.Errorf("invalid start date %q: %w", opts.StartDate, err)
		}
		req.StartDate = &d
	}
	return req, nil
}

func printOptimizeSummary(w io.Writer, s *usecase.OptimizeSummary) {
	fmt.Fprintf(w, "algorithm: %s\n", s.Algorithm)
	fmt.Fprintf(w, "scheduled: %d task(s), %.2f total hour(s)\n", len(s.ScheduledTasks), s.TotalHours)
	if s.StartDate != nil && s.EndDate != nil {
		fmt.Fprintf(w, "window: %s to %s\n", s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02"))
	}
	for _, t := range s.ScheduledTasks {
		printScheduledTask(w, t)
	}
	if len(s.RejectedTasks) > 0 {
		fmt.Fprintln(w, "rejected:")
		for _, r := range s.RejectedTasks {
			fmt.Fprintf(w, "  task %d: %s\n", r.TaskID, r.Reason)
		}
	}
	if len(s.FailedTasks) > 0 {
		fmt.Fprintln(w, "failed:")
		for _, f := range s.FailedTasks {
			fmt.Fprintf(w, "  task %d (%s): %s\n", f.Task.ID, f.Task.Name, f.Reason)
		}
	}
}

func printScheduledTask(w io.Writer, t *task.Task) {
	start, end := "-", "-"
	if t.PlannedStart != nil {
		start = t.PlannedStart.Format("2006-01-02 15:04")
	}
	if t.PlannedEnd != nil {
		end = t.PlannedEnd.Format("2006-01-02 15:04")
	}
	fmt.Fprintf(w, "  #%d %-30s %s -> %s (%.1fh)\n", t.ID, t.Name, start, end, t.TotalAllocatedHours())
}
