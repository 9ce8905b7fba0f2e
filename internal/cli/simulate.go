package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/gopherwork/taskdog/internal/task"
	"github.com/gopherwork/taskdog/internal/usecase"
)

// SimulateOptions describes the virtual task to preview.
type SimulateOptions struct {
	Name              string
	Priority          int
	EstimatedDuration float64
	Deadline          string // "2006-01-02", optional
	StartDate         string // "2006-01-02", optional override
	MaxHoursPerDay    float64
}

// RunSimulate builds a virtual task from opts, runs C10 against every
// registered algorithm, and prints the best outcome plus every
// attempt. Nothing is persisted.
func (a *App) RunSimulate(ctx context.Context, w io.Writer, opts SimulateOptions) error {
	duration := opts.EstimatedDuration
	virtual, err := task.New(opts.Name, opts.Priority, &duration)
	if err != nil {
		return err
	}
	if opts.Deadline != "" {
		d, err := parseDate(opts.Deadline)
		if err != nil {
			return fmt.Errorf("invalid deadline %q: %w", opts.Deadline, err)
		}
		virtual.Deadline = &d
	}

	req, err := a.buildOptimizeRequest(OptimizeOptions{
		StartDate:      opts.StartDate,
		MaxHoursPerDay: opts.MaxHoursPerDay,
	})
	if err != nil {
		return err
	}

	uc := &usecase.SimulateUseCase{
		Repo:     a.Repo,
		Calendar: a.Calendar,
		Clock:    a.Clock,
		Logger:   a.Logger,
		Config:   a.Config,
	}

	summary, err := uc.Run(ctx, req, virtual)
	if err != nil {
		return err
	}

	printSimulateSummary(w, summary)
	return nil
}

func printSimulateSummary(w io.Writer, s *usecase.SimulateSummary) {
	fmt.Fprintln(w, "attempts:")
	for _, a := range s.Attempts {
		if a.Task != nil {
			fmt.Fprintf(w, "  %-18s -> ", a.Algorithm)
			printScheduledTask(w, a.Task)
		} else {
			fmt.Fprintf(w, "  %-18s failed: %s\n", a.Algorithm, a.Reason)
		}
	}
	if s.Best != nil && s.Best.Task != nil {
		fmt.Fprintf(w, "best: %s\n", s.Best.Algorithm)
		printScheduledTask(w, s.Best.Task)
	} else if s.Best != nil {
		fmt.Fprintf(w, "no algorithm could place the task: %s\n", s.Best.Reason)
	}
}
