package usecase

import (
	"context"
	"time"

	"github.com/gopherwork/taskdog/internal/calendar"
	"github.com/gopherwork/taskdog/internal/clock"
	"github.com/gopherwork/taskdog/internal/config"
	"github.com/gopherwork/taskdog/internal/logging"
	"github.com/gopherwork/taskdog/internal/optimize"
	"github.com/gopherwork/taskdog/internal/task"
)

// OptimizeRequest is the optimize use case's input.
type OptimizeRequest struct {
	// TaskIDs, if empty, means "optimize all schedulable tasks".
	TaskIDs        []int64
	Algorithm      string
	ForceOverride  bool
	MaxHoursPerDay *float64 // override config default when set
	StartDate      *time.Time
}

// TaskRejection records why an explicitly requested task id was
// excluded from the run without aborting it.
type TaskRejection struct {
	TaskID int64
	Reason string
}

// OptimizeSummary is the optimize use case's output.
type OptimizeSummary struct {
	ScheduledTasks []*task.Task
	FailedTasks    []optimize.SchedulingFailure
	RejectedTasks  []TaskRejection
	TotalHours     float64
	StartDate      *time.Time
	EndDate        *time.Time
	Algorithm      string
}

// OptimizeUseCase wires the optimization engine to its collaborators:
// the task repository, calendar, clock, logger, and configuration.
type OptimizeUseCase struct {
	Repo     task.Repository
	Calendar *calendar.Oracle
	Clock    clock.Provider
	Logger   logging.Logger
	Config   *config.Config
}

// Run executes the optimize use case.
func (u *OptimizeUseCase) Run(ctx context.Context, req OptimizeRequest) (*OptimizeSummary, error) {
	allTasks, err := u.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*task.Task, len(allTasks))
	for _, t := range allTasks {
		byID[t.ID] = t
	}

	var candidates []*task.Task
	var rejected []TaskRejection

	if len(req.TaskIDs) > 0 {
		reasons := make(map[int64]string)
		for _, id := range req.TaskIDs {
			t, ok := byID[id]
			if !ok {
				return nil, &TaskNotFoundError{ID: id}
			}
			if optimize.IsSchedulable(t, req.ForceOverride) {
				candidates = append(candidates, t)
			} else {
				reason := optimize.SchedulabilityReason(t, req.ForceOverride)
				rejected = append(rejected, TaskRejection{TaskID: id, Reason: reason})
				reasons[id] = reason
			}
		}
		if len(candidates) == 0 {
			return nil, &NoSchedulableTasksError{IDs: req.TaskIDs, Reasons: reasons}
		}
	} else {
		for _, t := range allTasks {
			if optimize.IsSchedulable(t, req.ForceOverride) {
				candidates = append(candidates, t)
			}
		}
	}

	strategy, err := optimize.Create(req.Algorithm, u.Config.Schedule.DefaultStartHour, u.Config.Schedule.DefaultEndHour)
	if err != nil {
		return nil, err
	}

	params := u.buildParams(req)

	result, err := strategy.Optimize(candidates, allTasks, params)
	if err != nil {
		return nil, err
	}

	if len(result.Scheduled) > 0 {
		if err := u.Repo.SaveAll(ctx, result.Scheduled); err != nil {
			return nil, err
		}
	}

	if u.Logger != nil {
		u.Logger.Info("optimize run completed",
			"algorithm", req.Algorithm,
			"scheduled", len(result.Scheduled),
			"failed", len(result.Failures),
			"rejected", len(rejected),
		)
	}

	return summarize(req.Algorithm, result, rejected), nil
}

func (u *OptimizeUseCase) buildParams(req OptimizeRequest) optimize.Params {
	maxHours := u.Config.Schedule.MaxHoursPerDay
	if req.MaxHoursPerDay != nil {
		maxHours = *req.MaxHoursPerDay
	}
	startDate := u.Clock.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	return optimize.Params{
		StartDate:        startDate,
		MaxHoursPerDay:   maxHours,
		ForceOverride:    req.ForceOverride,
		Now:              u.Clock,
		Calendar:         u.Calendar,
		DefaultStartHour: u.Config.Schedule.DefaultStartHour,
		DefaultEndHour:   u.Config.Schedule.DefaultEndHour,
	}
}

func summarize(algorithm string, result *optimize.Result, rejected []TaskRejection) *OptimizeSummary {
	summary := &OptimizeSummary{
		ScheduledTasks: result.Scheduled,
		FailedTasks:    result.Failures,
		RejectedTasks:  rejected,
		Algorithm:      algorithm,
	}

	for _, t := range result.Scheduled {
		summary.TotalHours += t.TotalAllocatedHours()
		if t.PlannedStart != nil && (summary.StartDate == nil || t.PlannedStart.Before(*summary.StartDate)) {
			summary.StartDate = t.PlannedStart
		}
		if t.PlannedEnd != nil && (summary.EndDate == nil || t.PlannedEnd.After(*summary.EndDate)) {
			summary.EndDate = t.PlannedEnd
		}
	}

	return summary
}
