package usecase

import (
	"context"

	"github.com/gopherwork/taskdog/internal/calendar"
	"github.com/gopherwork/taskdog/internal/clock"
	"github.com/gopherwork/taskdog/internal/config"
	"github.com/gopherwork/taskdog/internal/logging"
	"github.com/gopherwork/taskdog/internal/optimize"
	"github.com/gopherwork/taskdog/internal/task"
)

// virtualTaskID is the reserved id simulate uses for the hypothetical
// task under consideration. It never collides with a
// real persisted task since the repository only assigns positive ids.
const virtualTaskID int64 = -1

// SimulateOutcome is one algorithm's result for the hypothetical task.
type SimulateOutcome struct {
	Algorithm string
	Task      *task.Task // nil on failure
	Reason    string     // set when Task is nil
}

// SimulateSummary is the best outcome across every registered
// algorithm, plus every individual attempt for transparency.
type SimulateSummary struct {
	Best     *SimulateOutcome
	Attempts []SimulateOutcome
}

// SimulateUseCase runs a hypothetical task through every available
// algorithm to preview where it would land, without persisting
// anything.
type SimulateUseCase struct {
	Repo     task.Repository
	Calendar *calendar.Oracle
	Clock    clock.Provider
	Logger   logging.Logger
	Config   *config.Config
}

// Run executes the simulate use case.
func (u *SimulateUseCase) Run(ctx context.Context, req OptimizeRequest, virtual *task.Task) (*SimulateSummary, error) {
	allTasks, err := u.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	virtual.ID = virtualTaskID
	contextTasks := append(append([]*task.Task{}, allTasks...), virtual)
	candidates := []*task.Task{virtual}

	names := optimize.ListAvailable()
	attempts := make([]SimulateOutcome, 0, len(names))

	var best *SimulateOutcome
	for _, name := range names {
		strategy, err := optimize.Create(name, u.Config.Schedule.DefaultStartHour, u.Config.Schedule.DefaultEndHour)
		if err != nil {
			return nil, err
		}

		params := u.buildParams(req)
		result, err := strategy.Optimize(candidates, contextTasks, params)
		if err != nil {
			attempts = append(attempts, SimulateOutcome{Algorithm: name, Reason: err.Error()})
			continue
		}

		if len(result.Failures) > 0 {
			attempts = append(attempts, SimulateOutcome{Algorithm: name, Reason: result.Failures[0].Reason})
			continue
		}

		if len(result.Scheduled) != 1 {
			attempts = append(attempts, SimulateOutcome{Algorithm: name, Reason: "strategy produced no placement"})
			continue
		}

		outcome := SimulateOutcome{Algorithm: name, Task: result.Scheduled[0]}
		attempts = append(attempts, outcome)

		if best == nil || earlier(outcome.Task, best.Task) {
			chosen := outcome
			best = &chosen
		}
	}

	if best == nil {
		return &SimulateSummary{Best: &attempts[0], Attempts: attempts}, nil
	}

	return &SimulateSummary{Best: best, Attempts: attempts}, nil
}

func earlier(a, b *task.Task) bool {
	if a.PlannedEnd == nil {
		return false
	}
	if b.PlannedEnd == nil {
		return true
	}
	return a.PlannedEnd.Before(*b.PlannedEnd)
}

func (u *SimulateUseCase) buildParams(req OptimizeRequest) optimize.Params {
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
		ForceOverride:    true,
		Now:              u.Clock,
		Calendar:         u.Calendar,
		DefaultStartHour: u.Config.Schedule.DefaultStartHour,
		DefaultEndHour:   u.Config.Schedule.DefaultEndHour,
	}
}
