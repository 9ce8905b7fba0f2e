package optimize

import (
	"time"

	"github.com/gopherwork/taskdog/internal/calendar"
	"github.com/gopherwork/taskdog/internal/ledger"
	"github.com/gopherwork/taskdog/internal/task"
)

// defaultBalancedWindowDays is the fallback window width.
const defaultBalancedWindowDays = 14

// BalancedAllocator spreads a task's hours evenly across the working
// days between the run start and the task's deadline (or a two-week
// default window), redistributing any shortfall caused by per-day
// capacity limits in a second pass. Falls back to
// greedy-forward when the even target itself exceeds the daily cap.
type BalancedAllocator struct{}

func (b BalancedAllocator) Allocate(t *task.Task, l *ledger.Ledger, params Params) (*task.Task, map[string]float64, string) {
	clone := PrepareForAllocation(t)
	if clone == nil {
		return nil, nil, "no estimated duration"
	}

	windowStart, err := laterWorkingDay(params.Calendar, params.StartDate, params.Now.Now())
	if err != nil {
		return nil, nil, "calendar horizon exceeded while locating start date"
	}

	var windowEnd time.Time
	if clone.Deadline != nil {
		windowEnd, err = onOrBeforeWorkingDay(params.Calendar, calendar.TruncateToDay(*clone.Deadline))
		if err != nil {
			return nil, nil, "calendar horizon exceeded while locating deadline working date"
		}
	} else {
		windowEnd = windowStart.AddDate(0, 0, defaultBalancedWindowDays-1)
	}

	if windowEnd.Before(windowStart) {
		return nil, nil, "deadline precedes start date"
	}

	var workingDays []time.Time
	for d := windowStart; !d.After(windowEnd); d = d.AddDate(0, 0, 1) {
		if params.Calendar.IsWorkingDay(d) {
			workingDays = append(workingDays, d)
		}
	}
	if len(workingDays) == 0 {
		return nil, nil, "no working days available in window"
	}

	duration := *clone.EstimatedDuration
	target := duration / float64(len(workingDays))
	if target > params.MaxHoursPerDay {
		return GreedyForwardAllocator{}.Allocate(t, l, params)
	}

	perDay := make(map[string]float64)
	var shortfall float64

	for _, d := range workingDays {
		key := formatDate(d)
		committed := commitCapped(l, key, target, params)
		if committed > 0 {
			perDay[key] += committed
		}
		shortfall += target - committed
	}

	if shortfall > task.Epsilon {
		for _, d := range workingDays {
			if shortfall <= task.Epsilon {
				break
			}
			key := formatDate(d)
			extra := commitCapped(l, key, shortfall, params)
			if extra > 0 {
				perDay[key] += extra
				shortfall -= extra
			}
		}
	}

	if shortfall > task.Epsilon {
		rollback(l, perDay)
		return nil, nil, "capacity shortfall after redistribution"
	}
	if len(perDay) == 0 {
		return nil, nil, "no working days available in window"
	}

	firstDate, lastDate := minMaxKeys(perDay)
	if err := SetPlannedTimes(clone, firstDate, lastDate, perDay, params.DefaultStartHour, params.DefaultEndHour); err != nil {
		rollback(l, perDay)
		return nil, nil, err.Error()
	}

	return clone, perDay, ""
}
