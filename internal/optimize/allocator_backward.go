package optimize

import (
	"time"

	"github.com/gopherwork/taskdog/internal/calendar"
	"github.com/gopherwork/taskdog/internal/ledger"
	"github.com/gopherwork/taskdog/internal/task"
)

// BackwardFromDeadlineAllocator walks backward from the task's
// deadline, skipping non-working days, until the full duration is
// committed or the walk crosses below the run's start date (spec
// §4.5.2). A task with no deadline defers to greedy-forward with a
// one-week default window.
type BackwardFromDeadlineAllocator struct{}

func (b BackwardFromDeadlineAllocator) Allocate(t *task.Task, l *ledger.Ledger, params Params) (*task.Task, map[string]float64, string) {
	if t.Deadline == nil {
		shortWindow := params
		shortWindow.HorizonDays = 7
		return GreedyForwardAllocator{}.Allocate(t, l, shortWindow)
	}

	clone := PrepareForAllocation(t)
	if clone == nil {
		return nil, nil, "no estimated duration"
	}

	cursor, err := onOrBeforeWorkingDay(params.Calendar, calendar.TruncateToDay(*clone.Deadline))
	if err != nil {
		return nil, nil, "calendar horizon exceeded while locating deadline working date"
	}

	startBound := calendar.TruncateToDay(params.StartDate)
	remaining := *clone.EstimatedDuration
	perDay := make(map[string]float64)

	for i := 0; i < params.horizon(); i++ {
		if cursor.Before(startBound) {
			break
		}
		if !params.Calendar.IsWorkingDay(cursor) {
			cursor = cursor.AddDate(0, 0, -1)
			continue
		}

		key := formatDate(cursor)
		committed := commitCapped(l, key, remaining, params)
		if committed > 0 {
			perDay[key] += committed
			remaining -= committed
		}

		if remaining <= task.Epsilon {
			break
		}
		cursor = cursor.AddDate(0, 0, -1)
	}

	if remaining > task.Epsilon {
		rollback(l, perDay)
		return nil, nil, "insufficient capacity between start and deadline"
	}
	if len(perDay) == 0 {
		rollback(l, perDay)
		return nil, nil, "no working days available in window"
	}

	firstDate, lastDate := minMaxKeys(perDay)
	if err := SetPlannedTimes(clone, firstDate, lastDate, perDay, params.DefaultStartHour, params.DefaultEndHour); err != nil {
		rollback(l, perDay)
		return nil, nil, err.Error()
	}

	return clone, perDay, ""
}

// onOrBeforeWorkingDay returns date if it is already a working day,
// otherwise the nearest working day before it.
func onOrBeforeWorkingDay(cal *calendar.Oracle, date time.Time) (time.Time, error) {
	if cal.IsWorkingDay(date) {
		return date, nil
	}
	return cal.PrevWorkingDay(date.AddDate(0, 0, 1))
}
