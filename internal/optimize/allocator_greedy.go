package optimize

import (
	"github.com/gopherwork/taskdog/internal/ledger"
	"github.com/gopherwork/taskdog/internal/task"
)

// GreedyForwardAllocator advances date-by-date from the later of the
// run's start date and today, skipping non-working days, committing
// as many hours as fit each day until the task's duration is fully
// placed or a search horizon is exceeded.
type GreedyForwardAllocator struct{}

func (GreedyForwardAllocator) Allocate(t *task.Task, l *ledger.Ledger, params Params) (*task.Task, map[string]float64, string) {
	clone := PrepareForAllocation(t)
	if clone == nil {
		return nil, nil, "no estimated duration"
	}

	cursor, err := laterWorkingDay(params.Calendar, params.StartDate, params.Now.Now())
	if err != nil {
		return nil, nil, "calendar horizon exceeded while locating start date"
	}

	remaining := *clone.EstimatedDuration
	perDay := make(map[string]float64)

	for i := 0; i < params.horizon(); i++ {
		if !params.Calendar.IsWorkingDay(cursor) {
			cursor = cursor.AddDate(0, 0, 1)
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
		cursor = cursor.AddDate(0, 0, 1)
	}

	if remaining > task.Epsilon {
		rollback(l, perDay)
		return nil, nil, "insufficient capacity before horizon"
	}
	if len(perDay) == 0 {
		rollback(l, perDay)
		return nil, nil, "no working days available in window"
	}

	firstDate, lastDate := minMaxKeys(perDay)
	if params.HardDeadline && clone.Deadline != nil {
		if lastDate > formatDate(*clone.Deadline) {
			rollback(l, perDay)
			return nil, nil, "would finish after hard deadline"
		}
	}

	if err := SetPlannedTimes(clone, firstDate, lastDate, perDay, params.DefaultStartHour, params.DefaultEndHour); err != nil {
		rollback(l, perDay)
		return nil, nil, err.Error()
	}

	return clone, perDay, ""
}
