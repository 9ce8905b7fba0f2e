package optimize

import (
	"time"

	"github.com/gopherwork/taskdog/internal/ledger"
	"github.com/gopherwork/taskdog/internal/task"
)

// Fitness constants. Centralized so the scoring formula is
// the single source of truth and independently testable.
const (
	DeadlinePenaltyPerDay = 100.0
	WorkloadVarianceScale = 10.0
	SchedulingBonusPerTask = 50.0
)

// Score computes the fitness of a scheduled sequence against the final
// ledger. scheduled must be in allocation order.
// schedulingBonusEnabled toggles the 50*|scheduled| bonus term, used by
// the Monte Carlo strategy and disabled by direct single-pass
// strategies that don't need it to compare orderings.
//
// The calculator is pure: no wall clock, no randomness, no I/O.
func Score(scheduled []*task.Task, l *ledger.Ledger, schedulingBonusEnabled bool) float64 {
	n := len(scheduled)

	var priorityScore float64
	for i, t := range scheduled {
		priorityScore += float64(t.Priority) * float64(n-i)
	}

	var deadlinePenalty float64
	for _, t := range scheduled {
		if t.Deadline == nil || t.PlannedEnd == nil {
			continue
		}
		daysLate := daysBetween(*t.Deadline, *t.PlannedEnd)
		if daysLate > 0 {
			deadlinePenalty += float64(daysLate) * DeadlinePenaltyPerDay
		}
	}

	workloadPenalty := variance(l.Snapshot()) * WorkloadVarianceScale

	var schedulingBonus float64
	if schedulingBonusEnabled {
		schedulingBonus = SchedulingBonusPerTask * float64(n)
	}

	return priorityScore + schedulingBonus - deadlinePenalty - workloadPenalty
}

// daysBetween returns the whole-day difference between deadline and
// plannedEnd's calendar dates, positive when plannedEnd is later.
func daysBetween(deadline, plannedEnd time.Time) int {
	d := truncateToDay(deadline)
	p := truncateToDay(plannedEnd)
	return int(p.Sub(d).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// variance computes the population variance of a map's values. Days
// with zero allocated hours are excluded, since the formula measures
// how evenly load is spread across days actually used.
func variance(hours map[string]float64) float64 {
	var values []float64
	for _, h := range hours {
		if h > task.Epsilon {
			values = append(values, h)
		}
	}
	if len(values) == 0 {
		return 0
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sumSquares float64
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	return sumSquares / float64(len(values))
}
