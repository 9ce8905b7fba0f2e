package optimize

import (
	"time"

	"github.com/gopherwork/taskdog/internal/calendar"
	"github.com/gopherwork/taskdog/internal/clock"
	"github.com/gopherwork/taskdog/internal/ledger"
	"github.com/gopherwork/taskdog/internal/task"
)

// Params is the immutable run configuration shared by every allocator
// and strategy invocation.
type Params struct {
	StartDate        time.Time
	MaxHoursPerDay   float64
	ForceOverride    bool
	Now              clock.Provider
	Calendar         *calendar.Oracle
	DefaultStartHour float64
	DefaultEndHour   float64
	// HardDeadline, when true, makes the greedy-forward allocator fail
	// rather than merely incur a fitness penalty when the allocation
	// would finish after the task's deadline.
	HardDeadline bool
	// HorizonDays bounds the forward/backward search before giving up.
	// Zero selects the default of one year.
	HorizonDays int
	// Seed, when non-nil, makes the Monte Carlo strategy's random
	// orderings reproducible across runs.
	Seed *int64
}

func (p Params) horizon() int {
	if p.HorizonDays > 0 {
		return p.HorizonDays
	}
	return 365
}

// AllocationFailure records why a single candidate could not be
// scheduled. It is captured into a Result, never raised as an error.
type AllocationFailure struct {
	Task   *task.Task
	Reason string
}

// Allocator places one task's hours on the shared ledger and writes
// its planned window. On failure it must leave the ledger bit-identical
// to its input state.
type Allocator interface {
	Allocate(t *task.Task, l *ledger.Ledger, params Params) (*task.Task, map[string]float64, string)
}

// commitCapped commits min(remaining, available) hours to date and
// returns the amount actually committed. It never pushes ledger[date]
// past params.MaxHoursPerDay.
func commitCapped(l *ledger.Ledger, date string, remaining float64, params Params) float64 {
	available := ledger.AvailableHours(l, date, params.MaxHoursPerDay, params.Now, params.DefaultEndHour)
	amount := remaining
	if available < amount {
		amount = available
	}
	if amount <= 0 {
		return 0
	}
	l.Commit(date, amount)
	return amount
}

// rollback uncommits every entry previously recorded in perDay,
// restoring the ledger to its pre-attempt state.
func rollback(l *ledger.Ledger, perDay map[string]float64) {
	for date, hours := range perDay {
		if hours > 0 {
			l.Uncommit(date, hours)
		}
	}
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// onOrAfterWorkingDay returns date if it is already a working day,
// otherwise the next working day after it.
func onOrAfterWorkingDay(cal *calendar.Oracle, date time.Time) (time.Time, error) {
	if cal.IsWorkingDay(date) {
		return date, nil
	}
	return cal.NextWorkingDay(date.AddDate(0, 0, -1))
}

// laterWorkingDay resolves the forward allocator's start candidate:
// max(start_date.date, next_working_day(current_time.date)), read as
// "the working day on or after" each bound so that an explicit
// start_date on a working day is honored as the first candidate,
// while the "today past business close" case is handled by
// available_hours returning zero for that day rather than by skipping
// the candidate outright.
func laterWorkingDay(cal *calendar.Oracle, startDate, now time.Time) (time.Time, error) {
	startCandidate, err := onOrAfterWorkingDay(cal, calendar.TruncateToDay(startDate))
	if err != nil {
		return time.Time{}, err
	}
	nowCandidate, err := onOrAfterWorkingDay(cal, calendar.TruncateToDay(now))
	if err != nil {
		return time.Time{}, err
	}
	if nowCandidate.After(startCandidate) {
		return nowCandidate, nil
	}
	return startCandidate, nil
}
