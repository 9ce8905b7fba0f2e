// Package ledger implements the allocation ledger: the shared, owned
// mapping of date to hours committed during one optimization run. It
// is single-threaded and owned by exactly one run at a time.
package ledger

import (
	"fmt"

	"github.com/gopherwork/taskdog/internal/clock"
	"github.com/gopherwork/taskdog/internal/task"
)

// Ledger is a mutable date -> hours-committed map owned for the
// duration of one optimization run. It is never persisted as a
// standalone entity, since it is reconstructible from task
// allocations; call Seed to build it from existing tasks at run start.
//
// Not safe for concurrent use: a caller that explores allocation
// orderings in parallel must give each goroutine its own Ledger.
type Ledger struct {
	hours map[string]float64
}

// New returns an empty Ledger.
func New() *Ledger {
	return &Ledger{hours: make(map[string]float64)}
}

// Seed commits every entry of t.DailyAllocations, for tasks that
// should count in workload. Callers are responsible for
// applying that predicate before calling Seed.
func (l *Ledger) Seed(t *task.Task) {
	for date, hrs := range t.DailyAllocations {
		l.Commit(date, hrs)
	}
}

// Commit increments ledger[date] by hours.
func (l *Ledger) Commit(date string, hours float64) {
	l.hours[date] += hours
}

// Uncommit decrements ledger[date] by hours. Pushing the balance below
// zero (beyond floating-point epsilon) is a programming error and
// panics, per: "an attempt is a programming error."
func (l *Ledger) Uncommit(date string, hours float64) {
	next := l.hours[date] - hours
	if next < -task.Epsilon {
		panic(fmt.Sprintf("ledger: uncommit %.4f from %q would push balance to %.4f", hours, date, next))
	}
	if next < task.Epsilon {
		delete(l.hours, date)
		return
	}
	l.hours[date] = next
}

// Balance returns the current committed hours for date.
func (l *Ledger) Balance(date string) float64 {
	return l.hours[date]
}

// AvailableHours returns max(0, maxPerDay - ledger[date]), further
// capped to the remaining hours in the business day when date is the
// current calendar day.
func AvailableHours(l *Ledger, date string, maxPerDay float64, now clock.Provider, endHour float64) float64 {
	remaining := maxPerDay - l.Balance(date)
	if remaining < 0 {
		remaining = 0
	}
	today := now.Now()
	if date == today.Format("2006-01-02") {
		hourFraction := float64(today.Hour()) + float64(today.Minute())/60
		businessRemaining := endHour - hourFraction
		if businessRemaining < 0 {
			businessRemaining = 0
		}
		if businessRemaining < remaining {
			remaining = businessRemaining
		}
	}
	return remaining
}

// Snapshot returns a defensive copy of the ledger's current state, for
// rollback comparisons and test assertions.
func (l *Ledger) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(l.hours))
	for k, v := range l.hours {
		out[k] = v
	}
	return out
}

// Clone returns an independent Ledger with the same balances, used
// when simulating an allocation ordering against a disposable copy.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{hours: l.Snapshot()}
}

// Equal reports whether two ledgers hold the same key set and values
// within epsilon tolerance, used to verify the rollback-on-failure
// invariant.
func Equal(a, b *Ledger) bool {
	if len(a.hours) != len(b.hours) {
		return false
	}
	for k, v := range a.hours {
		bv, ok := b.hours[k]
		if !ok || !task.AlmostEqual(v, bv) {
			return false
		}
	}
	return true
}
