package ledger

import (
	"testing"
	"time"

	"github.com/gopherwork/taskdog/internal/clock"
	"github.com/gopherwork/taskdog/internal/task"
)

func TestCommitAndBalance(t *testing.T) {
	l := New()
	l.Commit("2025-10-20", 4)
	l.Commit("2025-10-20", 2)

	if got := l.Balance("2025-10-20"); got != 6 {
		t.Errorf("got balance %v, want 6", got)
	}
}

func TestUncommitNeverGoesNegative(t *testing.T) {
	l := New()
	l.Commit("2025-10-20", 4)
	l.Uncommit("2025-10-20", 4)

	if got := l.Balance("2025-10-20"); got != 0 {
		t.Errorf("got balance %v, want 0", got)
	}
}

func TestUncommitPastZeroPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when uncommitting past zero")
		}
	}()
	l := New()
	l.Uncommit("2025-10-20", 1)
}

func TestSeedFromTask(t *testing.T) {
	l := New()
	tsk := &task.Task{DailyAllocations: map[string]float64{
		"2025-10-20": 3,
		"2025-10-21": 5,
	}}
	l.Seed(tsk)

	if got := l.Balance("2025-10-20"); got != 3 {
		t.Errorf("got %v, want 3", got)
	}
	if got := l.Balance("2025-10-21"); got != 5 {
		t.Errorf("got %v, want 5", got)
	}
}

func TestAvailableHoursCapsAtMaxPerDay(t *testing.T) {
	l := New()
	l.Commit("2025-10-20", 6)
	now := clock.Fixed{T: time.Date(2025, 10, 19, 9, 0, 0, 0, time.UTC)}

	got := AvailableHours(l, "2025-10-20", 8, now, 17)
	if got != 2 {
		t.Errorf("got %v, want 2", got)
	}
}

func TestAvailableHoursCapsToRemainingBusinessHoursToday(t *testing.T) {
	l := New()
	now := clock.Fixed{T: time.Date(2025, 10, 20, 15, 0, 0, 0, time.UTC)} // 15:00, end_hour 17

	got := AvailableHours(l, "2025-10-20", 8, now, 17)
	if got != 2 {
		t.Errorf("got %v, want 2 (remaining business hours)", got)
	}
}

func TestAvailableHoursAfterBusinessHoursToday(t *testing.T) {
	l := New()
	now := clock.Fixed{T: time.Date(2025, 10, 20, 18, 0, 0, 0, time.UTC)}

	got := AvailableHours(l, "2025-10-20", 8, now, 17)
	if got != 0 {
		t.Errorf("got %v, want 0 once past end_hour today", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	l := New()
	l.Commit("2025-10-20", 4)
	clone := l.Clone()
	clone.Commit("2025-10-20", 1)

	if l.Balance("2025-10-20") != 4 {
		t.Error("mutation of clone leaked into original")
	}
	if clone.Balance("2025-10-20") != 5 {
		t.Errorf("got %v, want 5", clone.Balance("2025-10-20"))
	}
}

func TestEqual(t *testing.T) {
	a := New()
	a.Commit("2025-10-20", 4)
	b := New()
	b.Commit("2025-10-20", 4)

	if !Equal(a, b) {
		t.Error("expected equal ledgers to compare equal")
	}

	b.Commit("2025-10-21", 1)
	if Equal(a, b) {
		t.Error("expected ledgers with different key sets to compare unequal")
	}
}
