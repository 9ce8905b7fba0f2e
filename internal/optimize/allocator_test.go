package optimize

import (
	"testing"
	"time"

	"github.com/gopherwork/taskdog/internal/calendar"
	"github.com/gopherwork/taskdog/internal/clock"
	"github.com/gopherwork/taskdog/internal/holiday"
	"github.com/gopherwork/taskdog/internal/ledger"
	"github.com/gopherwork/taskdog/internal/task"
)

var businessWeek = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func hoursPtr(h float64) *float64 { return &h }

func timePtr(t time.Time) *time.Time { return &t }

func baseParams(cal *calendar.Oracle, now time.Time) Params {
	return Params{
		StartDate:        now,
		MaxHoursPerDay:   6,
		Now:              clock.Fixed{T: now},
		Calendar:         cal,
		DefaultStartHour: 9,
		DefaultEndHour:   18,
	}
}

func TestGreedyForwardFillsTwoDays(t *testing.T) {
	cal := calendar.New(businessWeek, nil)
	params := baseParams(cal, mustDate("2025-10-20"))
	params.StartDate = mustDate("2025-10-20")

	tsk := &task.Task{ID: 1, Priority: 100, EstimatedDuration: hoursPtr(12), Deadline: timePtr(mustDate("2025-10-31"))}
	l := ledger.New()

	got, perDay, reason := GreedyForwardAllocator{}.Allocate(tsk, l, params)
	if reason != "" {
		t.Fatalf("unexpected failure: %s", reason)
	}
	if perDay["2025-10-20"] != 6 || perDay["2025-10-21"] != 6 {
		t.Errorf("got %v, want {2025-10-20:6, 2025-10-21:6}", perDay)
	}
	if got.PlannedEnd.Format("2006-01-02 15:04") != "2025-10-21 18:00" {
		t.Errorf("got planned_end %v", got.PlannedEnd)
	}
}

func TestGreedyForwardSkipsWeekend(t *testing.T) {
	cal := calendar.New(businessWeek, nil)
	params := baseParams(cal, mustDate("2025-10-24"))
	params.StartDate = mustDate("2025-10-24")

	tsk := &task.Task{ID: 1, EstimatedDuration: hoursPtr(12)}
	l := ledger.New()

	_, perDay, reason := GreedyForwardAllocator{}.Allocate(tsk, l, params)
	if reason != "" {
		t.Fatalf("unexpected failure: %s", reason)
	}
	if _, ok := perDay["2025-10-25"]; ok {
		t.Error("did not expect a Saturday key")
	}
	if _, ok := perDay["2025-10-26"]; ok {
		t.Error("did not expect a Sunday key")
	}
	if perDay["2025-10-24"] != 6 || perDay["2025-10-27"] != 6 {
		t.Errorf("got %v, want {2025-10-24:6, 2025-10-27:6}", perDay)
	}
}

func TestGreedyForwardContextRespected(t *testing.T) {
	cal := calendar.New(businessWeek, nil)
	params := baseParams(cal, mustDate("2025-10-20"))
	params.StartDate = mustDate("2025-10-20")

	l := ledger.New()
	l.Commit("2025-10-20", 4) // fixed task A already occupies Monday

	taskB := &task.Task{ID: 2, EstimatedDuration: hoursPtr(6), Deadline: timePtr(mustDate("2025-10-31"))}
	_, perDay, reason := GreedyForwardAllocator{}.Allocate(taskB, l, params)
	if reason != "" {
		t.Fatalf("unexpected failure: %s", reason)
	}
	if perDay["2025-10-20"] != 2 || perDay["2025-10-21"] != 4 {
		t.Errorf("got %v, want {2025-10-20:2, 2025-10-21:4}", perDay)
	}
	if l.Balance("2025-10-20") != 6 || l.Balance("2025-10-21") != 4 {
		t.Errorf("final ledger wrong: Mon=%v Tue=%v", l.Balance("2025-10-20"), l.Balance("2025-10-21"))
	}
}

func TestGreedyForwardRollsBackOnFailure(t *testing.T) {
	cal := calendar.New(businessWeek, nil)
	params := baseParams(cal, mustDate("2025-10-20"))
	params.StartDate = mustDate("2025-10-20")
	params.HorizonDays = 3 // force exhaustion quickly

	l := ledger.New()
	before := l.Snapshot()

	tsk := &task.Task{ID: 1, EstimatedDuration: hoursPtr(100)}
	_, _, reason := GreedyForwardAllocator{}.Allocate(tsk, l, params)
	if reason == "" {
		t.Fatal("expected a failure reason")
	}
	after := l.Snapshot()
	if len(before) != len(after) {
		t.Errorf("ledger was not rolled back: before=%v after=%v", before, after)
	}
}

func TestBalancedAcrossAWeek(t *testing.T) {
	cal := calendar.New(businessWeek, nil)
	params := baseParams(cal, mustDate("2025-10-20"))
	params.StartDate = mustDate("2025-10-20")

	tsk := &task.Task{ID: 1, EstimatedDuration: hoursPtr(10), Deadline: timePtr(mustDate("2025-10-24"))}
	l := ledger.New()

	got, perDay, reason := BalancedAllocator{}.Allocate(tsk, l, params)
	if reason != "" {
		t.Fatalf("unexpected failure: %s", reason)
	}
	want := map[string]float64{
		"2025-10-20": 2, "2025-10-21": 2, "2025-10-22": 2, "2025-10-23": 2, "2025-10-24": 2,
	}
	for k, v := range want {
		if perDay[k] != v {
			t.Errorf("day %s = %v, want %v", k, perDay[k], v)
		}
	}
	if got.PlannedEnd.Format("2006-01-02") != "2025-10-24" {
		t.Errorf("got planned_end date %v, want 2025-10-24", got.PlannedEnd)
	}
}

func TestBalancedWithInteriorHoliday(t *testing.T) {
	src := holiday.NewStaticSourceFromStrings([]string{"2026-01-01"})
	cal := calendar.New(businessWeek, src)
	params := baseParams(cal, mustDate("2025-12-31"))
	params.StartDate = mustDate("2025-12-31")

	tsk := &task.Task{ID: 1, EstimatedDuration: hoursPtr(8), Deadline: timePtr(mustDate("2026-01-03"))}
	l := ledger.New()

	got, perDay, reason := BalancedAllocator{}.Allocate(tsk, l, params)
	if reason != "" {
		t.Fatalf("unexpected failure: %s", reason)
	}
	if _, ok := perDay["2026-01-01"]; ok {
		t.Error("holiday must not receive a key")
	}
	sum := perDay["2025-12-31"] + perDay["2026-01-02"]
	if sum != 8 {
		t.Errorf("sum of allocations = %v, want 8", sum)
	}
	if got.PlannedEnd.Format("2006-01-02") != "2026-01-02" {
		t.Errorf("planned_end date = %v, want 2026-01-02 (last allocated working date, not naive deadline)", got.PlannedEnd)
	}
}

func TestBackwardFromDeadlineInsufficientCapacity(t *testing.T) {
	cal := calendar.New(businessWeek, nil)
	params := baseParams(cal, mustDate("2025-10-20"))
	params.StartDate = mustDate("2025-10-20")

	before := ledger.New().Snapshot()
	l := ledger.New()

	// Three working days (Mon-Wed) x 6h = 18h < 30h.
	tsk := &task.Task{ID: 1, EstimatedDuration: hoursPtr(30), Deadline: timePtr(mustDate("2025-10-22"))}
	_, _, reason := BackwardFromDeadlineAllocator{}.Allocate(tsk, l, params)
	if reason != "insufficient capacity between start and deadline" {
		t.Fatalf("got reason %q", reason)
	}
	after := l.Snapshot()
	if len(after) != len(before) {
		t.Errorf("expected ledger unchanged on failure, got %v", after)
	}
}

func TestBackwardFromDeadlineNoDeadlineDefersToGreedy(t *testing.T) {
	cal := calendar.New(businessWeek, nil)
	params := baseParams(cal, mustDate("2025-10-20"))
	params.StartDate = mustDate("2025-10-20")

	l := ledger.New()
	tsk := &task.Task{ID: 1, EstimatedDuration: hoursPtr(6)}
	_, perDay, reason := BackwardFromDeadlineAllocator{}.Allocate(tsk, l, params)
	if reason != "" {
		t.Fatalf("unexpected failure: %s", reason)
	}
	if perDay["2025-10-20"] != 6 {
		t.Errorf("got %v, want full day committed on the start date", perDay)
	}
}

func TestEntireWindowIsWeekendFails(t *testing.T) {
	cal := calendar.New(businessWeek, nil)
	params := baseParams(cal, mustDate("2025-10-25")) // Saturday
	params.StartDate = mustDate("2025-10-25")

	l := ledger.New()
	tsk := &task.Task{ID: 1, EstimatedDuration: hoursPtr(4), Deadline: timePtr(mustDate("2025-10-26"))} // Sunday
	_, _, reason := BalancedAllocator{}.Allocate(tsk, l, params)
	if reason == "" {
		t.Fatal("expected failure for an entirely-weekend window")
	}
}
