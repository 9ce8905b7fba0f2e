package task

import (
	"testing"
	"time"
)

func TestNewWeekFromTasks(t *testing.T) {
	monday := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	tsk := &Task{
		ID: 1,
		DailyAllocations: map[string]float64{
			"2025-10-20": 6,
			"2025-10-21": 6,
		},
	}

	w := NewWeekFromTasks(monday, []*Task{tsk})

	if got := w.Day(0).AllocatedHours(); !AlmostEqual(got, 6) {
		t.Errorf("Monday allocated hours = %v, want 6", got)
	}
	if got := w.Day(1).AllocatedHours(); !AlmostEqual(got, 6) {
		t.Errorf("Tuesday allocated hours = %v, want 6", got)
	}
	if got := w.Day(2).AllocatedHours(); got != 0 {
		t.Errorf("Wednesday allocated hours = %v, want 0", got)
	}
	if got := w.TotalHours(); !AlmostEqual(got, 12) {
		t.Errorf("week total = %v, want 12", got)
	}
}

func TestWeekDayByDate(t *testing.T) {
	monday := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	w := NewWeek(monday)

	sunday := monday.AddDate(0, 0, 6)
	if d := w.DayByDate(sunday); d == nil {
		t.Fatal("expected to find Sunday in week")
	}

	outside := monday.AddDate(0, 0, -1)
	if d := w.DayByDate(outside); d != nil {
		t.Error("expected nil for date outside week")
	}
}

func TestWeekEndDate(t *testing.T) {
	monday := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	w := NewWeek(monday)
	want := time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC)
	if !w.EndDate().Equal(want) {
		t.Errorf("EndDate = %v, want %v", w.EndDate(), want)
	}
}
