package calendar

import (
	"errors"
	"testing"
	"time"
)

var weekdayWorkdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

type fixedHolidays map[string]bool

func (f fixedHolidays) IsHoliday(date time.Time) bool {
	return f[date.Format("2006-01-02")]
}

func (f fixedHolidays) HolidaysInRange(start, end time.Time) map[string]bool {
	out := make(map[string]bool)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if f[d.Format("2006-01-02")] {
			out[d.Format("2006-01-02")] = true
		}
	}
	return out
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsWorkingDay(t *testing.T) {
	o := New(weekdayWorkdays, nil)

	if !o.IsWorkingDay(date("2025-10-20")) { // Monday
		t.Error("Monday should be a working day")
	}
	if o.IsWorkingDay(date("2025-10-25")) { // Saturday
		t.Error("Saturday should not be a working day")
	}
	if o.IsWorkingDay(date("2025-10-26")) { // Sunday
		t.Error("Sunday should not be a working day")
	}
}

func TestIsWorkingDayWithHoliday(t *testing.T) {
	o := New(weekdayWorkdays, fixedHolidays{"2026-01-01": true})

	if o.IsWorkingDay(date("2026-01-01")) {
		t.Error("configured holiday should not be a working day")
	}
	if !o.IsWorkingDay(date("2026-01-02")) {
		t.Error("day after holiday should be a working day")
	}
}

func TestNextWorkingDaySkipsWeekend(t *testing.T) {
	o := New(weekdayWorkdays, nil)

	next, err := o.NextWorkingDay(date("2025-10-24")) // Friday
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := date("2025-10-27") // Monday
	if !next.Equal(want) {
		t.Errorf("got %v, want %v", next, want)
	}
}

func TestNextWorkingDaySkipsInteriorHoliday(t *testing.T) {
	o := New(weekdayWorkdays, fixedHolidays{"2026-01-01": true})

	next, err := o.NextWorkingDay(date("2025-12-31")) // Wednesday
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := date("2026-01-02") // Friday, skipping New Year's Day
	if !next.Equal(want) {
		t.Errorf("got %v, want %v", next, want)
	}
}

func TestPrevWorkingDay(t *testing.T) {
	o := New(weekdayWorkdays, nil)

	prev, err := o.PrevWorkingDay(date("2025-10-27")) // Monday
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := date("2025-10-24") // Friday
	if !prev.Equal(want) {
		t.Errorf("got %v, want %v", prev, want)
	}
}

func TestNextWorkingDayHorizonExceeded(t *testing.T) {
	o := New(nil, nil) // no workdays configured at all
	o.horizon = 5

	_, err := o.NextWorkingDay(date("2025-10-20"))
	if !errors.Is(err, ErrHorizonExceeded) {
		t.Fatalf("got %v, want ErrHorizonExceeded", err)
	}
}
