package holiday

import "testing"

func TestStaticSourceFromStrings(t *testing.T) {
	s := NewStaticSourceFromStrings([]string{"2026-01-01", "2026-07-04", "garbage"})

	if !s.IsHoliday(date("2026-01-01")) {
		t.Error("expected 2026-01-01 to be a holiday")
	}
	if s.IsHoliday(date("2026-01-02")) {
		t.Error("did not expect 2026-01-02 to be a holiday")
	}
}

func TestStaticSourceHolidaysInRange(t *testing.T) {
	s := NewStaticSourceFromStrings([]string{"2026-01-01", "2026-01-19"})

	got := s.HolidaysInRange(date("2026-01-01"), date("2026-01-31"))
	if len(got) != 2 {
		t.Errorf("expected 2 holidays in range, got %v", got)
	}
}
