package holiday

import "time"

// StaticSource is a fixed set of holiday dates, for users who maintain
// an explicit list rather than a recurrence rule, and for tests.
type StaticSource struct {
	dates map[string]bool
}

// NewStaticSource builds a StaticSource from a list of dates.
func NewStaticSource(dates []time.Time) *StaticSource {
	s := &StaticSource{dates: make(map[string]bool, len(dates))}
	for _, d := range dates {
		s.dates[calendarDay(d).Format("2006-01-02")] = true
	}
	return s
}

// NewStaticSourceFromStrings builds a StaticSource from "2006-01-02"
// formatted date strings, skipping any that fail to parse.
func NewStaticSourceFromStrings(dates []string) *StaticSource {
	s := &StaticSource{dates: make(map[string]bool, len(dates))}
	for _, d := range dates {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			s.dates[calendarDay(t).Format("2006-01-02")] = true
		}
	}
	return s
}

func (s *StaticSource) IsHoliday(date time.Time) bool {
	return s.dates[calendarDay(date).Format("2006-01-02")]
}

func (s *StaticSource) HolidaysInRange(start, end time.Time) map[string]bool {
	out := make(map[string]bool)
	for d := calendarDay(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if s.dates[key] {
			out[key] = true
		}
	}
	return out
}
