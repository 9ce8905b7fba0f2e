package holiday

import "time"

// Multi merges several HolidaySource instances: a date is a holiday if
// any source reports it as one. Used to combine configured recurring
// rules with one-off fixed dates (config.HolidaysConfig carries both).
type Multi struct {
	sources []calendarHolidaySource
}

// calendarHolidaySource mirrors calendar.HolidaySource without
// importing it, avoiding an import cycle (calendar imports nothing
// from holiday; holiday stays a leaf package).
type calendarHolidaySource interface {
	IsHoliday(date time.Time) bool
	HolidaysInRange(start, end time.Time) map[string]bool
}

// NewMulti builds a Multi from zero or more sources. Nil sources are
// skipped.
func NewMulti(sources ...calendarHolidaySource) *Multi {
	m := &Multi{}
	for _, s := range sources {
		if s != nil {
			m.sources = append(m.sources, s)
		}
	}
	return m
}

func (m *Multi) IsHoliday(date time.Time) bool {
	for _, s := range m.sources {
		if s.IsHoliday(date) {
			return true
		}
	}
	return false
}

func (m *Multi) HolidaysInRange(start, end time.Time) map[string]bool {
	out := make(map[string]bool)
	for _, s := range m.sources {
		for k := range s.HolidaysInRange(start, end) {
			out[k] = true
		}
	}
	return out
}
