// Package holiday supplies calendar.HolidaySource implementations: a
// recurring-rule source for holidays that repeat on a fixed pattern
// (Thanksgiving, "first Monday of September") and a static source for
// one-off dates. Grounded on felixgeelhaar-orbita's use of
// github.com/teambition/rrule-go for recurrence expansion, repurposed
// here from calendar-event recurrence to holiday-calendar recurrence.
package holiday

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Rule names a single recurring holiday. RRule is an RFC 5545 RRULE
// string (e.g. "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1" for New Year's Day,
// or "FREQ=YEARLY;BYMONTH=11;BYDAY=4TH" for the fourth Thursday of
// November). Dtstart anchors the rule's first occurrence and timezone.
type Rule struct {
	Name    string
	RRule   string
	Dtstart time.Time
}

// RRuleSource answers holiday lookups from a set of recurring rules.
// Nothing is cached: every IsHoliday call re-runs RRULE expansion.
type RRuleSource struct {
	rules []*rrule.RRule
	names []string
}

// NewRRuleSource compiles each Rule's RRULE string. An invalid RRULE
// string is a configuration error, returned immediately rather than
// deferred to first use.
func NewRRuleSource(rules []Rule) (*RRuleSource, error) {
	src := &RRuleSource{
		rules: make([]*rrule.RRule, 0, len(rules)),
		names: make([]string, 0, len(rules)),
	}
	for _, r := range rules {
		opt, err := rrule.StrToROption(r.RRule)
		if err != nil {
			return nil, fmt.Errorf("holiday: rule %q: invalid RRULE %q: %w", r.Name, r.RRule, err)
		}
		opt.Dtstart = r.Dtstart
		rr, err := rrule.NewRRule(*opt)
		if err != nil {
			return nil, fmt.Errorf("holiday: rule %q: %w", r.Name, err)
		}
		src.rules = append(src.rules, rr)
		src.names = append(src.names, r.Name)
	}
	return src, nil
}

// IsHoliday reports whether date falls on any configured rule's
// occurrence, widening the scan by a day on each side to absorb
// timezone rounding in the underlying rrule library.
func (s *RRuleSource) IsHoliday(date time.Time) bool {
	day := calendarDay(date)
	for _, rr := range s.rules {
		occurrences := rr.Between(day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), true)
		for _, occ := range occurrences {
			if calendarDay(occ).Equal(day) {
				return true
			}
		}
	}
	return false
}

// HolidaysInRange returns every holiday date (formatted "2006-01-02")
// falling within [start, end], inclusive, across all configured rules.
func (s *RRuleSource) HolidaysInRange(start, end time.Time) map[string]bool {
	out := make(map[string]bool)
	from := calendarDay(start)
	to := calendarDay(end)
	for _, rr := range s.rules {
		for _, occ := range rr.Between(from, to, true) {
			out[calendarDay(occ).Format("2006-01-02")] = true
		}
	}
	return out
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
