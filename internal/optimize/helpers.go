package optimize

import (
	"fmt"
	"time"

	"github.com/gopherwork/taskdog/internal/task"
)

// PrepareForAllocation returns an independent deep copy of t, ready for
// a trial allocation that can be discarded wholesale on failure, or
// nil if t has no estimated duration.
func PrepareForAllocation(t *task.Task) *task.Task {
	if !t.HasEstimate() {
		return nil
	}
	return t.Clone()
}

// SetPlannedTimes writes t's planned window and per-day allocation map.
// perDayMap must be non-empty; firstDate and lastDate are
// "2006-01-02" keys. Returns an *InternalError if the post-condition
// (min/max key of perDayMap equal firstDate/lastDate) does not hold —
// this is an invariant the caller must already guarantee.
func SetPlannedTimes(t *task.Task, firstDate, lastDate string, perDayMap map[string]float64, defaultStartHour, defaultEndHour float64) error {
	if len(perDayMap) == 0 {
		return &InternalError{Assertion: "set_planned_times called with empty per-day map"}
	}

	minKey, maxKey := minMaxKeys(perDayMap)
	if minKey != firstDate || maxKey != lastDate {
		return &InternalError{Assertion: fmt.Sprintf(
			"set_planned_times post-condition violated: keys span [%s, %s], expected [%s, %s]",
			minKey, maxKey, firstDate, lastDate)}
	}

	start, err := dateAtHour(firstDate, defaultStartHour)
	if err != nil {
		return &InternalError{Assertion: err.Error()}
	}
	end, err := dateAtHour(lastDate, defaultEndHour)
	if err != nil {
		return &InternalError{Assertion: err.Error()}
	}

	t.PlannedStart = &start
	t.PlannedEnd = &end
	t.DailyAllocations = perDayMap
	return nil
}

func minMaxKeys(m map[string]float64) (min, max string) {
	first := true
	for k := range m {
		if first {
			min, max = k, k
			first = false
			continue
		}
		if k < min {
			min = k
		}
		if k > max {
			max = k
		}
	}
	return min, max
}

func dateAtHour(dateKey string, hour float64) (time.Time, error) {
	d, err := time.Parse("2006-01-02", dateKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", dateKey, err)
	}
	wholeHour := int(hour)
	minute := int((hour - float64(wholeHour)) * 60)
	return time.Date(d.Year(), d.Month(), d.Day(), wholeHour, minute, 0, 0, d.Location()), nil
}
