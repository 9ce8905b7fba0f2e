package task

import "time"

// Week holds 7 days starting from Monday, used by the summary and
// viewer packages to render a completed optimization run.
type Week struct {
	StartDate time.Time // Monday of the week
	Days      [7]*Day   // Monday (0) through Sunday (6)
}

// NewWeek creates a Week starting from the Monday of the given date.
func NewWeek(date time.Time) *Week {
	monday := startOfWeek(date)
	w := &Week{StartDate: monday}
	for i := 0; i < 7; i++ {
		w.Days[i] = NewDay(monday.AddDate(0, 0, i))
	}
	return w
}

// NewWeekFromTasks creates a Week and distributes tasks to their days
// by DailyAllocations key. Tasks outside the week's range are ignored.
func NewWeekFromTasks(date time.Time, tasks []*Task) *Week {
	w := NewWeek(date)
	for _, t := range tasks {
		for _, day := range w.Days {
			day.AddTask(t)
		}
	}
	return w
}

// Day returns the Day for the given weekday (0=Monday, 6=Sunday).
func (w *Week) Day(weekday int) *Day {
	if weekday < 0 || weekday > 6 {
		return nil
	}
	return w.Days[weekday]
}

// DayByDate returns the Day for the given date, nil if not in this week.
func (w *Week) DayByDate(date time.Time) *Day {
	truncated := truncateToDay(date)
	for _, day := range w.Days {
		if day.Date.Equal(truncated) {
			return day
		}
	}
	return nil
}

// EndDate returns the Sunday of the week.
func (w *Week) EndDate() time.Time {
	return w.StartDate.AddDate(0, 0, 6)
}

// TotalHours sums AllocatedHours across all 7 days.
func (w *Week) TotalHours() float64 {
	var total float64
	for _, d := range w.Days {
		total += d.AllocatedHours()
	}
	return total
}

// startOfWeek returns the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	t = truncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}
