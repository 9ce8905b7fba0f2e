package task

import (
	"sort"
	"time"
)

// Day aggregates every task that has an allocation on a single date.
// It holds whole-day hour totals: the scheduling engine works in
// per-day hours, not sub-hour time blocks.
type Day struct {
	Date  time.Time
	tasks []*Task
}

// NewDay creates an empty Day for the given date.
func NewDay(date time.Time) *Day {
	return &Day{Date: truncateToDay(date)}
}

// Key returns the "2006-01-02" lookup key for this day.
func (d *Day) Key() string {
	return d.Date.Format("2006-01-02")
}

// AddTask records t as contributing to this day, if it has an
// allocation on this day's date. No-op otherwise.
func (d *Day) AddTask(t *Task) {
	if t == nil {
		return
	}
	if _, ok := t.DailyAllocations[d.Key()]; !ok {
		return
	}
	d.tasks = append(d.tasks, t)
	sort.SliceStable(d.tasks, func(i, j int) bool {
		return d.tasks[i].Priority > d.tasks[j].Priority
	})
}

// Tasks returns a copy of the tasks allocated on this day.
func (d *Day) Tasks() []*Task {
	result := make([]*Task, len(d.tasks))
	copy(result, d.tasks)
	return result
}

// AllocatedHours returns the sum of every task's allocation on this day.
func (d *Day) AllocatedHours() float64 {
	var total float64
	for _, t := range d.tasks {
		total += t.DailyAllocations[d.Key()]
	}
	return total
}

// Len returns the number of tasks touching this day.
func (d *Day) Len() int {
	return len(d.tasks)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
