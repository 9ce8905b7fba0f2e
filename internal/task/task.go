// Package task defines the core domain types for the scheduling engine.
package task

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrNegativeDuration   = errors.New("estimated duration cannot be negative")
	ErrInvalidStatus      = errors.New("invalid task status")
	ErrPlannedWindowMixed = errors.New("planned_start and planned_end must both be set or both be absent")
)

// Domain errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrDependencyCycle   = errors.New("dependency cycle detected")
	ErrUnknownAlgorithm  = errors.New("unknown algorithm")
	ErrInvariantViolated = errors.New("scheduling invariant violated")
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// Valid reports whether s is one of the four defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// Task is the scheduling unit: a unit of work with an estimate, a
// priority, optional dependencies and deadline, and (once scheduled) a
// planned window and a per-day hour breakdown.
type Task struct {
	ID       int64
	Name     string
	Priority int
	Tags     []string
	// DependsOn holds ids of tasks that must be placed earlier by the
	// allocator; order is preserved for display but carries no
	// scheduling meaning beyond "these ids must precede this task".
	DependsOn []int64

	Status Status

	// EstimatedDuration is in hours. A nil value means "not estimated
	// yet", which makes the task unschedulable (spec 4.2 rule 1).
	EstimatedDuration *float64
	Deadline          *time.Time

	PlannedStart *time.Time
	PlannedEnd   *time.Time

	ActualStart    *time.Time
	ActualEnd      *time.Time
	ActualDuration *float64

	// DailyAllocations maps a working date (formatted "2006-01-02") to
	// the hours planned for that date. Keys are working dates unless
	// the task's entire window falls on non-working days.
	DailyAllocations map[string]float64
	// ActualDailyHours maps a date to hours actually logged. Read-only
	// to the scheduling engine; maintained by lifecycle operations
	// outside this package.
	ActualDailyHours map[string]float64

	IsFixed    bool
	IsArchived bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New validates and constructs a Task. Fields beyond the ones accepted
// here (planned window, daily allocations, fixed/archived flags) are
// set by the scheduling engine or by explicit setters, never by the
// constructor.
func New(name string, priority int, estimatedDuration *float64) (*Task, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if estimatedDuration != nil && *estimatedDuration < 0 {
		return nil, ErrNegativeDuration
	}

	return &Task{
		Name:              name,
		Priority:          priority,
		Status:            StatusPending,
		EstimatedDuration: estimatedDuration,
		DailyAllocations:  make(map[string]float64),
		ActualDailyHours:  make(map[string]float64),
	}, nil
}

// IsPending returns true if the task has pending status.
func (t *Task) IsPending() bool {
	return t.Status == StatusPending
}

// IsInProgress returns true if the task has in-progress status.
func (t *Task) IsInProgress() bool {
	return t.Status == StatusInProgress
}

// IsFinished returns true iff status is COMPLETED or CANCELED (spec
// invariant 5).
func (t *Task) IsFinished() bool {
	return t.Status == StatusCompleted || t.Status == StatusCanceled
}

// HasEstimate reports whether the task carries a usable duration estimate.
func (t *Task) HasEstimate() bool {
	return t.EstimatedDuration != nil && *t.EstimatedDuration > 0
}

// HasDeadline reports whether the task carries a deadline.
func (t *Task) HasDeadline() bool {
	return t.Deadline != nil
}

// HasPlannedWindow reports whether the task has a planned start/end.
func (t *Task) HasPlannedWindow() bool {
	return t.PlannedStart != nil && t.PlannedEnd != nil
}

// TotalAllocatedHours sums DailyAllocations.
func (t *Task) TotalAllocatedHours() float64 {
	var total float64
	for _, h := range t.DailyAllocations {
		total += h
	}
	return total
}

// HasTag reports whether the task carries the given tag.
func (t *Task) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// Clone returns an independent deep copy of the task, suitable for a
// trial allocation that might be discarded wholesale (spec 4.4).
func (t *Task) Clone() *Task {
	clone := *t

	if t.EstimatedDuration != nil {
		v := *t.EstimatedDuration
		clone.EstimatedDuration = &v
	}
	if t.Deadline != nil {
		v := *t.Deadline
		clone.Deadline = &v
	}
	if t.PlannedStart != nil {
		v := *t.PlannedStart
		clone.PlannedStart = &v
	}
	if t.PlannedEnd != nil {
		v := *t.PlannedEnd
		clone.PlannedEnd = &v
	}
	if t.ActualStart != nil {
		v := *t.ActualStart
		clone.ActualStart = &v
	}
	if t.ActualEnd != nil {
		v := *t.ActualEnd
		clone.ActualEnd = &v
	}
	if t.ActualDuration != nil {
		v := *t.ActualDuration
		clone.ActualDuration = &v
	}

	clone.Tags = append([]string(nil), t.Tags...)
	clone.DependsOn = append([]int64(nil), t.DependsOn...)

	clone.DailyAllocations = make(map[string]float64, len(t.DailyAllocations))
	for k, v := range t.DailyAllocations {
		clone.DailyAllocations[k] = v
	}
	clone.ActualDailyHours = make(map[string]float64, len(t.ActualDailyHours))
	for k, v := range t.ActualDailyHours {
		clone.ActualDailyHours[k] = v
	}

	return &clone
}

// ValidateStatus returns ErrInvalidStatus if s is not one of the four
// defined statuses.
func ValidateStatus(s Status) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return nil
}
