// Package taskio implements canonical JSON import/export for tasks: a
// flat JSON array of task records that round-trips through Export/
// Import without loss. Import reads the whole source, converts it
// entry-by-entry, and collects per-row errors instead of aborting the
// batch.
package taskio

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gopherwork/taskdog/internal/task"
)

// Record is the canonical on-disk shape of one task. Field names are
// stable across versions; unknown fields in input are ignored.
type Record struct {
	ID                int64              `json:"id,omitempty"`
	Name              string             `json:"name"`
	Priority          int                `json:"priority"`
	Tags              []string           `json:"tags,omitempty"`
	DependsOn         []int64            `json:"depends_on,omitempty"`
	Status            string             `json:"status"`
	EstimatedDuration *float64           `json:"estimated_duration,omitempty"`
	Deadline          *string            `json:"deadline,omitempty"`
	PlannedStart      *string            `json:"planned_start,omitempty"`
	PlannedEnd        *string            `json:"planned_end,omitempty"`
	ActualStart       *string            `json:"actual_start,omitempty"`
	ActualEnd         *string            `json:"actual_end,omitempty"`
	ActualDuration    *float64           `json:"actual_duration,omitempty"`
	DailyAllocations  map[string]float64 `json:"daily_allocations,omitempty"`
	ActualDailyHours  map[string]float64 `json:"actual_daily_hours,omitempty"`
	IsFixed           bool               `json:"is_fixed,omitempty"`
	IsArchived        bool               `json:"is_archived,omitempty"`
	CreatedAt         string             `json:"created_at,omitempty"`
	UpdatedAt         string             `json:"updated_at,omitempty"`
}

// RowError names the input row (by 0-based position) that could not
// be converted, and why, without aborting the rest of the batch.
type RowError struct {
	Index  int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Index, e.Reason)
}

// ImportResult is the outcome of one Import call.
type ImportResult struct {
	Tasks  []*task.Task
	Errors []RowError
}

const timeLayout = time.RFC3339

// Export writes every task as a canonical JSON array.
func Export(w io.Writer, tasks []*task.Task) error {
	records := make([]Record, len(tasks))
	for i, t := range tasks {
		records[i] = toRecord(t)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	return nil
}

// Import reads a canonical JSON array and converts each entry to a
// task.Task. A malformed individual row is collected in
// ImportResult.Errors rather than aborting the whole import; a
// malformed top-level document is a hard error.
func Import(r io.Reader) (*ImportResult, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}

	result := &ImportResult{}
	for i, rec := range records {
		t, err := fromRecord(rec)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Index: i, Reason: err.Error()})
			continue
		}
		result.Tasks = append(result.Tasks, t)
	}

	return result, nil
}

func toRecord(t *task.Task) Record {
	return Record{
		ID:                t.ID,
		Name:              t.Name,
		Priority:          t.Priority,
		Tags:              t.Tags,
		DependsOn:         t.DependsOn,
		Status:            string(t.Status),
		EstimatedDuration: t.EstimatedDuration,
		Deadline:          formatTimePtr(t.Deadline),
		PlannedStart:      formatTimePtr(t.PlannedStart),
		PlannedEnd:        formatTimePtr(t.PlannedEnd),
		ActualStart:       formatTimePtr(t.ActualStart),
		ActualEnd:         formatTimePtr(t.ActualEnd),
		ActualDuration:    t.ActualDuration,
		DailyAllocations:  t.DailyAllocations,
		ActualDailyHours:  t.ActualDailyHours,
		IsFixed:           t.IsFixed,
		IsArchived:        t.IsArchived,
		CreatedAt:         t.CreatedAt.Format(timeLayout),
		UpdatedAt:         t.UpdatedAt.Format(timeLayout),
	}
}

func fromRecord(rec Record) (*task.Task, error) {
	if rec.Name == "" {
		return nil, task.ErrEmptyName
	}

	status := task.Status(rec.Status)
	if rec.Status == "" {
		status = task.StatusPending
	}
	if err := task.ValidateStatus(status); err != nil {
		return nil, err
	}

	deadline, err := parseTimePtr(rec.Deadline)
	if err != nil {
		return nil, fmt.Errorf("parsing deadline: %w", err)
	}
	plannedStart, err := parseTimePtr(rec.PlannedStart)
	if err != nil {
		return nil, fmt.Errorf("parsing planned_start: %w", err)
	}
	plannedEnd, err := parseTimePtr(rec.PlannedEnd)
	if err != nil {
		return nil, fmt.Errorf("parsing planned_end: %w", err)
	}
	if (plannedStart == nil) != (plannedEnd == nil) {
		return nil, task.ErrPlannedWindowMixed
	}
	actualStart, err := parseTimePtr(rec.ActualStart)
	if err != nil {
		return nil, fmt.Errorf("parsing actual_start: %w", err)
	}
	actualEnd, err := parseTimePtr(rec.ActualEnd)
	if err != nil {
		return nil, fmt.Errorf("parsing actual_end: %w", err)
	}

	createdAt, err := parseTimeOrNow(rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	updatedAt, err := parseTimeOrNow(rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	dailyAllocations := rec.DailyAllocations
	if dailyAllocations == nil {
		dailyAllocations = make(map[string]float64)
	}
	actualDailyHours := rec.ActualDailyHours
	if actualDailyHours == nil {
		actualDailyHours = make(map[string]float64)
	}

	return &task.Task{
		ID:                rec.ID,
		Name:              rec.Name,
		Priority:          rec.Priority,
		Tags:              rec.Tags,
		DependsOn:         rec.DependsOn,
		Status:            status,
		EstimatedDuration: rec.EstimatedDuration,
		Deadline:          deadline,
		PlannedStart:      plannedStart,
		PlannedEnd:        plannedEnd,
		ActualStart:       actualStart,
		ActualEnd:         actualEnd,
		ActualDuration:    rec.ActualDuration,
		DailyAllocations:  dailyAllocations,
		ActualDailyHours:  actualDailyHours,
		IsFixed:           rec.IsFixed,
		IsArchived:        rec.IsArchived,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}, nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timeLayout)
	return &s
}

func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseTimeOrNow(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse(timeLayout, s)
}
