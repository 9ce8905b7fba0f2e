package nlintake

import (
	"fmt"
	"strings"
	"time"
)

// DraftTask is one task candidate as decomposed by the LLM, before
// conversion to task.Task. A draft carries no time-block placement:
// the optimizer, not the LLM, decides when a task runs.
type DraftTask struct {
	Name              string   `json:"name"`
	Priority          int      `json:"priority"`
	EstimatedDuration *float64 `json:"estimated_duration_hours"`
	Deadline          string   `json:"deadline,omitempty"` // YYYY-MM-DD
	Tags              []string `json:"tags,omitempty"`
}

// DecomposeResponse is the parsed shape of one LLM decomposition
// response.
type DecomposeResponse struct {
	Tasks    []DraftTask `json:"tasks"`
	Warnings []string    `json:"warnings"`
}

// ValidationError names one draft task's field and what is wrong with
// it.
type ValidationError struct {
	TaskIndex int
	Field     string
	Message   string
}

func (e ValidationError) String() string {
	return fmt.Sprintf("task[%d].%s: %s", e.TaskIndex, e.Field, e.Message)
}

// ValidationResult is the outcome of validating one decomposition
// response.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// FormatErrors renders errors as feedback for an LLM retry turn.
func (r ValidationResult) FormatErrors() string {
	var sb strings.Builder
	sb.WriteString("Your response had these errors:\n")
	for _, e := range r.Errors {
		sb.WriteString("- ")
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}
	sb.WriteString("\nPlease correct these issues and respond again with valid JSON.")
	return sb.String()
}

// Validator checks draft tasks for the fields the optimizer requires
// before it will ever consider them schedulable (internal/optimize's
// IsSchedulable rules), plus basic sanity bounds an LLM is prone to
// violate (negative durations, out-of-range priorities, past
// deadlines).
type Validator struct {
	now time.Time
}

// NewValidator creates a Validator anchored at now, so a deadline of
// "today" isn't rejected as already past and a genuinely past date
// is.
func NewValidator(now time.Time) *Validator {
	return &Validator{now: now}
}

const (
	minPriority = 1
	maxPriority = 10
)

// Validate checks every draft task and reports all violations found;
// it never stops at the first error so a single retry turn can fix
// everything at once.
func (v *Validator) Validate(tasks []DraftTask) ValidationResult {
	var errs []ValidationError

	for i, t := range tasks {
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, ValidationError{i, "name", "must not be empty"})
		}
		if t.Priority < minPriority || t.Priority > maxPriority {
			errs = append(errs, ValidationError{i, "priority", fmt.Sprintf("must be between %d and %d", minPriority, maxPriority)})
		}
		if t.EstimatedDuration != nil && *t.EstimatedDuration <= 0 {
			errs = append(errs, ValidationError{i, "estimated_duration_hours", "must be positive when given"})
		}
		if t.Deadline != "" {
			deadline, err := time.Parse("2006-01-02", t.Deadline)
			if err != nil {
				errs = append(errs, ValidationError{i, "deadline", "must be formatted YYYY-MM-DD"})
			} else if deadline.Before(truncateToDay(v.now)) {
				errs = append(errs, ValidationError{i, "deadline", "must not be in the past"})
			}
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
