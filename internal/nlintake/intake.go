package nlintake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gopherwork/taskdog/internal/task"
)

// ErrMaxRetriesExceeded is returned when every retry attempt still
// fails validation.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded, validation still failing")

const systemPrompt = `You are a task intake assistant. Decompose the user's free-text
request into discrete, independently schedulable tasks. Do not assign
dates, start times, or end times — a separate scheduler decides when
each task runs.

%s

User request: "%s"

Rules:
- Break multi-step requests into separate tasks; do not bundle unrelated work into one task.
- estimated_duration_hours is your best-effort estimate in hours (a positive number), or null if you cannot estimate it.
- priority is an integer from 1 (lowest) to 10 (highest), reflecting urgency and importance you infer from the request.
- deadline, if mentioned or implied, must be YYYY-MM-DD; omit it otherwise.
- tags are short lowercase keywords (e.g. "writing", "email", "code").

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "tasks": [
    {
      "name": "string",
      "priority": 1-10,
      "estimated_duration_hours": number or null,
      "deadline": "YYYY-MM-DD" (omit if none),
      "tags": ["string"]
    }
  ],
  "warnings": ["string"]
}`

// Intake decomposes natural language into draft task candidates using
// an LLM, validating and retrying until the response is well-formed
// or retries are exhausted. It never talks to internal/optimize or
// internal/usecase directly: the CLI converts a successful
// DecomposeResponse into task.Task values and feeds them through the
// normal SaveAll path, exactly like a taskio.Import.
type Intake struct {
	client Client
}

// New creates an Intake backed by client.
func New(client Client) *Intake {
	return &Intake{client: client}
}

// Request is the input to a decomposition attempt.
type Request struct {
	Input string
	Now   time.Time
}

// Result is the outcome of a decomposition, successful or not.
type Result struct {
	Tasks            []DraftTask
	Warnings         []string
	ValidationErrors []ValidationError
}

// Decompose calls the LLM, validates its response against Validate,
// and retries with error feedback up to maxRetries times. If retries
// are exhausted, it returns the last response alongside its
// validation errors rather than an error, so the caller can choose to
// show the user a partial result.
func (in *Intake) Decompose(ctx context.Context, req Request, maxRetries int) (*Result, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	messages := []Message{
		{Role: "system", Content: fmt.Sprintf(systemPrompt, now.Format("Monday, 2006-01-02"), req.Input)},
	}

	validator := NewValidator(now)

	var resp DecomposeResponse
	var lastValidation ValidationResult
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := in.client.ChatJSON(ctx, messages, &resp); err != nil {
			return nil, fmt.Errorf("LLM decomposition (attempt %d): %w", attempt+1, err)
		}

		lastValidation = validator.Validate(resp.Tasks)
		if lastValidation.Valid {
			return &Result{Tasks: resp.Tasks, Warnings: resp.Warnings}, nil
		}

		if attempt < maxRetries {
			respJSON, _ := json.Marshal(resp)
			messages = append(messages,
				Message{Role: "assistant", Content: string(respJSON)},
				Message{Role: "user", Content: lastValidation.FormatErrors()},
			)
		}
	}

	return &Result{Tasks: resp.Tasks, Warnings: resp.Warnings, ValidationErrors: lastValidation.Errors}, nil
}

// ToTasks converts every draft in a Result into a task.Task, skipping
// (and reporting) any that still fail construction — this is a second,
// cheaper line of defense after Validate, covering constructor checks
// (task.New's empty-name/negative-duration guards) that a caller-side
// retry loop has already exhausted its budget on.
func ToTasks(drafts []DraftTask) ([]*task.Task, []error) {
	tasks := make([]*task.Task, 0, len(drafts))
	var errs []error

	for _, d := range drafts {
		t, err := task.New(strings.TrimSpace(d.Name), d.Priority, d.EstimatedDuration)
		if err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", d.Name, err))
			continue
		}
		t.Tags = d.Tags

		if d.Deadline != "" {
			deadline, err := time.Parse("2006-01-02", d.Deadline)
			if err != nil {
				errs = append(errs, fmt.Errorf("%q: parsing deadline: %w", d.Name, err))
				continue
			}
			t.Deadline = &deadline
		}

		tasks = append(tasks, t)
	}

	return tasks, errs
}
