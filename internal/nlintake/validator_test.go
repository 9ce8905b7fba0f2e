package nlintake

import (
	"testing"
	"time"
)

func hoursPtr(h float64) *float64 { return &h }

func TestValidateAcceptsWellFormedDrafts(t *testing.T) {
	now := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)
	v := NewValidator(now)

	result := v.Validate([]DraftTask{
		{Name: "write report", Priority: 7, EstimatedDuration: hoursPtr(3), Deadline: "2025-10-25"},
		{Name: "email client", Priority: 3},
	})

	if !result.Valid {
		t.Fatalf("expected valid, got errors: %v", result.Errors)
	}
}

func TestValidateRejectsEmptyName(t *testing.T) {
	v := NewValidator(time.Now())
	result := v.Validate([]DraftTask{{Name: "  ", Priority: 5}})

	if result.Valid {
		t.Fatal("expected invalid for empty name")
	}
	if result.Errors[0].Field != "name" {
		t.Errorf("expected name error, got %+v", result.Errors[0])
	}
}

func TestValidateRejectsOutOfRangePriority(t *testing.T) {
	v := NewValidator(time.Now())
	result := v.Validate([]DraftTask{{Name: "a", Priority: 11}})

	if result.Valid {
		t.Fatal("expected invalid for out-of-range priority")
	}
}

func TestValidateRejectsNonPositiveDuration(t *testing.T) {
	v := NewValidator(time.Now())
	result := v.Validate([]DraftTask{{Name: "a", Priority: 5, EstimatedDuration: hoursPtr(0)}})

	if result.Valid {
		t.Fatal("expected invalid for zero duration")
	}
}

func TestValidateRejectsPastDeadline(t *testing.T) {
	now := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)
	v := NewValidator(now)
	result := v.Validate([]DraftTask{{Name: "a", Priority: 5, Deadline: "2025-01-01"}})

	if result.Valid {
		t.Fatal("expected invalid for past deadline")
	}
}

func TestValidateRejectsMalformedDeadline(t *testing.T) {
	v := NewValidator(time.Now())
	result := v.Validate([]DraftTask{{Name: "a", Priority: 5, Deadline: "not-a-date"}})

	if result.Valid {
		t.Fatal("expected invalid for malformed deadline")
	}
}

func TestFormatErrorsListsEveryViolation(t *testing.T) {
	v := NewValidator(time.Now())
	result := v.Validate([]DraftTask{{Name: "", Priority: 99}})

	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors (name, priority), got %d", len(result.Errors))
	}
	if result.FormatErrors() == "" {
		t.Fatal("expected non-empty formatted feedback")
	}
}
