package task

import (
	"errors"
	"testing"
	"time"
)

func hours(h float64) *float64 { return &h }

func TestNew(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		tsk, err := New("Write report", 10, hours(4))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tsk.Name != "Write report" {
			t.Errorf("got name %q, want %q", tsk.Name, "Write report")
		}
		if tsk.Status != StatusPending {
			t.Errorf("got status %q, want pending", tsk.Status)
		}
		if !tsk.HasEstimate() {
			t.Error("expected HasEstimate to be true")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := New("", 1, hours(1))
		if !errors.Is(err, ErrEmptyName) {
			t.Fatalf("got error %v, want ErrEmptyName", err)
		}
	})

	t.Run("negative duration", func(t *testing.T) {
		_, err := New("x", 1, hours(-1))
		if !errors.Is(err, ErrNegativeDuration) {
			t.Fatalf("got error %v, want ErrNegativeDuration", err)
		}
	})

	t.Run("nil duration is allowed but unschedulable", func(t *testing.T) {
		tsk, err := New("x", 1, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tsk.HasEstimate() {
			t.Error("expected HasEstimate to be false for nil duration")
		}
	})
}

func TestIsFinished(t *testing.T) {
	cases := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusInProgress, false},
		{StatusCompleted, true},
		{StatusCanceled, true},
	}
	for _, c := range cases {
		tsk := &Task{Status: c.status}
		if got := tsk.IsFinished(); got != c.want {
			t.Errorf("status %q: IsFinished() = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestClone(t *testing.T) {
	dur := 5.0
	deadline := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	orig := &Task{
		Name:              "original",
		EstimatedDuration: &dur,
		Deadline:          &deadline,
		Tags:              []string{"a", "b"},
		DependsOn:         []int64{1, 2},
		DailyAllocations:  map[string]float64{"2025-10-20": 6},
		ActualDailyHours:  map[string]float64{},
	}

	clone := orig.Clone()

	clone.Name = "changed"
	*clone.EstimatedDuration = 99
	clone.Tags[0] = "z"
	clone.DailyAllocations["2025-10-20"] = 1

	if orig.Name != "original" {
		t.Error("clone mutation leaked into original name")
	}
	if *orig.EstimatedDuration != 5 {
		t.Error("clone mutation leaked into original duration")
	}
	if orig.Tags[0] != "a" {
		t.Error("clone mutation leaked into original tags")
	}
	if orig.DailyAllocations["2025-10-20"] != 6 {
		t.Error("clone mutation leaked into original allocations")
	}
}

func TestTotalAllocatedHours(t *testing.T) {
	tsk := &Task{DailyAllocations: map[string]float64{
		"2025-10-20": 6,
		"2025-10-21": 4.5,
	}}
	if got := tsk.TotalAllocatedHours(); !AlmostEqual(got, 10.5) {
		t.Errorf("got %v, want 10.5", got)
	}
}

func TestValidateStatus(t *testing.T) {
	if err := ValidateStatus(StatusPending); err != nil {
		t.Errorf("unexpected error for valid status: %v", err)
	}
	if err := ValidateStatus(Status("bogus")); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("got %v, want ErrInvalidStatus", err)
	}
}
