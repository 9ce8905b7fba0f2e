package summary

import (
	"testing"
	"time"

	"github.com/gopherwork/taskdog/internal/ledger"
	"github.com/gopherwork/taskdog/internal/task"
)

func TestSummarizeWeek(t *testing.T) {
	weekStart := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local) // Wednesday
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)
	sunday := time.Date(2025, 1, 19, 0, 0, 0, 0, time.Local)

	tasks := []*task.Task{
		{
			Name:             "deep work",
			Priority:         5,
			DailyAllocations: map[string]float64{"2025-01-13": 1},
		},
		{
			Name:             "shallow work",
			Priority:         2,
			DailyAllocations: map[string]float64{"2025-01-14": 0.5},
		},
		{
			Name:             "next week",
			Priority:         5,
			DailyAllocations: map[string]float64{"2025-01-20": 1},
		},
	}

	result := SummarizeWeek(weekStart, tasks)

	if !result.Start.Equal(monday) {
		t.Fatalf("start = %v, want %v", result.Start, monday)
	}
	if !result.End.Equal(sunday) {
		t.Fatalf("end = %v, want %v", result.End, sunday)
	}
	if result.TotalHours != 1.5 {
		t.Fatalf("total hours = %v, want 1.5", result.TotalHours)
	}
	if result.Days[0].AllocatedHours != 1 {
		t.Fatalf("monday hours = %v, want 1", result.Days[0].AllocatedHours)
	}
	if result.Days[1].AllocatedHours != 0.5 {
		t.Fatalf("tuesday hours = %v, want 0.5", result.Days[1].AllocatedHours)
	}
	if len(result.Days[0].Tasks) != 1 || result.Days[0].Tasks[0].Name != "deep work" {
		t.Fatalf("expected monday's task to be deep work, got %+v", result.Days[0].Tasks)
	}
}

func TestSummarizeLedger(t *testing.T) {
	l := ledger.New()
	l.Commit("2025-01-13", 2)
	l.Commit("2025-01-14", 3)

	start := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	result := SummarizeLedger(l, start, end)

	if result.Total != 5 {
		t.Fatalf("total = %v, want 5", result.Total)
	}
	if len(result.Dates) != 3 {
		t.Fatalf("dates = %d, want 3", len(result.Dates))
	}
	if result.Hours["2025-01-15"] != 0 {
		t.Fatalf("expected no hours committed on 2025-01-15, got %v", result.Hours["2025-01-15"])
	}
}
