package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gopherwork/taskdog/internal/calendar"
	"github.com/gopherwork/taskdog/internal/clock"
	"github.com/gopherwork/taskdog/internal/config"
	"github.com/gopherwork/taskdog/internal/task"
)

// fakeRepository is a minimal in-memory task.Repository for exercising
// the use case layer without a real database.
type fakeRepository struct {
	tasks  map[int64]*task.Task
	nextID int64
}

func newFakeRepository(tasks ...*task.Task) *fakeRepository {
	r := &fakeRepository{tasks: make(map[int64]*task.Task), nextID: 1}
	for _, t := range tasks {
		r.tasks[t.ID] = t
		if t.ID >= r.nextID {
			r.nextID = t.ID + 1
		}
	}
	return r
}

func (r *fakeRepository) GetAll(ctx context.Context) ([]*task.Task, error) {
	out := make([]*task.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

func (r *fakeRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*task.Task, error) {
	out := make(map[int64]*task.Task)
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (r *fakeRepository) SaveAll(ctx context.Context, tasks []*task.Task) error {
	for _, t := range tasks {
		if t.ID == 0 {
			t.ID = r.nextID
			r.nextID++
		}
		r.tasks[t.ID] = t
	}
	return nil
}

func (r *fakeRepository) CountTasks(ctx context.Context) (int, error) {
	return len(r.tasks), nil
}

func (r *fakeRepository) CountTasksWithTags(ctx context.Context, tags []string) (int, error) {
	return 0, nil
}

func (r *fakeRepository) GetDailyWorkloadTotals(ctx context.Context, start, end string, taskIDs []int64) (map[string]float64, error) {
	return nil, nil
}

func (r *fakeRepository) List(ctx context.Context, filter task.ListFilter) ([]*task.Task, error) {
	return r.GetAll(ctx)
}

func (r *fakeRepository) Close() error { return nil }

func hoursPtr(h float64) *float64 { return &h }

func testCalendar() *calendar.Oracle {
	return calendar.New([]string{"monday", "tuesday", "wednesday", "thursday", "friday"}, nil)
}

func TestOptimizeUseCaseSchedulesAllTasksByDefault(t *testing.T) {
	repo := newFakeRepository(
		&task.Task{ID: 1, Name: "a", Status: task.StatusPending, EstimatedDuration: hoursPtr(2), Priority: 5},
		&task.Task{ID: 2, Name: "b", Status: task.StatusPending, EstimatedDuration: hoursPtr(2), Priority: 3},
	)

	uc := &OptimizeUseCase{
		Repo:     repo,
		Calendar: testCalendar(),
		Clock:    clock.Fixed{T: mustDate("2025-10-20")},
		Config:   config.Default(),
	}

	summary, err := uc.Run(context.Background(), OptimizeRequest{Algorithm: "greedy_forward"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.ScheduledTasks) != 2 {
		t.Fatalf("expected 2 scheduled tasks, got %d", len(summary.ScheduledTasks))
	}
	if summary.TotalHours != 4 {
		t.Errorf("expected total hours 4, got %v", summary.TotalHours)
	}
	if summary.StartDate == nil || summary.EndDate == nil {
		t.Fatal("expected start and end dates to be set")
	}

	persisted, _ := repo.GetByID(context.Background(), 1)
	if persisted.PlannedStart == nil {
		t.Error("expected scheduled task to be persisted with a planned start")
	}
}

func TestOptimizeUseCaseRunTwiceWithoutForceOverrideIsIdempotent(t *testing.T) {
	repo := newFakeRepository(
		&task.Task{ID: 1, Name: "a", Status: task.StatusPending, EstimatedDuration: hoursPtr(2), Priority: 5},
		&task.Task{ID: 2, Name: "b", Status: task.StatusPending, EstimatedDuration: hoursPtr(2), Priority: 3},
	)
	req := OptimizeRequest{Algorithm: "greedy_forward", ForceOverride: false}
	uc := &OptimizeUseCase{
		Repo:     repo,
		Calendar: testCalendar(),
		Clock:    clock.Fixed{T: mustDate("2025-10-20")},
		Config:   config.Default(),
	}

	first, err := uc.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error on first run: %v", err)
	}
	if len(first.ScheduledTasks) != 2 {
		t.Fatalf("expected first run to schedule 2 tasks, got %d", len(first.ScheduledTasks))
	}

	before := make(map[int64]*time.Time, len(repo.tasks))
	beforeAllocations := make(map[int64]map[string]float64, len(repo.tasks))
	for id, persisted := range repo.tasks {
		before[id] = persisted.PlannedStart
		allocations := make(map[string]float64, len(persisted.DailyAllocations))
		for k, v := range persisted.DailyAllocations {
			allocations[k] = v
		}
		beforeAllocations[id] = allocations
	}

	second, err := uc.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if len(second.ScheduledTasks) != 0 {
		t.Fatalf("expected second run to schedule 0 tasks (already planned, force_override=false), got %d", len(second.ScheduledTasks))
	}

	for id, persisted := range repo.tasks {
		wantStart := before[id]
		switch {
		case wantStart == nil && persisted.PlannedStart != nil:
			t.Errorf("task %d: planned start appeared on second run", id)
		case wantStart != nil && persisted.PlannedStart == nil:
			t.Errorf("task %d: planned start vanished on second run", id)
		case wantStart != nil && persisted.PlannedStart != nil && !wantStart.Equal(*persisted.PlannedStart):
			t.Errorf("task %d: planned start changed from %v to %v", id, wantStart, persisted.PlannedStart)
		}

		wantAllocations := beforeAllocations[id]
		if len(wantAllocations) != len(persisted.DailyAllocations) {
			t.Errorf("task %d: daily allocations changed from %v to %v", id, wantAllocations, persisted.DailyAllocations)
			continue
		}
		for date, hours := range wantAllocations {
			if persisted.DailyAllocations[date] != hours {
				t.Errorf("task %d: allocation on %s changed from %v to %v", id, date, hours, persisted.DailyAllocations[date])
			}
		}
	}
}

func TestOptimizeUseCaseUnknownTaskIDReturnsNotFoundError(t *testing.T) {
	repo := newFakeRepository()
	uc := &OptimizeUseCase{
		Repo:     repo,
		Calendar: testCalendar(),
		Clock:    clock.Fixed{T: mustDate("2025-10-20")},
		Config:   config.Default(),
	}

	_, err := uc.Run(context.Background(), OptimizeRequest{TaskIDs: []int64{42}, Algorithm: "greedy_forward"})
	var notFound *TaskNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected TaskNotFoundError, got %v", err)
	}
}

func TestOptimizeUseCaseAllRequestedTasksRejectedReturnsError(t *testing.T) {
	archived := &task.Task{ID: 1, Status: task.StatusPending, EstimatedDuration: hoursPtr(2), IsArchived: true}
	repo := newFakeRepository(archived)
	uc := &OptimizeUseCase{
		Repo:     repo,
		Calendar: testCalendar(),
		Clock:    clock.Fixed{T: mustDate("2025-10-20")},
		Config:   config.Default(),
	}

	_, err := uc.Run(context.Background(), OptimizeRequest{TaskIDs: []int64{1}, Algorithm: "greedy_forward"})
	if !errors.Is(err, ErrNoSchedulableTasks) {
		t.Fatalf("expected ErrNoSchedulableTasks, got %v", err)
	}
}

func TestOptimizeUseCaseUnknownAlgorithmPropagatesError(t *testing.T) {
	repo := newFakeRepository(&task.Task{ID: 1, Status: task.StatusPending, EstimatedDuration: hoursPtr(2)})
	uc := &OptimizeUseCase{
		Repo:     repo,
		Calendar: testCalendar(),
		Clock:    clock.Fixed{T: mustDate("2025-10-20")},
		Config:   config.Default(),
	}

	_, err := uc.Run(context.Background(), OptimizeRequest{Algorithm: "not-a-real-algorithm"})
	if err == nil {
		t.Fatal("expected an error for an unknown algorithm")
	}
}

func TestSimulateUseCaseReturnsBestOutcomeAcrossAlgorithms(t *testing.T) {
	repo := newFakeRepository()
	uc := &SimulateUseCase{
		Repo:     repo,
		Calendar: testCalendar(),
		Clock:    clock.Fixed{T: mustDate("2025-10-20")},
		Config:   config.Default(),
	}

	virtual := &task.Task{Name: "hypothetical", EstimatedDuration: hoursPtr(2), Priority: 5}
	summary, err := uc.Run(context.Background(), OptimizeRequest{}, virtual)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Best == nil {
		t.Fatal("expected a best outcome")
	}
	if len(summary.Attempts) == 0 {
		t.Error("expected at least one attempt recorded")
	}

	if _, err := repo.GetByID(context.Background(), virtualTaskID); err == nil {
		t.Error("simulate must never persist the virtual task")
	}
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
