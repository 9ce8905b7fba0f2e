package task

import "context"

// ListFilter narrows a filtered read. Zero values mean "no constraint"
// on that field. Spec 6: "Filtered read with predicates ... for other
// consumers (not used by the core)" — kept on Repository because the
// CLI/import-export adapters in this repository are themselves such a
// consumer.
type ListFilter struct {
	IncludeArchived bool
	Status          *Status
	Tags            []string
	MatchAllTags    bool
	StartDate       string // "2006-01-02", inclusive
	EndDate         string // "2006-01-02", inclusive
}

// Repository defines the storage interface for tasks (spec 6).
type Repository interface {
	// GetAll returns every task.
	GetAll(ctx context.Context) ([]*Task, error)

	// GetByID retrieves a task by id. Returns ErrTaskNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Task, error)

	// GetByIDs retrieves multiple tasks by id, keyed by id. Missing ids
	// are simply absent from the result map.
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*Task, error)

	// SaveAll performs a bulk upsert. Tasks with ID == 0 are inserted
	// and get a repository-assigned id written back into the slice
	// element; tasks with a nonzero ID are updated in place. Tag and
	// dependency relations are rebuilt per task.
	SaveAll(ctx context.Context, tasks []*Task) error

	// CountTasks returns the total number of tasks.
	CountTasks(ctx context.Context) (int, error)

	// CountTasksWithTags returns the number of tasks carrying at least
	// one of the given tags.
	CountTasksWithTags(ctx context.Context, tags []string) (int, error)

	// GetDailyWorkloadTotals sums DailyAllocations across tasks (all
	// tasks, or only the given ids if non-empty) for dates in
	// [start, end] inclusive, keyed by "2006-01-02".
	GetDailyWorkloadTotals(ctx context.Context, start, end string, taskIDs []int64) (map[string]float64, error)

	// List returns tasks matching filter.
	List(ctx context.Context, filter ListFilter) ([]*Task, error)

	// Close releases any resources held by the repository.
	Close() error
}
