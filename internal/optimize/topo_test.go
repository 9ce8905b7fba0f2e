package optimize

import (
	"errors"
	"testing"

	"github.com/gopherwork/taskdog/internal/task"
)

func TestTopoSortRespectsDependencies(t *testing.T) {
	a := &task.Task{ID: 1}
	b := &task.Task{ID: 2, DependsOn: []int64{1}}
	c := &task.Task{ID: 3, DependsOn: []int64{2}}

	ordered, err := TopoSort([]*task.Task{c, b, a})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	positions := make(map[int64]int, len(ordered))
	for i, t := range ordered {
		positions[t.ID] = i
	}
	if positions[1] >= positions[2] || positions[2] >= positions[3] {
		t.Errorf("dependency order violated: %v", positions)
	}
}

func TestTopoSortDetectsCycle(t *testing.T) {
	a := &task.Task{ID: 1, DependsOn: []int64{2}}
	b := &task.Task{ID: 2, DependsOn: []int64{1}}

	_, err := TopoSort([]*task.Task{a, b})
	if !errors.Is(err, ErrDependencyCycle) {
		t.Fatalf("got %v, want ErrDependencyCycle", err)
	}
}

func TestTopoSortTiesBrokenByID(t *testing.T) {
	a := &task.Task{ID: 3}
	b := &task.Task{ID: 1}
	c := &task.Task{ID: 2}

	ordered, err := TopoSort([]*task.Task{a, b, c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ordered[0].ID != 1 || ordered[1].ID != 2 || ordered[2].ID != 3 {
		t.Errorf("got order %v, want ascending id", ids(ordered))
	}
}

func ids(tasks []*task.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
