package optimize

import (
	"sort"

	"github.com/gopherwork/taskdog/internal/task"
)

// TopoSort arranges tasks so that every task appears after all tasks
// named in its DependsOn, via Kahn's algorithm. Ties
// among tasks with no remaining dependencies are broken by ascending
// id, for determinism. Returns DependencyCycleError naming the
// unresolved ids if a cycle exists.
func TopoSort(tasks []*task.Task) ([]*task.Task, error) {
	byID := make(map[int64]*task.Task, len(tasks))
	inDegree := make(map[int64]int, len(tasks))
	dependents := make(map[int64][]int64)

	for _, t := range tasks {
		byID[t.ID] = t
		if _, ok := inDegree[t.ID]; !ok {
			inDegree[t.ID] = 0
		}
	}
	for _, t := range tasks {
		for _, depID := range t.DependsOn {
			if _, ok := byID[depID]; !ok {
				// Dependency outside the candidate set; it is assumed
				// already satisfied (e.g. completed) and does not
				// constrain ordering within this run.
				continue
			}
			inDegree[t.ID]++
			dependents[depID] = append(dependents[depID], t.ID)
		}
	}

	var ready []int64
	for id, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

	ordered := make([]*task.Task, 0, len(tasks))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
		id := ready[0]
		ready = ready[1:]
		ordered = append(ordered, byID[id])

		for _, depID := range dependents[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				ready = append(ready, depID)
			}
		}
	}

	if len(ordered) != len(tasks) {
		var remaining []int64
		for id, deg := range inDegree {
			if deg > 0 {
				remaining = append(remaining, id)
			}
		}
		sort.Slice(remaining, func(i, j int) bool { return remaining[i] < remaining[j] })
		return nil, &DependencyCycleError{TaskIDs: remaining}
	}

	return ordered, nil
}
