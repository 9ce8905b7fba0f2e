package optimize

import "github.com/gopherwork/taskdog/internal/task"

// GreedyStrategy orders candidates by descending priority (ties by
// ascending deadline, then id) after a dependency-respecting
// topological pass, and allocates each with GreedyForwardAllocator.
type GreedyStrategy struct{}

func (GreedyStrategy) Optimize(candidates, contextTasks []*task.Task, params Params) (*Result, error) {
	if len(candidates) == 0 {
		return &Result{Ledger: newSeededLedger(contextTasks, nil)}, nil
	}

	ordered, err := orderCandidates(candidates)
	if err != nil {
		return nil, err
	}

	l := newSeededLedger(contextTasks, candidates)
	return allocateInOrder(ordered, l, params, GreedyForwardAllocator{}), nil
}
