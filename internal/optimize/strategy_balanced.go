package optimize

import "github.com/gopherwork/taskdog/internal/task"

// BalancedStrategy uses the same ordering and topological pre-pass as
// GreedyStrategy, but allocates with BalancedAllocator.
type BalancedStrategy struct{}

func (BalancedStrategy) Optimize(candidates, contextTasks []*task.Task, params Params) (*Result, error) {
	if len(candidates) == 0 {
		return &Result{Ledger: newSeededLedger(contextTasks, nil)}, nil
	}

	ordered, err := orderCandidates(candidates)
	if err != nil {
		return nil, err
	}

	l := newSeededLedger(contextTasks, candidates)
	return allocateInOrder(ordered, l, params, BalancedAllocator{}), nil
}
