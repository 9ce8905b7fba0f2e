package optimize

import (
	"sort"

	"github.com/gopherwork/taskdog/internal/task"
)

// HardDeadlineStrategy orders candidates the same way as
// GreedyStrategy but sets Params.HardDeadline so the allocator fails
// a candidate outright rather than merely incurring a fitness penalty
// when it would finish past its deadline.
type HardDeadlineStrategy struct{}

func (HardDeadlineStrategy) Optimize(candidates, contextTasks []*task.Task, params Params) (*Result, error) {
	if len(candidates) == 0 {
		return &Result{Ledger: newSeededLedger(contextTasks, nil)}, nil
	}
	ordered, err := orderCandidates(candidates)
	if err != nil {
		return nil, err
	}
	params.HardDeadline = true
	l := newSeededLedger(contextTasks, candidates)
	return allocateInOrder(ordered, l, params, GreedyForwardAllocator{}), nil
}

// PriorityWeightedStrategy orders purely by descending priority (no
// deadline tiebreak), then ascending id, after the topological
// pre-pass, and allocates greedily.
type PriorityWeightedStrategy struct{}

func (PriorityWeightedStrategy) Optimize(candidates, contextTasks []*task.Task, params Params) (*Result, error) {
	if len(candidates) == 0 {
		return &Result{Ledger: newSeededLedger(contextTasks, nil)}, nil
	}

	byPriority := append([]*task.Task(nil), candidates...)
	sort.SliceStable(byPriority, func(i, j int) bool {
		if byPriority[i].Priority != byPriority[j].Priority {
			return byPriority[i].Priority > byPriority[j].Priority
		}
		return byPriority[i].ID < byPriority[j].ID
	})
	ordered, err := stableTopoRefine(byPriority, candidates)
	if err != nil {
		return nil, err
	}

	l := newSeededLedger(contextTasks, candidates)
	return allocateInOrder(ordered, l, params, GreedyForwardAllocator{}), nil
}

// ShortTasksFirstStrategy orders candidates by ascending estimated
// duration (shortest first), then ascending id, respecting dependency
// order, and allocates greedily — useful for maximizing the count of
// completed tasks per run.
type ShortTasksFirstStrategy struct{}

func (ShortTasksFirstStrategy) Optimize(candidates, contextTasks []*task.Task, params Params) (*Result, error) {
	if len(candidates) == 0 {
		return &Result{Ledger: newSeededLedger(contextTasks, nil)}, nil
	}

	byDuration := append([]*task.Task(nil), candidates...)
	sort.SliceStable(byDuration, func(i, j int) bool {
		di, dj := duration(byDuration[i]), duration(byDuration[j])
		if di != dj {
			return di < dj
		}
		return byDuration[i].ID < byDuration[j].ID
	})
	ordered, err := stableTopoRefine(byDuration, candidates)
	if err != nil {
		return nil, err
	}

	l := newSeededLedger(contextTasks, candidates)
	return allocateInOrder(ordered, l, params, GreedyForwardAllocator{}), nil
}

func duration(t *task.Task) float64 {
	if t.EstimatedDuration == nil {
		return 0
	}
	return *t.EstimatedDuration
}

// GeneticStrategy runs MonteCarloStrategy with Generations *
// PopulationSize simulations: it samples that many random
// dependency-respecting orderings, scores each with a greedy-forward
// trial, and allocates with the best one. No selection, crossover or
// mutation carries orderings from one generation to the next.
type GeneticStrategy struct {
	Generations    int
	PopulationSize int
}

const (
	defaultGenerations    = 8
	defaultPopulationSize = 12
)

func (g GeneticStrategy) Optimize(candidates, contextTasks []*task.Task, params Params) (*Result, error) {
	if len(candidates) == 0 {
		return &Result{Ledger: newSeededLedger(contextTasks, nil)}, nil
	}
	if _, err := TopoSort(candidates); err != nil {
		return nil, err
	}

	generations := g.Generations
	if generations <= 0 {
		generations = defaultGenerations
	}
	populationSize := g.PopulationSize
	if populationSize <= 0 {
		populationSize = defaultPopulationSize
	}

	mc := MonteCarloStrategy{Simulations: generations * populationSize}
	return mc.Optimize(candidates, contextTasks, params)
}
