package optimize

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/gopherwork/taskdog/internal/task"
)

// DefaultMonteCarloSimulations caps how many random orderings are
// sampled when Simulations is unset.
const DefaultMonteCarloSimulations = 100

// MonteCarloStrategy samples random linear extensions of the
// dependency DAG, scores each via a disposable simulated ledger, and
// performs one real allocation pass using the best-scoring ordering
// found.
type MonteCarloStrategy struct {
	// Simulations overrides DefaultMonteCarloSimulations when > 0.
	Simulations int
}

func (m MonteCarloStrategy) Optimize(candidates, contextTasks []*task.Task, params Params) (*Result, error) {
	if len(candidates) == 0 {
		return &Result{Ledger: newSeededLedger(contextTasks, nil)}, nil
	}

	if _, err := TopoSort(candidates); err != nil {
		return nil, err
	}

	n := m.Simulations
	if n <= 0 {
		n = DefaultMonteCarloSimulations
	}

	var rng *rand.Rand
	if params.Seed != nil {
		rng = rand.New(rand.NewSource(*params.Seed))
	} else {
		rng = rand.New(rand.NewSource(params.Now.Now().UnixNano()))
	}

	best := candidates
	bestScore := math.Inf(-1)
	seen := make(map[string]bool)

	for i := 0; i < n; i++ {
		ordering, err := randomLinearExtension(candidates, rng)
		if err != nil {
			return nil, err
		}
		key := orderingKey(ordering)
		if seen[key] {
			continue
		}
		seen[key] = true

		trialLedger := newSeededLedger(contextTasks, candidates)
		trialResult := allocateInOrder(ordering, trialLedger, params, GreedyForwardAllocator{})
		score := Score(trialResult.Scheduled, trialLedger, true)
		if score > bestScore {
			bestScore = score
			best = ordering
		}
	}

	l := newSeededLedger(contextTasks, candidates)
	return allocateInOrder(best, l, params, GreedyForwardAllocator{}), nil
}

// randomLinearExtension returns a uniformly random topological
// ordering of candidates respecting DependsOn, via randomized Kahn's
// algorithm (choose uniformly among the ready set at each step).
func randomLinearExtension(candidates []*task.Task, rng *rand.Rand) ([]*task.Task, error) {
	byID := make(map[int64]*task.Task, len(candidates))
	inDegree := make(map[int64]int, len(candidates))
	dependents := make(map[int64][]int64)

	for _, t := range candidates {
		byID[t.ID] = t
		if _, ok := inDegree[t.ID]; !ok {
			inDegree[t.ID] = 0
		}
	}
	for _, t := range candidates {
		for _, depID := range t.DependsOn {
			if _, ok := byID[depID]; !ok {
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

	ordered := make([]*task.Task, 0, len(candidates))
	for len(ready) > 0 {
		idx := rng.Intn(len(ready))
		id := ready[idx]
		ready = append(ready[:idx], ready[idx+1:]...)
		ordered = append(ordered, byID[id])

		for _, depID := range dependents[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				ready = append(ready, depID)
			}
		}
	}

	if len(ordered) != len(candidates) {
		return nil, &DependencyCycleError{}
	}
	return ordered, nil
}

func orderingKey(ordering []*task.Task) string {
	var b strings.Builder
	for i, t := range ordering {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", t.ID)
	}
	return b.String()
}
