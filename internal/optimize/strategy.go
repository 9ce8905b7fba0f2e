package optimize

import (
	"sort"

	"github.com/gopherwork/taskdog/internal/ledger"
	"github.com/gopherwork/taskdog/internal/task"
)

// SchedulingFailure pairs a candidate task with why it could not be
// allocated.
type SchedulingFailure struct {
	Task   *task.Task
	Reason string
}

// Result is the outcome of one strategy invocation: the mutated, successfully scheduled tasks, the ledger they
// were allocated against, and the failures for tasks that didn't fit.
type Result struct {
	Scheduled []*task.Task
	Ledger    *ledger.Ledger
	Failures  []SchedulingFailure
}

// Strategy orders a set of candidate tasks and allocates each in turn.
type Strategy interface {
	Optimize(candidates, contextTasks []*task.Task, params Params) (*Result, error)
}

// seedLedger commits every context task that should count in workload
//, excluding the candidates currently being re-planned.
func seedLedger(l *ledger.Ledger, contextTasks []*task.Task, candidates []*task.Task) {
	replanned := make(map[int64]bool, len(candidates))
	for _, c := range candidates {
		replanned[c.ID] = true
	}
	for _, t := range contextTasks {
		if ShouldCountInWorkload(t, replanned) {
			l.Seed(t)
		}
	}
}

// byPriorityDeadlineID sorts tasks by descending priority, then
// ascending deadline (absent deadlines sort last), then ascending id
//, for deterministic ordering across runs.
func byPriorityDeadlineID(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		ad, bd := a.Deadline != nil, b.Deadline != nil
		if ad != bd {
			return ad // defined deadline sorts before absent
		}
		if ad && bd && !a.Deadline.Equal(*b.Deadline) {
			return a.Deadline.Before(*b.Deadline)
		}
		return a.ID < b.ID
	})
}

// orderCandidates sorts candidates by priority/deadline/id, then runs
// stableTopoRefine over that order so that a dependency always
// precedes its dependent while priority grouping is kept where
// dependencies allow.
func orderCandidates(candidates []*task.Task) ([]*task.Task, error) {
	byPriority := append([]*task.Task(nil), candidates...)
	byPriorityDeadlineID(byPriority)
	return stableTopoRefine(byPriority, candidates)
}

// stableTopoRefine re-applies the topological constraint after the
// priority sort, since a plain stable sort by priority alone can place
// a dependent before its dependency when priorities differ. It walks
// the priority-sorted list and defers any task whose dependency hasn't
// been emitted yet, preserving the priority order as much as the
// dependency graph allows.
func stableTopoRefine(priorityOrdered, original []*task.Task) ([]*task.Task, error) {
	emitted := make(map[int64]bool, len(original))
	byID := make(map[int64]*task.Task, len(original))
	for _, t := range original {
		byID[t.ID] = t
	}

	remaining := append([]*task.Task(nil), priorityOrdered...)
	ordered := make([]*task.Task, 0, len(original))

	for len(remaining) > 0 {
		progressed := false
		for i, t := range remaining {
			ready := true
			for _, depID := range t.DependsOn {
				if _, inSet := byID[depID]; inSet && !emitted[depID] {
					ready = false
					break
				}
			}
			if ready {
				ordered = append(ordered, t)
				emitted[t.ID] = true
				remaining = append(remaining[:i:i], remaining[i+1:]...)
				progressed = true
				break
			}
		}
		if !progressed {
			var stuck []int64
			for _, t := range remaining {
				stuck = append(stuck, t.ID)
			}
			return nil, &DependencyCycleError{TaskIDs: stuck}
		}
	}
	return ordered, nil
}

// newSeededLedger builds a fresh Ledger seeded from contextTasks,
// excluding the given candidates from their own seed contribution.
func newSeededLedger(contextTasks, candidates []*task.Task) *ledger.Ledger {
	l := ledger.New()
	seedLedger(l, contextTasks, candidates)
	return l
}

// allocateInOrder runs alloc over ordered against l and params,
// building a Result.
func allocateInOrder(ordered []*task.Task, l *ledger.Ledger, params Params, alloc Allocator) *Result {
	result := &Result{Ledger: l}
	for _, t := range ordered {
		scheduled, _, reason := alloc.Allocate(t, l, params)
		if reason != "" {
			result.Failures = append(result.Failures, SchedulingFailure{Task: t, Reason: reason})
			continue
		}
		result.Scheduled = append(result.Scheduled, scheduled)
	}
	return result
}
