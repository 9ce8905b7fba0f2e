package optimize

import "github.com/gopherwork/taskdog/internal/task"

// IsSchedulable reports whether t is schedulable, given a
// force_override flag.
func IsSchedulable(t *task.Task, forceOverride bool) bool {
	if !t.HasEstimate() || *t.EstimatedDuration <= 0 {
		return false
	}
	if t.Status != task.StatusPending {
		return false
	}
	if t.IsArchived {
		return false
	}
	if t.IsFixed {
		return false
	}
	if t.PlannedStart != nil && !forceOverride {
		return false
	}
	return true
}

// SchedulabilityReason returns a human-readable reason IsSchedulable
// would return false, or "" if the task is schedulable. Used to report
// per-task rejection reasons to the optimize use case.
func SchedulabilityReason(t *task.Task, forceOverride bool) string {
	switch {
	case !t.HasEstimate() || *t.EstimatedDuration <= 0:
		return "no positive estimated duration"
	case t.Status != task.StatusPending:
		return "status is not pending"
	case t.IsArchived:
		return "task is archived"
	case t.IsFixed:
		return "task is fixed"
	case t.PlannedStart != nil && !forceOverride:
		return "already planned (force_override not set)"
	default:
		return ""
	}
}

// ShouldCountInWorkload reports whether t should seed the ledger.
// beingReplanned is the set of task ids in the
// schedulable candidate set for the current run — tasks being
// actively re-planned are excluded from their own seed contribution.
func ShouldCountInWorkload(t *task.Task, beingReplanned map[int64]bool) bool {
	if t.IsArchived {
		return false
	}
	if t.Status != task.StatusPending && t.Status != task.StatusInProgress {
		return false
	}
	if t.IsFixed {
		return true
	}
	if t.IsFinished() {
		return false
	}
	return !beingReplanned[t.ID]
}
