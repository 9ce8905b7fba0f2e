package optimize

import (
	"testing"
	"time"

	"github.com/gopherwork/taskdog/internal/ledger"
	"github.com/gopherwork/taskdog/internal/task"
)

func TestScorePriorityOrderMatters(t *testing.T) {
	high := &task.Task{Priority: 10}
	low := &task.Task{Priority: 1}

	l := ledger.New()
	firstHigh := Score([]*task.Task{high, low}, l, false)
	firstLow := Score([]*task.Task{low, high}, l, false)

	if firstHigh <= firstLow {
		t.Errorf("expected scheduling the high-priority task first to score higher: %v vs %v", firstHigh, firstLow)
	}
}

func TestScoreDeadlinePenalty(t *testing.T) {
	deadline := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	onTime := deadline
	late := deadline.AddDate(0, 0, 2)

	l := ledger.New()
	onTimeScore := Score([]*task.Task{{Priority: 1, Deadline: &deadline, PlannedEnd: &onTime}}, l, false)
	lateScore := Score([]*task.Task{{Priority: 1, Deadline: &deadline, PlannedEnd: &late}}, l, false)

	if lateScore >= onTimeScore {
		t.Errorf("expected a deadline penalty for finishing late: on-time=%v late=%v", onTimeScore, lateScore)
	}
	if onTimeScore-lateScore != 2*DeadlinePenaltyPerDay {
		t.Errorf("got penalty delta %v, want %v", onTimeScore-lateScore, 2*DeadlinePenaltyPerDay)
	}
}

func TestScoreSchedulingBonusToggle(t *testing.T) {
	l := ledger.New()
	scheduled := []*task.Task{{Priority: 1}}

	withBonus := Score(scheduled, l, true)
	withoutBonus := Score(scheduled, l, false)

	if withBonus-withoutBonus != SchedulingBonusPerTask {
		t.Errorf("got bonus delta %v, want %v", withBonus-withoutBonus, SchedulingBonusPerTask)
	}
}

func TestScoreWorkloadPenalizesUnevenLoad(t *testing.T) {
	even := ledger.New()
	even.Commit("2025-10-20", 4)
	even.Commit("2025-10-21", 4)

	uneven := ledger.New()
	uneven.Commit("2025-10-20", 8)
	uneven.Commit("2025-10-21", 0.0001)

	evenScore := Score(nil, even, false)
	unevenScore := Score(nil, uneven, false)

	if unevenScore >= evenScore {
		t.Errorf("expected uneven workload to score lower: even=%v uneven=%v", evenScore, unevenScore)
	}
}
