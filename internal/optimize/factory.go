package optimize

// AlgorithmMetadata describes one registered strategy for display in
// CLI help text and the `algorithms` CLI command.
type AlgorithmMetadata struct {
	Name        string
	DisplayName string
	Description string
}

var registry = []AlgorithmMetadata{
	{Name: "greedy_forward", DisplayName: "Greedy Forward", Description: "Fills the earliest available working days first, ordered by priority."},
	{Name: "balanced", DisplayName: "Balanced", Description: "Spreads a task's hours evenly across its available window."},
	{Name: "monte_carlo", DisplayName: "Monte Carlo", Description: "Samples random valid orderings and keeps the best-scoring one."},
	{Name: "hard_deadline", DisplayName: "Hard Deadline", Description: "Greedy allocation that fails rather than overrun a task's deadline."},
	{Name: "priority_weighted", DisplayName: "Priority Weighted", Description: "Orders strictly by priority, ignoring deadlines."},
	{Name: "short_tasks_first", DisplayName: "Short Tasks First", Description: "Schedules the shortest tasks first to maximize completions."},
	{Name: "genetic", DisplayName: "Genetic", Description: "Monte Carlo search sized by generations times population size."},
}

// Create builds the named Strategy. defaultStartHour/defaultEndHour
// are accepted for strategies that need them as
// fallbacks; the current strategy set reads them from Params instead,
// so they are unused here today but kept in the signature to match
// the documented factory contract exactly.
func Create(name string, defaultStartHour, defaultEndHour float64) (Strategy, error) {
	switch name {
	case "greedy_forward":
		return GreedyStrategy{}, nil
	case "balanced":
		return BalancedStrategy{}, nil
	case "monte_carlo":
		return MonteCarloStrategy{}, nil
	case "hard_deadline":
		return HardDeadlineStrategy{}, nil
	case "priority_weighted":
		return PriorityWeightedStrategy{}, nil
	case "short_tasks_first":
		return ShortTasksFirstStrategy{}, nil
	case "genetic":
		return GeneticStrategy{}, nil
	default:
		return nil, &UnknownAlgorithmError{Name: name}
	}
}

// ListAvailable returns every registered algorithm name.
func ListAvailable() []string {
	names := make([]string, len(registry))
	for i, m := range registry {
		names[i] = m.Name
	}
	return names
}

// GetAlgorithmMetadata returns the full registry for display purposes.
func GetAlgorithmMetadata() []AlgorithmMetadata {
	return append([]AlgorithmMetadata(nil), registry...)
}
