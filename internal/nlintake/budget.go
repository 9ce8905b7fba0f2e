package nlintake

import (
	"github.com/pkoukk/tiktoken-go"
)

// contextBudgetTokens caps how many tokens of recent-task context
// lines fitRecentTasks keeps. Local models (Ollama, LM Studio) tend to
// have much smaller context windows than hosted Copilot models, so the
// budget is the same regardless of provider. The decomposition prompt
// built in intake.go does not include recent-task context.
const contextBudgetTokens = 2000

// tokenCounter counts tokens the way the target model will, so
// trimming context lines actually keeps the prompt under budget
// instead of guessing by character count.
type tokenCounter struct {
	enc *tiktoken.Tiktoken
}

func newTokenCounter() *tokenCounter {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return &tokenCounter{}
	}
	return &tokenCounter{enc: enc}
}

func (c *tokenCounter) count(s string) int {
	if c.enc == nil {
		// Fall back to a rough estimate if the encoder failed to load.
		return len(s) / 4
	}
	return len(c.enc.Encode(s, nil, nil))
}

// fitRecentTasks keeps the most recent task lines that fit within
// contextBudgetTokens, dropping the oldest first. lines are assumed
// already ordered oldest-to-newest.
func fitRecentTasks(lines []string) []string {
	counter := newTokenCounter()

	budget := contextBudgetTokens
	kept := make([]string, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		cost := counter.count(lines[i])
		if cost > budget {
			break
		}
		budget -= cost
		kept = append(kept, lines[i])
	}

	return reverseStrings(kept)
}

func reverseStrings(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
