// Package view provides rendering helpers for the TUI.
package view

import (
	"fmt"
	"math"
)

// FormatDuration formats hours (fractional, as carried on
// task.Task.EstimatedDuration and DaySummary.AllocatedHours) as
// "Xh Ym".
func FormatDuration(hours float64) string {
	totalMinutes := int(math.Round(hours * 60))
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm", totalMinutes)
	}
	h := totalMinutes / 60
	m := totalMinutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
