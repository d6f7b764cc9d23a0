package core

import "fmt"

// FormatDuration renders whole seconds as "Xm Ys", the format shown on
// the leaderboard.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
