package dashboard

import "fmt"

// FormatDuration renders whole seconds as "<m>m <s>s". Callers pass
// non-negative values.
func FormatDuration(seconds int64) string {
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}
