package discount

import (
	"fmt"
	"strconv"
)

// FormatPercentage renders a percentage verbatim: 15 -> "15", 12.5 -> "12.5".
func FormatPercentage(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// CodeFor returns the discount code owned by a tier under a namespace prefix.
// Tiers with equal percentages share a code regardless of count.
func CodeFor(t Tier, prefix string) string {
	return prefix + "-" + FormatPercentage(t.Percentage)
}

// TitleFor returns the merchant-facing discount title.
func TitleFor(t Tier) string {
	return fmt.Sprintf("%s%% off when you buy %d+ items", FormatPercentage(t.Percentage), t.Count)
}
