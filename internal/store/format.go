package store

import "strconv"

// FormatFloat renders x as the shortest round-trip decimal (e.g. "3",
// "3.14", "-0.5"), matching spec §4.5's float reply format.
func FormatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
