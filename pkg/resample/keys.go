package resample

import "slices"

// normalizeKeys returns the distinct keys in [0, n) in ascending order.
func normalizeKeys(keys []int, n int) []int {
	out := make([]int, 0, len(keys))
	for _, k := range keys {
		if k >= 0 && k < n {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
