package gen

// pickWeighted performs the linear-scan inverse-CDF sampling behind every
// categorical and weighted choice: r is a uniform draw in [0, total weight), and
// ties on equal cumulative weight are broken by picking the first
// candidate in declaration order — achieved here simply by using strict
// "<" so the first entry whose cumulative weight exceeds r wins.
func pickWeighted[T any](entries []T, weight func(T) float64, r float64) int {
	var cum float64
	for i, e := range entries {
		cum += weight(e)
		if r < cum {
			return i
		}
	}
	return len(entries) - 1
}

// TotalWeight sums weight(e) over entries.
func TotalWeight[T any](entries []T, weight func(T) float64) float64 {
	var total float64
	for _, e := range entries {
		total += weight(e)
	}
	return total
}

// PickWeighted exports pickWeighted for callers outside this package, with
// the same tie-break rule OneOf and the categorical leaves use.
func PickWeighted[T any](entries []T, weight func(T) float64, r float64) int {
	return pickWeighted(entries, weight, r)
}
