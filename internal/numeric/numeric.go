// Package numeric holds the small set of statistics shared by the
// summary and keyoffset packages, factored out so both use the exact
// same percentile/median definition.
package numeric

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation of xs, or 0 for an
// empty slice.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

/*
Percentile computes the q-th percentile (q in [0,100]) of xs using linear
interpolation between order statistics, the "type 7" definition used by
NumPy and R, so results line up with the offline tooling's.

Input:
  - xs: []float64 - sample values, need not be sorted.
  - q: float64 - requested percentile in [0, 100].

Output:
  - float64: interpolated percentile value, or 0 for an empty slice.
*/
func Percentile(xs []float64, q float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := (q / 100.0) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Median is Percentile(xs, 50).
func Median(xs []float64) float64 {
	return Percentile(xs, 50)
}
