// Package compare implements the Comparator component: per-frame cents
// difference between an aligned user track and the reference track.
package compare

import (
	"math"

	"singtrainer/internal/align"
	"singtrainer/internal/pitch"
)

// CentsArray holds one cents-difference value (or none) per reference
// frame. Missingness is an explicit parallel mask rather than NaN, so
// reductions can't silently propagate or skip values.
type CentsArray struct {
	Values  []float64
	Present []bool
}

// Present values only, in frame order.
func (c CentsArray) PresentValues() []float64 {
	out := make([]float64, 0, len(c.Values))
	for i, p := range c.Present {
		if p {
			out = append(out, c.Values[i])
		}
	}
	return out
}

/*
Compare computes per-frame cents error between ref and an aligned user
track.

Input:
  - ref: *pitch.Track - reference track; defines the output length.
  - usr: align.AlignedUser - user f0 values already mapped onto ref's grid.

Task:
  - Emit 1200*log2(user/ref) wherever both operands are present and
    strictly positive; missing otherwise.

Logic:
  No thresholding happens here: classification into low/high/miss is
  the event segmenter's job, not the comparator's.

Output:
  - CentsArray: length == len(ref.Frames).
*/
func Compare(ref *pitch.Track, usr align.AlignedUser) CentsArray {
	n := len(ref.Frames)
	out := CentsArray{Values: make([]float64, n), Present: make([]bool, n)}

	for i := 0; i < n; i++ {
		rf := ref.Frames[i].F0
		var uf *float64
		if i < len(usr.F0) {
			uf = usr.F0[i]
		}
		if rf == nil || uf == nil || *rf <= 0 || *uf <= 0 {
			continue
		}
		out.Values[i] = cents(*uf, *rf)
		out.Present[i] = true
	}
	return out
}

// cents computes 1200*log2(user/ref).
func cents(user, ref float64) float64 {
	return 1200.0 * math.Log2(user/ref)
}
