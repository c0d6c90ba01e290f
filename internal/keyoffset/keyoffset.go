// Package keyoffset implements the KeyOffsetAnalyzer component:
// distinguishing an octave shift from a fine key shift by decomposing the
// median cents error into a 1200-cent coarse component and a wrapped
// residual.
package keyoffset

import (
	"math"

	"singtrainer/internal/compare"
	"singtrainer/internal/numeric"
)

// Verdict distinguishes a whole-octave shift from a key shift.
type Verdict string

const (
	VerdictOctaveShift Verdict = "octave_shift"
	VerdictKeyShift    Verdict = "key_shift"
)

// Result is the key/octave diagnosis. Frames == 0 flags "no voiced
// overlap" rather than an error; callers render it as such.
type Result struct {
	Frames             int
	MedianCents        float64
	SemitoneOffset     int
	OctaveK            int
	WrappedMedianCents float64
	WrappedWithin40c   float64
	Verdict            Verdict
}

/*
Analyze decomposes the median cents error into an octave count and a
fine-pitch residual.

A singer one octave off would otherwise dominate the summary with huge
error; wrapping exposes their underlying accuracy modulo octave.

Logic:
 1. m = median(present cents). No present cents -> Result{Frames: 0}.
 2. semitone_offset = round(m/100); octave_k = round(m/1200).
 3. wrapped = cents - 1200*octave_k, elementwise over present values.
 4. wrapped_median = median(wrapped); wrapped_within_40c = fraction with
    |wrapped| <= 40.
 5. verdict = octave_shift if |octave_k| >= 1 AND |m - 1200*octave_k| < 200,
    else key_shift.

Output:
  - Result
*/
func Analyze(cents compare.CentsArray) Result {
	present := cents.PresentValues()
	if len(present) == 0 {
		return Result{Frames: 0}
	}

	m := numeric.Median(present)
	semitoneOffset := int(math.Round(m / 100.0))
	octaveK := int(math.Round(m / 1200.0))

	wrapped := make([]float64, len(present))
	for i, c := range present {
		wrapped[i] = c - 1200.0*float64(octaveK)
	}
	wrappedMedian := numeric.Median(wrapped)

	within := 0
	for _, w := range wrapped {
		if math.Abs(w) <= 40.0 {
			within++
		}
	}
	wrappedWithin40c := float64(within) / float64(len(wrapped))

	verdict := VerdictKeyShift
	if absInt(octaveK) >= 1 && math.Abs(m-1200.0*float64(octaveK)) < 200.0 {
		verdict = VerdictOctaveShift
	}

	return Result{
		Frames:             len(present),
		MedianCents:        round1(m),
		SemitoneOffset:     semitoneOffset,
		OctaveK:            octaveK,
		WrappedMedianCents: round1(wrappedMedian),
		WrappedWithin40c:   round3(wrappedWithin40c),
		Verdict:            verdict,
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
