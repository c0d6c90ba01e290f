package align

import (
	"math"

	"singtrainer/internal/pitch"
)

/*
FindShift searches for the global time shift that maximizes the dot
product of ref's and usr's voiced-activity indicator arrays, within
[-maxShift, +maxShift].

Input:
  - ref, usr: *pitch.Track
  - maxShift: float64 - search bound in seconds.

Task:
  - Evaluate every candidate shift in [-K, K] reference frames,
    K = floor(maxShift/dt).
  - Score a candidate by how well the user's voiced mask, moved by that
    shift, lines up with the reference's voiced mask.

Logic:
 1. Build the reference's voiced mask and the user's mask resampled onto
    the reference grid (same nearest-frame mapping Align uses with zero
    shift).
 2. For each candidate shift of k reference frames, overlay the user
    mask moved k frames later and dot it against the reference mask over
    the overlap: score(k) = sum(refMask[i] * usrOnRef[i-k]). A late user
    therefore peaks at a negative k, the shift that pulls it back onto
    the reference.
 3. Keep the highest-scoring shift; ties broken toward the smallest
    |shift|, and among equal |shift| toward the negative one (a late
    user is the common case).

Output:
  - float64: the chosen shift in seconds, |shift| <= maxShift. Adding it
    to every user timestamp maximizes voiced overlap with the reference.
*/
func FindShift(ref, usr *pitch.Track, maxShift float64) float64 {
	if len(ref.Frames) == 0 || len(usr.Frames) == 0 {
		return 0
	}

	dt := ref.FramePeriod()
	if dt <= 0 {
		dt = medianDiff(ref.Frames)
	}
	if dt <= 0 {
		return 0
	}

	refMask := voicedMask(ref.Frames)
	usrTimes := make([]float64, len(usr.Frames))
	for i, f := range usr.Frames {
		usrTimes[i] = f.T
	}
	usrMaskVals := voicedMask(usr.Frames)

	refTimes := make([]float64, len(ref.Frames))
	for i, f := range ref.Frames {
		refTimes[i] = f.T
	}
	usrOnRef := make([]int, len(refTimes))
	for i, t := range refTimes {
		idx := nearestIndex(usrTimes, t)
		usrOnRef[i] = usrMaskVals[idx]
	}

	maxLagFrames := int(math.Floor(maxShift/dt + 1e-9))
	if maxLagFrames < 0 {
		maxLagFrames = 0
	}

	bestScore := -1
	bestLag := 0
	haveBest := false
	for lag := -maxLagFrames; lag <= maxLagFrames; lag++ {
		score, ok := dotAtLag(refMask, usrOnRef, -lag)
		if !ok {
			continue
		}
		if !haveBest || betterLag(score, lag, bestScore, bestLag) {
			bestScore = score
			bestLag = lag
			haveBest = true
		}
	}
	if !haveBest {
		return 0
	}
	return float64(bestLag) * dt
}

// betterLag implements the tie-break policy: higher score wins; on a
// score tie, the smaller |lag| wins; on a |lag| tie, the negative lag
// wins (user assumed late by default).
func betterLag(score, lag, bestScore, bestLag int) bool {
	if score != bestScore {
		return score > bestScore
	}
	if absInt(lag) != absInt(bestLag) {
		return absInt(lag) < absInt(bestLag)
	}
	return lag < bestLag
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// dotAtLag computes sum(refMask[i] * usrOnRef[i+lag]) over the region
// where both indices are in range. Lags that leave fewer than 10
// overlapping frames are rejected; a score over a sliver of overlap
// says nothing about alignment.
func dotAtLag(refMask, usrOnRef []int, lag int) (int, bool) {
	n := len(refMask)
	var a, b []int
	if lag < 0 {
		k := -lag
		if k >= n {
			return 0, false
		}
		a = refMask[k:]
		b = usrOnRef[:len(a)]
	} else if lag > 0 {
		if lag >= n {
			return 0, false
		}
		a = refMask[:n-lag]
		b = usrOnRef[lag : lag+len(a)]
	} else {
		a = refMask
		b = usrOnRef
	}
	if len(a) < 10 {
		return 0, false
	}
	score := 0
	for i := range a {
		score += a[i] * b[i]
	}
	return score, true
}

func voicedMask(frames []pitch.Frame) []int {
	mask := make([]int, len(frames))
	for i, f := range frames {
		if f.Voiced() {
			mask[i] = 1
		}
	}
	return mask
}

func medianDiff(frames []pitch.Frame) float64 {
	if len(frames) < 2 {
		return 0.01
	}
	diffs := make([]float64, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		diffs = append(diffs, frames[i].T-frames[i-1].T)
	}
	sortFloats(diffs)
	return diffs[len(diffs)/2]
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
