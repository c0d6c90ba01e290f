// Package summary implements the Summarizer component: distribution
// statistics over the cents array and a verdict from fixed thresholds.
package summary

import (
	"math"

	"singtrainer/internal/compare"
	"singtrainer/internal/event"
	"singtrainer/internal/numeric"
)

// Verdict is the overall judgment tag carried in summary.json.
type Verdict string

const (
	VerdictMostlyOK         Verdict = "mostly_ok"
	VerdictNeedsWork        Verdict = "needs_work"
	VerdictOverallLow       Verdict = "overall_low"
	VerdictOverallHigh      Verdict = "overall_high"
	VerdictInconsistent     Verdict = "inconsistent"
	VerdictInsufficientData Verdict = "insufficient_data"
)

// Summary is the global report over one comparison.
type Summary struct {
	TolCents            float64
	Frames              int
	Seconds             float64
	MeanCents           float64
	MedianCents         float64
	StdCents            float64
	PercentWithinTol    float64
	PercentLow          float64
	PercentHigh         float64
	P10Cents            float64
	P90Cents            float64
	UnvoicedMissSeconds *float64
	Verdict             Verdict
	Reason              string
	Tips                string
}

// reasonTips maps each verdict to its fixed reason/tips pair. Longer
// prose coaching is the feedback generator's job, outside this engine.
var reasonTips = map[Verdict][2]string{
	VerdictMostlyOK: {
		"You're singing close to the reference pitch overall.",
		"Focus practice on the few spots that drift outside the tolerance band.",
	},
	VerdictNeedsWork: {
		"Several sections drift noticeably from the reference pitch.",
		"Work on the sections that run consistently low or high.",
	},
	VerdictOverallLow: {
		"You're singing flat compared to the reference overall.",
		"Support your breath through the ends of phrases instead of letting pitch sag.",
	},
	VerdictOverallHigh: {
		"You're singing sharp compared to the reference overall.",
		"Ease off vocal tension and let the pitch settle rather than pushing up.",
	},
	VerdictInconsistent: {
		"Your pitch swings between flat and sharp rather than holding steady.",
		"Practice holding single notes steady for a few counts before moving on.",
	},
	VerdictInsufficientData: {
		"Not enough voiced overlap between the two recordings to judge.",
		"Record a longer take with clear vocals to get a useful comparison.",
	},
}

/*
Summarize computes distribution statistics and a verdict over cents.

Input:
  - cents: compare.CentsArray
  - tolCents, minSecondsForVerdict, framePeriod: float64
  - events: []event.Event - optional, used only for unvoiced_miss_seconds.

Task:
  - Compute frames/seconds/mean/median/std/percentiles/percentages over
    present values only.
  - Apply the ordered verdict cascade (see decideVerdict).

Logic:
  Statistics are computed over present values only; a frame missing on
  either side contributes nothing, not a zero.

Output:
  - Summary
*/
func Summarize(cents compare.CentsArray, tolCents, minSecondsForVerdict, framePeriod float64, events []event.Event) Summary {
	present := cents.PresentValues()
	frames := len(present)
	seconds := float64(frames) * framePeriod

	s := Summary{
		TolCents: tolCents,
		Frames:   frames,
		Seconds:  round2(seconds),
	}

	if len(events) > 0 {
		uv := unvoicedMissSeconds(events)
		s.UnvoicedMissSeconds = &uv
	}

	if frames == 0 {
		s.Verdict = VerdictInsufficientData
		applyReason(&s, VerdictInsufficientData)
		return s
	}

	s.MeanCents = round1(numeric.Mean(present))
	s.MedianCents = round1(numeric.Median(present))
	s.StdCents = round1(numeric.StdDev(present))
	s.P10Cents = round1(numeric.Percentile(present, 10))
	s.P90Cents = round1(numeric.Percentile(present, 90))

	within, low, high := 0, 0, 0
	for _, c := range present {
		switch {
		case math.Abs(c) <= tolCents:
			within++
		case c < -tolCents:
			low++
		case c > tolCents:
			high++
		}
	}
	s.PercentWithinTol = round4(float64(within) / float64(frames))
	s.PercentLow = round4(float64(low) / float64(frames))
	s.PercentHigh = round4(float64(high) / float64(frames))

	s.Verdict = decideVerdict(s, seconds, minSecondsForVerdict)
	applyReason(&s, s.Verdict)
	return s
}

// decideVerdict applies the verdict rules in order: insufficient data,
// then overall bias (median or low/high imbalance), then consistency,
// then the within-tolerance split.
func decideVerdict(s Summary, seconds, minSecondsForVerdict float64) Verdict {
	if seconds < minSecondsForVerdict || s.Frames == 0 {
		return VerdictInsufficientData
	}

	bias := s.MedianCents
	biasDiff := s.PercentHigh - s.PercentLow

	switch {
	case bias <= -20 || biasDiff <= -0.15:
		return VerdictOverallLow
	case bias >= 20 || biasDiff >= 0.15:
		return VerdictOverallHigh
	case s.PercentWithinTol < 0.55 || s.StdCents > 120:
		return VerdictInconsistent
	case s.PercentWithinTol >= 0.85:
		return VerdictMostlyOK
	default:
		return VerdictNeedsWork
	}
}

func applyReason(s *Summary, v Verdict) {
	if rt, ok := reasonTips[v]; ok {
		s.Reason, s.Tips = rt[0], rt[1]
	}
}

func unvoicedMissSeconds(events []event.Event) float64 {
	sum := 0.0
	for _, e := range events {
		if e.Type == event.TypeUnvoicedMiss {
			sum += e.End - e.Start
		}
	}
	return round2(sum)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
