// Package event implements the EventSegmenter component: turning
// per-frame classifications into coalesced, minimum-duration events.
package event

import (
	"math"
	"sort"

	"singtrainer/internal/align"
	"singtrainer/internal/compare"
	"singtrainer/internal/pitch"
)

// Type identifies an event kind.
type Type string

const (
	TypePitchLow     Type = "pitch_low"
	TypePitchHigh    Type = "pitch_high"
	TypeUnvoicedMiss Type = "unvoiced_miss"
)

// Event is a coalesced run of frames sharing a classification.
// AvgCents/MaxCents are nil for unvoiced_miss events.
type Event struct {
	Start    float64
	End      float64
	Type     Type
	AvgCents *float64
	MaxCents *float64
}

/*
Segment classifies every reference frame and coalesces maximal runs into
events.

Input:
  - cents: compare.CentsArray - per-frame cents error.
  - ref: *pitch.Track - reference track (for voicing and times).
  - usr: align.AlignedUser - aligned user f0, for the unvoiced_miss mask.
  - tolCents: float64 - symmetric tolerance band in cents.
  - minDuration: float64 - minimum event duration in seconds.

Task:
  - Build three boolean per-frame masks (low, high, unvoiced_miss).
  - Coalesce each into maximal runs, reject runs shorter than minDuration,
    and compute avg/max cents for the pitch_low/pitch_high events.

Logic:
 1. low[i]  = cents present && cents[i] < -tol
    high[i] = cents present && cents[i] > +tol
    unvoiced_miss[i] = ref voiced && usr absent at i
 2. A run [s, e) in index space becomes
    {start: t[s], end: t[e-1] + framePeriod}; the half-open end avoids
    zero-length events on the final frame.
 3. avg_cents = mean of present cents in [s,e); max_cents = most negative
    value for pitch_low, most positive for pitch_high, rounded to 1
    decimal place.
 4. Results sorted by start ascending.

Output:
  - []Event: all three event kinds merged and sorted.
*/
func Segment(cents compare.CentsArray, ref *pitch.Track, usr align.AlignedUser, tolCents, minDuration float64) []Event {
	n := len(ref.Frames)
	if n == 0 {
		return nil
	}
	framePeriod := ref.FramePeriod()

	low := make([]bool, n)
	high := make([]bool, n)
	miss := make([]bool, n)

	for i := 0; i < n; i++ {
		if cents.Present[i] {
			if cents.Values[i] < -tolCents {
				low[i] = true
			}
			if cents.Values[i] > tolCents {
				high[i] = true
			}
		}
		refVoiced := ref.Frames[i].Voiced()
		var usrVoiced bool
		if i < len(usr.F0) && usr.F0[i] != nil && *usr.F0[i] > 0 {
			usrVoiced = true
		}
		if refVoiced && !usrVoiced {
			miss[i] = true
		}
	}

	events := make([]Event, 0)
	events = append(events, buildEvents(low, ref, cents, framePeriod, minDuration, TypePitchLow)...)
	events = append(events, buildEvents(high, ref, cents, framePeriod, minDuration, TypePitchHigh)...)
	events = append(events, buildEvents(miss, ref, cents, framePeriod, minDuration, TypeUnvoicedMiss)...)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})
	return events
}

func buildEvents(mask []bool, ref *pitch.Track, cents compare.CentsArray, framePeriod, minDuration float64, typ Type) []Event {
	var out []Event
	n := len(mask)
	i := 0
	for i < n {
		if !mask[i] {
			i++
			continue
		}
		j := i
		for j < n && mask[j] {
			j++
		}
		start := ref.Frames[i].T
		end := ref.Frames[j-1].T + framePeriod
		if end-start >= minDuration {
			out = append(out, makeEvent(start, end, typ, cents, i, j))
		}
		i = j
	}
	return out
}

func makeEvent(start, end float64, typ Type, cents compare.CentsArray, i, j int) Event {
	ev := Event{Start: round3(start), End: round3(end), Type: typ}
	if typ == TypeUnvoicedMiss {
		return ev
	}

	var seg []float64
	for k := i; k < j; k++ {
		if cents.Present[k] {
			seg = append(seg, cents.Values[k])
		}
	}
	if len(seg) == 0 {
		return ev
	}

	sum := 0.0
	extremum := seg[0]
	for _, v := range seg {
		sum += v
		switch typ {
		case TypePitchLow:
			if v < extremum {
				extremum = v
			}
		case TypePitchHigh:
			if v > extremum {
				extremum = v
			}
		}
	}
	avg := round1(sum / float64(len(seg)))
	max := round1(extremum)
	ev.AvgCents = &avg
	ev.MaxCents = &max
	return ev
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
