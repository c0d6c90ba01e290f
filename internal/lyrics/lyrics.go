// Package lyrics implements the LyricAligner component: assigning time
// intervals to lyric lines, either respecting embedded timestamps
// (LRC/SRT) or distributing plain-text lines across voiced segments of
// the reference.
package lyrics

import (
	"fmt"
	"sort"
	"strings"

	"singtrainer/internal/pitch"
)

// Line is one lyric line with its interval on the reference timeline.
type Line struct {
	Start float64
	End   float64
	Text  string
}

// Kind identifies which LyricSource variant a Source carries.
type Kind int

const (
	KindLRC Kind = iota
	KindSRT
	KindPlain
	KindTimed
)

// Source is a lyric input in one of the four accepted forms.
type Source struct {
	Kind  Kind
	Text  string
	Lines []Line // only used when Kind == KindTimed
}

// ParseError reports a malformed timestamp in an LRC/SRT source. A
// line with a broken timestamp is never silently dropped; the error is
// surfaced instead, unless zero timestamps were parseable at all (see
// Align).
type ParseError struct {
	Format string // "lrc" or "srt"
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("lyrics: malformed %s timestamp: %s", e.Format, e.Detail)
}

/*
Align assigns time intervals to every line in src, relative to ref's
timeline.

Input:
  - ref: *pitch.Track - reference pitch track (timeline + voicing).
  - src: Source
  - gapSec: float64 - silence gap (seconds) that splits voiced segments.
  - minLineDuration: float64 - minimum line length in seconds.

Task:
  - Dispatch to the LRC/SRT/Plain/Timed parser for src.Kind.
  - Enforce the output invariants: sorted, each stretched to at least
    minLineDuration, then trimmed so line[i].end <= line[i+1].start.
    Non-overlap wins over the minimum: a line whose successor starts
    less than minLineDuration later ends at that start.

Logic:
 1. LRC/SRT: parse embedded timestamps. If parsing fails but at least
    one timestamp was recovered, return the ParseError. If zero
    timestamps were recoverable, fall back to the untimed Plain path
    over the raw non-empty lines.
 2. Plain: one line per non-empty input line, distributed across ref's
    voiced segments (see alignUntimed).
 3. Timed: lines are already time-stamped; only post-conditions apply.
 4. Every path's result goes through postProcess.

Output:
  - []Line, error
*/
func Align(ref *pitch.Track, src Source, gapSec, minLineDuration float64) ([]Line, error) {
	switch src.Kind {
	case KindTimed:
		return postProcess(src.Lines, minLineDuration), nil

	case KindLRC:
		lines, parsed, err := parseLRC(src.Text)
		if err != nil {
			if parsed == 0 {
				return postProcess(alignUntimed(ref, splitNonEmptyLines(src.Text), gapSec, minLineDuration), minLineDuration), nil
			}
			return nil, err
		}
		return postProcess(lines, minLineDuration), nil

	case KindSRT:
		lines, parsed, err := parseSRT(src.Text)
		if err != nil {
			if parsed == 0 {
				return postProcess(alignUntimed(ref, splitNonEmptyLines(src.Text), gapSec, minLineDuration), minLineDuration), nil
			}
			return nil, err
		}
		return postProcess(lines, minLineDuration), nil

	case KindPlain:
		return postProcess(alignUntimed(ref, splitNonEmptyLines(src.Text), gapSec, minLineDuration), minLineDuration), nil
	}
	return nil, fmt.Errorf("lyrics: unknown source kind %d", src.Kind)
}

// postProcess sorts lines by start, stretches any line shorter than
// minLineDuration, and trims each line so it ends no later than the
// next line's start.
func postProcess(lines []Line, minLineDuration float64) []Line {
	out := append([]Line(nil), lines...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })

	// Stretch before trimming: trimming second guarantees out[i].End never
	// exceeds out[i+1].Start as later lines are stretched, so no later
	// stretch can reintroduce an overlap a trim already resolved.
	for i := range out {
		if out[i].End-out[i].Start < minLineDuration {
			out[i].End = out[i].Start + minLineDuration
		}
		if i+1 < len(out) && out[i].End > out[i+1].Start {
			out[i].End = out[i+1].Start
		}
	}
	return out
}

func splitNonEmptyLines(text string) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
