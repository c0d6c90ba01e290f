package lyrics

import (
	"math"

	"singtrainer/internal/pitch"
)

type segment struct {
	start, end float64
}

/*
voicedSegments extracts runs of voiced frames from ref, coalescing across
gaps shorter than gapSec (so a short breath between words doesn't split
a musical phrase in two); a gap of gapSec or more starts a new segment.

The gap threshold is in seconds rather than frames, since hop duration
is configurable per track.

Output: segments sorted by start, each stretched to >= minDur.
*/
func voicedSegments(ref *pitch.Track, gapSec, minDur float64) []segment {
	var segs []segment
	var curStart, curEnd float64
	open := false

	for _, fr := range ref.Frames {
		if !fr.Voiced() {
			continue
		}
		if !open {
			curStart, curEnd = fr.T, fr.T
			open = true
			continue
		}
		if fr.T-curEnd >= gapSec {
			segs = append(segs, segment{start: curStart, end: curEnd})
			curStart, curEnd = fr.T, fr.T
			continue
		}
		curEnd = fr.T
	}
	if open {
		segs = append(segs, segment{start: curStart, end: curEnd})
	}

	for i := range segs {
		if segs[i].end-segs[i].start < minDur {
			segs[i].end = segs[i].start + minDur
		}
	}
	return segs
}

// splitOrMerge reconciles the segment count with nLines: merges adjacent
// segments proportionally when there are too many, and bisects the
// longest segment repeatedly when there are too few.
func splitOrMerge(segs []segment, nLines int, minDur float64) []segment {
	if nLines <= 0 {
		return nil
	}
	if len(segs) == 0 {
		dur := minDur * float64(nLines)
		if alt := 2.0 * float64(nLines); alt > dur {
			dur = alt
		}
		out := make([]segment, nLines)
		for i := range out {
			out[i] = segment{
				start: float64(i) * dur / float64(nLines),
				end:   float64(i+1) * dur / float64(nLines),
			}
		}
		return out
	}
	if len(segs) == nLines {
		return segs
	}

	if len(segs) > nLines {
		ratio := float64(len(segs)) / float64(nLines)
		var out []segment
		var bag []segment
		acc := 0.0
		for i, seg := range segs {
			bag = append(bag, seg)
			acc++
			if acc >= ratio || i == len(segs)-1 {
				s := bag[0].start
				e := bag[len(bag)-1].end
				if e-s < minDur {
					e = s + minDur
				}
				out = append(out, segment{start: s, end: e})
				bag = nil
				acc = 0.0
			}
		}
		for len(out) > nLines {
			a := out[len(out)-1]
			b := out[len(out)-2]
			out = out[:len(out)-2]
			out = append(out, segment{start: b.start, end: a.end})
		}
		for len(out) < nLines {
			last := out[len(out)-1]
			mid := (last.start + last.end) / 2
			out[len(out)-1] = segment{start: last.start, end: mid}
			out = append(out, segment{start: mid, end: last.end})
		}
		return out
	}

	out := append([]segment(nil), segs...)
	for len(out) < nLines {
		longest := 0
		for i := 1; i < len(out); i++ {
			if out[i].end-out[i].start > out[longest].end-out[longest].start {
				longest = i
			}
		}
		s, e := out[longest].start, out[longest].end
		mid := (s + e) / 2
		rest := append([]segment(nil), out[:longest]...)
		rest = append(rest, segment{start: s, end: mid}, segment{start: mid, end: e})
		rest = append(rest, out[longest+1:]...)
		out = rest
	}
	return out[:nLines]
}

/*
alignUntimed distributes plain-text lines across ref's voiced segments:
extract the segments, reconcile their count to len(rawLines) via
splitOrMerge, then zip segments to lines in order. A reference with no
voiced segments at all gets the lines spread uniformly over
max(180s, 2s per line).
*/
func alignUntimed(ref *pitch.Track, rawLines []string, gapSec, minLineDuration float64) []Line {
	if len(rawLines) == 0 {
		return nil
	}

	segs := voicedSegments(ref, gapSec, minLineDuration)
	if len(segs) == 0 {
		dur := 180.0
		if alt := float64(len(rawLines)) * 2.0; alt > dur {
			dur = alt
		}
		segs = make([]segment, len(rawLines))
		for i := range segs {
			segs[i] = segment{
				start: float64(i) * dur / float64(len(rawLines)),
				end:   float64(i+1) * dur / float64(len(rawLines)),
			}
		}
	}

	segs = splitOrMerge(segs, len(rawLines), minLineDuration)

	lines := make([]Line, len(rawLines))
	for i, text := range rawLines {
		s, e := segs[i].start, segs[i].end
		if e-s < minLineDuration {
			e = s + minLineDuration
		}
		lines[i] = Line{Start: round3(s), End: round3(e), Text: text}
	}
	return lines
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
