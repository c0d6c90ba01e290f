package lyrics

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Timestamps are rounded to their whole ms/cs count first and then
// decomposed, so a value like 1.9996s carries into the seconds field
// instead of overflowing the fraction digits.

func secToSRTTimestamp(sec float64) string {
	totalMs := int64(roundHalf(sec * 1000))
	ms := totalMs % 1000
	totalSec := totalMs / 1000
	hh := totalSec / 3600
	mm := (totalSec % 3600) / 60
	ss := totalSec % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hh, mm, ss, ms)
}

func secToLRCTag(sec float64) string {
	totalCs := int64(roundHalf(sec * 100))
	xx := totalCs % 100
	totalSec := totalCs / 100
	mm := totalSec / 60
	ss := totalSec % 60
	return fmt.Sprintf("[%02d:%02d.%02d]", mm, ss, xx)
}

func roundHalf(v float64) float64 {
	if v < 0 {
		return -roundHalf(-v)
	}
	return float64(int64(v + 0.5))
}

// WriteSRT renders lines as SRT subtitle text, one numbered cue per line.
func WriteSRT(lines []Line) string {
	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", secToSRTTimestamp(l.Start), secToSRTTimestamp(l.End))
		text := strings.TrimSpace(l.Text)
		if text == "" {
			text = " "
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// WriteLRC renders lines as LRC lyric text, one [mm:ss.xx]text line each.
func WriteLRC(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(secToLRCTag(l.Start))
		b.WriteString(strings.TrimSpace(l.Text))
		b.WriteString("\n")
	}
	return b.String()
}

// overlayEntry is the compact {"s","e","t"} shape consumed by UI overlays.
type overlayEntry struct {
	S float64 `json:"s"`
	E float64 `json:"e"`
	T string  `json:"t"`
}

// WriteOverlayJSON renders the compact overlay artifact, one {s, e, t}
// object per line.
func WriteOverlayJSON(lines []Line) ([]byte, error) {
	entries := make([]overlayEntry, len(lines))
	for i, l := range lines {
		entries[i] = overlayEntry{S: l.Start, E: l.End, T: l.Text}
	}
	return json.MarshalIndent(entries, "", "  ")
}

type wireLine struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type wireLines struct {
	Lines []wireLine `json:"lines"`
}

// MarshalLinesJSON emits the lyrics.json {"lines":[...]} wire shape.
func MarshalLinesJSON(lines []Line) ([]byte, error) {
	out := wireLines{Lines: make([]wireLine, len(lines))}
	for i, l := range lines {
		out.Lines[i] = wireLine{Start: l.Start, End: l.End, Text: l.Text}
	}
	return json.MarshalIndent(out, "", "  ")
}
