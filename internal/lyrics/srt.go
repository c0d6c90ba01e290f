package lyrics

import (
	"regexp"
	"strconv"
	"strings"
)

// srtTimestamp matches HH:MM:SS,mmm (the SRT convention; comma separates
// the millisecond field, unlike LRC's dot).
var srtTimestamp = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`)

// srtArrow matches a cue's "start --> end" line.
var srtArrow = regexp.MustCompile(`^\s*` + srtTimestamp.String() + `\s*-->\s*` + srtTimestamp.String())

var srtIndexLine = regexp.MustCompile(`^\d+$`)

func parseSRTTimestamp(h, m, s, ms string) float64 {
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	ss, _ := strconv.Atoi(s)
	mmm, _ := strconv.Atoi(ms)
	return float64(hh*3600+mm*60+ss) + float64(mmm)/1000.0
}

/*
parseSRT parses SRT-format text: blocks of an optional index line, an
"HH:MM:SS,mmm --> HH:MM:SS,mmm" arrow line, then one or more text lines,
separated by blank lines.

Output mirrors parseLRC: []Line, parsed count, error (malformed arrow
line found but zero cues recovered overall means "fall back to
untimed", any other malformed line is surfaced).
*/
func parseSRT(text string) ([]Line, int, error) {
	blocks := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")

	var lines []Line
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		rows := strings.Split(block, "\n")

		idx := 0
		if idx < len(rows) && srtIndexLine.MatchString(strings.TrimSpace(rows[idx])) {
			idx++
		}
		if idx >= len(rows) {
			continue
		}

		m := srtArrow.FindStringSubmatch(rows[idx])
		if m == nil {
			return nil, len(lines), &ParseError{Format: "srt", Detail: rows[idx]}
		}
		start := parseSRTTimestamp(m[1], m[2], m[3], m[4])
		end := parseSRTTimestamp(m[5], m[6], m[7], m[8])
		idx++

		textLines := rows[idx:]
		cueText := strings.TrimSpace(strings.Join(textLines, " "))
		if cueText == "" {
			continue
		}
		lines = append(lines, Line{Start: start, End: end, Text: cueText})
	}

	if len(lines) == 0 {
		return nil, 0, &ParseError{Format: "srt", Detail: "no cues found"}
	}
	return lines, len(lines), nil
}
