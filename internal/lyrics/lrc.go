package lyrics

import (
	"regexp"
	"strconv"
	"strings"
)

// lrcTimeTag matches a well-formed [mm:ss.xx] or [mm:ss.xxx] tag at the
// start of a (sub)string.
var lrcTimeTag = regexp.MustCompile(`^\[(\d{2}):(\d{2})[.:](\d{2,3})\]`)

// lrcAttempt matches anything that looks like someone tried to write a
// timestamp tag but didn't match lrcTimeTag, so malformed input can be
// distinguished from ordinary bracketed lyric text.
var lrcAttempt = regexp.MustCompile(`^\[\d[\d:.]*\]`)

// lrcMetaTag matches a metadata tag like [ar:Artist] or [offset:100].
var lrcMetaTag = regexp.MustCompile(`^\[[a-zA-Z]+:[^\]]*\]$`)

type lrcTimedLine struct {
	start float64
	text  string
}

/*
parseLRC parses LRC-format text: lines of the form [mm:ss.xx]text,
possibly with multiple time tags sharing one trailing text (karaoke
style, each becomes its own line).

Output:
  - []Line with End filled in as the next line's start, or start+3.0
    for the last line.
  - parsed: count of successfully recognized time tags, so the caller can
    tell a total failure (0) from a partial one.
  - error: non-nil if any line looked like a timestamp attempt but didn't
    match the strict pattern.
*/
func parseLRC(text string) ([]Line, int, error) {
	var timed []lrcTimedLine

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if lrcMetaTag.MatchString(line) {
			continue
		}

		var tags []float64
		rest := line
		for {
			m := lrcTimeTag.FindStringSubmatch(rest)
			if m == nil {
				if lrcAttempt.MatchString(rest) {
					return nil, len(timed), &ParseError{Format: "lrc", Detail: rest}
				}
				break
			}
			mins, _ := strconv.Atoi(m[1])
			secs, _ := strconv.Atoi(m[2])
			frac := m[3]
			millis, _ := strconv.Atoi(frac)
			if len(frac) == 2 {
				millis *= 10
			}
			totalSec := float64(mins*60+secs) + float64(millis)/1000.0
			tags = append(tags, totalSec)
			rest = rest[len(m[0]):]
		}

		text := strings.TrimSpace(rest)
		if len(tags) == 0 || text == "" {
			continue
		}
		for _, start := range tags {
			timed = append(timed, lrcTimedLine{start: start, text: text})
		}
	}

	if len(timed) == 0 {
		return nil, 0, &ParseError{Format: "lrc", Detail: "no timestamps found"}
	}

	sortTimed(timed)

	lines := make([]Line, len(timed))
	for i, t := range timed {
		end := t.start + 3.0
		if i+1 < len(timed) {
			end = timed[i+1].start
		}
		lines[i] = Line{Start: t.start, End: end, Text: t.text}
	}
	return lines, len(timed), nil
}

func sortTimed(timed []lrcTimedLine) {
	for i := 1; i < len(timed); i++ {
		for j := i; j > 0 && timed[j-1].start > timed[j].start; j-- {
			timed[j-1], timed[j] = timed[j], timed[j-1]
		}
	}
}
