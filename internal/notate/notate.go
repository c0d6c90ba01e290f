// Package notate converts frequencies and semitone offsets into
// human-readable musical names, for CLI and report output.
package notate

import (
	"fmt"
	"math"
)

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// FreqToMidi converts a frequency in Hz to a continuous MIDI note number
// (MIDI 69 = A4 = 440Hz). Returns 0 for non-positive input.
func FreqToMidi(freqHz float64) float64 {
	if freqHz <= 0 {
		return 0
	}
	return 69 + 12*math.Log2(freqHz/440.0)
}

// FreqToNote converts a frequency to a note name and octave, e.g. 440.0
// -> ("A", 4). Returns ("-", 0) for non-positive input.
func FreqToNote(freqHz float64) (string, int) {
	if freqHz <= 0 {
		return "-", 0
	}
	midi := int(math.Round(FreqToMidi(freqHz)))
	note := noteNames[((midi%12)+12)%12]
	octave := midi/12 - 1
	return note, octave
}

// NoteName renders FreqToNote as a single string like "A4".
func NoteName(freqHz float64) string {
	note, octave := FreqToNote(freqHz)
	if note == "-" {
		return "-"
	}
	return fmt.Sprintf("%s%d", note, octave)
}

// SemitonesName renders a signed semitone-offset count as e.g. "+2 semitones"
// or "-1 semitone", for reporting keyoffset.Result.SemitoneOffset.
func SemitonesName(semitones int) string {
	unit := "semitones"
	if semitones == 1 || semitones == -1 {
		unit = "semitone"
	}
	if semitones > 0 {
		return fmt.Sprintf("+%d %s", semitones, unit)
	}
	return fmt.Sprintf("%d %s", semitones, unit)
}
