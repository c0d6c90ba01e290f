package config

import (
	"os"
	"strconv"
)

// Every default below can be overridden by an environment variable
// without recompiling.
const (
	// DefaultPitchHop and DefaultPitchFrameLen are 0, meaning "let each
	// PitchExtractor apply its own constructor default" (YIN and FFT-peak
	// want different window sizes); PITCH_HOP/PITCH_FRAME_LEN only take
	// effect when the operator sets them explicitly.
	DefaultPitchHop         = 0
	DefaultPitchFrameLen    = 0
	DefaultPitchFmin        = 65.0
	DefaultPitchFmax        = 1046.5
	DefaultPitchEnergyTh    = 0.0 // 0 means the FFT-peak extractor's own floor; the YIN gate is always adaptive
	DefaultPitchMaxSeconds  = 600.0
	DefaultTolCents         = 40.0
	DefaultMinEventDuration = 0.20
	DefaultMinSecondsVerdi  = 15.0
	DefaultAutosyncMax      = 3.0
	DefaultLyricGapSec      = 0.60
	DefaultMinLineDuration  = 0.40
)

/*
Pitch holds the tunables for both PitchExtractor strategies.

Fields:
  - Hop: samples per analysis step (0 = extractor's own default).
  - FrameLen: analysis window length in samples (0 = extractor's own
    default).
  - Fmin, Fmax: detectable frequency band in Hz.
  - EnergyTh: absolute RMS floor for the FFT-peak path (0 = use the
    extractor's own default).
  - MaxSeconds: safety cap; PCM beyond this many seconds is discarded.
*/
type Pitch struct {
	Hop        int
	FrameLen   int
	Fmin       float64
	Fmax       float64
	EnergyTh   float64
	MaxSeconds float64
}

/*
Analysis holds the tunables shared by EventSegmenter, Summarizer,
Aligner and LyricAligner (the Comparator takes none).
*/
type Analysis struct {
	TolCents         float64
	MinEventDuration float64
	MinSecondsVerdi  float64
	AutosyncMax      float64
	LyricGapSec      float64
	MinLineDuration  float64
}

// Config bundles everything a pipeline run needs.
type Config struct {
	Pitch    Pitch
	Analysis Analysis
}

/*
Load builds a Config from environment variables, falling back to the
package defaults for anything unset or unparsable.

Input:
  - None (reads from the process environment).

Called by:
  - cmd/analyze at startup.

Task:
  - Resolve every tunable to a concrete value.

Logic:
 1. For each field, call getFloat/getInt with its env var name and default.
 2. Unparsable values behave exactly like unset ones.

Output:
  - Config: ready to pass to the pipeline constructors.
*/
func Load() Config {
	return Config{
		Pitch: Pitch{
			Hop:        getInt("PITCH_HOP", DefaultPitchHop),
			FrameLen:   getInt("PITCH_FRAME_LEN", DefaultPitchFrameLen),
			Fmin:       getFloat("PITCH_FMIN", DefaultPitchFmin),
			Fmax:       getFloat("PITCH_FMAX", DefaultPitchFmax),
			EnergyTh:   getFloat("PITCH_ENERGY_TH", DefaultPitchEnergyTh),
			MaxSeconds: getFloat("PITCH_MAX_SECONDS", DefaultPitchMaxSeconds),
		},
		Analysis: Analysis{
			TolCents:         getFloat("TOL_CENTS", DefaultTolCents),
			MinEventDuration: getFloat("MIN_EVENT_DURATION", DefaultMinEventDuration),
			MinSecondsVerdi:  getFloat("MIN_SECONDS_FOR_VERDICT", DefaultMinSecondsVerdi),
			AutosyncMax:      getFloat("AUTOSYNC_MAX", DefaultAutosyncMax),
			LyricGapSec:      getFloat("LYRIC_GAP_SEC", DefaultLyricGapSec),
			MinLineDuration:  getFloat("MIN_LINE_DURATION", DefaultMinLineDuration),
		},
	}
}

func getFloat(name string, fallback float64) float64 {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func getInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
