package pitch

import "math"

/*
YINConfig configures the YIN/pYIN-style extractor.

Fields:
  - Hop: samples per analysis step (default 256).
  - FrameLen: analysis window length in samples (default 2*Hop, minimum 256).
  - Fmin, Fmax: detectable frequency band in Hz.
  - MaxSeconds: safety cap on input length in seconds; <= 0 disables it.
  - Threshold: YIN absolute threshold for the CMND dip search (default 0.15).
*/
type YINConfig struct {
	Hop        int
	FrameLen   int
	Fmin       float64
	Fmax       float64
	MaxSeconds float64
	Threshold  float64
}

// DefaultYINConfig returns the defaults for the YIN path.
func DefaultYINConfig() YINConfig {
	return YINConfig{
		Hop:        256,
		FrameLen:   512,
		Fmin:       65,
		Fmax:       1046.5,
		MaxSeconds: 0,
		Threshold:  0.15,
	}
}

// YINExtractor is the heavier, higher-quality extraction strategy,
// preferred for reference tracks built offline. The difference function,
// its cumulative mean normalization, and a threshold-gated dip search
// are far more robust to octave errors than plain autocorrelation
// maximization.
type YINExtractor struct {
	cfg YINConfig
}

// NewYIN builds a YINExtractor, filling in defaults for zero-valued fields.
func NewYIN(cfg YINConfig) *YINExtractor {
	d := DefaultYINConfig()
	if cfg.Hop <= 0 {
		cfg.Hop = d.Hop
	}
	if cfg.FrameLen <= 0 {
		cfg.FrameLen = 2 * cfg.Hop
	}
	if cfg.FrameLen < 256 {
		cfg.FrameLen = 256
	}
	if cfg.Fmin <= 0 {
		cfg.Fmin = d.Fmin
	}
	if cfg.Fmax <= 0 {
		cfg.Fmax = d.Fmax
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = d.Threshold
	}
	return &YINExtractor{cfg: cfg}
}

/*
Extract converts mono PCM into a PitchTrack tagged "yin".

Input:
  - pcm: []float32 - mono samples in [-1, 1].
  - sr: int - sample rate in Hz.

Task:
  - Run the YIN difference function per frame to estimate f0.
  - Gate frames below an adaptive RMS threshold as unvoiced.

Logic:
 1. Empty input or frame_len > len(pcm) -> empty track.
 2. First pass: compute RMS per frame to find the adaptive gate
    (0.3 * median(RMS)).
 3. Second pass: for gated-open frames, run the YIN difference function,
    refine the winning lag via parabolic interpolation, guard against
    NaN/Inf by marking the frame unvoiced.

Output:
  - Track: frames at t[i] = i*hop/sr, f0 present only where voiced.
*/
func (y *YINExtractor) Extract(pcm []float32, sr int) Track {
	track := Track{SR: sr, Hop: y.cfg.Hop, Algo: "yin"}
	if sr <= 0 || len(pcm) == 0 {
		return track
	}

	pcm = clampToMaxSeconds(pcm, sr, y.cfg.MaxSeconds)

	frameLen := y.cfg.FrameLen
	hop := y.cfg.Hop
	if frameLen > len(pcm) {
		return track
	}

	nFrames := (len(pcm)-frameLen)/hop + 1
	if nFrames <= 0 {
		return track
	}

	energies := make([]float64, nFrames)
	for i := 0; i < nFrames; i++ {
		start := i * hop
		energies[i] = rms(pcm[start : start+frameLen])
	}
	threshold := 0.3 * medianFloat64(energies)

	tauMin := int(float64(sr) / y.cfg.Fmax)
	tauMax := int(float64(sr) / y.cfg.Fmin)
	if tauMin < 2 {
		tauMin = 2
	}
	if tauMax >= frameLen/2 {
		tauMax = frameLen/2 - 1
	}
	if tauMax <= tauMin {
		return track
	}

	frames := make([]Frame, nFrames)
	for i := 0; i < nFrames; i++ {
		t := float64(i*hop) / float64(sr)
		frames[i] = Frame{T: t}

		if energies[i] == 0 || energies[i] < threshold {
			continue
		}

		start := i * hop
		frame := pcm[start : start+frameLen]
		f0 := yinFrameF0(frame, tauMin, tauMax, float64(sr), y.cfg.Threshold)
		if f0 > 0 && !math.IsNaN(f0) && !math.IsInf(f0, 0) {
			frames[i].F0 = f64(f0)
		}
	}

	track.Frames = frames
	return track
}

// yinFrameF0 runs the YIN difference function + CMND + parabolic
// interpolation on a single frame, returning 0 if no confident period is
// found in [tauMin, tauMax].
func yinFrameF0(frame []float32, tauMin, tauMax int, sr, threshold float64) float64 {
	diff := make([]float64, tauMax+1)
	for tau := 1; tau <= tauMax; tau++ {
		sum := 0.0
		limit := len(frame) - tau
		for i := 0; i < limit; i++ {
			d := float64(frame[i]) - float64(frame[i+tau])
			sum += d * d
		}
		diff[tau] = sum
	}

	cmnd := make([]float64, tauMax+1)
	cmnd[0] = 1
	runningSum := 0.0
	for tau := 1; tau <= tauMax; tau++ {
		runningSum += diff[tau]
		if runningSum == 0 {
			cmnd[tau] = 1
		} else {
			cmnd[tau] = diff[tau] * float64(tau) / runningSum
		}
	}

	bestTau := 0
	for tau := tauMin; tau <= tauMax; tau++ {
		if cmnd[tau] < threshold {
			// descend to the local minimum of this dip
			for tau+1 <= tauMax && cmnd[tau+1] < cmnd[tau] {
				tau++
			}
			bestTau = tau
			break
		}
	}
	if bestTau == 0 {
		// no dip below threshold: fall back to the global minimum in
		// range, but only if it shows some actual periodicity (a flat
		// CMND near 1 means noise or silence, not a pitch)
		minVal := math.Inf(1)
		for tau := tauMin; tau <= tauMax; tau++ {
			if cmnd[tau] < minVal {
				minVal = cmnd[tau]
				bestTau = tau
			}
		}
		if minVal > 0.5 {
			return 0
		}
	}
	if bestTau <= 0 {
		return 0
	}

	refined := parabolicRefine(cmnd, bestTau, tauMin, tauMax)
	if refined <= 0 {
		return 0
	}
	return sr / refined
}

// parabolicRefine fits a parabola through (tau-1, tau, tau+1) and returns
// the interpolated minimum location, clamped to [lo, hi].
func parabolicRefine(ys []float64, tau, lo, hi int) float64 {
	if tau <= lo || tau >= hi {
		return float64(tau)
	}
	y0, y1, y2 := ys[tau-1], ys[tau], ys[tau+1]
	denom := y0 - 2*y1 + y2
	if denom == 0 {
		return float64(tau)
	}
	delta := 0.5 * (y0 - y2) / denom
	return float64(tau) + delta
}
