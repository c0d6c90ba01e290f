package pitch

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

/*
FFTConfig configures the FFT-peak extractor.

Fields:
  - Hop: samples per analysis step (default 2048).
  - FrameLen: analysis window length in samples (default 2*Hop, minimum 256).
  - Fmin, Fmax: detectable frequency band in Hz.
  - MaxSeconds: safety cap on input length in seconds; <= 0 disables it.
  - EnergyTh: absolute RMS floor below which a frame is unvoiced.
*/
type FFTConfig struct {
	Hop        int
	FrameLen   int
	Fmin       float64
	Fmax       float64
	MaxSeconds float64
	EnergyTh   float64
}

// DefaultFFTConfig returns the defaults for the cheap, per-upload
// extraction path.
func DefaultFFTConfig() FFTConfig {
	return FFTConfig{
		Hop:        2048,
		FrameLen:   4096,
		Fmin:       80,
		Fmax:       800,
		MaxSeconds: 0,
		EnergyTh:   0.01,
	}
}

// FFTPeakExtractor is the cheaper fallback strategy: windowed FFT, peak
// bin search in [fmin,fmax], three-point parabolic interpolation. It
// trades the YIN path's robustness on harmonically-rich voices for a
// fraction of the per-frame cost.
type FFTPeakExtractor struct {
	cfg FFTConfig
}

// NewFFTPeak builds an FFTPeakExtractor, filling defaults for zero fields.
func NewFFTPeak(cfg FFTConfig) *FFTPeakExtractor {
	d := DefaultFFTConfig()
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
	if cfg.EnergyTh <= 0 {
		cfg.EnergyTh = d.EnergyTh
	}
	return &FFTPeakExtractor{cfg: cfg}
}

/*
Extract converts mono PCM into a PitchTrack tagged "fft_peak".

Logic:
 1. Empty input or frame_len > len(pcm) -> empty track.
 2. Per frame: apply a Hamming window, take the real FFT, find the
    magnitude peak bin within [fmin,fmax], refine via three-point
    parabolic interpolation, convert to Hz as (k+delta)*sr/frame_len.
 3. Frames below the absolute energy floor are marked unvoiced.
*/
func (e *FFTPeakExtractor) Extract(pcm []float32, sr int) Track {
	track := Track{SR: sr, Hop: e.cfg.Hop, Algo: "fft_peak"}
	if sr <= 0 || len(pcm) == 0 {
		return track
	}

	pcm = clampToMaxSeconds(pcm, sr, e.cfg.MaxSeconds)

	frameLen := e.cfg.FrameLen
	hop := e.cfg.Hop
	if frameLen > len(pcm) {
		return track
	}

	nFrames := (len(pcm)-frameLen)/hop + 1
	if nFrames <= 0 {
		return track
	}

	window := hammingWindow(frameLen)
	fft := fourier.NewFFT(frameLen)
	binHz := float64(sr) / float64(frameLen)
	kMin := int(math.Floor(e.cfg.Fmin / binHz))
	kMax := int(math.Ceil(e.cfg.Fmax / binHz))
	if kMin < 1 {
		kMin = 1
	}

	frames := make([]Frame, nFrames)
	windowed := make([]float64, frameLen)

	for i := 0; i < nFrames; i++ {
		start := i * hop
		raw := pcm[start : start+frameLen]
		t := float64(start) / float64(sr)
		frames[i] = Frame{T: t}

		if rms(raw) < e.cfg.EnergyTh {
			continue
		}

		for j, s := range raw {
			windowed[j] = float64(s) * window[j]
		}

		spectrum := fft.Coefficients(nil, windowed)
		maxBin := kMax
		if maxBin >= len(spectrum) {
			maxBin = len(spectrum) - 1
		}
		if maxBin <= kMin {
			continue
		}

		peakBin := -1
		peakMag := 0.0
		for k := kMin; k <= maxBin; k++ {
			mag := cmplxAbs(spectrum[k])
			if mag > peakMag {
				peakMag = mag
				peakBin = k
			}
		}
		if peakBin <= 0 {
			continue
		}

		delta := parabolicPeakDelta(spectrum, peakBin)
		f0 := (float64(peakBin) + delta) * float64(sr) / float64(frameLen)
		if f0 > 0 && !math.IsNaN(f0) && !math.IsInf(f0, 0) {
			frames[i].F0 = f64(f0)
		}
	}

	track.Frames = frames
	return track
}

func hammingWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := 0; i < n; i++ {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// parabolicPeakDelta refines a magnitude-spectrum peak at bin k using the
// classic three-point parabolic interpolation in the log-magnitude domain.
func parabolicPeakDelta(spectrum []complex128, k int) float64 {
	if k <= 0 || k >= len(spectrum)-1 {
		return 0
	}
	alpha := logMag(spectrum[k-1])
	beta := logMag(spectrum[k])
	gamma := logMag(spectrum[k+1])
	denom := alpha - 2*beta + gamma
	if denom == 0 {
		return 0
	}
	return 0.5 * (alpha - gamma) / denom
}

func logMag(c complex128) float64 {
	m := cmplxAbs(c)
	if m <= 0 {
		return -1e9
	}
	return math.Log(m)
}
