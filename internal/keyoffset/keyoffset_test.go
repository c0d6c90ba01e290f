package keyoffset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"singtrainer/internal/compare"
)

func present(vals ...float64) compare.CentsArray {
	c := compare.CentsArray{
		Values:  make([]float64, len(vals)),
		Present: make([]bool, len(vals)),
	}
	for i, v := range vals {
		c.Values[i] = v
		c.Present[i] = true
	}
	return c
}

func TestAnalyze_NoVoicedOverlapYieldsZeroFrames(t *testing.T) {
	r := Analyze(compare.CentsArray{})
	assert.Equal(t, 0, r.Frames)
	assert.Equal(t, Verdict(""), r.Verdict)
}

func TestAnalyze_FullOctaveUpIsOctaveShift(t *testing.T) {
	vals := make([]float64, 20)
	for i := range vals {
		vals[i] = 1200
	}
	r := Analyze(present(vals...))
	assert.Equal(t, VerdictOctaveShift, r.Verdict)
	assert.Equal(t, 1, r.OctaveK)
	assert.InDelta(t, 0.0, r.WrappedMedianCents, 1e-9)
	assert.InDelta(t, 1.0, r.WrappedWithin40c, 1e-9)
}

func TestAnalyze_FullOctaveDownIsOctaveShift(t *testing.T) {
	vals := make([]float64, 20)
	for i := range vals {
		vals[i] = -1190
	}
	r := Analyze(present(vals...))
	assert.Equal(t, VerdictOctaveShift, r.Verdict)
	assert.Equal(t, -1, r.OctaveK)
}

func TestAnalyze_SmallFlatOffsetIsKeyShift(t *testing.T) {
	vals := make([]float64, 20)
	for i := range vals {
		vals[i] = -60
	}
	r := Analyze(present(vals...))
	assert.Equal(t, VerdictKeyShift, r.Verdict)
	assert.Equal(t, 0, r.OctaveK)
	assert.Equal(t, -1, r.SemitoneOffset)
}

func TestAnalyze_NearOctaveButTooFarIsKeyShift(t *testing.T) {
	// octave_k rounds to 1 (median/1200 = 700/1200 ~= 0.58 -> rounds to 1)
	// but |m - 1200*k| = |700-1200| = 500, which is >= 200, so the
	// verdict falls back to key_shift despite a nonzero octave_k.
	vals := make([]float64, 20)
	for i := range vals {
		vals[i] = 700
	}
	r := Analyze(present(vals...))
	assert.Equal(t, 1, r.OctaveK)
	assert.Equal(t, VerdictKeyShift, r.Verdict)
}

func TestAnalyze_MedianOverPresentOnly(t *testing.T) {
	c := compare.CentsArray{
		Values:  []float64{0, 0, 100, 100, 100},
		Present: []bool{false, false, true, true, true},
	}
	r := Analyze(c)
	assert.Equal(t, 3, r.Frames)
	assert.InDelta(t, 100.0, r.MedianCents, 1e-9)
}
