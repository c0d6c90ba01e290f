package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"singtrainer/internal/align"
	"singtrainer/internal/pitch"
)

func f0(hz float64) *float64 { return &hz }

func TestCompare_OctaveUpIs1200Cents(t *testing.T) {
	ref := &pitch.Track{Frames: []pitch.Frame{{T: 0, F0: f0(220)}}}
	usr := align.AlignedUser{F0: []*float64{f0(440)}}

	out := Compare(ref, usr)
	require.True(t, out.Present[0])
	assert.InDelta(t, 1200.0, out.Values[0], 1e-9)
}

func TestCompare_SameFrequencyIsZeroCents(t *testing.T) {
	ref := &pitch.Track{Frames: []pitch.Frame{{T: 0, F0: f0(330)}}}
	usr := align.AlignedUser{F0: []*float64{f0(330)}}

	out := Compare(ref, usr)
	require.True(t, out.Present[0])
	assert.InDelta(t, 0.0, out.Values[0], 1e-9)
}

func TestCompare_MissingWhenEitherSideAbsent(t *testing.T) {
	ref := &pitch.Track{Frames: []pitch.Frame{
		{T: 0, F0: f0(220)},
		{T: 1, F0: nil},
	}}
	usr := align.AlignedUser{F0: []*float64{nil, f0(220)}}

	out := Compare(ref, usr)
	assert.False(t, out.Present[0])
	assert.False(t, out.Present[1])
}

func TestCompare_NonPositiveValuesTreatedAsMissing(t *testing.T) {
	ref := &pitch.Track{Frames: []pitch.Frame{{T: 0, F0: f0(-5)}}}
	usr := align.AlignedUser{F0: []*float64{f0(220)}}

	out := Compare(ref, usr)
	assert.False(t, out.Present[0])
}

func TestCentsArray_PresentValues(t *testing.T) {
	c := CentsArray{
		Values:  []float64{10, 20, 30},
		Present: []bool{true, false, true},
	}
	assert.Equal(t, []float64{10, 30}, c.PresentValues())
}

func TestCompare_LawHoldsForHalfFrequency(t *testing.T) {
	ref := &pitch.Track{Frames: []pitch.Frame{{T: 0, F0: f0(440)}}}
	usr := align.AlignedUser{F0: []*float64{f0(220)}}
	out := Compare(ref, usr)
	require.True(t, out.Present[0])
	assert.True(t, math.Abs(out.Values[0]-(-1200.0)) < 1e-9)
}
