package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"singtrainer/internal/align"
	"singtrainer/internal/compare"
	"singtrainer/internal/pitch"
)

func f0(hz float64) *float64 { return &hz }

func buildRef(period float64, n int) *pitch.Track {
	tr := &pitch.Track{SR: int(1 / period), Hop: 1}
	for i := 0; i < n; i++ {
		tr.Frames = append(tr.Frames, pitch.Frame{T: float64(i) * period, F0: f0(220)})
	}
	return tr
}

// fullyVoicedUser returns an AlignedUser matching ref's pitch everywhere,
// so tests can override a specific range without tripping the
// unvoiced_miss mask on the untouched frames.
func fullyVoicedUser(n int) align.AlignedUser {
	f0s := make([]*float64, n)
	for i := range f0s {
		f0s[i] = f0(220)
	}
	return align.AlignedUser{F0: f0s}
}

func TestSegment_LowPitchRunBecomesEvent(t *testing.T) {
	ref := buildRef(0.1, 10)
	cents := compare.CentsArray{
		Values:  make([]float64, 10),
		Present: make([]bool, 10),
	}
	usr := fullyVoicedUser(10)
	for i := 3; i < 8; i++ {
		cents.Values[i] = -80
		cents.Present[i] = true
		usr.F0[i] = f0(200)
	}

	events := Segment(cents, ref, usr, 40.0, 0.3)
	require.Len(t, events, 1)
	assert.Equal(t, TypePitchLow, events[0].Type)
	assert.InDelta(t, 0.3, events[0].Start, 1e-9)
	// last included frame is at 0.7; half-open end adds one frame period
	assert.InDelta(t, 0.7+0.1, events[0].End, 1e-9)
	require.NotNil(t, events[0].AvgCents)
	assert.InDelta(t, -80.0, *events[0].AvgCents, 1e-9)
}

func TestSegment_ShortRunRejectedByMinDuration(t *testing.T) {
	ref := buildRef(0.1, 10)
	cents := compare.CentsArray{Values: make([]float64, 10), Present: make([]bool, 10)}
	usr := fullyVoicedUser(10)
	cents.Values[5] = 80
	cents.Present[5] = true
	usr.F0[5] = f0(250)

	events := Segment(cents, ref, usr, 40.0, 0.3)
	assert.Empty(t, events)
}

func TestSegment_UnvoicedMissWhenRefVoicedAndUserAbsent(t *testing.T) {
	ref := buildRef(0.1, 10)
	cents := compare.CentsArray{Values: make([]float64, 10), Present: make([]bool, 10)}
	usr := align.AlignedUser{F0: make([]*float64, 10)} // all nil

	events := Segment(cents, ref, usr, 40.0, 0.3)
	require.Len(t, events, 1)
	assert.Equal(t, TypeUnvoicedMiss, events[0].Type)
	assert.Nil(t, events[0].AvgCents)
	assert.Nil(t, events[0].MaxCents)
}

func TestSegment_EmptyRefYieldsNoEvents(t *testing.T) {
	ref := &pitch.Track{}
	events := Segment(compare.CentsArray{}, ref, align.AlignedUser{}, 40.0, 0.3)
	assert.Nil(t, events)
}

func TestSegment_EventsSortedByStart(t *testing.T) {
	ref := buildRef(0.1, 20)
	cents := compare.CentsArray{Values: make([]float64, 20), Present: make([]bool, 20)}
	usr := fullyVoicedUser(20)

	for i := 10; i < 15; i++ {
		cents.Values[i] = 80
		cents.Present[i] = true
		usr.F0[i] = f0(250)
	}
	for i := 2; i < 7; i++ {
		cents.Values[i] = -80
		cents.Present[i] = true
		usr.F0[i] = f0(200)
	}

	events := Segment(cents, ref, usr, 40.0, 0.3)
	require.Len(t, events, 2)
	assert.True(t, events[0].Start < events[1].Start)
	assert.Equal(t, TypePitchLow, events[0].Type)
	assert.Equal(t, TypePitchHigh, events[1].Type)
}
