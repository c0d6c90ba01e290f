package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"singtrainer/internal/pitch"
)

func f0(hz float64) *float64 { return &hz }

// buildTrack makes a track with one frame every period seconds for
// totalFrames frames, voiced (220Hz) wherever voicedAt returns true.
func buildTrack(period float64, totalFrames int, voicedAt func(i int) bool) *pitch.Track {
	tr := &pitch.Track{SR: int(1 / period), Hop: 1, Algo: "test"}
	for i := 0; i < totalFrames; i++ {
		var f *float64
		if voicedAt(i) {
			f = f0(220.0)
		}
		tr.Frames = append(tr.Frames, pitch.Frame{T: float64(i) * period, F0: f})
	}
	return tr
}

func TestAlign_NoAutosync_NearestFrameMapping(t *testing.T) {
	ref := buildTrack(0.1, 20, func(i int) bool { return i >= 5 && i < 15 })
	usr := buildTrack(0.1, 20, func(i int) bool { return i >= 5 && i < 15 })

	out := Align(ref, usr, false, 3.0)
	require.Len(t, out.F0, len(ref.Frames))
	assert.False(t, out.Autosynced)
	assert.Equal(t, 0.0, out.ShiftSec)
	for i := 5; i < 15; i++ {
		require.NotNil(t, out.F0[i])
		assert.Equal(t, 220.0, *out.F0[i])
	}
}

func TestAlign_EmptyUserTrack(t *testing.T) {
	ref := buildTrack(0.1, 10, func(i int) bool { return true })
	usr := &pitch.Track{}
	out := Align(ref, usr, false, 3.0)
	require.Len(t, out.F0, len(ref.Frames))
	for _, f := range out.F0 {
		assert.Nil(t, f)
	}
}

func TestFindShift_RecoversKnownOffset(t *testing.T) {
	period := 0.01
	n := 200
	voicedStart, voicedEnd := 50, 100

	ref := buildTrack(period, n, func(i int) bool { return i >= voicedStart && i < voicedEnd })
	// user's voiced block starts 0.2s later (20 frames at this period)
	usrShiftFrames := 20
	usr := buildTrack(period, n, func(i int) bool {
		return i >= voicedStart+usrShiftFrames && i < voicedEnd+usrShiftFrames
	})

	shift := FindShift(ref, usr, 3.0)
	// the user is late, so the recovered shift should be negative
	// (shifting user timestamps earlier aligns it back onto ref)
	assert.InDelta(t, -0.2, shift, period+1e-9)
}

func TestFindShift_NoVoicedOverlapReturnsZero(t *testing.T) {
	ref := &pitch.Track{}
	usr := &pitch.Track{}
	assert.Equal(t, 0.0, FindShift(ref, usr, 3.0))
}

func TestAlign_AutosyncAppliesDiscoveredShift(t *testing.T) {
	period := 0.01
	n := 200
	ref := buildTrack(period, n, func(i int) bool { return i >= 50 && i < 100 })
	usr := buildTrack(period, n, func(i int) bool { return i >= 70 && i < 120 })

	out := Align(ref, usr, true, 3.0)
	assert.True(t, out.Autosynced)
	assert.NotEqual(t, 0.0, out.ShiftSec)
}
