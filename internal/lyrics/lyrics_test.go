package lyrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"singtrainer/internal/pitch"
)

func f0(hz float64) *float64 { return &hz }

func TestParseLRC_Basic(t *testing.T) {
	text := "[ar:Someone]\n[00:01.00]line one\n[00:03.50]line two\n"
	lines, parsed, err := parseLRC(text)
	require.NoError(t, err)
	assert.Equal(t, 2, parsed)
	require.Len(t, lines, 2)
	assert.Equal(t, 1.0, lines[0].Start)
	assert.Equal(t, 3.5, lines[0].End)
	assert.Equal(t, "line one", lines[0].Text)
	assert.Equal(t, 6.5, lines[1].End)
}

func TestParseLRC_Malformed(t *testing.T) {
	_, parsed, err := parseLRC("[00:01.00]ok\n[1:30.00]broken\n")
	require.Error(t, err)
	assert.Equal(t, 1, parsed)
}

func TestParseLRC_NoTimestamps(t *testing.T) {
	_, parsed, err := parseLRC("just some text\nwith no tags\n")
	require.Error(t, err)
	assert.Equal(t, 0, parsed)
}

func TestParseSRT_Basic(t *testing.T) {
	text := "1\n00:00:01,000 --> 00:00:03,500\nline one\n\n2\n00:00:03,500 --> 00:00:05,000\nline two\n"
	lines, parsed, err := parseSRT(text)
	require.NoError(t, err)
	assert.Equal(t, 2, parsed)
	require.Len(t, lines, 2)
	assert.InDelta(t, 1.0, lines[0].Start, 1e-9)
	assert.InDelta(t, 3.5, lines[0].End, 1e-9)
	assert.Equal(t, "line one", lines[0].Text)
}

func buildTrack(voicedRuns [][2]float64, sr, hop int) *pitch.Track {
	tr := &pitch.Track{SR: sr, Hop: hop, Algo: "test"}
	period := tr.FramePeriod()
	for _, run := range voicedRuns {
		for tm := run[0]; tm <= run[1]+1e-9; tm += period {
			tr.Frames = append(tr.Frames, pitch.Frame{T: tm, F0: f0(220.0)})
		}
	}
	return tr
}

func TestAlignUntimed_MatchesSegmentCount(t *testing.T) {
	ref := buildTrack([][2]float64{{0, 1}, {2, 3}}, 44100, 4410)
	lines := alignUntimed(ref, []string{"a", "b"}, 0.6, 0.4)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Start < lines[1].Start)
	for _, l := range lines {
		assert.GreaterOrEqual(t, l.End-l.Start, 0.4-1e-9)
	}
}

func TestAlignUntimed_MergesExcessSegments(t *testing.T) {
	ref := buildTrack([][2]float64{{0, 0.5}, {1.7, 2.2}, {3.4, 3.9}, {5.1, 5.6}}, 44100, 4410)
	lines := alignUntimed(ref, []string{"only one line"}, 0.6, 0.4)
	require.Len(t, lines, 1)
	assert.Equal(t, "only one line", lines[0].Text)
}

func TestAlignUntimed_SplitsTooFewSegments(t *testing.T) {
	ref := buildTrack([][2]float64{{0, 4}}, 44100, 4410)
	lines := alignUntimed(ref, []string{"a", "b", "c"}, 0.6, 0.4)
	require.Len(t, lines, 3)
	assert.True(t, lines[0].Start <= lines[1].Start)
	assert.True(t, lines[1].Start <= lines[2].Start)
}

func TestPostProcess_EnforcesMinDurationAndOrder(t *testing.T) {
	lines := postProcess([]Line{
		{Start: 1.0, End: 1.05, Text: "short"},
		{Start: 0.0, End: 1.2, Text: "overlap"},
	}, 0.4)
	require.Len(t, lines, 2)
	assert.Equal(t, "overlap", lines[0].Text)
	assert.LessOrEqual(t, lines[0].End, lines[1].Start+1e-9)
	assert.GreaterOrEqual(t, lines[1].End-lines[1].Start, 0.4-1e-9)
}

func TestWriteSRT_FormatsTimestamps(t *testing.T) {
	out := WriteSRT([]Line{{Start: 61.25, End: 63.0, Text: "hello"}})
	assert.Contains(t, out, "00:01:01,250 --> 00:01:03,000")
	assert.Contains(t, out, "hello")
}

func TestWriteLRC_FormatsTag(t *testing.T) {
	out := WriteLRC([]Line{{Start: 65.5, End: 68.0, Text: "hi"}})
	assert.Contains(t, out, "[01:05.50]hi")
}

func TestAlign_FallsBackToUntimedOnUnparseableLRC(t *testing.T) {
	ref := buildTrack([][2]float64{{0, 1}}, 44100, 4410)
	lines, err := Align(ref, Source{Kind: KindLRC, Text: "no tags here\nanother line\n"}, 0.6, 0.4)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestAlign_SurfacesParseErrorWhenPartiallyTimed(t *testing.T) {
	ref := buildTrack([][2]float64{{0, 1}}, 44100, 4410)
	_, err := Align(ref, Source{Kind: KindLRC, Text: "[00:01.00]ok\n[1:30.00]broken\n"}, 0.6, 0.4)
	require.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}
