package keyoffset

import "encoding/json"

type wireResult struct {
	Frames             int     `json:"frames"`
	MedianCents        float64 `json:"median_cents"`
	SemitoneOffset     int     `json:"semitone_offset"`
	OctaveK            int     `json:"octave_k"`
	WrappedMedianCents float64 `json:"wrapped_median_cents"`
	WrappedWithin40c   float64 `json:"wrapped_within_40c"`
	Verdict            Verdict `json:"verdict,omitempty"`
}

// MarshalJSON emits the key_offset.json wire shape.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireResult{
		Frames:             r.Frames,
		MedianCents:        r.MedianCents,
		SemitoneOffset:     r.SemitoneOffset,
		OctaveK:            r.OctaveK,
		WrappedMedianCents: r.WrappedMedianCents,
		WrappedWithin40c:   r.WrappedWithin40c,
		Verdict:            r.Verdict,
	})
}
