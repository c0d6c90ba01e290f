package summary

import "encoding/json"

type wireSummary struct {
	TolCents            float64  `json:"tol_cents"`
	Frames              int      `json:"frames"`
	Seconds             float64  `json:"seconds"`
	MeanCents           float64  `json:"mean_cents"`
	MedianCents         float64  `json:"median_cents"`
	StdCents            float64  `json:"std_cents"`
	PercentWithinTol    float64  `json:"percent_within_tol"`
	PercentLow          float64  `json:"percent_low"`
	PercentHigh         float64  `json:"percent_high"`
	P10Cents            float64  `json:"p10_cents"`
	P90Cents            float64  `json:"p90_cents"`
	UnvoicedMissSeconds *float64 `json:"unvoiced_miss_seconds,omitempty"`
	Verdict             Verdict  `json:"verdict"`
	Reason              string   `json:"reason"`
	Tips                string   `json:"tips"`
}

// MarshalJSON emits the summary.json wire shape.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireSummary{
		TolCents:            s.TolCents,
		Frames:              s.Frames,
		Seconds:             s.Seconds,
		MeanCents:           s.MeanCents,
		MedianCents:         s.MedianCents,
		StdCents:            s.StdCents,
		PercentWithinTol:    s.PercentWithinTol,
		PercentLow:          s.PercentLow,
		PercentHigh:         s.PercentHigh,
		P10Cents:            s.P10Cents,
		P90Cents:            s.P90Cents,
		UnvoicedMissSeconds: s.UnvoicedMissSeconds,
		Verdict:             s.Verdict,
		Reason:              s.Reason,
		Tips:                s.Tips,
	})
}
