package event

import "encoding/json"

type wireEvent struct {
	Start    float64  `json:"start"`
	End      float64  `json:"end"`
	Type     Type     `json:"type"`
	AvgCents *float64 `json:"avg_cents,omitempty"`
	MaxCents *float64 `json:"max_cents,omitempty"`
}

// MarshalJSON emits the events.json wire shape; cents statistics are
// omitted entirely for unvoiced_miss events.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEvent{
		Start:    e.Start,
		End:      e.End,
		Type:     e.Type,
		AvgCents: e.AvgCents,
		MaxCents: e.MaxCents,
	})
}
