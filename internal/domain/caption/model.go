package caption

// Style controls caption appearance.
type Style struct {
	FontSize   int    `json:"font_size"`
	Color      string `json:"color"`
	Background string `json:"background"`
}

// DefaultStyle matches the editor's caption defaults.
func DefaultStyle() Style {
	return Style{
		FontSize:   48,
		Color:      "#ffffff",
		Background: "#000000",
	}
}

// Caption is a time-bounded text overlay on its own pseudo-track,
// always rendered above all video layers.
type Caption struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
	Style     Style   `json:"style"`
}

// End returns the caption's end time in seconds.
func (c Caption) End() float64 {
	return c.StartTime + c.Duration
}
