package export

import "time"

// Stage is one step of the export pipeline. All stages carry equal
// weight in overall progress.
type Stage struct {
	Name     string
	Label    string
	Duration time.Duration
}

// DefaultStages is the simulated compositing/encoding pipeline.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "analyze", Label: "Analyzing composition...", Duration: 500 * time.Millisecond},
		{Name: "render_frames", Label: "Rendering video frames...", Duration: 3 * time.Second},
		{Name: "process_audio", Label: "Processing audio tracks...", Duration: 1500 * time.Millisecond},
		{Name: "encode", Label: "Encoding video...", Duration: 2 * time.Second},
		{Name: "finalize", Label: "Finalizing export...", Duration: time.Second},
	}
}
