package clip

// Lane separates the two track namespaces. Video and image clips share
// the video lane; audio clips live in their own lane with independent
// track numbering and no z-order meaning.
type Lane string

const (
	LaneVideo Lane = "video"
	LaneAudio Lane = "audio"
)

const (
	// MaxVideoTrack is the highest video-lane track. Higher tracks
	// render in front of lower ones.
	MaxVideoTrack = 2
	// MaxAudioTrack is the highest audio-lane track. Audio tracks are
	// mixing lanes only.
	MaxAudioTrack = 1
)

// Geometry is canvas-space placement in pixels. Audio clips carry a
// zero geometry that the renderer ignores.
type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Clip is a placed, time-bounded reference to an asset on a track.
type Clip struct {
	ID        string   `json:"id"`
	AssetID   string   `json:"asset_id"`
	Lane      Lane     `json:"lane"`
	Track     int      `json:"track"`
	StartTime float64  `json:"start_time"` // seconds, >= 0
	Duration  float64  `json:"duration"`   // seconds, > 0
	Geometry  Geometry `json:"geometry"`
	Volume    int      `json:"volume"` // percent, 0..100
}

// End returns the clip's end time in seconds.
func (c Clip) End() float64 {
	return c.StartTime + c.Duration
}

// maxTrack returns the highest valid track index for a lane.
func maxTrack(lane Lane) int {
	if lane == LaneAudio {
		return MaxAudioTrack
	}
	return MaxVideoTrack
}
