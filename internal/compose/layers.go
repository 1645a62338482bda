package compose

import (
	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/caption"
	"github.com/marev/cutline/internal/domain/clip"
)

// Canvas is the output surface size in pixels.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Snapshot is the immutable input to Render: the state of one editor
// session at a single instant.
type Snapshot struct {
	Assets     map[string]asset.Asset
	VideoClips []clip.Clip // insertion order; ties within a track keep it
	AudioClips []clip.Clip
	Captions   []caption.Caption
	FPS        int
}

// VisualLayer is one video or image layer at a frame. Layers are
// emitted back-to-front: earlier entries render behind later ones.
type VisualLayer struct {
	ClipID      string        `json:"clip_id"`
	AssetID     string        `json:"asset_id"`
	Kind        asset.Kind    `json:"kind"`
	SourceURL   string        `json:"source_url"`
	ZIndex      int           `json:"z_index"` // the clip's track
	Placement   clip.Geometry `json:"placement"`
	Fit         string        `json:"fit"`          // always "contain"
	MediaOffset float64       `json:"media_offset"` // seconds into the source media
	Gain        float64       `json:"gain"`         // 0..1
}

// AudioLayer is one audio contribution at a frame. Audio layers are
// mixed, not stacked; their order carries no meaning.
type AudioLayer struct {
	ClipID      string  `json:"clip_id"`
	AssetID     string  `json:"asset_id"`
	SourceURL   string  `json:"source_url"`
	MediaOffset float64 `json:"media_offset"`
	Gain        float64 `json:"gain"`
}

// CaptionLayer is a text overlay rendered above every visual layer,
// anchored bottom-center.
type CaptionLayer struct {
	CaptionID string        `json:"caption_id"`
	Text      string        `json:"text"`
	Style     caption.Style `json:"style"`
}

// Composition is the full derived layer stack for one frame.
type Composition struct {
	Frame    int            `json:"frame"`
	Canvas   Canvas         `json:"canvas"`
	Visual   []VisualLayer  `json:"visual"`
	Audio    []AudioLayer   `json:"audio"`
	Captions []CaptionLayer `json:"captions"`
}
