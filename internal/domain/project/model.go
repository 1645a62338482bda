package project

import (
	"time"

	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/caption"
	"github.com/marev/cutline/internal/domain/clip"
)

// Project is a saved editing document: the full asset, clip, and
// caption state of a session at save time. Slice order is insertion
// order and must survive a round trip, since same-track stacking ties
// are broken by it.
type Project struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	CanvasPreset  string            `json:"canvas_preset"`
	TotalDuration float64           `json:"total_duration"`
	Assets        []asset.Asset     `json:"assets"`
	Clips         []clip.Clip       `json:"clips"`
	Captions      []caption.Caption `json:"captions"`
	CreatedAt     time.Time         `json:"created_at"`
	ModifiedAt    time.Time         `json:"modified_at"`
}

// Summary is a lightweight representation for listing.
type Summary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CanvasPreset  string    `json:"canvas_preset"`
	TotalDuration float64   `json:"total_duration"`
	AssetCount    int       `json:"asset_count"`
	ClipCount     int       `json:"clip_count"`
	CaptionCount  int       `json:"caption_count"`
	CreatedAt     time.Time `json:"created_at"`
	ModifiedAt    time.Time `json:"modified_at"`
}
