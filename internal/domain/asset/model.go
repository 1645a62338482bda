package asset

import "strings"

// Kind classifies an imported media asset
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
	KindAudio Kind = "audio"
)

// Asset represents an imported media file referenced by timeline clips.
// Assets are immutable after import except for ThumbnailURL, which is
// filled in asynchronously for video.
type Asset struct {
	ID           string   `json:"id"`
	Kind         Kind     `json:"kind"`
	SourceURL    string   `json:"source_url"`
	Name         string   `json:"name"`
	Duration     *float64 `json:"duration,omitempty"` // native duration in seconds, when known
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
}

// KindFromMediaType derives the asset kind from a declared MIME type.
// Anything that is not video/* or audio/* is treated as an image.
func KindFromMediaType(mediaType string) Kind {
	switch {
	case strings.HasPrefix(mediaType, "video"):
		return KindVideo
	case strings.HasPrefix(mediaType, "audio"):
		return KindAudio
	default:
		return KindImage
	}
}
