package asset

import "context"

// ThumbnailProber decodes a single frame from a video source at the
// given offset and returns a URL (or data URI) for the decoded frame.
type ThumbnailProber interface {
	Probe(ctx context.Context, sourceURL string, atSeconds float64) (string, error)
}

// CascadeHook is notified when an asset is removed so referencing
// clips can be deleted in the same step.
type CascadeHook interface {
	AssetRemoved(assetID string)
}
