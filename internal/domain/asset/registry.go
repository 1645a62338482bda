package asset

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// thumbnailProbeOffset is where in the video a preview frame is decoded.
const thumbnailProbeOffset = 1.0

// Registry holds the imported assets for one editor session.
type Registry struct {
	mu      sync.Mutex
	assets  map[string]*Asset
	order   []string
	prober  ThumbnailProber
	cascade CascadeHook
	logger  *slog.Logger
}

// NewRegistry creates an empty asset registry. The prober may be nil,
// in which case video assets simply have no thumbnail.
func NewRegistry(prober ThumbnailProber, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		assets: make(map[string]*Asset),
		prober: prober,
		logger: logger,
	}
}

// SetCascadeHook registers the hook called when an asset is removed.
func (r *Registry) SetCascadeHook(hook CascadeHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cascade = hook
}

// ImportRequest describes a media source handed to the registry.
type ImportRequest struct {
	Name      string
	MediaType string
	SourceURL string
	Duration  *float64
}

// Import registers a new asset. The kind is derived from the declared
// media type. For video a thumbnail is probed asynchronously; a failed
// or cancelled probe leaves the thumbnail unset and never surfaces as
// an error.
func (r *Registry) Import(ctx context.Context, req ImportRequest) (*Asset, error) {
	if strings.TrimSpace(req.SourceURL) == "" {
		return nil, ErrInvalidInput
	}

	a := &Asset{
		ID:        uuid.NewString(),
		Kind:      KindFromMediaType(req.MediaType),
		SourceURL: req.SourceURL,
		Name:      req.Name,
		Duration:  req.Duration,
	}

	switch a.Kind {
	case KindImage:
		a.ThumbnailURL = a.SourceURL
	case KindVideo:
		if r.prober != nil {
			go r.probeThumbnail(ctx, a.ID, a.SourceURL)
		}
	}

	r.mu.Lock()
	r.assets[a.ID] = a
	r.order = append(r.order, a.ID)
	r.mu.Unlock()

	return a, nil
}

// Restore inserts a previously saved asset as-is, preserving its ID
// and import order. No thumbnail probe runs; the saved thumbnail is
// kept. Used when loading a project.
func (r *Registry) Restore(a Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[a.ID] = &a
	r.order = append(r.order, a.ID)
}

func (r *Registry) probeThumbnail(ctx context.Context, assetID, sourceURL string) {
	thumb, err := r.prober.Probe(ctx, sourceURL, thumbnailProbeOffset)
	if err != nil {
		r.logger.Warn("thumbnail probe failed", "asset_id", assetID, "error", err)
		return
	}
	if thumb == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.assets[assetID]; ok {
		a.ThumbnailURL = thumb
	}
}

// Get returns an asset by ID.
func (r *Registry) Get(id string) (*Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok {
		return nil, ErrAssetNotFound
	}
	copied := *a
	return &copied, nil
}

// List returns all assets in import order.
func (r *Registry) List() []Asset {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Asset, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.assets[id])
	}
	return out
}

// Remove deletes an asset and cascades to clips referencing it.
// Removing an unknown ID returns ErrAssetNotFound.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	_, ok := r.assets[id]
	if !ok {
		r.mu.Unlock()
		return ErrAssetNotFound
	}
	delete(r.assets, id)
	for i, aid := range r.order {
		if aid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	hook := r.cascade
	r.mu.Unlock()

	if hook != nil {
		hook.AssetRemoved(id)
	}
	return nil
}

// Snapshot returns a point-in-time lookup of assets by ID, used by the
// composition renderer.
func (r *Registry) Snapshot() map[string]Asset {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Asset, len(r.assets))
	for id, a := range r.assets {
		out[id] = *a
	}
	return out
}
