package editor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marev/cutline/internal/compose"
	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/caption"
	"github.com/marev/cutline/internal/domain/clip"
	"github.com/marev/cutline/internal/domain/timeline"
	"github.com/marev/cutline/internal/export"
)

// CanvasPreset is a named output size.
type CanvasPreset struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DefaultPreset is the canvas used when none is requested.
const DefaultPreset = "16:9"

// CanvasPresets are the selectable output formats.
var CanvasPresets = []CanvasPreset{
	{Name: "16:9", Label: "YouTube (16:9)", Width: 1920, Height: 1080},
	{Name: "9:16", Label: "TikTok/Reels (9:16)", Width: 1080, Height: 1920},
	{Name: "1:1", Label: "Instagram Square (1:1)", Width: 1080, Height: 1080},
	{Name: "4:5", Label: "Instagram Portrait (4:5)", Width: 1080, Height: 1350},
	{Name: "21:9", Label: "Ultrawide (21:9)", Width: 2560, Height: 1080},
}

// PresetByName returns a canvas preset, falling back to the default.
func PresetByName(name string) CanvasPreset {
	for _, p := range CanvasPresets {
		if p.Name == name {
			return p
		}
	}
	return PresetByName(DefaultPreset)
}

// Session is one live editing surface: the asset registry, clip and
// caption stores, timeline clock, interaction controller and export
// orchestrator, wired together behind a single aggregate. Sessions are
// created by the Manager and passed by reference to whoever needs
// them; there is no global editor state.
type Session struct {
	ID        string
	CreatedAt time.Time

	Assets     *asset.Registry
	Clips      *clip.Store
	Captions   *caption.Store
	Clock      *timeline.Clock
	Controller *Controller
	Export     *export.Orchestrator

	mu     sync.Mutex
	canvas CanvasPreset
	logger *slog.Logger
}

// NewSession wires an empty session around a canvas preset.
func NewSession(prober asset.ThumbnailProber, preset CanvasPreset, logger *slog.Logger, exportOpts ...export.Option) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	clock := timeline.NewClock(timeline.DefaultFPS)
	clips := clip.NewStore(clock)
	captions := caption.NewStore(clock)
	assets := asset.NewRegistry(prober, logger)
	assets.SetCascadeHook(cascade{clips: clips})

	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Assets:    assets,
		Clips:     clips,
		Captions:  captions,
		Clock:     clock,
		Export:    export.NewOrchestrator(logger, exportOpts...),
		canvas:    preset,
		logger:    logger,
	}
	s.Controller = NewController(s)
	return s
}

// cascade deletes clips referencing a removed asset.
type cascade struct {
	clips *clip.Store
}

func (c cascade) AssetRemoved(assetID string) {
	c.clips.DeleteByAsset(assetID)
}

// Canvas returns the session's output size.
func (s *Session) Canvas() CanvasPreset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas
}

// SetCanvas switches the output preset. Existing clip geometry is left
// untouched.
func (s *Session) SetCanvas(preset CanvasPreset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas = preset
}

// PlaceClip places an asset on a track at a start time. The lane
// follows the asset kind; geometry defaults to the full canvas and
// volume to 100.
func (s *Session) PlaceClip(assetID string, track int, startTime float64) (*clip.Clip, error) {
	a, err := s.Assets.Get(assetID)
	if err != nil {
		return nil, err
	}

	lane := clip.LaneVideo
	if a.Kind == asset.KindAudio {
		lane = clip.LaneAudio
	}
	canvas := s.Canvas()

	return s.Clips.Add(clip.AddRequest{
		AssetID:       assetID,
		Lane:          lane,
		Track:         track,
		StartTime:     startTime,
		AssetDuration: a.Duration,
		Geometry:      clip.Geometry{Width: canvas.Width, Height: canvas.Height},
		Volume:        100,
	})
}

// AppendClip places an asset on the default track at the playhead,
// the click-to-add gesture.
func (s *Session) AppendClip(assetID string) (*clip.Clip, error) {
	return s.PlaceClip(assetID, 0, s.Clock.State().CurrentTime)
}

// AddCaption creates a caption at the playhead.
func (s *Session) AddCaption(text string) *caption.Caption {
	return s.Captions.Add(text, s.Clock.State().CurrentTime)
}

// Snapshot captures the session state for rendering.
func (s *Session) Snapshot() compose.Snapshot {
	return compose.Snapshot{
		Assets:     s.Assets.Snapshot(),
		VideoClips: s.Clips.All(clip.LaneVideo),
		AudioClips: s.Clips.All(clip.LaneAudio),
		Captions:   s.Captions.All(),
		FPS:        s.Clock.State().FPS,
	}
}

// RenderFrame composes the layer stack for one frame.
func (s *Session) RenderFrame(frame int) compose.Composition {
	canvas := s.Canvas()
	return compose.Render(s.Snapshot(), frame, compose.Canvas{
		Width:  canvas.Width,
		Height: canvas.Height,
	})
}

// RenderCurrent composes the layer stack at the playhead.
func (s *Session) RenderCurrent() compose.Composition {
	return s.RenderFrame(s.Clock.CurrentFrame())
}

// Content summarizes the composition for export gating.
func (s *Session) Content() export.Content {
	return export.Content{
		VideoClips: len(s.Clips.All(clip.LaneVideo)),
		AudioClips: len(s.Clips.All(clip.LaneAudio)),
		Captions:   len(s.Captions.All()),
	}
}

// StartExport kicks off the export pipeline for the current content.
func (s *Session) StartExport(ctx context.Context) error {
	return s.Export.Start(ctx, s.Content())
}

// Close stops playback and any in-flight export.
func (s *Session) Close() {
	s.Clock.Pause()
	s.Export.Cancel()
}
