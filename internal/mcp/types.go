package mcp

import (
	"time"

	"github.com/marev/cutline/internal/compose"
	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/caption"
	"github.com/marev/cutline/internal/domain/clip"
	"github.com/marev/cutline/internal/domain/project"
	"github.com/marev/cutline/internal/editor"
	"github.com/marev/cutline/internal/export"
)

// Session params. Tools that operate on a session take session_id;
// when omitted, the transport session (Mcp-Session-Id header or stdio
// metadata) is used instead.

type CreateSessionParams struct {
	Canvas string `json:"canvas,omitempty" jsonschema:"canvas preset name, e.g. 16:9, 9:16, 1:1, 4:5, 21:9"`
}

type SessionParams struct {
	SessionID string `json:"session_id,omitempty"`
}

type SetCanvasParams struct {
	SessionID string `json:"session_id,omitempty"`
	Canvas    string `json:"canvas" jsonschema:"canvas preset name"`
}

type SessionResponse struct {
	SessionID string              `json:"session_id"`
	Canvas    editor.CanvasPreset `json:"canvas"`
	Timeline  TimelineState       `json:"timeline"`
	Zoom      float64             `json:"zoom"`
	Assets    int                 `json:"assets"`
	Clips     int                 `json:"clips"`
	Captions  int                 `json:"captions"`
	CreatedAt time.Time           `json:"created_at"`
}

type TimelineState struct {
	CurrentTime   float64 `json:"current_time"`
	CurrentFrame  int     `json:"current_frame"`
	TotalDuration float64 `json:"total_duration"`
	FPS           int     `json:"fps"`
	Playing       bool    `json:"playing"`
}

type ListSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

type ListCanvasPresetsResponse struct {
	Presets []editor.CanvasPreset `json:"presets"`
}

// Asset params.

type ImportAssetParams struct {
	SessionID string   `json:"session_id,omitempty"`
	Name      string   `json:"name"`
	MediaType string   `json:"media_type" jsonschema:"declared MIME type, e.g. video/mp4, image/png, audio/mpeg"`
	SourceURL string   `json:"source_url"`
	Duration  *float64 `json:"duration,omitempty" jsonschema:"native media duration in seconds, when known"`
}

type AssetParams struct {
	SessionID string `json:"session_id,omitempty"`
	AssetID   string `json:"asset_id"`
}

type AssetResponse struct {
	Asset asset.Asset `json:"asset"`
}

type ListAssetsResponse struct {
	Assets []asset.Asset `json:"assets"`
}

type RemoveAssetResponse struct {
	Removed      string `json:"removed"`
	ClipsDeleted int    `json:"clips_deleted"`
}

// Clip params.

type AddClipParams struct {
	SessionID  string  `json:"session_id,omitempty"`
	AssetID    string  `json:"asset_id"`
	Track      int     `json:"track,omitempty"`
	StartTime  float64 `json:"start_time,omitempty"`
	AtPlayhead bool    `json:"at_playhead,omitempty" jsonschema:"place at the playhead instead of start_time"`
}

type ClipParams struct {
	SessionID string `json:"session_id,omitempty"`
	ClipID    string `json:"clip_id"`
}

type MoveClipParams struct {
	SessionID string  `json:"session_id,omitempty"`
	ClipID    string  `json:"clip_id"`
	StartTime float64 `json:"start_time"`
}

type SetClipTrackParams struct {
	SessionID string `json:"session_id,omitempty"`
	ClipID    string `json:"clip_id"`
	Track     int    `json:"track"`
}

type SetClipGeometryParams struct {
	SessionID string `json:"session_id,omitempty"`
	ClipID    string `json:"clip_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type SetClipVolumeParams struct {
	SessionID string `json:"session_id,omitempty"`
	ClipID    string `json:"clip_id"`
	Volume    int    `json:"volume" jsonschema:"percent, clamped to 0..100"`
}

type SetClipDurationParams struct {
	SessionID string  `json:"session_id,omitempty"`
	ClipID    string  `json:"clip_id"`
	Duration  float64 `json:"duration" jsonschema:"seconds, clamped positive"`
}

type ClipResponse struct {
	Clip clip.Clip `json:"clip"`
}

type ListClipsResponse struct {
	Clips []clip.Clip `json:"clips"`
}

type DeletedResponse struct {
	Deleted string `json:"deleted"`
}

// Caption params.

type AddCaptionParams struct {
	SessionID string   `json:"session_id,omitempty"`
	Text      string   `json:"text,omitempty"`
	StartTime *float64 `json:"start_time,omitempty" jsonschema:"seconds; omit to add at the playhead"`
}

type UpdateCaptionParams struct {
	SessionID  string   `json:"session_id,omitempty"`
	CaptionID  string   `json:"caption_id"`
	Text       *string  `json:"text,omitempty"`
	StartTime  *float64 `json:"start_time,omitempty"`
	Duration   *float64 `json:"duration,omitempty"`
	FontSize   *int     `json:"font_size,omitempty"`
	Color      *string  `json:"color,omitempty"`
	Background *string  `json:"background,omitempty"`
}

type CaptionParams struct {
	SessionID string `json:"session_id,omitempty"`
	CaptionID string `json:"caption_id"`
}

type CaptionResponse struct {
	Caption caption.Caption `json:"caption"`
}

type ListCaptionsResponse struct {
	Captions []caption.Caption `json:"captions"`
}

// Playback params.

type SeekParams struct {
	SessionID string  `json:"session_id,omitempty"`
	Time      float64 `json:"time" jsonschema:"seconds, clamped to the timeline"`
}

type SetZoomParams struct {
	SessionID string  `json:"session_id,omitempty"`
	Zoom      float64 `json:"zoom" jsonschema:"factor, clamped to 0.5..3.0"`
}

type ZoomResponse struct {
	Zoom            float64 `json:"zoom"`
	PixelsPerSecond float64 `json:"pixels_per_second"`
}

// Render params.

type RenderFrameParams struct {
	SessionID string `json:"session_id,omitempty"`
	Frame     *int   `json:"frame,omitempty" jsonschema:"frame number; omit to render at the playhead"`
}

type RenderFrameResponse struct {
	Composition compose.Composition `json:"composition"`
}

// Export params.

type ExportStatusResponse struct {
	Report   export.Report `json:"report"`
	Filename string        `json:"filename,omitempty"`
}

// Project params.

type SaveProjectParams struct {
	SessionID string `json:"session_id,omitempty"`
	ProjectID string `json:"project_id,omitempty" jsonschema:"omit to create a new project"`
	Name      string `json:"name,omitempty"`
}

type ProjectParams struct {
	ProjectID string `json:"project_id"`
}

type SaveProjectResponse struct {
	Project project.Summary `json:"project"`
}

type LoadProjectResponse struct {
	SessionID string          `json:"session_id"`
	Project   project.Summary `json:"project"`
}

type ListProjectsResponse struct {
	Projects []project.Summary `json:"projects"`
}
