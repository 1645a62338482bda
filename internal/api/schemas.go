package api

import (
	"time"

	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/caption"
	"github.com/marev/cutline/internal/domain/clip"
	"github.com/marev/cutline/internal/domain/project"
	"github.com/marev/cutline/internal/editor"
	"github.com/marev/cutline/internal/export"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type SessionResponse struct {
	ID            string              `json:"id"`
	Canvas        editor.CanvasPreset `json:"canvas"`
	CurrentTime   float64             `json:"current_time"`
	CurrentFrame  int                 `json:"current_frame"`
	TotalDuration float64             `json:"total_duration"`
	FPS           int                 `json:"fps"`
	Playing       bool                `json:"playing"`
	Zoom          float64             `json:"zoom"`
	CreatedAt     string              `json:"created_at"`
}

type SessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

type PresetsResponse struct {
	Presets []editor.CanvasPreset `json:"presets"`
}

type AssetsResponse struct {
	Assets []asset.Asset `json:"assets"`
}

type ClipsResponse struct {
	Clips []clip.Clip `json:"clips"`
}

type CaptionsResponse struct {
	Captions []caption.Caption `json:"captions"`
}

type ExportStatusResponse struct {
	Report   export.Report `json:"report"`
	Filename string        `json:"filename,omitempty"`
}

type ProjectsResponse struct {
	Projects []project.Summary `json:"projects"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func SessionToResponse(s *editor.Session) SessionResponse {
	st := s.Clock.State()
	return SessionResponse{
		ID:            s.ID,
		Canvas:        s.Canvas(),
		CurrentTime:   st.CurrentTime,
		CurrentFrame:  s.Clock.CurrentFrame(),
		TotalDuration: st.TotalDuration,
		FPS:           st.FPS,
		Playing:       st.Playing,
		Zoom:          s.Controller.Zoom(),
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
}
