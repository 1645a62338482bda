package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marev/cutline/internal/domain/project"
	"github.com/marev/cutline/internal/editor"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))
	r.Get("/presets", presetsHandler(cfg))

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", listSessionsHandler(cfg))
		r.Get("/{id}", getSessionHandler(cfg))
		r.Get("/{id}/assets", listAssetsHandler(cfg))
		r.Get("/{id}/clips", listClipsHandler(cfg))
		r.Get("/{id}/captions", listCaptionsHandler(cfg))
		r.Get("/{id}/frame", renderHandler(cfg))
		r.Get("/{id}/frames/{frame}", renderHandler(cfg))
		r.Get("/{id}/export", exportStatusHandler(cfg))
		r.Get("/{id}/export/artifact", exportArtifactHandler(cfg))
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", listProjectsHandler(cfg))
		r.Get("/{id}", getProjectHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: "0.1.0",
			UptimeS: int64(time.Since(cfg.StartTime).Seconds()),
		})
	}
}

func presetsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, PresetsResponse{Presets: editor.CanvasPresets})
	}
}

func listSessionsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := SessionsResponse{Sessions: []SessionResponse{}}
		for _, s := range cfg.Editor.List() {
			resp.Sessions = append(resp.Sessions, SessionToResponse(s))
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// sessionFromRequest resolves the {id} route param to an open session,
// writing the error response itself when the session is missing.
func sessionFromRequest(cfg ServerConfig, w http.ResponseWriter, r *http.Request) (*editor.Session, bool) {
	s, err := cfg.Editor.Get(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "session not found", "SESSION_NOT_FOUND")
		return nil, false
	}
	return s, true
}

func getSessionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFromRequest(cfg, w, r)
		if !ok {
			return
		}
		WriteJSON(w, http.StatusOK, SessionToResponse(s))
	}
}

func listAssetsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFromRequest(cfg, w, r)
		if !ok {
			return
		}
		WriteJSON(w, http.StatusOK, AssetsResponse{Assets: s.Assets.List()})
	}
}

func listClipsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFromRequest(cfg, w, r)
		if !ok {
			return
		}
		WriteJSON(w, http.StatusOK, ClipsResponse{Clips: s.Clips.List()})
	}
}

func listCaptionsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFromRequest(cfg, w, r)
		if !ok {
			return
		}
		WriteJSON(w, http.StatusOK, CaptionsResponse{Captions: s.Captions.All()})
	}
}

func renderHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFromRequest(cfg, w, r)
		if !ok {
			return
		}

		frameParam := chi.URLParam(r, "frame")
		if frameParam == "" {
			WriteJSON(w, http.StatusOK, s.RenderCurrent())
			return
		}
		frame, err := strconv.Atoi(frameParam)
		if err != nil || frame < 0 {
			WriteError(w, http.StatusBadRequest, "frame must be a non-negative integer", "BAD_REQUEST")
			return
		}
		WriteJSON(w, http.StatusOK, s.RenderFrame(frame))
	}
}

func exportStatusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFromRequest(cfg, w, r)
		if !ok {
			return
		}
		resp := ExportStatusResponse{Report: s.Export.Progress()}
		if artifact, found := s.Export.Artifact(); found {
			resp.Filename = artifact.Filename
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func exportArtifactHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFromRequest(cfg, w, r)
		if !ok {
			return
		}
		artifact, found := s.Export.Artifact()
		if !found {
			WriteError(w, http.StatusNotFound, "no completed export", "NOT_FOUND")
			return
		}
		w.Header().Set("Content-Type", "video/mp4")
		w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(artifact.Data)
	}
}

func listProjectsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := cfg.Projects.List(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list projects", "INTERNAL_ERROR")
			return
		}
		if projects == nil {
			projects = []project.Summary{}
		}
		WriteJSON(w, http.StatusOK, ProjectsResponse{Projects: projects})
	}
}

func getProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		proj, err := cfg.Projects.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, project.ErrProjectNotFound) {
				WriteError(w, http.StatusNotFound, "project not found", "NOT_FOUND")
				return
			}
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, proj)
	}
}
