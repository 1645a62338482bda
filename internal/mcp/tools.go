package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/caption"
	"github.com/marev/cutline/internal/domain/clip"
	"github.com/marev/cutline/internal/domain/project"
	"github.com/marev/cutline/internal/editor"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Save(ctx context.Context, proj *project.Project) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Summary, error)
	Delete(ctx context.Context, id string) error
}

// Services contains the domain surface exposed over MCP.
type Services struct {
	Editor   *editor.Manager
	Projects ProjectService
}

// session resolves the target editor session: the explicit session_id
// param wins, then the transport session from middleware.
func (s Services) session(ctx context.Context, id string) (*editor.Session, error) {
	if id == "" {
		id = getSessionID(ctx)
	}
	sess, err := s.Editor.Get(id)
	if err != nil {
		return nil, toolError(err)
	}
	return sess, nil
}

func sessionState(s *editor.Session) SessionResponse {
	st := s.Clock.State()
	return SessionResponse{
		SessionID: s.ID,
		Canvas:    s.Canvas(),
		Timeline: TimelineState{
			CurrentTime:   st.CurrentTime,
			CurrentFrame:  s.Clock.CurrentFrame(),
			TotalDuration: st.TotalDuration,
			FPS:           st.FPS,
			Playing:       st.Playing,
		},
		Zoom:      s.Controller.Zoom(),
		Assets:    len(s.Assets.List()),
		Clips:     len(s.Clips.List()),
		Captions:  len(s.Captions.All()),
		CreatedAt: s.CreatedAt,
	}
}

func summarize(p *project.Project) project.Summary {
	return project.Summary{
		ID:            p.ID,
		Name:          p.Name,
		CanvasPreset:  p.CanvasPreset,
		TotalDuration: p.TotalDuration,
		AssetCount:    len(p.Assets),
		ClipCount:     len(p.Clips),
		CaptionCount:  len(p.Captions),
		CreatedAt:     p.CreatedAt,
		ModifiedAt:    p.ModifiedAt,
	}
}

// registerTools wires every editor operation as a typed MCP tool.
func registerTools(server *sdkmcp.Server, svc Services) {
	// Sessions
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_session",
		Description: "Open a new editing session on a canvas preset",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params CreateSessionParams) (*sdkmcp.CallToolResult, SessionResponse, error) {
		s := svc.Editor.Create(params.Canvas)
		return nil, sessionState(s), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_session",
		Description: "Get the current state of an editing session",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SessionParams) (*sdkmcp.CallToolResult, SessionResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, SessionResponse{}, err
		}
		return nil, sessionState(s), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_sessions",
		Description: "List all open editing sessions",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params struct{}) (*sdkmcp.CallToolResult, ListSessionsResponse, error) {
		var resp ListSessionsResponse
		for _, s := range svc.Editor.List() {
			resp.Sessions = append(resp.Sessions, sessionState(s))
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_session",
		Description: "Close an editing session, discarding unsaved changes",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SessionParams) (*sdkmcp.CallToolResult, DeletedResponse, error) {
		id := params.SessionID
		if id == "" {
			id = getSessionID(ctx)
		}
		if err := svc.Editor.Close(id); err != nil {
			return nil, DeletedResponse{}, toolError(err)
		}
		return nil, DeletedResponse{Deleted: id}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_canvas_presets",
		Description: "List the selectable output canvas presets",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params struct{}) (*sdkmcp.CallToolResult, ListCanvasPresetsResponse, error) {
		return nil, ListCanvasPresetsResponse{Presets: editor.CanvasPresets}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_canvas",
		Description: "Switch the session's output canvas preset",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SetCanvasParams) (*sdkmcp.CallToolResult, SessionResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, SessionResponse{}, err
		}
		s.SetCanvas(editor.PresetByName(params.Canvas))
		return nil, sessionState(s), nil
	})

	// Assets
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_asset",
		Description: "Import a media source into the session's asset library",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ImportAssetParams) (*sdkmcp.CallToolResult, AssetResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, AssetResponse{}, err
		}
		a, err := s.Assets.Import(ctx, importRequest(params))
		if err != nil {
			return nil, AssetResponse{}, toolError(err)
		}
		return nil, AssetResponse{Asset: *a}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_assets",
		Description: "List the session's imported assets in import order",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SessionParams) (*sdkmcp.CallToolResult, ListAssetsResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, ListAssetsResponse{}, err
		}
		return nil, ListAssetsResponse{Assets: s.Assets.List()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_asset",
		Description: "Remove an asset and every clip that references it",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params AssetParams) (*sdkmcp.CallToolResult, RemoveAssetResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, RemoveAssetResponse{}, err
		}
		before := len(s.Clips.List())
		if err := s.Assets.Remove(params.AssetID); err != nil {
			return nil, RemoveAssetResponse{}, toolError(err)
		}
		return nil, RemoveAssetResponse{
			Removed:      params.AssetID,
			ClipsDeleted: before - len(s.Clips.List()),
		}, nil
	})

	// Clips
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_clip",
		Description: "Place an asset on the timeline as a clip",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params AddClipParams) (*sdkmcp.CallToolResult, ClipResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, ClipResponse{}, err
		}
		var c *clip.Clip
		var addErr error
		if params.AtPlayhead {
			c, addErr = s.AppendClip(params.AssetID)
		} else {
			c, addErr = s.PlaceClip(params.AssetID, params.Track, params.StartTime)
		}
		if addErr != nil {
			return nil, ClipResponse{}, toolError(addErr)
		}
		return nil, ClipResponse{Clip: *c}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_clips",
		Description: "List the session's clips in placement order",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SessionParams) (*sdkmcp.CallToolResult, ListClipsResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, ListClipsResponse{}, err
		}
		return nil, ListClipsResponse{Clips: s.Clips.List()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_clip",
		Description: "Change a clip's start time (clamped to the timeline start)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params MoveClipParams) (*sdkmcp.CallToolResult, ClipResponse, error) {
		return clipMutation(ctx, svc, params.SessionID, params.ClipID, func(s *editor.Session) error {
			return s.Clips.Move(params.ClipID, params.StartTime)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_clip_track",
		Description: "Move a clip to another track within its lane",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SetClipTrackParams) (*sdkmcp.CallToolResult, ClipResponse, error) {
		return clipMutation(ctx, svc, params.SessionID, params.ClipID, func(s *editor.Session) error {
			return s.Clips.SetTrack(params.ClipID, params.Track)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_clip_geometry",
		Description: "Set a clip's canvas placement in pixels",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SetClipGeometryParams) (*sdkmcp.CallToolResult, ClipResponse, error) {
		return clipMutation(ctx, svc, params.SessionID, params.ClipID, func(s *editor.Session) error {
			return s.Clips.SetGeometry(params.ClipID, clip.Geometry{
				X: params.X, Y: params.Y, Width: params.Width, Height: params.Height,
			})
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_clip_volume",
		Description: "Set a clip's playback volume percent",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SetClipVolumeParams) (*sdkmcp.CallToolResult, ClipResponse, error) {
		return clipMutation(ctx, svc, params.SessionID, params.ClipID, func(s *editor.Session) error {
			return s.Clips.SetVolume(params.ClipID, params.Volume)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_clip_duration",
		Description: "Set a clip's duration in seconds",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SetClipDurationParams) (*sdkmcp.CallToolResult, ClipResponse, error) {
		return clipMutation(ctx, svc, params.SessionID, params.ClipID, func(s *editor.Session) error {
			return s.Clips.SetDuration(params.ClipID, params.Duration)
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_clip",
		Description: "Remove a clip from the timeline",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ClipParams) (*sdkmcp.CallToolResult, DeletedResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, DeletedResponse{}, err
		}
		s.Clips.Delete(params.ClipID)
		return nil, DeletedResponse{Deleted: params.ClipID}, nil
	})

	// Captions
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_caption",
		Description: "Add a caption overlay at a time or the playhead",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params AddCaptionParams) (*sdkmcp.CallToolResult, CaptionResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, CaptionResponse{}, err
		}
		var c *caption.Caption
		if params.StartTime != nil {
			c = s.Captions.Add(params.Text, *params.StartTime)
		} else {
			c = s.AddCaption(params.Text)
		}
		return nil, CaptionResponse{Caption: *c}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_captions",
		Description: "List the session's captions in creation order",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SessionParams) (*sdkmcp.CallToolResult, ListCaptionsResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, ListCaptionsResponse{}, err
		}
		return nil, ListCaptionsResponse{Captions: s.Captions.All()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_caption",
		Description: "Update a caption's text, timing, or style",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params UpdateCaptionParams) (*sdkmcp.CallToolResult, CaptionResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, CaptionResponse{}, err
		}
		if err := updateCaption(s, params); err != nil {
			return nil, CaptionResponse{}, toolError(err)
		}
		c, err := s.Captions.Get(params.CaptionID)
		if err != nil {
			return nil, CaptionResponse{}, toolError(err)
		}
		return nil, CaptionResponse{Caption: *c}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_caption",
		Description: "Remove a caption overlay",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params CaptionParams) (*sdkmcp.CallToolResult, DeletedResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, DeletedResponse{}, err
		}
		s.Captions.Delete(params.CaptionID)
		return nil, DeletedResponse{Deleted: params.CaptionID}, nil
	})

	// Playback
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "seek",
		Description: "Move the playhead to a time in seconds",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SeekParams) (*sdkmcp.CallToolResult, SessionResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, SessionResponse{}, err
		}
		s.Clock.Seek(params.Time)
		return nil, sessionState(s), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "play",
		Description: "Start timeline playback",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SessionParams) (*sdkmcp.CallToolResult, SessionResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, SessionResponse{}, err
		}
		s.Clock.Play(context.WithoutCancel(ctx))
		return nil, sessionState(s), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "pause",
		Description: "Pause timeline playback",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SessionParams) (*sdkmcp.CallToolResult, SessionResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, SessionResponse{}, err
		}
		s.Clock.Pause()
		return nil, sessionState(s), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_zoom",
		Description: "Set the timeline zoom factor",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SetZoomParams) (*sdkmcp.CallToolResult, ZoomResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, ZoomResponse{}, err
		}
		zoom := s.Controller.SetZoom(params.Zoom)
		return nil, ZoomResponse{Zoom: zoom, PixelsPerSecond: s.Controller.PixelsPerSecond()}, nil
	})

	// Rendering
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "render_frame",
		Description: "Compose the layer stack for a frame (or the playhead)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params RenderFrameParams) (*sdkmcp.CallToolResult, RenderFrameResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, RenderFrameResponse{}, err
		}
		comp := s.RenderCurrent()
		if params.Frame != nil {
			comp = s.RenderFrame(*params.Frame)
		}
		return nil, RenderFrameResponse{Composition: comp}, nil
	})

	// Export
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_export",
		Description: "Start the export pipeline for the session's content",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SessionParams) (*sdkmcp.CallToolResult, ExportStatusResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, ExportStatusResponse{}, err
		}
		if err := s.StartExport(context.WithoutCancel(ctx)); err != nil {
			return nil, ExportStatusResponse{}, toolError(err)
		}
		return nil, exportStatus(s), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_status",
		Description: "Poll export progress and status",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SessionParams) (*sdkmcp.CallToolResult, ExportStatusResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, ExportStatusResponse{}, err
		}
		return nil, exportStatus(s), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "cancel_export",
		Description: "Cancel a running export and discard any artifact",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SessionParams) (*sdkmcp.CallToolResult, ExportStatusResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, ExportStatusResponse{}, err
		}
		s.Export.Cancel()
		return nil, exportStatus(s), nil
	})

	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_project",
		Description: "Save the session as a project document",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SaveProjectParams) (*sdkmcp.CallToolResult, SaveProjectResponse, error) {
		s, err := svc.session(ctx, params.SessionID)
		if err != nil {
			return nil, SaveProjectResponse{}, err
		}
		saved, err := svc.Projects.Save(ctx, s.Document(params.ProjectID, params.Name))
		if err != nil {
			return nil, SaveProjectResponse{}, toolError(err)
		}
		return nil, SaveProjectResponse{Project: summarize(saved)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "load_project",
		Description: "Open a saved project in a new editing session",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ProjectParams) (*sdkmcp.CallToolResult, LoadProjectResponse, error) {
		proj, err := svc.Projects.Get(ctx, params.ProjectID)
		if err != nil {
			return nil, LoadProjectResponse{}, toolError(err)
		}
		s := svc.Editor.OpenProject(proj)
		return nil, LoadProjectResponse{SessionID: s.ID, Project: summarize(proj)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List saved projects, most recently modified first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params struct{}) (*sdkmcp.CallToolResult, ListProjectsResponse, error) {
		projects, err := svc.Projects.List(ctx)
		if err != nil {
			return nil, ListProjectsResponse{}, toolError(err)
		}
		return nil, ListProjectsResponse{Projects: projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a saved project document",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ProjectParams) (*sdkmcp.CallToolResult, DeletedResponse, error) {
		if err := svc.Projects.Delete(ctx, params.ProjectID); err != nil {
			return nil, DeletedResponse{}, toolError(err)
		}
		return nil, DeletedResponse{Deleted: params.ProjectID}, nil
	})
}

func importRequest(params ImportAssetParams) asset.ImportRequest {
	return asset.ImportRequest{
		Name:      params.Name,
		MediaType: params.MediaType,
		SourceURL: params.SourceURL,
		Duration:  params.Duration,
	}
}

func clipMutation(ctx context.Context, svc Services, sessionID, clipID string, fn func(*editor.Session) error) (*sdkmcp.CallToolResult, ClipResponse, error) {
	s, err := svc.session(ctx, sessionID)
	if err != nil {
		return nil, ClipResponse{}, err
	}
	if err := fn(s); err != nil {
		return nil, ClipResponse{}, toolError(err)
	}
	c, err := s.Clips.Get(clipID)
	if err != nil {
		return nil, ClipResponse{}, toolError(err)
	}
	return nil, ClipResponse{Clip: *c}, nil
}

func updateCaption(s *editor.Session, params UpdateCaptionParams) error {
	if params.Text != nil {
		if err := s.Captions.SetText(params.CaptionID, *params.Text); err != nil {
			return err
		}
	}
	if params.StartTime != nil {
		if err := s.Captions.Move(params.CaptionID, *params.StartTime); err != nil {
			return err
		}
	}
	if params.Duration != nil {
		if err := s.Captions.SetDuration(params.CaptionID, *params.Duration); err != nil {
			return err
		}
	}
	if params.FontSize != nil || params.Color != nil || params.Background != nil {
		current, err := s.Captions.Get(params.CaptionID)
		if err != nil {
			return err
		}
		style := current.Style
		if params.FontSize != nil {
			style.FontSize = *params.FontSize
		}
		if params.Color != nil {
			style.Color = *params.Color
		}
		if params.Background != nil {
			style.Background = *params.Background
		}
		if err := s.Captions.SetStyle(params.CaptionID, style); err != nil {
			return err
		}
	}
	// A bare update still has to report unknown IDs.
	_, err := s.Captions.Get(params.CaptionID)
	return err
}

func exportStatus(s *editor.Session) ExportStatusResponse {
	resp := ExportStatusResponse{Report: s.Export.Progress()}
	if artifact, ok := s.Export.Artifact(); ok {
		resp.Filename = artifact.Filename
	}
	return resp
}
