package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/project"
	"github.com/marev/cutline/internal/editor"
	"github.com/stretchr/testify/require"
)

type fakeProjects struct {
	projects map[string]*project.Project
}

func (f *fakeProjects) Get(ctx context.Context, id string) (*project.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, project.ErrProjectNotFound
	}
	return p, nil
}

func (f *fakeProjects) List(ctx context.Context) ([]project.Summary, error) {
	var out []project.Summary
	for _, p := range f.projects {
		out = append(out, project.Summary{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

func testConfig(t *testing.T) (ServerConfig, *editor.Manager) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := editor.NewManager(nil, logger)
	cfg := ServerConfig{
		Editor:    manager,
		Projects:  &fakeProjects{projects: map[string]*project.Project{}},
		Logger:    logger,
		StartTime: time.Now(),
	}
	return cfg, manager
}

func doRequest(t *testing.T, cfg ServerConfig, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	NewRouter(cfg).ServeHTTP(rr, req)
	return rr
}

func TestHealthHandler(t *testing.T) {
	cfg, _ := testConfig(t)
	rr := doRequest(t, cfg, "/health")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)
	require.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestPresetsHandler(t *testing.T) {
	cfg, _ := testConfig(t)
	rr := doRequest(t, cfg, "/presets")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp PresetsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Presets, 5)
}

func TestGetSessionHandler(t *testing.T) {
	cfg, manager := testConfig(t)
	s := manager.Create("9:16")
	t.Cleanup(s.Close)

	rr := doRequest(t, cfg, "/sessions/"+s.ID)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, s.ID, resp.ID)
	require.Equal(t, 1080, resp.Canvas.Width)
	require.Equal(t, 30, resp.FPS)
}

func TestGetSessionHandler_NotFound(t *testing.T) {
	cfg, _ := testConfig(t)
	rr := doRequest(t, cfg, "/sessions/ghost")
	require.Equal(t, http.StatusNotFound, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "SESSION_NOT_FOUND", resp.Code)
}

func TestRenderHandler(t *testing.T) {
	cfg, manager := testConfig(t)
	s := manager.Create("16:9")
	t.Cleanup(s.Close)

	a, err := s.Assets.Import(context.Background(), asset.ImportRequest{
		Name: "v", MediaType: "video/mp4", SourceURL: "blob:v",
	})
	require.NoError(t, err)
	_, err = s.PlaceClip(a.ID, 0, 2)
	require.NoError(t, err)

	rr := doRequest(t, cfg, "/sessions/"+s.ID+"/frames/90")
	require.Equal(t, http.StatusOK, rr.Code)

	var comp struct {
		Frame  int `json:"frame"`
		Visual []struct {
			ClipID string `json:"clip_id"`
		} `json:"visual"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &comp))
	require.Equal(t, 90, comp.Frame)
	require.Len(t, comp.Visual, 1)

	// Frame 30 is before the clip starts.
	rr = doRequest(t, cfg, "/sessions/"+s.ID+"/frames/30")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &comp))
	require.Empty(t, comp.Visual)
}

func TestRenderHandler_BadFrame(t *testing.T) {
	cfg, manager := testConfig(t)
	s := manager.Create("16:9")
	t.Cleanup(s.Close)

	rr := doRequest(t, cfg, "/sessions/"+s.ID+"/frames/notanumber")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExportStatusHandler_Idle(t *testing.T) {
	cfg, manager := testConfig(t)
	s := manager.Create("16:9")
	t.Cleanup(s.Close)

	rr := doRequest(t, cfg, "/sessions/"+s.ID+"/export")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp ExportStatusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "idle", string(resp.Report.Status))
	require.Empty(t, resp.Filename)
}

func TestExportArtifactHandler_NoArtifact(t *testing.T) {
	cfg, manager := testConfig(t)
	s := manager.Create("16:9")
	t.Cleanup(s.Close)

	rr := doRequest(t, cfg, "/sessions/"+s.ID+"/export/artifact")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProjectHandlers(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Projects = &fakeProjects{projects: map[string]*project.Project{
		"p1": {ID: "p1", Name: "Saved Cut"},
	}}

	rr := doRequest(t, cfg, "/projects/")
	require.Equal(t, http.StatusOK, rr.Code)
	var list ProjectsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Projects, 1)

	rr = doRequest(t, cfg, "/projects/p1")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, cfg, "/projects/ghost")
	require.Equal(t, http.StatusNotFound, rr.Code)
}
