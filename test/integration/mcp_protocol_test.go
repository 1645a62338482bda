package integration_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/marev/cutline/internal/mcp"
)

// protocolEnv wires the full tool surface to an in-memory MCP client,
// covering the same path a stdio or streamable HTTP client takes.
type protocolEnv struct {
	*testEnv
	client *sdkmcp.ClientSession
}

func newProtocolEnv(t *testing.T) *protocolEnv {
	t.Helper()
	env := newTestEnv(t)

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Editor:   env.manager,
			Projects: env.projectSvc,
		},
		TransportMode: "stdio",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientSession.Close() })

	return &protocolEnv{testEnv: env, client: clientSession}
}

func (e *protocolEnv) call(t *testing.T, name string, args map[string]any, out any) {
	t.Helper()
	result, err := e.client.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "tools/call %s failed", name)
	require.False(t, result.IsError, "%s returned error: %v", name, result.Content)
	if out == nil {
		return
	}
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "%s should return text content", name)
	require.NoError(t, json.Unmarshal([]byte(text.Text), out))
}

func TestProtocol_ListTools(t *testing.T) {
	env := newProtocolEnv(t)

	tools, err := env.client.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"create_session",
		"list_canvas_presets",
		"import_asset",
		"add_clip",
		"add_caption",
		"seek",
		"set_zoom",
		"render_frame",
		"start_export",
		"export_status",
		"save_project",
		"load_project",
	} {
		require.True(t, names[want], "missing expected tool: %s", want)
	}
}

func TestProtocol_EditAndPersistViaTools(t *testing.T) {
	env := newProtocolEnv(t)

	var sess struct {
		SessionID string `json:"session_id"`
		Canvas    struct {
			Name  string `json:"name"`
			Width int    `json:"width"`
		} `json:"canvas"`
		Timeline struct {
			TotalDuration float64 `json:"total_duration"`
			FPS           int     `json:"fps"`
		} `json:"timeline"`
	}
	env.call(t, "create_session", map[string]any{"canvas": "9:16"}, &sess)
	require.NotEmpty(t, sess.SessionID)
	require.Equal(t, 1080, sess.Canvas.Width)
	require.Equal(t, 30, sess.Timeline.FPS)

	var imported struct {
		Asset struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"asset"`
	}
	env.call(t, "import_asset", map[string]any{
		"session_id": sess.SessionID,
		"name":       "intro.mp4",
		"media_type": "video/mp4",
		"source_url": "blob:intro",
	}, &imported)
	require.Equal(t, "video", imported.Asset.Kind)

	var placed struct {
		Clip struct {
			ID        string  `json:"id"`
			StartTime float64 `json:"start_time"`
			Duration  float64 `json:"duration"`
		} `json:"clip"`
	}
	env.call(t, "add_clip", map[string]any{
		"session_id": sess.SessionID,
		"asset_id":   imported.Asset.ID,
		"start_time": 2.0,
	}, &placed)
	require.Equal(t, 2.0, placed.Clip.StartTime)
	require.Equal(t, 5.0, placed.Clip.Duration)

	env.call(t, "add_caption", map[string]any{
		"session_id": sess.SessionID,
		"text":       "Hello",
	}, nil)

	var rendered struct {
		Composition struct {
			Frame  int `json:"frame"`
			Visual []struct {
				ClipID string `json:"clip_id"`
			} `json:"visual"`
		} `json:"composition"`
	}
	env.call(t, "render_frame", map[string]any{
		"session_id": sess.SessionID,
		"frame":      90,
	}, &rendered)
	require.Len(t, rendered.Composition.Visual, 1)
	require.Equal(t, placed.Clip.ID, rendered.Composition.Visual[0].ClipID)

	var saved struct {
		Project struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"project"`
	}
	env.call(t, "save_project", map[string]any{
		"session_id": sess.SessionID,
		"name":       "Tool Flow",
	}, &saved)
	require.NotEmpty(t, saved.Project.ID)
	require.Equal(t, "Tool Flow", saved.Project.Name)

	var loaded struct {
		SessionID string `json:"session_id"`
	}
	env.call(t, "load_project", map[string]any{
		"project_id": saved.Project.ID,
	}, &loaded)
	require.NotEmpty(t, loaded.SessionID)
	require.NotEqual(t, sess.SessionID, loaded.SessionID)

	env.call(t, "render_frame", map[string]any{
		"session_id": loaded.SessionID,
		"frame":      90,
	}, &rendered)
	require.Len(t, rendered.Composition.Visual, 1)
}

func TestProtocol_UnknownSessionSurfacesCode(t *testing.T) {
	env := newProtocolEnv(t)

	result, err := env.client.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "get_session",
		Arguments: map[string]any{"session_id": "nope"},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.Contains(t, text.Text, "SESSION_NOT_FOUND")
}
