package editor_test

import (
	"context"
	"testing"

	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/clip"
	"github.com/marev/cutline/internal/editor"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *editor.Session {
	t.Helper()
	s := editor.NewSession(nil, editor.PresetByName("16:9"), nil)
	t.Cleanup(s.Close)
	return s
}

func importAsset(t *testing.T, s *editor.Session, mediaType string) *asset.Asset {
	t.Helper()
	a, err := s.Assets.Import(context.Background(), asset.ImportRequest{
		Name:      "media",
		MediaType: mediaType,
		SourceURL: "blob:media",
	})
	require.NoError(t, err)
	return a
}

func TestSession_PlaceClip_LaneFollowsAssetKind(t *testing.T) {
	s := newSession(t)
	video := importAsset(t, s, "video/mp4")
	audio := importAsset(t, s, "audio/mpeg")

	vc, err := s.PlaceClip(video.ID, 1, 0)
	require.NoError(t, err)
	require.Equal(t, clip.LaneVideo, vc.Lane)

	ac, err := s.PlaceClip(audio.ID, 0, 0)
	require.NoError(t, err)
	require.Equal(t, clip.LaneAudio, ac.Lane)
}

func TestSession_PlaceClip_GeometryDefaultsToCanvas(t *testing.T) {
	s := newSession(t)
	a := importAsset(t, s, "image/png")

	c, err := s.PlaceClip(a.ID, 0, 0)
	require.NoError(t, err)
	require.Equal(t, clip.Geometry{Width: 1920, Height: 1080}, c.Geometry)
	require.Equal(t, 100, c.Volume)
}

func TestSession_PlaceClip_UnknownAsset(t *testing.T) {
	s := newSession(t)
	_, err := s.PlaceClip("missing", 0, 0)
	require.ErrorIs(t, err, asset.ErrAssetNotFound)
}

func TestSession_AppendClip_AtPlayhead(t *testing.T) {
	s := newSession(t)
	a := importAsset(t, s, "video/mp4")
	s.Clock.Seek(7)

	c, err := s.AppendClip(a.ID)
	require.NoError(t, err)
	require.Equal(t, 7.0, c.StartTime)
}

func TestSession_TimelineGrowsWithClips(t *testing.T) {
	s := newSession(t)
	a := importAsset(t, s, "video/mp4")

	// 28s start + 5s fallback duration pushes past the default 30s.
	_, err := s.PlaceClip(a.ID, 0, 28)
	require.NoError(t, err)
	require.Equal(t, 33.0, s.Clock.State().TotalDuration)

	// A clip inside existing bounds leaves the total unchanged.
	_, err = s.PlaceClip(a.ID, 0, 2)
	require.NoError(t, err)
	require.Equal(t, 33.0, s.Clock.State().TotalDuration)
}

func TestSession_AssetRemovalCascadesToClips(t *testing.T) {
	s := newSession(t)
	a := importAsset(t, s, "video/mp4")
	c, err := s.PlaceClip(a.ID, 0, 0)
	require.NoError(t, err)

	require.NoError(t, s.Assets.Remove(a.ID))
	_, err = s.Clips.Get(c.ID)
	require.ErrorIs(t, err, clip.ErrClipNotFound)
}

func TestSession_RenderCurrent_UsesPlayhead(t *testing.T) {
	s := newSession(t)
	a := importAsset(t, s, "video/mp4")
	_, err := s.PlaceClip(a.ID, 0, 2)
	require.NoError(t, err)

	s.Clock.Seek(1)
	require.Empty(t, s.RenderCurrent().Visual)

	s.Clock.Seek(3)
	require.Len(t, s.RenderCurrent().Visual, 1)
}

func TestSession_AddCaption_AtPlayhead(t *testing.T) {
	s := newSession(t)
	s.Clock.Seek(5)
	c := s.AddCaption("hello")
	require.Equal(t, 5.0, c.StartTime)
	require.Equal(t, 3.0, c.Duration)
}

func TestManager_Lifecycle(t *testing.T) {
	m := editor.NewManager(nil, nil)

	s := m.Create("9:16")
	require.Equal(t, 1080, s.Canvas().Width)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	require.Same(t, s, got)
	require.Len(t, m.List(), 1)

	require.NoError(t, m.Close(s.ID))
	_, err = m.Get(s.ID)
	require.ErrorIs(t, err, editor.ErrSessionNotFound)
	require.ErrorIs(t, m.Close(s.ID), editor.ErrSessionNotFound)
}

func TestPresetByName_FallsBackToDefault(t *testing.T) {
	p := editor.PresetByName("nonsense")
	require.Equal(t, editor.DefaultPreset, p.Name)
}
