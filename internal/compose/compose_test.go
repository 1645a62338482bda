package compose_test

import (
	"testing"

	"github.com/marev/cutline/internal/compose"
	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/caption"
	"github.com/marev/cutline/internal/domain/clip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var canvas = compose.Canvas{Width: 1920, Height: 1080}

func videoSnapshot(clips ...clip.Clip) compose.Snapshot {
	assets := make(map[string]asset.Asset)
	for _, c := range clips {
		assets[c.AssetID] = asset.Asset{ID: c.AssetID, Kind: asset.KindVideo, SourceURL: "blob:" + c.AssetID}
	}
	return compose.Snapshot{Assets: assets, VideoClips: clips, FPS: 30}
}

func TestRender_FrameWindowSelection(t *testing.T) {
	c := clip.Clip{ID: "c1", AssetID: "a1", StartTime: 2, Duration: 3, Volume: 100}
	snap := videoSnapshot(c)

	// startTime=2s, duration=3s at 30fps covers frames [60, 149].
	for _, frame := range []int{60, 100, 149} {
		comp := compose.Render(snap, frame, canvas)
		require.Len(t, comp.Visual, 1, "frame %d should select the clip", frame)
	}
	for _, frame := range []int{59, 150} {
		comp := compose.Render(snap, frame, canvas)
		require.Empty(t, comp.Visual, "frame %d should not select the clip", frame)
	}
}

func TestRender_LayerOrderByTrack(t *testing.T) {
	front := clip.Clip{ID: "front", AssetID: "a1", Track: 2, StartTime: 0, Duration: 10, Volume: 100}
	back := clip.Clip{ID: "back", AssetID: "a2", Track: 0, StartTime: 0, Duration: 10, Volume: 100}

	// Insertion order front-first; render order must still be back-to-front.
	comp := compose.Render(videoSnapshot(front, back), 30, canvas)
	require.Len(t, comp.Visual, 2)
	assert.Equal(t, "back", comp.Visual[0].ClipID)
	assert.Equal(t, "front", comp.Visual[1].ClipID)
	assert.Equal(t, 0, comp.Visual[0].ZIndex)
	assert.Equal(t, 2, comp.Visual[1].ZIndex)
}

func TestRender_SameTrackKeepsInsertionOrder(t *testing.T) {
	first := clip.Clip{ID: "first", AssetID: "a1", Track: 1, StartTime: 0, Duration: 10}
	second := clip.Clip{ID: "second", AssetID: "a2", Track: 1, StartTime: 0, Duration: 10}

	comp := compose.Render(videoSnapshot(first, second), 0, canvas)
	require.Len(t, comp.Visual, 2)
	assert.Equal(t, "first", comp.Visual[0].ClipID)
	assert.Equal(t, "second", comp.Visual[1].ClipID)
}

func TestRender_MissingAssetSkipsClip(t *testing.T) {
	known := clip.Clip{ID: "known", AssetID: "a1", StartTime: 0, Duration: 10}
	dangling := clip.Clip{ID: "dangling", AssetID: "gone", StartTime: 0, Duration: 10}

	snap := videoSnapshot(known)
	snap.VideoClips = append(snap.VideoClips, dangling)

	comp := compose.Render(snap, 0, canvas)
	require.Len(t, comp.Visual, 1)
	assert.Equal(t, "known", comp.Visual[0].ClipID)
}

func TestRender_MediaOffsetAndGain(t *testing.T) {
	c := clip.Clip{ID: "c1", AssetID: "a1", StartTime: 2, Duration: 10, Volume: 40}
	comp := compose.Render(videoSnapshot(c), 90, canvas) // t = 3s

	require.Len(t, comp.Visual, 1)
	assert.InDelta(t, 1.0, comp.Visual[0].MediaOffset, 1e-9)
	assert.InDelta(t, 0.4, comp.Visual[0].Gain, 1e-9)
	assert.Equal(t, "contain", comp.Visual[0].Fit)
}

func TestRender_AudioMixedNotStacked(t *testing.T) {
	snap := compose.Snapshot{
		FPS: 30,
		Assets: map[string]asset.Asset{
			"m1": {ID: "m1", Kind: asset.KindAudio, SourceURL: "blob:m1"},
			"m2": {ID: "m2", Kind: asset.KindAudio, SourceURL: "blob:m2"},
		},
		AudioClips: []clip.Clip{
			{ID: "c1", AssetID: "m1", Lane: clip.LaneAudio, Track: 0, StartTime: 0, Duration: 10, Volume: 100},
			{ID: "c2", AssetID: "m2", Lane: clip.LaneAudio, Track: 1, StartTime: 0, Duration: 10, Volume: 50},
		},
	}

	comp := compose.Render(snap, 0, canvas)
	require.Len(t, comp.Audio, 2)
	assert.InDelta(t, 1.0, comp.Audio[0].Gain, 1e-9)
	assert.InDelta(t, 0.5, comp.Audio[1].Gain, 1e-9)
}

func TestRender_CaptionWindowStrict(t *testing.T) {
	snap := compose.Snapshot{
		FPS: 30,
		Captions: []caption.Caption{
			{ID: "cap1", Text: "hello", StartTime: 1, Duration: 2, Style: caption.DefaultStyle()},
		},
	}

	require.Len(t, compose.Render(snap, 30, canvas).Captions, 1)
	require.Len(t, compose.Render(snap, 89, canvas).Captions, 1)
	require.Empty(t, compose.Render(snap, 29, canvas).Captions)
	require.Empty(t, compose.Render(snap, 90, canvas).Captions)
}

func TestRender_SimultaneousCaptionsInListOrder(t *testing.T) {
	snap := compose.Snapshot{
		FPS: 30,
		Captions: []caption.Caption{
			{ID: "cap1", Text: "one", StartTime: 0, Duration: 5},
			{ID: "cap2", Text: "two", StartTime: 0, Duration: 5},
		},
	}
	comp := compose.Render(snap, 10, canvas)
	require.Len(t, comp.Captions, 2)
	assert.Equal(t, "one", comp.Captions[0].Text)
	assert.Equal(t, "two", comp.Captions[1].Text)
}

func TestRender_Deterministic(t *testing.T) {
	snap := compose.Snapshot{
		FPS: 30,
		Assets: map[string]asset.Asset{
			"a1": {ID: "a1", Kind: asset.KindVideo, SourceURL: "blob:a1"},
			"m1": {ID: "m1", Kind: asset.KindAudio, SourceURL: "blob:m1"},
		},
		VideoClips: []clip.Clip{
			{ID: "c1", AssetID: "a1", Track: 1, StartTime: 0, Duration: 10, Volume: 80,
				Geometry: clip.Geometry{Width: 1920, Height: 1080}},
		},
		AudioClips: []clip.Clip{
			{ID: "c2", AssetID: "m1", Lane: clip.LaneAudio, StartTime: 0, Duration: 10, Volume: 100},
		},
		Captions: []caption.Caption{
			{ID: "cap1", Text: "hi", StartTime: 0, Duration: 10, Style: caption.DefaultStyle()},
		},
	}

	first := compose.Render(snap, 42, canvas)
	second := compose.Render(snap, 42, canvas)
	require.Equal(t, first, second)
}

func TestContainRect(t *testing.T) {
	box := clip.Geometry{X: 0, Y: 0, Width: 1920, Height: 1080}

	// Wide content letterboxes vertically.
	fit := compose.ContainRect(3840, 1080, box)
	assert.Equal(t, 1920, fit.Width)
	assert.Equal(t, 540, fit.Height)
	assert.Equal(t, 270, fit.Y)

	// Tall content pillarboxes horizontally.
	fit = compose.ContainRect(1080, 1920, box)
	assert.Equal(t, 1080, fit.Height)
	assert.Equal(t, 608, fit.Width) // 1080 * (1080/1920) rounded
	assert.Equal(t, (1920-608)/2, fit.X)

	// Unknown content size fills the box.
	assert.Equal(t, box, compose.ContainRect(0, 0, box))
}
