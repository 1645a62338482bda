// Package compose derives the per-frame layer stack of a composition.
// Render is a pure function: identical snapshots and frame index yield
// deep-equal output, with no clock reads or other hidden inputs.
package compose

import (
	"math"
	"sort"

	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/domain/clip"
)

// Render computes the visible and audible layers at a frame.
//
// Video-lane clips are selected by frame window, sorted ascending by
// track (lower track renders first, furthest back) with insertion
// order breaking ties, then emitted with their placement and media
// offset. Audio-lane clips become gain contributions. Captions render
// above everything in list order. Clips referencing a missing asset
// are skipped rather than failing the frame.
func Render(snap Snapshot, frame int, canvas Canvas) Composition {
	fps := snap.FPS
	if fps <= 0 {
		fps = 30
	}
	now := float64(frame) / float64(fps)

	comp := Composition{Frame: frame, Canvas: canvas}

	selected := make([]clip.Clip, 0, len(snap.VideoClips))
	for _, c := range snap.VideoClips {
		if containsFrame(c, frame, fps) {
			selected = append(selected, c)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Track < selected[j].Track
	})

	for _, c := range selected {
		a, ok := snap.Assets[c.AssetID]
		if !ok || a.Kind == asset.KindAudio {
			continue
		}
		comp.Visual = append(comp.Visual, VisualLayer{
			ClipID:      c.ID,
			AssetID:     a.ID,
			Kind:        a.Kind,
			SourceURL:   a.SourceURL,
			ZIndex:      c.Track,
			Placement:   c.Geometry,
			Fit:         "contain",
			MediaOffset: mediaOffset(now, c.StartTime),
			Gain:        float64(c.Volume) / 100,
		})
	}

	for _, c := range snap.AudioClips {
		if !containsFrame(c, frame, fps) {
			continue
		}
		a, ok := snap.Assets[c.AssetID]
		if !ok || a.Kind != asset.KindAudio {
			continue
		}
		comp.Audio = append(comp.Audio, AudioLayer{
			ClipID:      c.ID,
			AssetID:     a.ID,
			SourceURL:   a.SourceURL,
			MediaOffset: mediaOffset(now, c.StartTime),
			Gain:        float64(c.Volume) / 100,
		})
	}

	for _, cap := range snap.Captions {
		start := int(math.Floor(cap.StartTime * float64(fps)))
		dur := int(math.Floor(cap.Duration * float64(fps)))
		if frame < start || frame >= start+dur {
			continue
		}
		comp.Captions = append(comp.Captions, CaptionLayer{
			CaptionID: cap.ID,
			Text:      cap.Text,
			Style:     cap.Style,
		})
	}

	return comp
}

// containsFrame reports whether the clip's [start, start+duration)
// window, converted to frames, covers the given frame.
func containsFrame(c clip.Clip, frame, fps int) bool {
	start := int(math.Floor(c.StartTime * float64(fps)))
	dur := int(math.Floor(c.Duration * float64(fps)))
	return frame >= start && frame < start+dur
}

// mediaOffset is how far into the source media playback is at the
// current time. Frame flooring can put the frame time fractionally
// before the clip start; offsets never go negative.
func mediaOffset(now, clipStart float64) float64 {
	off := now - clipStart
	if off < 0 {
		return 0
	}
	return off
}

// ContainRect computes the aspect-preserving "contain" fit of content
// with native size (contentW, contentH) inside a placement box,
// centered on both axes. Zero or negative content sizes fill the box.
func ContainRect(contentW, contentH int, box clip.Geometry) clip.Geometry {
	if contentW <= 0 || contentH <= 0 || box.Width <= 0 || box.Height <= 0 {
		return box
	}
	scaleX := float64(box.Width) / float64(contentW)
	scaleY := float64(box.Height) / float64(contentH)
	scale := math.Min(scaleX, scaleY)

	w := int(math.Round(float64(contentW) * scale))
	h := int(math.Round(float64(contentH) * scale))
	return clip.Geometry{
		X:      box.X + (box.Width-w)/2,
		Y:      box.Y + (box.Height-h)/2,
		Width:  w,
		Height: h,
	}
}
