package editor

import (
	"sync"

	"github.com/marev/cutline/internal/domain/clip"
)

// Mode is the interaction state machine's current state.
type Mode string

const (
	ModeIdle             Mode = "idle"
	ModeDraggingClip     Mode = "dragging_clip"
	ModeDraggingPlayhead Mode = "dragging_playhead"
)

// DragKind says what a clip drag is moving.
type DragKind string

const (
	DragClip    DragKind = "clip"
	DragCaption DragKind = "caption"
)

const (
	basePixelsPerSecond = 50.0
	minZoom             = 0.5
	maxZoom             = 3.0
	zoomStep            = 0.25
)

// Controller translates pointer gestures into store and clock
// mutations. Only one gesture can be active at a time, which is what
// keeps playback advancement and scrubbing from fighting over the
// playhead.
type Controller struct {
	mu      sync.Mutex
	session *Session

	mode     Mode
	dragID   string
	dragKind DragKind
	// pointerOffset keeps the grab point fixed under the cursor:
	// pointerX - startTime*pixelsPerSecond at pointer-down.
	pointerOffset float64
	zoom          float64
}

// NewController creates an idle controller at 100% zoom.
func NewController(session *Session) *Controller {
	return &Controller{
		session: session,
		mode:    ModeIdle,
		zoom:    1.0,
	}
}

// Mode returns the current state.
func (ic *Controller) Mode() Mode {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.mode
}

// Zoom returns the current zoom factor.
func (ic *Controller) Zoom() float64 {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.zoom
}

// PixelsPerSecond is the timeline's horizontal scale at current zoom.
func (ic *Controller) PixelsPerSecond() float64 {
	return basePixelsPerSecond * ic.Zoom()
}

// ZoomIn increases zoom one step, clamped to the maximum.
func (ic *Controller) ZoomIn() float64 {
	return ic.adjustZoom(zoomStep)
}

// ZoomOut decreases zoom one step, clamped to the minimum.
func (ic *Controller) ZoomOut() float64 {
	return ic.adjustZoom(-zoomStep)
}

// SetZoom sets the zoom factor, clamped to [0.5, 3.0].
func (ic *Controller) SetZoom(z float64) float64 {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.zoom = clampZoom(z)
	return ic.zoom
}

func (ic *Controller) adjustZoom(delta float64) float64 {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.zoom = clampZoom(ic.zoom + delta)
	return ic.zoom
}

func clampZoom(z float64) float64 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

// PointerDownClip begins dragging a clip or caption. The offset
// between the pointer and the clip's left edge is recorded so the clip
// doesn't jump under the cursor.
func (ic *Controller) PointerDownClip(id string, kind DragKind, startTime, pointerX float64) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if ic.mode != ModeIdle {
		return
	}
	ic.mode = ModeDraggingClip
	ic.dragID = id
	ic.dragKind = kind
	ic.pointerOffset = pointerX - startTime*basePixelsPerSecond*ic.zoom
}

// PointerDownPlayhead begins scrubbing.
func (ic *Controller) PointerDownPlayhead() {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if ic.mode != ModeIdle {
		return
	}
	ic.mode = ModeDraggingPlayhead
}

// PointerMove advances the active gesture. In a clip drag the clip is
// moved (clamped at zero); in a playhead drag the clock seeks (the
// clock clamps to the timeline).
func (ic *Controller) PointerMove(pointerX float64) {
	ic.mu.Lock()
	mode := ic.mode
	id := ic.dragID
	kind := ic.dragKind
	pps := basePixelsPerSecond * ic.zoom
	offset := ic.pointerOffset
	ic.mu.Unlock()

	switch mode {
	case ModeDraggingClip:
		newStart := (pointerX - offset) / pps
		if newStart < 0 {
			newStart = 0
		}
		if kind == DragCaption {
			_ = ic.session.Captions.Move(id, newStart)
		} else {
			_ = ic.session.Clips.Move(id, newStart)
		}
	case ModeDraggingPlayhead:
		ic.session.Clock.Seek(pointerX / pps)
	}
}

// PointerUp ends any active gesture.
func (ic *Controller) PointerUp() {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.mode = ModeIdle
	ic.dragID = ""
	ic.dragKind = ""
	ic.pointerOffset = 0
}

// PointerLeave is treated like PointerUp.
func (ic *Controller) PointerLeave() {
	ic.PointerUp()
}

// ClickTimeline seeks to the clicked position. Ignored mid-gesture so
// the click that ends a drag doesn't also jump the playhead.
func (ic *Controller) ClickTimeline(pointerX float64) {
	ic.mu.Lock()
	idle := ic.mode == ModeIdle
	pps := basePixelsPerSecond * ic.zoom
	ic.mu.Unlock()

	if idle {
		ic.session.Clock.Seek(pointerX / pps)
	}
}

// DropAsset places a library asset on a track, with the drop time
// computed from the horizontal drop position.
func (ic *Controller) DropAsset(assetID string, track int, pointerX float64) (*clip.Clip, error) {
	ic.mu.Lock()
	pps := basePixelsPerSecond * ic.zoom
	ic.mu.Unlock()

	dropTime := pointerX / pps
	if dropTime < 0 {
		dropTime = 0
	}
	return ic.session.PlaceClip(assetID, track, dropTime)
}
