package timeline

import (
	"context"
	"math"
	"sync"
	"time"
)

// DefaultFPS is the fixed frame rate of the editor.
const DefaultFPS = 30

// DefaultTotalDuration is the initial timeline length in seconds.
// The timeline auto-extends past it and never shrinks.
const DefaultTotalDuration = 30.0

// Player is an attached frame-accurate playback engine. The clock is
// the authoritative time source; the player is a slave clock that is
// read back only while actually playing.
type Player interface {
	SeekToFrame(frame int)
	Play()
	Pause()
	CurrentFrame() int
}

// State is a snapshot of the clock.
type State struct {
	CurrentTime   float64 `json:"current_time"`
	TotalDuration float64 `json:"total_duration"`
	FPS           int     `json:"fps"`
	Playing       bool    `json:"playing"`
}

// Clock owns the playhead position and playing state and maps between
// seconds and frame indices.
type Clock struct {
	mu       sync.Mutex
	fps      int
	current  float64
	total    float64
	playing  bool
	player   Player
	stopPoll context.CancelFunc
}

// NewClock creates a paused clock at t=0 with the default duration.
func NewClock(fps int) *Clock {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Clock{
		fps:   fps,
		total: DefaultTotalDuration,
	}
}

// AttachPlayer connects a playback engine. Passing nil detaches.
func (c *Clock) AttachPlayer(p Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player = p
}

// FrameAt converts seconds to a frame index by flooring. The sub-frame
// fraction is lost, so TimeAt(FrameAt(t)) may differ from t.
func (c *Clock) FrameAt(seconds float64) int {
	return int(math.Floor(seconds * float64(c.fps)))
}

// TimeAt converts a frame index to seconds.
func (c *Clock) TimeAt(frame int) float64 {
	return float64(frame) / float64(c.fps)
}

// Seek moves the playhead, clamped to [0, total], and aligns the
// attached player to the corresponding frame.
func (c *Clock) Seek(seconds float64) {
	c.mu.Lock()
	c.current = clamp(seconds, 0, c.total)
	p := c.player
	frame := c.FrameAt(c.current)
	c.mu.Unlock()

	if p != nil {
		p.SeekToFrame(frame)
	}
}

// Play starts playback. While playing, the playhead follows the
// attached player by polling at fps Hz; without a player it advances
// at wall-clock rate with the same sampling granularity.
func (c *Clock) Play(ctx context.Context) {
	c.mu.Lock()
	if c.playing {
		c.mu.Unlock()
		return
	}
	c.playing = true
	p := c.player
	pollCtx, cancel := context.WithCancel(ctx)
	c.stopPoll = cancel
	c.mu.Unlock()

	if p != nil {
		p.Play()
	}
	go c.poll(pollCtx, p)
}

// Pause stops playback and the poll loop.
func (c *Clock) Pause() {
	c.mu.Lock()
	if !c.playing {
		c.mu.Unlock()
		return
	}
	c.playing = false
	cancel := c.stopPoll
	c.stopPoll = nil
	p := c.player
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if p != nil {
		p.Pause()
	}
}

func (c *Clock) poll(ctx context.Context, p Player) {
	interval := time.Second / time.Duration(c.fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.mu.Lock()
			if !c.playing {
				c.mu.Unlock()
				return
			}
			if p != nil {
				c.current = clamp(c.TimeAt(p.CurrentFrame()), 0, c.total)
			} else {
				c.current = clamp(c.current+now.Sub(last).Seconds(), 0, c.total)
			}
			last = now
			c.mu.Unlock()
		}
	}
}

// Extend grows the total duration to cover the given end time. The
// timeline never auto-shrinks.
func (c *Clock) Extend(endSeconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if endSeconds > c.total {
		c.total = endSeconds
	}
}

// State returns a snapshot of the clock.
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		CurrentTime:   c.current,
		TotalDuration: c.total,
		FPS:           c.fps,
		Playing:       c.playing,
	}
}

// CurrentFrame returns the frame index at the playhead.
func (c *Clock) CurrentFrame() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.FrameAt(c.current)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
