package timeline_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/marev/cutline/internal/domain/timeline"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	mu      sync.Mutex
	frame   int
	playing bool
	seeks   []int
}

func (p *fakePlayer) SeekToFrame(frame int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame = frame
	p.seeks = append(p.seeks, frame)
}

func (p *fakePlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
}

func (p *fakePlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

func (p *fakePlayer) CurrentFrame() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame++
	return p.frame
}

func TestClock_FrameTimeConversion(t *testing.T) {
	c := timeline.NewClock(30)

	// frameAt(timeAt(f)) == f holds for the lossless direction.
	require.Equal(t, 37, c.FrameAt(c.TimeAt(37)))

	// The reverse loses the sub-frame fraction by flooring.
	require.Equal(t, 36, c.FrameAt(1.2333))
	require.InDelta(t, 1.2, c.TimeAt(c.FrameAt(1.2333)), 1e-9)
}

func TestClock_Seek_ClampsToTimeline(t *testing.T) {
	c := timeline.NewClock(30)

	c.Seek(-4)
	require.Equal(t, 0.0, c.State().CurrentTime)

	c.Seek(1e6)
	require.Equal(t, timeline.DefaultTotalDuration, c.State().CurrentTime)
}

func TestClock_Seek_AlignsPlayer(t *testing.T) {
	c := timeline.NewClock(30)
	p := &fakePlayer{}
	c.AttachPlayer(p)

	c.Seek(2.5)
	require.Equal(t, []int{75}, p.seeks)
}

func TestClock_Extend_NeverShrinks(t *testing.T) {
	c := timeline.NewClock(30)

	c.Extend(15) // within the default 30s, unchanged
	require.Equal(t, timeline.DefaultTotalDuration, c.State().TotalDuration)

	c.Extend(45)
	require.Equal(t, 45.0, c.State().TotalDuration)

	c.Extend(40)
	require.Equal(t, 45.0, c.State().TotalDuration)
}

func TestClock_PlayPause_FollowsPlayer(t *testing.T) {
	c := timeline.NewClock(30)
	p := &fakePlayer{}
	c.AttachPlayer(p)

	c.Play(context.Background())
	require.True(t, c.State().Playing)
	require.True(t, p.playing)

	require.Eventually(t, func() bool {
		return c.State().CurrentTime > 0
	}, time.Second, 5*time.Millisecond)

	c.Pause()
	require.False(t, c.State().Playing)
	require.False(t, p.playing)

	at := c.State().CurrentTime
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, at, c.State().CurrentTime)
}

func TestClock_Play_Idempotent(t *testing.T) {
	c := timeline.NewClock(30)
	c.Play(context.Background())
	c.Play(context.Background())
	c.Pause()
	c.Pause()
	require.False(t, c.State().Playing)
}
