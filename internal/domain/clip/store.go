package clip

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Extender is notified when a clip's end moves past the current
// timeline end so total duration can grow. It never shrinks.
type Extender interface {
	Extend(endSeconds float64)
}

// Store holds the placed clips of one editor session, both lanes,
// in insertion order.
type Store struct {
	mu       sync.Mutex
	clips    map[string]*Clip
	order    []string
	extender Extender
}

// NewStore creates an empty clip store.
func NewStore(extender Extender) *Store {
	return &Store{
		clips:    make(map[string]*Clip),
		extender: extender,
	}
}

// AddRequest describes a clip placement.
type AddRequest struct {
	AssetID       string
	Lane          Lane
	Track         int
	StartTime     float64
	Duration      float64  // <= 0 means use AssetDuration or the fallback
	AssetDuration *float64 // native duration of the asset, when known
	Geometry      Geometry // zero value means full canvas, filled by the caller
	Volume        int
}

// Add places a new clip. Track and start are clamped into range;
// duration defaults to the asset's native duration or FallbackDuration.
func (s *Store) Add(req AddRequest) (*Clip, error) {
	if strings.TrimSpace(req.AssetID) == "" {
		return nil, ErrInvalidInput
	}
	if req.Lane != LaneAudio {
		req.Lane = LaneVideo
	}

	duration := req.Duration
	if duration <= 0 {
		if req.AssetDuration != nil && *req.AssetDuration > 0 {
			duration = *req.AssetDuration
		} else {
			duration = FallbackDuration
		}
	}

	c := &Clip{
		ID:        uuid.NewString(),
		AssetID:   req.AssetID,
		Lane:      req.Lane,
		Track:     clampTrack(req.Lane, req.Track),
		StartTime: clampStart(req.StartTime),
		Duration:  duration,
		Geometry:  req.Geometry,
		Volume:    clampVolume(req.Volume),
	}

	s.mu.Lock()
	s.clips[c.ID] = c
	s.order = append(s.order, c.ID)
	s.mu.Unlock()

	if s.extender != nil {
		s.extender.Extend(c.End())
	}
	copied := *c
	return &copied, nil
}

// Restore inserts a previously saved clip as-is, preserving its ID and
// its place in insertion order. Used when loading a project.
func (s *Store) Restore(c Clip) {
	s.mu.Lock()
	s.clips[c.ID] = &c
	s.order = append(s.order, c.ID)
	s.mu.Unlock()

	if s.extender != nil {
		s.extender.Extend(c.End())
	}
}

// Move changes a clip's start time, clamped to >= 0. Overlap with
// other clips on the same track is permitted; rendering resolves
// stacking by track order alone.
func (s *Store) Move(id string, startTime float64) error {
	end, err := s.mutate(id, func(c *Clip) {
		c.StartTime = clampStart(startTime)
	})
	if err != nil {
		return err
	}
	if s.extender != nil {
		s.extender.Extend(end)
	}
	return nil
}

// SetTrack moves a clip to another track within its lane, clamped into
// the lane's valid set.
func (s *Store) SetTrack(id string, track int) error {
	_, err := s.mutate(id, func(c *Clip) {
		c.Track = clampTrack(c.Lane, track)
	})
	return err
}

// SetGeometry replaces a clip's canvas placement. Non-positive sizes
// clamp to 1px so the clip stays addressable.
func (s *Store) SetGeometry(id string, g Geometry) error {
	_, err := s.mutate(id, func(c *Clip) {
		if g.Width < 1 {
			g.Width = 1
		}
		if g.Height < 1 {
			g.Height = 1
		}
		c.Geometry = g
	})
	return err
}

// SetVolume sets playback volume, clamped to 0..100.
func (s *Store) SetVolume(id string, percent int) error {
	_, err := s.mutate(id, func(c *Clip) {
		c.Volume = clampVolume(percent)
	})
	return err
}

// SetDuration sets the clip duration; non-positive values clamp to a
// small positive floor.
func (s *Store) SetDuration(id string, seconds float64) error {
	end, err := s.mutate(id, func(c *Clip) {
		c.Duration = clampDuration(seconds)
	})
	if err != nil {
		return err
	}
	if s.extender != nil {
		s.extender.Extend(end)
	}
	return nil
}

func (s *Store) mutate(id string, fn func(*Clip)) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clips[id]
	if !ok {
		return 0, ErrClipNotFound
	}
	fn(c)
	return c.End(), nil
}

// Get returns a clip by ID.
func (s *Store) Get(id string) (*Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clips[id]
	if !ok {
		return nil, ErrClipNotFound
	}
	copied := *c
	return &copied, nil
}

// Delete removes a clip from whichever lane holds it. Deleting an
// unknown ID is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(id)
}

// DeleteByAsset removes every clip referencing the asset. Used by the
// registry's removal cascade.
func (s *Store) DeleteByAsset(assetID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var doomed []string
	for _, id := range s.order {
		if s.clips[id].AssetID == assetID {
			doomed = append(doomed, id)
		}
	}
	for _, id := range doomed {
		s.deleteLocked(id)
	}
	return len(doomed)
}

func (s *Store) deleteLocked(id string) {
	if _, ok := s.clips[id]; !ok {
		return
	}
	delete(s.clips, id)
	for i, cid := range s.order {
		if cid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// OnTrack returns the clips on one track of a lane, in insertion order.
func (s *Store) OnTrack(lane Lane, track int) []Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Clip
	for _, id := range s.order {
		c := s.clips[id]
		if c.Lane == lane && c.Track == track {
			out = append(out, *c)
		}
	}
	return out
}

// List returns every clip in both lanes, in insertion order.
func (s *Store) List() []Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Clip, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.clips[id])
	}
	return out
}

// All returns every clip in a lane, in insertion order.
func (s *Store) All(lane Lane) []Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Clip
	for _, id := range s.order {
		c := s.clips[id]
		if c.Lane == lane {
			out = append(out, *c)
		}
	}
	return out
}
