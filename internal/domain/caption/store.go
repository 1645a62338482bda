package caption

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrCaptionNotFound indicates the caption doesn't exist in the store.
var ErrCaptionNotFound = errors.New("caption not found")

const (
	defaultText     = "New Caption"
	defaultDuration = 3.0
	minDuration     = 0.1
)

// Extender is notified when a caption's end moves past the current
// timeline end.
type Extender interface {
	Extend(endSeconds float64)
}

// Store holds the captions of one editor session in creation order.
type Store struct {
	mu       sync.Mutex
	captions map[string]*Caption
	order    []string
	extender Extender
}

// NewStore creates an empty caption store.
func NewStore(extender Extender) *Store {
	return &Store{
		captions: make(map[string]*Caption),
		extender: extender,
	}
}

// Add creates a caption at the given start time with editor defaults.
// An empty text gets the default placeholder.
func (s *Store) Add(text string, startTime float64) *Caption {
	if text == "" {
		text = defaultText
	}
	c := &Caption{
		ID:        uuid.NewString(),
		Text:      text,
		StartTime: clampStart(startTime),
		Duration:  defaultDuration,
		Style:     DefaultStyle(),
	}

	s.mu.Lock()
	s.captions[c.ID] = c
	s.order = append(s.order, c.ID)
	s.mu.Unlock()

	if s.extender != nil {
		s.extender.Extend(c.End())
	}
	copied := *c
	return &copied
}

// Restore inserts a previously saved caption as-is, preserving its ID
// and creation order. Used when loading a project.
func (s *Store) Restore(c Caption) {
	s.mu.Lock()
	s.captions[c.ID] = &c
	s.order = append(s.order, c.ID)
	s.mu.Unlock()

	if s.extender != nil {
		s.extender.Extend(c.End())
	}
}

// SetText replaces the caption text.
func (s *Store) SetText(id, text string) error {
	_, err := s.mutate(id, func(c *Caption) { c.Text = text })
	return err
}

// SetStyle replaces the caption style. A non-positive font size keeps
// the previous value.
func (s *Store) SetStyle(id string, style Style) error {
	_, err := s.mutate(id, func(c *Caption) {
		if style.FontSize <= 0 {
			style.FontSize = c.Style.FontSize
		}
		c.Style = style
	})
	return err
}

// SetDuration sets the caption duration, clamped positive.
func (s *Store) SetDuration(id string, seconds float64) error {
	end, err := s.mutate(id, func(c *Caption) {
		if seconds <= 0 {
			seconds = minDuration
		}
		c.Duration = seconds
	})
	if err != nil {
		return err
	}
	if s.extender != nil {
		s.extender.Extend(end)
	}
	return nil
}

// Move changes the caption start time, clamped to >= 0.
func (s *Store) Move(id string, startTime float64) error {
	end, err := s.mutate(id, func(c *Caption) {
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

// Delete removes a caption; unknown IDs are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.captions[id]; !ok {
		return
	}
	delete(s.captions, id)
	for i, cid := range s.order {
		if cid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Get returns a caption by ID.
func (s *Store) Get(id string) (*Caption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.captions[id]
	if !ok {
		return nil, ErrCaptionNotFound
	}
	copied := *c
	return &copied, nil
}

// All returns every caption in creation order.
func (s *Store) All() []Caption {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Caption, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.captions[id])
	}
	return out
}

func (s *Store) mutate(id string, fn func(*Caption)) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.captions[id]
	if !ok {
		return 0, ErrCaptionNotFound
	}
	fn(c)
	return c.End(), nil
}

func clampStart(start float64) float64 {
	if start < 0 {
		return 0
	}
	return start
}
