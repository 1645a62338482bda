package editor

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/marev/cutline/internal/domain/asset"
	"github.com/marev/cutline/internal/export"
)

// ErrSessionNotFound indicates no open session has the given ID.
var ErrSessionNotFound = errors.New("session not found")

// Manager owns the open editor sessions.
type Manager struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	prober     asset.ThumbnailProber
	exportOpts []export.Option
	logger     *slog.Logger
}

// NewManager creates an empty session manager.
func NewManager(prober asset.ThumbnailProber, logger *slog.Logger, exportOpts ...export.Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions:   make(map[string]*Session),
		prober:     prober,
		exportOpts: exportOpts,
		logger:     logger,
	}
}

// Create opens a new session on the named canvas preset.
func (m *Manager) Create(presetName string) *Session {
	s := NewSession(m.prober, PresetByName(presetName), m.logger, m.exportOpts...)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session opened", "session_id", s.ID, "canvas", s.Canvas().Name)
	return s
}

// Get returns an open session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// List returns all open sessions.
func (m *Manager) List() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Close stops and removes a session. Closing an unknown ID returns
// ErrSessionNotFound.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	m.logger.Info("session closed", "session_id", id)
	return nil
}

// Adopt registers an externally built session, used when loading a
// saved project.
func (m *Manager) Adopt(s *Session) {
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
}
