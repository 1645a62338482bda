package editor

import (
	"github.com/marev/cutline/internal/domain/project"
)

// Document captures the session as a saveable project. An empty id
// means a new document; name is the project title to save under.
func (s *Session) Document(id, name string) *project.Project {
	return &project.Project{
		ID:            id,
		Name:          name,
		CanvasPreset:  s.Canvas().Name,
		TotalDuration: s.Clock.State().TotalDuration,
		Assets:        s.Assets.List(),
		Clips:         s.Clips.List(),
		Captions:      s.Captions.All(),
	}
}

// OpenProject builds a fresh session from a saved project document and
// registers it with the manager. IDs and ordering are restored as
// saved; the playhead starts at zero.
func (m *Manager) OpenProject(proj *project.Project) *Session {
	s := NewSession(m.prober, PresetByName(proj.CanvasPreset), m.logger, m.exportOpts...)
	for _, a := range proj.Assets {
		s.Assets.Restore(a)
	}
	for _, c := range proj.Clips {
		s.Clips.Restore(c)
	}
	for _, c := range proj.Captions {
		s.Captions.Restore(c)
	}
	s.Clock.Extend(proj.TotalDuration)
	m.Adopt(s)

	m.logger.Info("project opened", "project_id", proj.ID, "session_id", s.ID)
	return s
}
