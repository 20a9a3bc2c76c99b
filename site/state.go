package site

import (
	"sync"

	"github.com/mack-digital/mack-site/backend/models"
)

// State is the process-wide application state: the single writable in-memory
// copy of the project collection (newest first) and the legal content. It is
// mutated only through the action methods below and read by the public
// views. Last writer wins; there is no per-record versioning.
type State struct {
	mu       sync.RWMutex
	projects []models.Project
	legal    models.LegalContent
}

func NewState(projects []models.Project, legal models.LegalContent) *State {
	return &State{projects: projects, legal: legal}
}

// Projects returns a copy of the collection in display order.
func (s *State) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Project resolves an id against the collection.
func (s *State) Project(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Project{}, false
}

func (s *State) Legal() models.LegalContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.legal
}

// ReplaceProjects swaps in a freshly loaded collection.
func (s *State) ReplaceProjects(projects []models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = projects
}

// UpsertProject replaces the entry with a matching id, or prepends the
// project so the newest-first ordering holds without a re-fetch.
func (s *State) UpsertProject(project models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == project.ID {
			s.projects[i] = project
			return
		}
	}
	s.projects = append([]models.Project{project}, s.projects...)
}

// RemoveProject drops the entry with the given id, if present.
func (s *State) RemoveProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	remaining := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	s.projects = remaining
}

func (s *State) SetLegal(legal models.LegalContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.legal = legal
}
