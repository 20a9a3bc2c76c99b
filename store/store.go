// Package store implements the two-tier persistence adapter: a required
// remote primary (Postgres via the database package) mirrored into a
// best-effort local cache. Reads degrade primary -> cache -> built-in
// defaults and never surface transport errors to callers; writes require the
// primary and report failure so workflows can leave in-memory state alone.
package store

import (
	"context"
	"encoding/json"

	"github.com/mack-digital/mack-site/backend/cache"
	"github.com/mack-digital/mack-site/backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RemoteStore is the primary persistence port.
type RemoteStore interface {
	FetchProjects(ctx context.Context) ([]models.Project, error)
	UpsertProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, id string) error
	FetchLegalContent(ctx context.Context) (*models.LegalContent, error)
	UpsertLegalContent(ctx context.Context, content *models.LegalContent) error
}

// LocalCache is the secondary port, a plain string key-value store.
type LocalCache interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

type Store struct {
	remote RemoteStore
	local  LocalCache
	logger zerolog.Logger
}

func New(remote RemoteStore, local LocalCache) *Store {
	logger := log.With().Str("component", "store").Logger()
	return &Store{remote: remote, local: local, logger: logger}
}

// LoadProjects fetches all projects, newest first. A failing remote degrades
// silently to the cached copy, then to the built-in default set.
func (s *Store) LoadProjects(ctx context.Context) []models.Project {
	projects, err := s.remote.FetchProjects(ctx)
	if err == nil {
		s.mirrorProjects(ctx, projects)
		return projects
	}
	s.logger.Warn().Err(err).Msg("remote project fetch failed, serving fallback")

	if cached, ok := s.cachedProjects(ctx); ok {
		return cached
	}
	return DefaultProjects()
}

// SaveProject upserts a project by id. The remote write is required; on
// success the cached collection is updated as well so a later outage still
// serves the latest data.
func (s *Store) SaveProject(ctx context.Context, project models.Project) error {
	if err := s.remote.UpsertProject(ctx, &project); err != nil {
		return err
	}

	cached, _ := s.cachedProjects(ctx)
	s.mirrorProjects(ctx, upsertIntoList(cached, project))
	return nil
}

// DeleteProject removes a project by id. On failure neither the cache nor
// the caller's in-memory state may change, so the error is surfaced as-is.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.remote.DeleteProject(ctx, id); err != nil {
		return err
	}

	if cached, ok := s.cachedProjects(ctx); ok {
		remaining := make([]models.Project, 0, len(cached))
		for _, p := range cached {
			if p.ID != id {
				remaining = append(remaining, p)
			}
		}
		s.mirrorProjects(ctx, remaining)
	}
	return nil
}

// LoadLegalContent fetches the singleton legal record with the same
// degradation policy as LoadProjects.
func (s *Store) LoadLegalContent(ctx context.Context) models.LegalContent {
	content, err := s.remote.FetchLegalContent(ctx)
	if err == nil && content != nil {
		s.mirrorLegal(ctx, *content)
		return *content
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("remote legal fetch failed, serving fallback")
	}

	if cached, ok := s.cachedLegal(ctx); ok {
		return cached
	}
	return DefaultLegalContent()
}

// SaveLegalContent upserts the singleton record.
func (s *Store) SaveLegalContent(ctx context.Context, content models.LegalContent) error {
	content.ID = models.LegalContentID
	if err := s.remote.UpsertLegalContent(ctx, &content); err != nil {
		return err
	}
	s.mirrorLegal(ctx, content)
	return nil
}

func (s *Store) cachedProjects(ctx context.Context) ([]models.Project, bool) {
	raw, err := s.local.Get(ctx, cache.KeyProjects)
	if err != nil {
		if err != cache.ErrMiss {
			s.logger.Warn().Err(err).Msg("project cache read failed")
		}
		return nil, false
	}
	var projects []models.Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		s.logger.Warn().Err(err).Msg("project cache entry corrupt")
		return nil, false
	}
	return projects, true
}

func (s *Store) mirrorProjects(ctx context.Context, projects []models.Project) {
	raw, err := json.Marshal(projects)
	if err != nil {
		s.logger.Warn().Err(err).Msg("project cache encode failed")
		return
	}
	if err := s.local.Put(ctx, cache.KeyProjects, string(raw)); err != nil {
		s.logger.Warn().Err(err).Msg("project cache write failed")
	}
}

func (s *Store) cachedLegal(ctx context.Context) (models.LegalContent, bool) {
	raw, err := s.local.Get(ctx, cache.KeyLegal)
	if err != nil {
		if err != cache.ErrMiss {
			s.logger.Warn().Err(err).Msg("legal cache read failed")
		}
		return models.LegalContent{}, false
	}
	var content models.LegalContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		s.logger.Warn().Err(err).Msg("legal cache entry corrupt")
		return models.LegalContent{}, false
	}
	content.ID = models.LegalContentID
	return content, true
}

func (s *Store) mirrorLegal(ctx context.Context, content models.LegalContent) {
	raw, err := json.Marshal(content)
	if err != nil {
		s.logger.Warn().Err(err).Msg("legal cache encode failed")
		return
	}
	if err := s.local.Put(ctx, cache.KeyLegal, string(raw)); err != nil {
		s.logger.Warn().Err(err).Msg("legal cache write failed")
	}
}

// upsertIntoList replaces the entry with a matching id, or prepends the
// project so the newest-first ordering holds without a re-fetch.
func upsertIntoList(projects []models.Project, project models.Project) []models.Project {
	for i := range projects {
		if projects[i].ID == project.ID {
			projects[i] = project
			return projects
		}
	}
	return append([]models.Project{project}, projects...)
}
