package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mack-digital/mack-site/backend/cache"
	"github.com/mack-digital/mack-site/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote is an in-memory RemoteStore whose failure modes can be toggled
// per test.
type fakeRemote struct {
	projects   []models.Project
	legal      *models.LegalContent
	down       bool
	failWrites bool
}

var errRemoteDown = errors.New("remote unreachable")

func (f *fakeRemote) FetchProjects(ctx context.Context) ([]models.Project, error) {
	if f.down {
		return nil, errRemoteDown
	}
	out := make([]models.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

func (f *fakeRemote) UpsertProject(ctx context.Context, project *models.Project) error {
	if f.down || f.failWrites {
		return errRemoteDown
	}
	for i := range f.projects {
		if f.projects[i].ID == project.ID {
			f.projects[i] = *project
			return nil
		}
	}
	f.projects = append([]models.Project{*project}, f.projects...)
	return nil
}

func (f *fakeRemote) DeleteProject(ctx context.Context, id string) error {
	if f.down || f.failWrites {
		return errRemoteDown
	}
	remaining := f.projects[:0]
	for _, p := range f.projects {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	f.projects = remaining
	return nil
}

func (f *fakeRemote) FetchLegalContent(ctx context.Context) (*models.LegalContent, error) {
	if f.down {
		return nil, errRemoteDown
	}
	return f.legal, nil
}

func (f *fakeRemote) UpsertLegalContent(ctx context.Context, content *models.LegalContent) error {
	if f.down || f.failWrites {
		return errRemoteDown
	}
	c := *content
	f.legal = &c
	return nil
}

type memCache map[string]string

func (m memCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (m memCache) Put(ctx context.Context, key, value string) error {
	m[key] = value
	return nil
}

func newTestStore(remote *fakeRemote) (*Store, memCache) {
	local := memCache{}
	return New(remote, local), local
}

func TestLoadProjectsFirstRunDefaults(t *testing.T) {
	s, _ := newTestStore(&fakeRemote{down: true})

	projects := s.LoadProjects(context.Background())
	assert.Equal(t, DefaultProjects(), projects)
}

func TestSaveProjectRoundTrip(t *testing.T) {
	remote := &fakeRemote{}
	s, _ := newTestStore(remote)
	ctx := context.Background()

	p := models.Project{
		ID:                "p1",
		Title:             "Orbit",
		Client:            "Orbit GmbH",
		Year:              "2025",
		Categories:        []string{"Web", "Design"},
		Images:            []string{"https://img/1.jpg"},
		PreviewImageIndex: 0,
		ShortDescription:  "kurz",
		LongDescription:   "lang",
	}
	require.NoError(t, s.SaveProject(ctx, p))

	loaded := s.LoadProjects(ctx)
	require.Len(t, loaded, 1)
	assert.Equal(t, p, loaded[0])
}

func TestSaveProjectIdempotentUpsert(t *testing.T) {
	remote := &fakeRemote{}
	s, _ := newTestStore(remote)
	ctx := context.Background()

	p := models.Project{ID: "p1", Title: "Orbit"}
	require.NoError(t, s.SaveProject(ctx, p))
	require.NoError(t, s.SaveProject(ctx, p))

	assert.Len(t, s.LoadProjects(ctx), 1)
}

func TestSaveProjectOrdering(t *testing.T) {
	remote := &fakeRemote{projects: []models.Project{{ID: "old", Title: "Old"}}}
	s, _ := newTestStore(remote)
	ctx := context.Background()

	require.NoError(t, s.SaveProject(ctx, models.Project{ID: "new", Title: "New"}))

	loaded := s.LoadProjects(ctx)
	require.Len(t, loaded, 2)
	assert.Equal(t, "new", loaded[0].ID)
}

func TestLoadProjectsServesCacheDuringOutage(t *testing.T) {
	remote := &fakeRemote{projects: []models.Project{{ID: "p1", Title: "Orbit"}}}
	s, _ := newTestStore(remote)
	ctx := context.Background()

	// warm the mirror with a successful read, then take the remote down
	require.Len(t, s.LoadProjects(ctx), 1)
	remote.down = true

	loaded := s.LoadProjects(ctx)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Orbit", loaded[0].Title)
}

func TestMirrorAfterWriteServesLatestDuringOutage(t *testing.T) {
	remote := &fakeRemote{}
	s, _ := newTestStore(remote)
	ctx := context.Background()

	require.NoError(t, s.SaveProject(ctx, models.Project{ID: "p1", Title: "v1"}))
	require.NoError(t, s.SaveProject(ctx, models.Project{ID: "p1", Title: "v2"}))
	remote.down = true

	loaded := s.LoadProjects(ctx)
	require.Len(t, loaded, 1)
	assert.Equal(t, "v2", loaded[0].Title)
}

func TestSaveProjectFailureSurfaced(t *testing.T) {
	remote := &fakeRemote{failWrites: true}
	s, local := newTestStore(remote)

	err := s.SaveProject(context.Background(), models.Project{ID: "p1"})
	assert.ErrorIs(t, err, errRemoteDown)
	assert.Empty(t, local)
}

func TestDeleteProjectFailureKeepsCache(t *testing.T) {
	remote := &fakeRemote{projects: []models.Project{{ID: "p1", Title: "Orbit"}}}
	s, _ := newTestStore(remote)
	ctx := context.Background()

	require.Len(t, s.LoadProjects(ctx), 1)
	remote.failWrites = true

	err := s.DeleteProject(ctx, "p1")
	assert.ErrorIs(t, err, errRemoteDown)

	remote.down = true
	assert.Len(t, s.LoadProjects(ctx), 1, "no optimistic removal")
}

func TestDeleteProjectUpdatesCache(t *testing.T) {
	remote := &fakeRemote{projects: []models.Project{{ID: "p1"}, {ID: "p2"}}}
	s, _ := newTestStore(remote)
	ctx := context.Background()

	require.Len(t, s.LoadProjects(ctx), 2)
	require.NoError(t, s.DeleteProject(ctx, "p1"))

	remote.down = true
	loaded := s.LoadProjects(ctx)
	require.Len(t, loaded, 1)
	assert.Equal(t, "p2", loaded[0].ID)
}

func TestLegalContentFallbackAndRoundTrip(t *testing.T) {
	remote := &fakeRemote{down: true}
	s, _ := newTestStore(remote)
	ctx := context.Background()

	assert.Equal(t, DefaultLegalContent(), s.LoadLegalContent(ctx))

	remote.down = false
	content := models.LegalContent{Impressum: "imp", Datenschutz: "ds"}
	require.NoError(t, s.SaveLegalContent(ctx, content))

	remote.down = true
	loaded := s.LoadLegalContent(ctx)
	assert.Equal(t, "imp", loaded.Impressum)
	assert.Equal(t, "ds", loaded.Datenschutz)
	assert.Equal(t, models.LegalContentID, loaded.ID)
}
