package store

import (
	"context"

	"github.com/mack-digital/mack-site/backend/database"
	"github.com/mack-digital/mack-site/backend/models"
)

// gormRemote adapts the database repositories to the RemoteStore port.
type gormRemote struct {
	db database.Database
}

func NewRemote(db database.Database) RemoteStore {
	return gormRemote{db}
}

func (g gormRemote) FetchProjects(ctx context.Context) ([]models.Project, error) {
	return g.db.ProjectRepo().FindAllOrdered(ctx)
}

func (g gormRemote) UpsertProject(ctx context.Context, project *models.Project) error {
	return g.db.ProjectRepo().Upsert(ctx, project)
}

func (g gormRemote) DeleteProject(ctx context.Context, id string) error {
	return g.db.ProjectRepo().Delete(ctx, id)
}

func (g gormRemote) FetchLegalContent(ctx context.Context) (*models.LegalContent, error) {
	return g.db.LegalContentRepo().FindSingleton(ctx)
}

func (g gormRemote) UpsertLegalContent(ctx context.Context, content *models.LegalContent) error {
	return g.db.LegalContentRepo().Upsert(ctx, content)
}
