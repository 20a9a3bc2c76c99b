package database

import (
	"context"
	"errors"

	"github.com/mack-digital/mack-site/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// projectUpsertColumns is the exact set of columns replaced on upsert. Any
// field added to models.Project must be added here or it silently fails to
// persist for existing rows. date_added is deliberately absent so the
// creation timestamp survives edits.
var projectUpsertColumns = []string{
	"title",
	"client",
	"year",
	"category",
	"categories",
	"images",
	"preview_image_index",
	"short_description",
	"long_description",
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAllOrdered returns all projects, newest first.
func (r *ProjectRepo) FindAllOrdered(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("date_added DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when no such row exists.
func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Upsert inserts a project or replaces the existing row with the same id.
func (r *ProjectRepo) Upsert(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(projectUpsertColumns),
	}).Create(project).Error
}

// Delete removes a project from the database by id.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id).Error
}
