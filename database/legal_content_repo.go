package database

import (
	"context"
	"errors"

	"github.com/mack-digital/mack-site/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LegalContentRepo struct {
	db *gorm.DB
}

func NewLegalContentRepo(db *gorm.DB) *LegalContentRepo {
	return &LegalContentRepo{db}
}

// FindSingleton returns the one legal_content row, or nil when it has never
// been written.
func (r *LegalContentRepo) FindSingleton(ctx context.Context) (*models.LegalContent, error) {
	var content models.LegalContent
	err := r.db.WithContext(ctx).First(&content, "id = ?", models.LegalContentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// Upsert writes the singleton row under its fixed key.
func (r *LegalContentRepo) Upsert(ctx context.Context, content *models.LegalContent) error {
	content.ID = models.LegalContentID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"impressum", "datenschutz"}),
	}).Create(content).Error
}
