package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo      *ProjectRepo
	legalContentRepo *LegalContentRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:      NewProjectRepo(db),
		legalContentRepo: NewLegalContentRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) LegalContentRepo() *LegalContentRepo {
	return d.legalContentRepo
}
