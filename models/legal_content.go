package models

// LegalContentID is the fixed key of the one and only legal_content row.
const LegalContentID = "singleton"

// LegalContent holds the two long-form legal text blobs of the site. There is
// exactly one logical instance; the latest write is the only state.
type LegalContent struct {
	ID          string `json:"-" db:"id" gorm:"type:text;primaryKey;not null"`
	Impressum   string `json:"impressum" db:"impressum" gorm:"type:text;not null"`
	Datenschutz string `json:"datenschutz" db:"datenschutz" gorm:"type:text;not null"`
}

// TableName keeps the wire table name singular, matching the remote schema.
func (LegalContent) TableName() string {
	return "legal_content"
}
