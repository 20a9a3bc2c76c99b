package models

import "time"

// Project represents a portfolio case study with its image carousel and metadata
type Project struct {
	ID                string    `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Title             string    `json:"title" db:"title" gorm:"type:text;not null"`
	Client            string    `json:"client" db:"client" gorm:"type:text;not null"`
	Year              string    `json:"year" db:"year" gorm:"type:text;not null"`
	Category          string    `json:"category" db:"category" gorm:"type:text"`
	Categories        []string  `json:"categories,omitempty" db:"categories" gorm:"type:jsonb;serializer:json"`
	Images            []string  `json:"images" db:"images" gorm:"type:jsonb;serializer:json"`
	PreviewImageIndex int       `json:"previewImageIndex" db:"preview_image_index" gorm:"column:preview_image_index;type:integer;not null;default:0"`
	ShortDescription  string    `json:"shortDescription" db:"short_description" gorm:"column:short_description;type:text"`
	LongDescription   string    `json:"longDescription" db:"long_description" gorm:"column:long_description;type:text"`
	DateAdded         time.Time `json:"dateAdded" db:"date_added" gorm:"column:date_added;type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// PrimaryCategory returns the first tag of Categories, falling back to the
// legacy Category field when the tag list is empty.
func (p Project) PrimaryCategory() string {
	if len(p.Categories) > 0 {
		return p.Categories[0]
	}
	return p.Category
}

// DetailDescription returns the long description, or the short one when no
// long text has been written yet.
func (p Project) DetailDescription() string {
	if p.LongDescription != "" {
		return p.LongDescription
	}
	return p.ShortDescription
}

// PreviewImage returns the designated thumbnail image. The second return is
// false when the project has no images and the caller must render a
// placeholder instead.
func (p Project) PreviewImage() (string, bool) {
	if len(p.Images) == 0 {
		return "", false
	}
	i := p.PreviewImageIndex
	if i < 0 || i >= len(p.Images) {
		i = 0
	}
	return p.Images[i], true
}

// Clone returns a deep copy, so draft edits never alias the stored slices.
func (p Project) Clone() Project {
	clone := p
	clone.Categories = append([]string(nil), p.Categories...)
	clone.Images = append([]string(nil), p.Images...)
	return clone
}
