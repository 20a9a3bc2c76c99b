package store

import (
	"time"

	"github.com/mack-digital/mack-site/backend/models"
)

// DefaultProjects is the built-in portfolio shown on a first run before any
// remote or cached data exists.
func DefaultProjects() []models.Project {
	return []models.Project{
		{
			ID:         "1",
			Title:      "Aurelia AI",
			Client:     "Aurelia Tech",
			Category:   "AI Architecture",
			Categories: []string{"AI", "Neural Tech", "Future"},
			Images: []string{
				"https://images.unsplash.com/photo-1677442136019-21780ecad995?q=80&w=1632",
				"https://images.unsplash.com/photo-1620712943543-bcc4628c9757?q=80&w=1632",
			},
			PreviewImageIndex: 0,
			Year:              "2024",
			ShortDescription:  "Zukunftsweisende KI-Architektur für Datenanalyse.",
			LongDescription:   "Ein bahnbrechendes KI-System zur Analyse komplexer Datenstrukturen. Wir haben das gesamte Interface-Design und die visuelle Kommunikation für den Launch dieses Projekts übernommen.",
			DateAdded:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

// DefaultLegalContent is the fallback legal text served until the operator
// edits it.
func DefaultLegalContent() models.LegalContent {
	return models.LegalContent{
		ID:          models.LegalContentID,
		Impressum:   "MACK Digital Agency\nBruchsaler Straße 4a\n74918 Angelbachtal\n\nVertreten durch: [Ihr Name]\nKontakt: hello@mack-digital.de",
		Datenschutz: "DATENSCHUTZERKLÄRUNG\n\n1. Datenschutz auf einen Blick\nAllgemeine Hinweise\nDie folgenden Hinweise geben einen einfachen Überblick darüber, was mit Ihren personenbezogenen Daten passiert...",
	}
}
