package site

import (
	"github.com/mack-digital/mack-site/backend/models"
)

// View is the resolved rendering decision for one page request: which page
// the host should show and the data it needs. RedirectTo is set when the
// requested page could not be entered (a stale or unknown project id) and
// the host must fall back instead of faulting.
type View struct {
	Page       Page             `json:"page"`
	RedirectTo Page             `json:"redirectTo,omitempty"`
	Projects   []models.Project `json:"projects,omitempty"`
	Project    *models.Project  `json:"project,omitempty"`
	// Description carries the detail text for project-detail views, with
	// the long-description-falls-back-to-short rule already applied.
	Description string `json:"description,omitempty"`
	LegalText   string `json:"legalText,omitempty"`
}

// ResolveView maps a page plus the optional selected project id onto a View.
// Transitions are explicit: the caller names the target page, there is no
// history stack, and a selected project id is only meaningful for
// project-detail. The switch covers the whole Page set; unknown values
// degrade to the entry page.
func (s *State) ResolveView(page Page, selectedProjectID string) View {
	switch page {
	case PageHome, PageAbout, PageContact, PageAdmin,
		PageServiceKI, PageServiceWeb, PageServicePrint, PageServiceMedia:
		return View{Page: page}

	case PagePortfolio:
		return View{Page: page, Projects: s.Projects()}

	case PageProjectDetail:
		project, ok := s.Project(selectedProjectID)
		if !ok {
			// referential inconsistency: degrade to the portfolio
			return View{Page: PagePortfolio, RedirectTo: PagePortfolio, Projects: s.Projects()}
		}
		return View{Page: page, Project: &project, Description: project.DetailDescription()}

	case PageImpressum:
		return View{Page: page, LegalText: s.Legal().Impressum}

	case PageDatenschutz:
		return View{Page: page, LegalText: s.Legal().Datenschutz}
	}

	return View{Page: EntryPage, RedirectTo: EntryPage}
}
