// Package site models the navigation state of the agency site: the closed
// set of page identifiers, the resolution of a page request into a view, and
// the process-wide application state the views render from.
package site

// Page identifies one view of the site. The set is closed; ParsePage rejects
// anything else and view selection switches over every member.
type Page string

const (
	PageHome          Page = "home"
	PagePortfolio     Page = "portfolio"
	PageAbout         Page = "about"
	PageContact       Page = "contact"
	PageServiceKI     Page = "service-ki"
	PageServiceWeb    Page = "service-web"
	PageServicePrint  Page = "service-print"
	PageServiceMedia  Page = "service-media"
	PageProjectDetail Page = "project-detail"
	PageAdmin         Page = "admin"
	PageImpressum     Page = "impressum"
	PageDatenschutz   Page = "datenschutz"
)

// EntryPage is the state entered on initial load, after the loading gate.
const EntryPage = PageHome

// AllPages lists every member of the closed page set.
func AllPages() []Page {
	return []Page{
		PageHome,
		PagePortfolio,
		PageAbout,
		PageContact,
		PageServiceKI,
		PageServiceWeb,
		PageServicePrint,
		PageServiceMedia,
		PageProjectDetail,
		PageAdmin,
		PageImpressum,
		PageDatenschutz,
	}
}

// ParsePage maps a raw identifier onto the page set.
func ParsePage(raw string) (Page, bool) {
	switch p := Page(raw); p {
	case PageHome, PagePortfolio, PageAbout, PageContact,
		PageServiceKI, PageServiceWeb, PageServicePrint, PageServiceMedia,
		PageProjectDetail, PageAdmin, PageImpressum, PageDatenschutz:
		return p, true
	}
	return "", false
}

// IsService reports whether the page is one of the four service detail pages.
func (p Page) IsService() bool {
	switch p {
	case PageServiceKI, PageServiceWeb, PageServicePrint, PageServiceMedia:
		return true
	}
	return false
}
