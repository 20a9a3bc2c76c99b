package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mack-digital/mack-site/backend/errs"
	"github.com/mack-digital/mack-site/backend/models"
	"github.com/mack-digital/mack-site/backend/services"
	"github.com/mack-digital/mack-site/backend/site"
)

// consentCookie records which optional feature categories the visitor has
// approved, comma separated.
const consentCookie = "mack_consent"

// consentCategoryMedia gates third-party media embeds such as the map.
const consentCategoryMedia = "media"

type siteHandler struct {
	responder    Responder
	logger       zerolog.Logger
	state        *site.State
	config       map[string]string
	splashMillis int
	mapEmbedURL  string
}

func newSiteHandler(state *site.State, config map[string]string, splashMillis int, mapEmbedURL string) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		state:        state,
		config:       config,
		splashMillis: splashMillis,
		mapEmbedURL:  mapEmbedURL,
	}
}

// ProjectCollection represents the ordered project listing
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
}

// bootstrap returns everything the host needs for the initial render in one
// request: the content plus the minimum splash duration of the loading gate.
func (h siteHandler) bootstrap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]interface{}{
			"projects":        h.state.Projects(),
			"legal":           h.state.Legal(),
			"entryPage":       site.EntryPage,
			"minSplashMillis": h.splashMillis,
		})
	}
}

// getAllProjects returns the project collection, newest first.
func (h siteHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects := h.state.Projects()
		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getProject returns one project by id.
func (h siteHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		project, ok := h.state.Project(projectID)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// resolvePage maps a page identifier (plus the optional projectId query
// parameter) onto the view the host should render. Stale project references
// come back as a redirect rather than an error.
func (h siteHandler) resolvePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "page")
		page, ok := site.ParsePage(raw)
		if !ok {
			h.responder.WriteError(w, errs.NewBadRequestError("unknown page identifier"))
			return
		}

		view := h.state.ResolveView(page, r.URL.Query().Get("projectId"))
		h.responder.WriteJSON(w, view)
	}
}

// getLegalContent returns the singleton legal record.
func (h siteHandler) getLegalContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.state.Legal())
	}
}

// submitContact forwards a contact-form submission to the agency inbox.
func (h siteHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg services.ContactMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			h.responder.WriteError(w, errs.Malformed("contact message"))
			return
		}

		if err := services.SendContactNotification(h.config, msg); err != nil {
			h.logger.Error().Err(err).Msg("contact notification failed")
			h.responder.WriteError(w, errs.NewInternalError("could not deliver contact message"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "success"})
	}
}

// getConsent reports the visitor's approved feature categories and whether
// the map may be embedded inline or must stay behind the click-to-load gate.
func (h siteHandler) getConsent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := readConsent(r)
		h.responder.WriteJSON(w, map[string]interface{}{
			"categories":  categories,
			"mediaEmbeds": contains(categories, consentCategoryMedia),
			"mapEmbedURL": h.mapEmbedURL,
		})
	}
}

// setConsent stores the approved categories in the consent cookie.
func (h siteHandler) setConsent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Categories []string `json:"categories"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.Malformed("consent payload"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     consentCookie,
			Value:    strings.Join(body.Categories, ","),
			Path:     "/",
			Expires:  time.Now().AddDate(1, 0, 0),
			SameSite: http.SameSiteLaxMode,
		})
		h.responder.WriteJSON(w, map[string]interface{}{
			"categories":  body.Categories,
			"mediaEmbeds": contains(body.Categories, consentCategoryMedia),
		})
	}
}

func readConsent(r *http.Request) []string {
	cookie, err := r.Cookie(consentCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	var categories []string
	for _, c := range strings.Split(cookie.Value, ",") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	return categories
}

func contains(list []string, want string) bool {
	for _, entry := range list {
		if entry == want {
			return true
		}
	}
	return false
}
