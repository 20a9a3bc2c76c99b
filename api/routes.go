package api

import (
	"github.com/go-chi/chi/v5"
)

// setupSiteRoutes wires the public site endpoints and the token-gated admin
// endpoints.
func setupSiteRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/bootstrap", handlers.siteHandler.bootstrap())
		r.Get("/projects", handlers.siteHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.siteHandler.getProject())
		r.Get("/navigation/{page}", handlers.siteHandler.resolvePage())
		r.Get("/legal", handlers.siteHandler.getLegalContent())
		r.Post("/contact", handlers.siteHandler.submitContact())
		r.Get("/consent", handlers.siteHandler.getConsent())
		r.Post("/consent", handlers.siteHandler.setConsent())

		r.Post("/admin/login", handlers.adminHandler.login())
	})

	// Admin routes behind the session token
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Get("/admin/state", handlers.adminHandler.overview())
		r.Post("/admin/logout", handlers.adminHandler.logout())

		r.Post("/admin/projects/new", handlers.adminHandler.beginCreate())
		r.Post("/admin/project/{projectID}/edit", handlers.adminHandler.beginEdit())
		r.Delete("/admin/project/{projectID}", handlers.adminHandler.deleteProject())

		r.Get("/admin/draft", handlers.adminHandler.getDraft())
		r.Put("/admin/draft", handlers.adminHandler.updateDraft())
		r.Post("/admin/draft/images", handlers.adminHandler.uploadImage())
		r.Put("/admin/draft/preview-image", handlers.adminHandler.setPreviewImage())
		r.Delete("/admin/draft/images/{index}", handlers.adminHandler.removeImage())
		r.Post("/admin/draft/save", handlers.adminHandler.saveDraft())
		r.Post("/admin/draft/cancel", handlers.adminHandler.cancelDraft())

		r.Post("/admin/legal/edit", handlers.adminHandler.beginLegalEdit())
		r.Put("/admin/legal", handlers.adminHandler.updateLegal())
		r.Post("/admin/legal/save", handlers.adminHandler.saveLegal())
	})
}
