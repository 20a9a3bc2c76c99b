package api

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Deps, splashMillis int, mapEmbedURL string) *routeHandlers {
	return &routeHandlers{
		siteHandler:  newSiteHandler(deps.State, deps.Config, splashMillis, mapEmbedURL),
		adminHandler: newAdminHandler(deps.Workflow, deps.Auth),
	}
}
