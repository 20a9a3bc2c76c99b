package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/mack-digital/mack-site/backend/admin"
	"github.com/mack-digital/mack-site/backend/config"
	"github.com/mack-digital/mack-site/backend/site"
)

// mapEmbedDefault points at the agency address; it is only rendered inline
// once the visitor consented to media embeds.
const mapEmbedDefault = "https://www.google.com/maps?q=Bruchsaler+Stra%C3%9Fe+4a,+74918+Angelbachtal&output=embed"

type Server struct {
	*http.Server
	startupTime time.Time
}

// Deps bundles everything the routes need.
type Deps struct {
	State    *site.State
	Workflow *admin.Workflow
	Auth     *admin.Authenticator
	Config   map[string]string
}

func NewServer(deps Deps) (Server, error) {
	c := deps.Config

	// Ensure correct port is set
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(deps, withStartupTime(startupTime))

	// Get timeout values from config with sensible defaults
	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	startupTime time.Time
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Deps, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	// CORS for the rendering host
	acceptedOrigins := strings.Split(config.GetString(deps.Config, "ACCEPTED_ORIGINS", "*"), ",")
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	splashMillis := config.GetInt(deps.Config, "MIN_SPLASH_MILLIS", 1500)
	mapEmbedURL := config.GetString(deps.Config, "MAP_EMBED_URL", mapEmbedDefault)

	handlers := initializeHandlers(deps, splashMillis, mapEmbedURL)
	authMiddleware := newAuthMiddleware(deps.Auth)

	setupSiteRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
