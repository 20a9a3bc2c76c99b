package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mack-digital/mack-site/backend/admin"
	"github.com/mack-digital/mack-site/backend/api"
	"github.com/mack-digital/mack-site/backend/cache"
	"github.com/mack-digital/mack-site/backend/config"
	"github.com/mack-digital/mack-site/backend/database"
	"github.com/mack-digital/mack-site/backend/models"
	"github.com/mack-digital/mack-site/backend/services"
	"github.com/mack-digital/mack-site/backend/site"
	"github.com/mack-digital/mack-site/backend/store"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg := config.New()

	dbType := config.GetString(cfg, "DB_TYPE", "supa")

	// Build connection string based on DB_TYPE
	var connStr string
	fmt.Printf("DB_TYPE: %s\n", dbType)
	switch dbType {
	case "supa":
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(cfg, "SUPABASE_DB_HOST", ""),
			config.GetString(cfg, "SUPABASE_DB_USER", ""),
			config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(cfg, "SUPABASE_DB_NAME", ""),
			config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
		)
		fmt.Println("Connecting to Supabase database...")
	default:
		fmt.Println("Unsupported DB_TYPE. Exiting...")
		os.Exit(1)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.Project{}, &models.LegalContent{}); err != nil {
		fmt.Printf("Error migrating schema: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	// Local cache keeps the last known content available when the database
	// is unreachable.
	cachePath := config.GetString(cfg, "CACHE_PATH", "mack-cache.db")
	kv, err := cache.Open(cachePath)
	if err != nil {
		fmt.Printf("Error opening local cache: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	contentStore := store.New(store.NewRemote(currentDB), kv)

	// Warm load; degraded sources fall through to cached or default content,
	// so startup never blocks on the database.
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 15*time.Second)
	projects := contentStore.LoadProjects(warmCtx)
	legal := contentStore.LoadLegalContent(warmCtx)
	cancelWarm()

	appState := site.NewState(projects, legal)

	auth := admin.NewAuthenticator(
		config.GetString(cfg, "ADMIN_PASSWORD", ""),
		config.GetString(cfg, "ADMIN_PASSWORD_HASH", ""),
		[]byte(config.GetString(cfg, "ADMIN_JWT_SECRET", "")),
		time.Duration(config.GetInt(cfg, "ADMIN_SESSION_HOURS", 12))*time.Hour,
	)

	images := services.NewImageStore(context.Background(), cfg)
	workflow := admin.NewWorkflow(appState, contentStore, images, auth)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(api.Deps{
		State:    appState,
		Workflow: workflow,
		Auth:     auth,
		Config:   cfg,
	})
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
