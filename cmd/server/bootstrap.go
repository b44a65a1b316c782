package main

import (
	"github.com/bomspace/backend/internal/config"
	"github.com/bomspace/backend/internal/handlers"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/internal/utils"
	"github.com/bomspace/backend/pkg/logger"
)

// appServices holds the stores and handlers wired at startup.
type appServices struct {
	records *store.RecordStore
	blobs   *store.BlobStore

	authHandler      *handlers.AuthHandler
	projectHandler   *handlers.ProjectHandler
	uploadHandler    *handlers.UploadHandler
	messageHandler   *handlers.MessageHandler
	dashboardHandler *handlers.DashboardHandler
	userHandler      *handlers.UserHandler
}

// bootstrap initializes the stores, ensures the data file exists and
// seeds the bootstrap superadmin.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	records := store.NewRecordStore(cfg.Store.DataFile)
	blobs, err := store.NewBlobStore(cfg.Store.UploadDir)
	if err != nil {
		logger.Fatalf("Failed to create blob store: %v", err)
	}

	// First load creates and persists the empty document.
	if _, err := records.Load(); err != nil {
		logger.Fatalf("Failed to open data file: %v", err)
	}

	authHandler := handlers.NewAuthHandler(records, cfg)
	if err := authHandler.SeedSuperadmin(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed superadmin user")
	}

	return &appServices{
		records:          records,
		blobs:            blobs,
		authHandler:      authHandler,
		projectHandler:   handlers.NewProjectHandler(records),
		uploadHandler:    handlers.NewUploadHandler(records, blobs),
		messageHandler:   handlers.NewMessageHandler(records),
		dashboardHandler: handlers.NewDashboardHandler(records),
		userHandler:      handlers.NewUserHandler(records),
	}
}
