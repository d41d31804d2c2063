package main

import (
	"context"
	"log"

	"github.com/driftsocial/backend/internal/router"
	"github.com/driftsocial/backend/internal/services"
	"github.com/driftsocial/backend/pkg/config"
	"github.com/driftsocial/backend/pkg/firebase"
	"github.com/driftsocial/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	// Initialize Firebase (identity verification + object storage)
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	uploader := services.NewStorageUploader(firebaseApp.Bucket, cfg.StorageBucket)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db, firebaseApp.AuthClient, uploader); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
