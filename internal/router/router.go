package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/driftsocial/backend/internal/handlers"
	"github.com/driftsocial/backend/internal/middleware"
	"github.com/driftsocial/backend/internal/models"
	"github.com/driftsocial/backend/internal/repositories"
	"github.com/driftsocial/backend/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = HTTPErrorHandler
	log.Println("Global middleware configured.")
}

// HTTPErrorHandler renders every failure as {"error": "..."}. Messages of 5xx
// errors are masked; the cause is logged server-side only.
func HTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	if code >= http.StatusInternalServerError {
		log.Printf("request failed: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		message = "internal server error"
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": message})
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, verifier middleware.TokenVerifier, uploader services.Uploader) error {
	// Profiles are provisioned by the identity layer; the migration here only
	// ensures the read-side tables this service owns.
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	); err != nil {
		return err
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// --- Repositories ---
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	profileRepo := repositories.NewPostgresProfileRepository(db)

	// --- Services ---
	enrichment := services.NewEnrichmentService(likeRepo, commentRepo)
	engagement := services.NewEngagementService(postRepo, likeRepo)

	requireAuth := middleware.RequireAuth(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Feed routes
	feedHandler := handlers.NewFeedHandler(postRepo, enrichment)
	e.GET("/posts", feedHandler.GetFeed, optionalAuth)
	e.GET("/posts/:id", feedHandler.GetPost, optionalAuth)

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, uploader)
	e.POST("/posts", postHandler.CreatePost, requireAuth)
	e.POST("/posts/upload", postHandler.CreatePostWithImage, requireAuth, eMiddleware.BodyLimit("6M"))
	e.PUT("/posts/:id", postHandler.UpdatePost, requireAuth)
	e.DELETE("/posts/:id", postHandler.DeletePost, requireAuth)

	// Like routes
	likeHandler := handlers.NewLikeHandler(engagement)
	e.POST("/posts/:id/like", likeHandler.ToggleLike, requireAuth)

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, enrichment)
	e.GET("/posts/:id/comments", commentHandler.GetCommentsByPostID)
	e.POST("/posts/:id/comments", commentHandler.CreateComment, requireAuth)

	// Profile routes
	profileHandler := handlers.NewProfileHandler(profileRepo)
	e.GET("/profile", profileHandler.GetProfile, requireAuth)

	log.Println("All routes configured.")
	return nil
}
