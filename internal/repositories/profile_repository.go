package repositories

import (
	"context"

	"github.com/driftsocial/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations.
// Profiles are owned by the identity layer; there is no write path here.
type ProfileRepository interface {
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// GetProfileByID retrieves a profile by its id (the Firebase UID)
func (r *PostgresProfileRepository) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
