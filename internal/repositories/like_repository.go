package repositories

import (
	"context"

	"github.com/driftsocial/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	InsertLike(ctx context.Context, postID uint, userID string) (bool, error)
	DeleteLike(ctx context.Context, postID uint, userID string) (bool, error)
	GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error)
	HasUserLikedPost(ctx context.Context, postID uint, userID string) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// InsertLike inserts a like row unless one already exists for the pair. The
// insert is conditional on the (post_id, user_id) unique index, so two
// concurrent calls cannot both insert; exactly one observes inserted == true.
func (r *PostgresLikeRepository) InsertLike(ctx context.Context, postID uint, userID string) (bool, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	like := models.Like{PostID: postID, UserID: userID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteLike removes the like row for the pair and reports whether one existed
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, postID uint, userID string) (bool, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetLikesCountByPostID retrieves the count of likes for a specific post
func (r *PostgresLikeRepository) GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID uint, userID string) (bool, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
