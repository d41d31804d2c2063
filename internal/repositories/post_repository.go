package repositories

import (
	"context"

	"github.com/driftsocial/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
//
// UpdateOwned and DeleteOwned filter on author_id as well as id, so a missing
// post and a post owned by someone else are indistinguishable to the caller:
// both report zero affected rows.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPosts(ctx context.Context, authorID string, limit, offset int) ([]models.Post, error)
	UpdateOwned(ctx context.Context, id uint, authorID string, updates map[string]interface{}) (int64, error)
	DeleteOwned(ctx context.Context, id uint, authorID string) (int64, error)
	PostExists(ctx context.Context, id uint) (bool, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID with its author profile joined
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts retrieves posts newest-first with author profiles joined. An empty
// authorID returns the global feed; a non-empty one filters to that author.
func (r *PostgresPostRepository) GetPosts(ctx context.Context, authorID string, limit, offset int) ([]models.Post, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	q := r.db.WithContext(ctx).Preload("Author").Order("created_at DESC").Limit(limit).Offset(offset)
	if authorID != "" {
		q = q.Where("author_id = ?", authorID)
	}
	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateOwned applies a partial update to a post only if it belongs to
// authorID, and reports how many rows matched.
func (r *PostgresPostRepository) UpdateOwned(ctx context.Context, id uint, authorID string, updates map[string]interface{}) (int64, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// DeleteOwned deletes a post only if it belongs to authorID, and reports how
// many rows were removed. Zero is not an error.
func (r *PostgresPostRepository) DeleteOwned(ctx context.Context, id uint, authorID string) (int64, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	res := r.db.WithContext(ctx).Where("id = ? AND author_id = ?", id, authorID).Delete(&models.Post{})
	return res.RowsAffected, res.Error
}

// PostExists checks whether a post with the given id exists
func (r *PostgresPostRepository) PostExists(ctx context.Context, id uint) (bool, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
