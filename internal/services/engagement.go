package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/driftsocial/backend/internal/repositories"
)

// ErrPostNotFound reports that the target post does not exist.
var ErrPostNotFound = errors.New("post not found")

// EngagementService applies the like/unlike transition for a (post, user)
// pair. The transition is a single conditional insert keyed on the likes
// table's (post_id, user_id) unique index: if the insert lands the user just
// liked the post, if it conflicts the existing like is removed. Two
// concurrent toggles for the same pair can therefore never both insert.
type EngagementService struct {
	postRepository repositories.PostRepository
	likeRepository repositories.LikeRepository
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(postRepo repositories.PostRepository, likeRepo repositories.LikeRepository) *EngagementService {
	return &EngagementService{
		postRepository: postRepo,
		likeRepository: likeRepo,
	}
}

// ToggleLike flips the liked state for the pair and returns the resulting
// state. Returns ErrPostNotFound when the target post does not exist, so no
// orphaned like row can be created.
func (s *EngagementService) ToggleLike(ctx context.Context, postID uint, userID string) (bool, error) {
	exists, err := s.postRepository.PostExists(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("check post %d: %w", postID, err)
	}
	if !exists {
		return false, ErrPostNotFound
	}

	inserted, err := s.likeRepository.InsertLike(ctx, postID, userID)
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}
	if inserted {
		return true, nil
	}

	// A like already existed, remove it. If a concurrent toggle deleted it
	// first the outcome is still unliked.
	if _, err := s.likeRepository.DeleteLike(ctx, postID, userID); err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return false, nil
}
