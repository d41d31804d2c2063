package services

import (
	"context"
	"fmt"

	"github.com/driftsocial/backend/internal/models"
	"github.com/driftsocial/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// EnrichmentService turns raw post rows into feed entries: per-post like and
// comment counts plus the viewer's liked flag, joined with author display
// fields. Counts are recomputed from the store on every call so they always
// reflect its state at the instant of the read.
type EnrichmentService struct {
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
}

// NewEnrichmentService creates a new EnrichmentService
func NewEnrichmentService(likeRepo repositories.LikeRepository, commentRepo repositories.CommentRepository) *EnrichmentService {
	return &EnrichmentService{
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
	}
}

// EnrichPosts enriches posts in input order. The per-post lookups run
// concurrently; any single failure fails the whole call, there are no partial
// results. viewerID may be empty, in which case LikedByMe is always false.
func (s *EnrichmentService) EnrichPosts(ctx context.Context, posts []models.Post, viewerID string) ([]models.EnrichedPost, error) {
	enriched := make([]models.EnrichedPost, len(posts))

	g, ctx := errgroup.WithContext(ctx)
	for i, post := range posts {
		i, post := i, post
		g.Go(func() error {
			likes, err := s.likeRepository.GetLikesCountByPostID(ctx, post.ID)
			if err != nil {
				return fmt.Errorf("count likes for post %d: %w", post.ID, err)
			}
			comments, err := s.commentRepository.GetCommentsCountByPostID(ctx, post.ID)
			if err != nil {
				return fmt.Errorf("count comments for post %d: %w", post.ID, err)
			}
			liked := false
			if viewerID != "" {
				liked, err = s.likeRepository.HasUserLikedPost(ctx, post.ID, viewerID)
				if err != nil {
					return fmt.Errorf("check like for post %d: %w", post.ID, err)
				}
			}
			enriched[i] = models.EnrichedPost{
				Post:         post,
				Author:       models.DisplayAuthor(post.Author),
				LikeCount:    likes,
				CommentCount: comments,
				LikedByMe:    liked,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

// EnrichComments joins author display fields onto comment rows, preserving
// order. A missing profile falls back to the sentinel author, never an error.
func (s *EnrichmentService) EnrichComments(comments []models.Comment) []models.CommentWithAuthor {
	out := make([]models.CommentWithAuthor, len(comments))
	for i, comment := range comments {
		out[i] = models.CommentWithAuthor{
			Comment: comment,
			Author:  models.DisplayAuthor(comment.Author),
		}
	}
	return out
}
