// internal/services/post_service.go
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"sanctra-backend/internal/models"
	"sanctra-backend/internal/repository"
	apperrors "sanctra-backend/pkg/errors"
)

type PostService interface {
	CreatePost(ctx context.Context, userID string, req *models.CreatePostRequest) (*models.Post, error)
	ListPosts(ctx context.Context, limit, offset int64) ([]models.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
}

type postService struct {
	posts    repository.PostRepository
	profiles ProfileService
	logger   *zap.Logger
}

func NewPostService(posts repository.PostRepository, profiles ProfileService, logger *zap.Logger) PostService {
	return &postService{
		posts:    posts,
		profiles: profiles,
		logger:   logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID string, req *models.CreatePostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, 400, "validation failed", err.Error())
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:    userID,
		Username:  profile.Username,
		Content:   req.Content,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		zap.String("userId", userID),
		zap.String("postId", post.ID.Hex()),
		zap.String("mediaType", post.MediaType))

	return post, nil
}

func (s *postService) ListPosts(ctx context.Context, limit, offset int64) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.posts.List(ctx, limit, offset)
}

// DeletePost removes a post. Only the author may delete their own posts.
func (s *postService) DeletePost(ctx context.Context, userID, postID string) error {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrValidation, 400, "invalid post id")
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperrors.NewAppError(apperrors.ErrForbidden, 403, "you can only delete your own posts")
	}

	return s.posts.Delete(ctx, id)
}
