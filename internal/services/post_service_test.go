package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"sanctra-backend/internal/models"
	apperrors "sanctra-backend/pkg/errors"
)

type fakePostRepo struct {
	posts   map[primitive.ObjectID]*models.Post
	deleted []primitive.ObjectID
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]*models.Post{}}
}

func (f *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) List(ctx context.Context, limit, offset int64) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, apperrors.NewPostNotFoundError()
	}
	return post, nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.posts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestPostService(repo *fakePostRepo) PostService {
	profiles := &creatingProfileRepo{}
	profiles.profile = &models.UserProfile{UserID: "user-1", Username: "moss_keeper", CTYBalance: 50}
	profileSvc := NewProfileService(profiles, &fakeLedgerRepo{}, 50, 50, zap.NewNop())
	return NewPostService(repo, profileSvc, zap.NewNop())
}

func TestCreatePost_FillsUsernameFromProfile(t *testing.T) {
	repo := newFakePostRepo()
	svc := newTestPostService(repo)

	post, err := svc.CreatePost(context.Background(), "user-1", &models.CreatePostRequest{
		Content: "the garden is quiet tonight",
	})
	require.NoError(t, err)
	assert.Equal(t, "moss_keeper", post.Username)
	assert.False(t, post.ID.IsZero())
}

func TestCreatePost_RejectsEmptyAndBadMediaType(t *testing.T) {
	svc := newTestPostService(newFakePostRepo())

	_, err := svc.CreatePost(context.Background(), "user-1", &models.CreatePostRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrValidation))

	_, err = svc.CreatePost(context.Background(), "user-1", &models.CreatePostRequest{
		MediaURL:  "https://cdn.example.com/x.gif",
		MediaType: "gif",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrValidation))
}

func TestDeletePost_OwnerOnly(t *testing.T) {
	repo := newFakePostRepo()
	svc := newTestPostService(repo)

	post, err := svc.CreatePost(context.Background(), "user-1", &models.CreatePostRequest{Content: "mine"})
	require.NoError(t, err)

	err = svc.DeletePost(context.Background(), "user-2", post.ID.Hex())
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrForbidden))
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.DeletePost(context.Background(), "user-1", post.ID.Hex()))
	assert.Len(t, repo.deleted, 1)
}

func TestDeletePost_InvalidID(t *testing.T) {
	svc := newTestPostService(newFakePostRepo())

	err := svc.DeletePost(context.Background(), "user-1", "not-an-object-id")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrValidation))
}
