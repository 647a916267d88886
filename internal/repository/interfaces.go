// internal/repository/interfaces.go
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sanctra-backend/internal/models"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*models.UserProfile, error)
	Update(ctx context.Context, userID string, req *models.UpdateProfileRequest) error
	AdjustCTY(ctx context.Context, userID string, amount int) error
	DeductCTY(ctx context.Context, userID string, amount int) error
}

type LedgerRepository interface {
	InsertClaim(ctx context.Context, userID, claimDate string, amount int) error
	GenerationCount(ctx context.Context, userID, date, kind string) (int, error)
	IncrementGenerationCount(ctx context.Context, userID, date, kind string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context, limit, offset int64) ([]models.Post, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	Conversation(ctx context.Context, userID, peerID string, limit int64) ([]models.Message, error)
	MarkRead(ctx context.Context, senderID, recipientID string) error
}
