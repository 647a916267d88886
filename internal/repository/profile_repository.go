// internal/repository/profile_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"sanctra-backend/internal/models"
	apperrors "sanctra-backend/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type profileRepository struct {
	collection *mongo.Collection
}

func NewProfileRepository(collection *mongo.Collection) ProfileRepository {
	return &profileRepository{
		collection: collection,
	}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewAppError(apperrors.ErrConflict, 409, "profile already exists")
		}
		return err
	}

	profile.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewProfileNotFoundError()
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewProfileNotFoundError()
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, userID string, req *models.UpdateProfileRequest) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Username != "" {
		set["username"] = req.Username
	}
	if req.Bio != "" {
		set["bio"] = req.Bio
	}
	if req.AvatarURL != "" {
		set["avatarUrl"] = req.AvatarURL
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewAppError(apperrors.ErrConflict, 409, "username already taken")
		}
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.NewProfileNotFoundError()
	}
	return nil
}

func (r *profileRepository) AdjustCTY(ctx context.Context, userID string, amount int) error {
	update := bson.M{
		"$inc": bson.M{"ctyBalance": amount},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.NewProfileNotFoundError()
	}
	return nil
}

// DeductCTY reads the balance, checks it covers the amount, then
// decrements. The read and the decrement are separate operations, so two
// concurrent deductions can both pass the check; callers gate spending
// before generation, and the window is accepted.
func (r *profileRepository) DeductCTY(ctx context.Context, userID string, amount int) error {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if profile.CTYBalance < amount {
		return apperrors.NewInsufficientCTYError()
	}

	return r.AdjustCTY(ctx, userID, -amount)
}
