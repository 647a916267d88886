// internal/repository/ledger_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	apperrors "sanctra-backend/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ledgerRepository tracks the daily CTY claim and the per-kind daily
// generation counters.
type ledgerRepository struct {
	claims *mongo.Collection
	counts *mongo.Collection
}

func NewLedgerRepository(claims, counts *mongo.Collection) LedgerRepository {
	return &ledgerRepository{
		claims: claims,
		counts: counts,
	}
}

func (r *ledgerRepository) InsertClaim(ctx context.Context, userID, claimDate string, amount int) error {
	_, err := r.claims.InsertOne(ctx, bson.M{
		"userId":    userID,
		"claimDate": claimDate,
		"amount":    amount,
		"createdAt": time.Now().UTC(),
	})
	if err != nil {
		// The unique userId+claimDate index is the once-per-day guard.
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewAlreadyClaimedError()
		}
		return err
	}
	return nil
}

type generationCountDoc struct {
	UserID      string `bson:"userId"`
	Date        string `bson:"date"`
	ImageCount  int    `bson:"imageCount"`
	SoundCount  int    `bson:"soundCount"`
	LivingCount int    `bson:"livingCount"`
}

func countField(kind string) string {
	return kind + "Count"
}

func (r *ledgerRepository) GenerationCount(ctx context.Context, userID, date, kind string) (int, error) {
	var doc generationCountDoc
	err := r.counts.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}

	switch kind {
	case "image":
		return doc.ImageCount, nil
	case "sound":
		return doc.SoundCount, nil
	case "living":
		return doc.LivingCount, nil
	default:
		return 0, nil
	}
}

func (r *ledgerRepository) IncrementGenerationCount(ctx context.Context, userID, date, kind string) error {
	filter := bson.M{"userId": userID, "date": date}
	update := bson.M{
		"$inc": bson.M{countField(kind): 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}

	_, err := r.counts.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
