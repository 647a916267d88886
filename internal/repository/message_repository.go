// internal/repository/message_repository.go
package repository

import (
	"context"
	"time"

	"sanctra-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type messageRepository struct {
	collection *mongo.Collection
}

func NewMessageRepository(collection *mongo.Collection) MessageRepository {
	return &messageRepository{
		collection: collection,
	}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	message.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return err
	}

	message.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *messageRepository) Conversation(ctx context.Context, userID, peerID string, limit int64) ([]models.Message, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"senderId": userID, "recipientId": peerID},
			{"senderId": peerID, "recipientId": userID},
		},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, senderID, recipientID string) error {
	filter := bson.M{
		"senderId":    senderID,
		"recipientId": recipientID,
		"readAt":      bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{"readAt": time.Now().UTC()}}

	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}
