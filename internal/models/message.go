// internal/models/message.go
package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SenderID    string             `bson:"senderId" json:"senderId"`
	RecipientID string             `bson:"recipientId" json:"recipientId"`
	Content     string             `bson:"content" json:"content"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	ReadAt      *time.Time         `bson:"readAt,omitempty" json:"readAt,omitempty"`
}

type SendMessageRequest struct {
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
}

func (r *SendMessageRequest) Validate() error {
	if r.RecipientID == "" {
		return errors.New("recipientId is required")
	}
	if r.Content == "" {
		return errors.New("content is required")
	}
	if len(r.Content) > 2000 {
		return errors.New("content too long (max 2000 characters)")
	}
	return nil
}
