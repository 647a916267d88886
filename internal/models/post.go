// internal/models/post.go
package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	Username  string             `bson:"username" json:"username"`
	Content   string             `bson:"content,omitempty" json:"content,omitempty"`
	MediaURL  string             `bson:"mediaUrl,omitempty" json:"mediaUrl,omitempty"`
	MediaType string             `bson:"mediaType,omitempty" json:"mediaType,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type CreatePostRequest struct {
	Content   string `json:"content,omitempty"`
	MediaURL  string `json:"mediaUrl,omitempty"`
	MediaType string `json:"mediaType,omitempty"`
}

var validMediaTypes = map[string]bool{
	"image":  true,
	"video":  true,
	"audio":  true,
	"living": true,
}

func (r *CreatePostRequest) Validate() error {
	if r.Content == "" && r.MediaURL == "" {
		return errors.New("post needs content or media")
	}
	if len(r.Content) > 1000 {
		return errors.New("content too long (max 1000 characters)")
	}
	if r.MediaURL != "" && !validMediaTypes[r.MediaType] {
		return errors.New("mediaType must be one of: image, video, audio, living")
	}
	return nil
}
