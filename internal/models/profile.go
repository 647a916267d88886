// internal/models/profile.go
package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserProfile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           string             `bson:"userId" json:"userId"`
	Username         string             `bson:"username" json:"username"`
	Bio              string             `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL        string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CTYBalance       int                `bson:"ctyBalance" json:"ctyBalance"`
	MusicUploadsUsed int                `bson:"musicUploadsUsed" json:"musicUploadsUsed"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Username != "" {
		if len(r.Username) < 3 || len(r.Username) > 30 {
			return errors.New("username must be between 3 and 30 characters")
		}
		if strings.ContainsAny(r.Username, " /\\") {
			return errors.New("username must not contain spaces or slashes")
		}
	}
	if len(r.Bio) > 300 {
		return errors.New("bio too long (max 300 characters)")
	}
	return nil
}
