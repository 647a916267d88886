// internal/models/whisper.go
package models

import (
	"errors"
	"strings"
	"time"
)

// Whisper is an ephemeral Garden message. It lives in redis only and
// disappears when its expiry passes; nothing is persisted.
type Whisper struct {
	ID        string    `json:"id"`
	Alias     string    `json:"alias"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type PostWhisperRequest struct {
	Content string `json:"content"`
	Alias   string `json:"alias,omitempty"`
}

func (r *PostWhisperRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("whisper is empty")
	}
	if len(r.Content) > 100 {
		return errors.New("whisper too long (max 100 characters)")
	}
	return nil
}

type GardenJoinResponse struct {
	Alias    string `json:"alias"`
	Presence int    `json:"presence"`
}

type GardenPresenceResponse struct {
	Presence int `json:"presence"`
}
