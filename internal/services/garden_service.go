// internal/services/garden_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sanctra-backend/internal/metrics"
	"sanctra-backend/internal/models"
	apperrors "sanctra-backend/pkg/errors"
)

const (
	whisperLifetime   = 90 * time.Second
	whisperCooldown   = 30 * time.Second
	presenceWindow    = 60 * time.Second
	maxWhisperLength  = 100
	whispersKey       = "garden:whispers"
	presenceKey       = "garden:presence"
	cooldownKeyPrefix = "garden:cooldown:"
)

// Aliases shown in the Garden instead of usernames.
var softAliases = []string{
	"wanderer", "seeker", "dreamer", "listener", "observer",
	"traveler", "pilgrim", "guardian", "keeper", "sage",
	"spirit", "ember", "whisper", "shadow", "moonlight",
	"starling", "reed", "willow", "cedar", "moss",
}

type GardenService interface {
	Join(ctx context.Context, userID string) (*models.GardenJoinResponse, error)
	Heartbeat(ctx context.Context, userID string) (int, error)
	PostWhisper(ctx context.Context, userID, alias, content string) (*models.Whisper, error)
	ListWhispers(ctx context.Context) ([]models.Whisper, error)
}

// gardenService keeps all Garden state in redis: whispers live in a sorted
// set scored by expiry, presence in a sorted set scored by last heartbeat,
// and the send cooldown is a SETNX key with TTL.
type gardenService struct {
	rdb    *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

func NewGardenService(rdb *redis.Client, logger *zap.Logger) GardenService {
	return &gardenService{
		rdb:    rdb,
		logger: logger,
		now:    time.Now,
	}
}

func (s *gardenService) Join(ctx context.Context, userID string) (*models.GardenJoinResponse, error) {
	alias := softAliases[rand.Intn(len(softAliases))]

	presence, err := s.touchPresence(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.GardenJoinResponse{
		Alias:    alias,
		Presence: presence,
	}, nil
}

func (s *gardenService) Heartbeat(ctx context.Context, userID string) (int, error) {
	return s.touchPresence(ctx, userID)
}

func (s *gardenService) touchPresence(ctx context.Context, userID string) (int, error) {
	now := s.now()

	if err := s.rdb.ZAdd(ctx, presenceKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: userID,
	}).Err(); err != nil {
		return 0, fmt.Errorf("garden presence: %w", err)
	}

	cutoff := strconv.FormatInt(now.Add(-presenceWindow).UnixMilli(), 10)
	if err := s.rdb.ZRemRangeByScore(ctx, presenceKey, "-inf", cutoff).Err(); err != nil {
		return 0, fmt.Errorf("garden presence: %w", err)
	}

	count, err := s.rdb.ZCard(ctx, presenceKey).Result()
	if err != nil {
		return 0, fmt.Errorf("garden presence: %w", err)
	}
	return int(count), nil
}

func (s *gardenService) PostWhisper(ctx context.Context, userID, alias, content string) (*models.Whisper, error) {
	if len(content) > maxWhisperLength {
		content = content[:maxWhisperLength]
	}

	ok, err := s.rdb.SetNX(ctx, cooldownKeyPrefix+userID, "1", whisperCooldown).Result()
	if err != nil {
		return nil, fmt.Errorf("garden cooldown: %w", err)
	}
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCooldownActive, 429,
			"The garden asks for a moment of quiet between whispers")
	}

	now := s.now()
	whisper := &models.Whisper{
		ID:        uuid.NewString(),
		Alias:     alias,
		Content:   content,
		CreatedAt: now,
		ExpiresAt: now.Add(whisperLifetime),
	}

	payload, err := json.Marshal(whisper)
	if err != nil {
		return nil, fmt.Errorf("garden whisper: %w", err)
	}

	if err := s.rdb.ZAdd(ctx, whispersKey, redis.Z{
		Score:  float64(whisper.ExpiresAt.UnixMilli()),
		Member: string(payload),
	}).Err(); err != nil {
		return nil, fmt.Errorf("garden whisper: %w", err)
	}

	metrics.Global().WhispersPosted.Inc()
	return whisper, nil
}

// ListWhispers prunes expired entries and returns what is still floating.
func (s *gardenService) ListWhispers(ctx context.Context) ([]models.Whisper, error) {
	now := strconv.FormatInt(s.now().UnixMilli(), 10)

	if err := s.rdb.ZRemRangeByScore(ctx, whispersKey, "-inf", "("+now).Err(); err != nil {
		return nil, fmt.Errorf("garden whispers: %w", err)
	}

	raw, err := s.rdb.ZRangeByScore(ctx, whispersKey, &redis.ZRangeBy{
		Min: now,
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("garden whispers: %w", err)
	}

	whispers := make([]models.Whisper, 0, len(raw))
	for _, entry := range raw {
		var w models.Whisper
		if err := json.Unmarshal([]byte(entry), &w); err != nil {
			s.logger.Warn("dropping malformed whisper", zap.Error(err))
			continue
		}
		whispers = append(whispers, w)
	}

	return whispers, nil
}
