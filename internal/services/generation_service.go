// internal/services/generation_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"sanctra-backend/internal/generation"
	"sanctra-backend/internal/metrics"
	"sanctra-backend/internal/models"
	"sanctra-backend/internal/repository"
	apperrors "sanctra-backend/pkg/errors"
)

// ObjectStore is the persistence half of a generation request: resolve the
// provider result into bytes, then park them somewhere durable.
type ObjectStore interface {
	Materialize(ctx context.Context, rawURL string) ([]byte, string, error)
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

type GenerationService interface {
	Generate(ctx context.Context, userID string, kind generation.Kind, prompt string) (*models.GenerateResponse, error)
	Costs() models.CostsResponse
}

type generationService struct {
	chains     map[generation.Kind]*generation.Chain
	profiles   repository.ProfileRepository
	ledger     repository.LedgerRepository
	store      ObjectStore
	costs      map[generation.Kind]int
	dailyLimit int
	logger     *zap.Logger
}

func NewGenerationService(
	chains map[generation.Kind]*generation.Chain,
	profiles repository.ProfileRepository,
	ledger repository.LedgerRepository,
	store ObjectStore,
	costs map[generation.Kind]int,
	dailyLimit int,
	logger *zap.Logger,
) GenerationService {
	return &generationService{
		chains:     chains,
		profiles:   profiles,
		ledger:     ledger,
		store:      store,
		costs:      costs,
		dailyLimit: dailyLimit,
		logger:     logger,
	}
}

func (s *generationService) Costs() models.CostsResponse {
	return models.CostsResponse{
		Image:  s.costs[generation.KindImage],
		Sound:  s.costs[generation.KindSound],
		Living: s.costs[generation.KindLiving],
	}
}

// Generate runs the full pipeline: validate, daily limit, balance gate,
// provider chain, persist, debit. The debit comes last so a failure
// anywhere above it never charges the caller.
func (s *generationService) Generate(ctx context.Context, userID string, kind generation.Kind, prompt string) (*models.GenerateResponse, error) {
	if err := generation.ValidatePrompt(kind, prompt); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, http.StatusBadRequest, err.Error())
	}

	today := time.Now().UTC().Format("2006-01-02")
	count, err := s.ledger.GenerationCount(ctx, userID, today, string(kind))
	if err != nil {
		return nil, err
	}
	if count >= s.dailyLimit {
		return nil, apperrors.NewDailyLimitError(string(kind))
	}

	cost := s.costs[kind]
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.CTYBalance < cost {
		return nil, apperrors.NewInsufficientCTYError()
	}

	m := metrics.Global()
	m.GenerationRequests.WithLabelValues(string(kind)).Inc()
	start := time.Now()

	result, quality, err := s.chains[kind].Run(ctx, prompt)
	if err != nil {
		var exhausted *generation.ExhaustedError
		if errors.As(err, &exhausted) {
			m.GenerationExhausted.WithLabelValues(string(kind)).Inc()
		}
		return nil, err
	}
	m.GenerationDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	data, _, err := s.store.Materialize(ctx, result.URL)
	if err != nil {
		return nil, fmt.Errorf("persist generated %s: %w", kind, err)
	}

	objectName := artifactName(userID, kind)
	publicURL, err := s.store.Upload(ctx, objectName, data, contentTypeFor(kind))
	if err != nil {
		return nil, fmt.Errorf("persist generated %s: %w", kind, err)
	}

	if err := s.profiles.DeductCTY(ctx, userID, cost); err != nil {
		return nil, fmt.Errorf("failed to deduct CTY: %w", err)
	}

	if err := s.ledger.IncrementGenerationCount(ctx, userID, today, string(kind)); err != nil {
		s.logger.Warn("failed to record generation count",
			zap.String("userId", userID),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}

	s.logger.Info("generation complete",
		zap.String("userId", userID),
		zap.String("kind", string(kind)),
		zap.String("provider", result.Provider),
		zap.String("quality", quality),
		zap.Int("cost", cost))

	response := &models.GenerateResponse{
		URL:      publicURL,
		Prompt:   prompt,
		Type:     string(kind),
		Provider: result.Provider,
		Quality:  quality,
	}
	if kind == generation.KindSound {
		response.Duration = 15
	}

	return response, nil
}

func artifactName(userID string, kind generation.Kind) string {
	now := time.Now().UnixMilli()
	switch kind {
	case generation.KindSound:
		return fmt.Sprintf("%s/ai_sound_%d.mp3", userID, now)
	case generation.KindLiving:
		return fmt.Sprintf("%s/ai_living_%d.mp4", userID, now)
	default:
		return fmt.Sprintf("%s/ai_%d.png", userID, now)
	}
}

func contentTypeFor(kind generation.Kind) string {
	switch kind {
	case generation.KindSound:
		return "audio/mpeg"
	case generation.KindLiving:
		return "video/mp4"
	default:
		return "image/png"
	}
}
