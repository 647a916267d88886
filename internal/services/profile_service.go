// internal/services/profile_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sanctra-backend/internal/models"
	"sanctra-backend/internal/repository"
	apperrors "sanctra-backend/pkg/errors"
)

type ProfileService interface {
	GetOrCreate(ctx context.Context, userID string) (*models.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.UserProfile, error)
	ClaimDaily(ctx context.Context, userID string) (*models.ClaimResponse, error)
}

type profileService struct {
	profiles        repository.ProfileRepository
	ledger          repository.LedgerRepository
	startingBalance int
	dailyClaim      int
	logger          *zap.Logger
}

func NewProfileService(profiles repository.ProfileRepository, ledger repository.LedgerRepository, startingBalance, dailyClaim int, logger *zap.Logger) ProfileService {
	return &profileService{
		profiles:        profiles,
		ledger:          ledger,
		startingBalance: startingBalance,
		dailyClaim:      dailyClaim,
		logger:          logger,
	}
}

// GetOrCreate returns the caller's profile, creating one with a starting
// balance on the first authenticated touch.
func (s *profileService) GetOrCreate(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !apperrors.IsErrorType(err, apperrors.ErrProfileNotFound) {
		return nil, err
	}

	profile = &models.UserProfile{
		UserID:     userID,
		Username:   "wanderer_" + uuid.NewString()[:8],
		CTYBalance: s.startingBalance,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		// Lost a creation race; the other request's profile wins.
		if apperrors.IsErrorType(err, apperrors.ErrConflict) {
			return s.profiles.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	s.logger.Info("profile created",
		zap.String("userId", userID),
		zap.String("username", profile.Username))

	return profile, nil
}

func (s *profileService) GetByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	return s.profiles.GetByUsername(ctx, username)
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.UserProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, 400, "validation failed", err.Error())
	}

	if err := s.profiles.Update(ctx, userID, req); err != nil {
		return nil, err
	}

	return s.profiles.GetByUserID(ctx, userID)
}

// ClaimDaily grants the daily CTY allowance at most once per UTC day.
func (s *profileService) ClaimDaily(ctx context.Context, userID string) (*models.ClaimResponse, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Format("2006-01-02")
	if err := s.ledger.InsertClaim(ctx, userID, today, s.dailyClaim); err != nil {
		return nil, err
	}

	if err := s.profiles.AdjustCTY(ctx, userID, s.dailyClaim); err != nil {
		return nil, err
	}

	return &models.ClaimResponse{
		Message: fmt.Sprintf("Claimed %d CTY!", s.dailyClaim),
		Amount:  s.dailyClaim,
		Balance: profile.CTYBalance + s.dailyClaim,
	}, nil
}
