// internal/services/message_service.go
package services

import (
	"context"

	"go.uber.org/zap"

	"sanctra-backend/internal/models"
	"sanctra-backend/internal/repository"
	apperrors "sanctra-backend/pkg/errors"
)

type MessageService interface {
	SendMessage(ctx context.Context, senderID string, req *models.SendMessageRequest) (*models.Message, error)
	GetConversation(ctx context.Context, userID, peerID string) ([]models.Message, error)
}

type messageService struct {
	messages repository.MessageRepository
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

func NewMessageService(messages repository.MessageRepository, profiles repository.ProfileRepository, logger *zap.Logger) MessageService {
	return &messageService{
		messages: messages,
		profiles: profiles,
		logger:   logger,
	}
}

func (s *messageService) SendMessage(ctx context.Context, senderID string, req *models.SendMessageRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, 400, "validation failed", err.Error())
	}
	if req.RecipientID == senderID {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, 400, "cannot message yourself")
	}

	// The recipient must exist before we accept the message.
	if _, err := s.profiles.GetByUserID(ctx, req.RecipientID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	s.logger.Info("message sent",
		zap.String("senderId", senderID),
		zap.String("recipientId", req.RecipientID))

	return message, nil
}

// GetConversation returns both directions of a thread and marks the peer's
// messages to the caller as read.
func (s *messageService) GetConversation(ctx context.Context, userID, peerID string) ([]models.Message, error) {
	messages, err := s.messages.Conversation(ctx, userID, peerID, 100)
	if err != nil {
		return nil, err
	}

	if err := s.messages.MarkRead(ctx, peerID, userID); err != nil {
		s.logger.Warn("failed to mark messages read",
			zap.String("userId", userID),
			zap.String("peerId", peerID),
			zap.Error(err))
	}

	return messages, nil
}
