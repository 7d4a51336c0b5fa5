package service

import (
	"context"
	"fmt"

	"github.com/rentora/rentora-api/internal/domain"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/pkg/logger"
)

type MessageService interface {
	Send(ctx context.Context, senderID int64, req *domain.SendMessageRequest) (*domain.Message, error)
	ListReceived(ctx context.Context, userID int64) ([]domain.InboxMessage, error)
	ListSent(ctx context.Context, userID int64) ([]domain.OutboxMessage, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

func (s *messageService) Send(ctx context.Context, senderID int64, req *domain.SendMessageRequest) (*domain.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ReceiverID == senderID {
		return nil, fmt.Errorf("%w: cannot send a message to yourself", domain.ErrValidation)
	}

	receiver, err := s.userRepo.FindByID(ctx, req.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to find receiver: %w", err)
	}
	if receiver == nil {
		return nil, fmt.Errorf("%w: receiver not found", domain.ErrNotFound)
	}

	message, err := s.messageRepo.Create(ctx, senderID, req.ReceiverID, req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	logger.InfoContext(ctx, "Message sent", "message_id", message.ID, "receiver_id", req.ReceiverID)
	return message, nil
}

func (s *messageService) ListReceived(ctx context.Context, userID int64) ([]domain.InboxMessage, error) {
	messages, err := s.messageRepo.ListReceived(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received messages: %w", err)
	}
	return messages, nil
}

func (s *messageService) ListSent(ctx context.Context, userID int64) ([]domain.OutboxMessage, error) {
	messages, err := s.messageRepo.ListSent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent messages: %w", err)
	}
	return messages, nil
}
