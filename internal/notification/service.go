package notification

import (
	"context"
	"errors"

	"minecart-be/internal/logger"

	"go.uber.org/zap"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Service interface {
	Notify(ctx context.Context, userID uint, severity Severity, t Type, message string, data Data) error
	List(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Notify(ctx context.Context, userID uint, severity Severity, t Type, message string, data Data) error {
	log := logger.FromCtx(ctx)

	_, err := s.repo.Create(ctx, &Notification{
		UserID:   userID,
		Type:     t,
		Severity: severity,
		Message:  message,
		Data:     data,
	})
	if err != nil {
		log.Error("failed to persist notification",
			zap.Uint("user_id", userID),
			zap.String("type", string(t)),
			zap.Error(err),
		)
	}
	return err
}

func (s *service) List(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}
