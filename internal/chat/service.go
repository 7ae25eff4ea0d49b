package chat

import (
	"context"
	"strings"

	"minecart-be/internal/logger"
	"minecart-be/internal/notification"
	"minecart-be/internal/utils"

	"go.uber.org/zap"
)

const (
	maxMessageLen = 2000
	previewRunes  = 80
)

// truncateRunes cuts on a rune boundary so accented text never turns into
// invalid UTF-8.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

type Service interface {
	SendMessage(ctx context.Context, roomUserID, senderID uint, senderRole, body string) (*Message, error)
	History(ctx context.Context, roomUserID uint, limit int) ([]*Message, error)
}

type service struct {
	repo     Repository
	notifier notification.Service
}

func NewService(repo Repository, notifier notification.Service) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) SendMessage(ctx context.Context, roomUserID, senderID uint, senderRole, body string) (*Message, error) {
	if senderID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}
	if len(body) > maxMessageLen {
		return nil, ErrMessageTooLong
	}

	msg, err := s.repo.SaveMessage(ctx, &Message{
		RoomUserID: roomUserID,
		SenderID:   senderID,
		SenderRole: senderRole,
		Body:       body,
	})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to save chat message",
			zap.Uint("room_user_id", roomUserID),
			zap.Error(err),
		)
		return nil, err
	}

	// Agent replies land as a notification so the buyer sees them even when
	// the socket is closed.
	if senderRole == utils.RoleSupport && senderID != roomUserID {
		preview := truncateRunes(body, previewRunes)
		_ = s.notifier.Notify(ctx, roomUserID,
			notification.SeverityInfo, notification.TypeChatMessage,
			"Nova mensagem do suporte.",
			notification.ChatMessageData{FromUserID: senderID, Preview: preview},
		)
	}

	return msg, nil
}

func (s *service) History(ctx context.Context, roomUserID uint, limit int) ([]*Message, error) {
	if roomUserID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.History(ctx, roomUserID, limit)
}
