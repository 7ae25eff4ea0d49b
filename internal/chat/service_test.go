package chat

import (
	"context"
	"strings"
	"testing"

	"minecart-be/internal/notification"
	"minecart-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveMessage(ctx context.Context, msg *Message) (*Message, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Message), args.Error(1)
}

func (m *MockRepository) History(ctx context.Context, roomUserID uint, limit int) ([]*Message, error) {
	args := m.Called(ctx, roomUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Message), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID uint, severity notification.Severity, t notification.Type, message string, data notification.Data) error {
	args := m.Called(ctx, userID, severity, t, message, data)
	return args.Error(0)
}

func (m *MockNotifier) List(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotifier) MarkRead(ctx context.Context, userID, notificationID uint) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func TestSendMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := new(MockNotifier)
		svc := NewService(repo, notifier)

		repo.On("SaveMessage", mock.Anything, mock.AnythingOfType("*chat.Message")).
			Return(&Message{ID: 1, RoomUserID: 7, SenderID: 7, Body: "preciso de ajuda"}, nil)

		msg, err := svc.SendMessage(context.Background(), 7, 7, utils.RoleBuyer, "  preciso de ajuda  ")

		assert.NoError(t, err)
		assert.Equal(t, uint(1), msg.ID)
		// buyer messages do not notify anyone
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AgentReplyNotifiesBuyer", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := new(MockNotifier)
		svc := NewService(repo, notifier)

		repo.On("SaveMessage", mock.Anything, mock.Anything).
			Return(&Message{ID: 2, RoomUserID: 7, SenderID: 99, Body: "olá"}, nil)
		notifier.On("Notify", mock.Anything, uint(7),
			notification.SeverityInfo, notification.TypeChatMessage,
			mock.Anything, notification.ChatMessageData{FromUserID: 99, Preview: "olá"}).
			Return(nil)

		_, err := svc.SendMessage(context.Background(), 7, 99, utils.RoleSupport, "olá")

		assert.NoError(t, err)
		notifier.AssertExpectations(t)
	})

	t.Run("PreviewKeepsValidUTF8", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := new(MockNotifier)
		svc := NewService(repo, notifier)

		// 100 two-byte runes: a byte-indexed cut at 80 would land mid-rune.
		body := strings.Repeat("é", 100)
		repo.On("SaveMessage", mock.Anything, mock.Anything).
			Return(&Message{ID: 3, RoomUserID: 7, SenderID: 99, Body: body}, nil)
		notifier.On("Notify", mock.Anything, uint(7),
			notification.SeverityInfo, notification.TypeChatMessage,
			mock.Anything, notification.ChatMessageData{FromUserID: 99, Preview: strings.Repeat("é", 80)}).
			Return(nil)

		_, err := svc.SendMessage(context.Background(), 7, 99, utils.RoleSupport, body)

		assert.NoError(t, err)
		notifier.AssertExpectations(t)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockNotifier))
		_, err := svc.SendMessage(context.Background(), 7, 0, utils.RoleBuyer, "oi")
		assert.ErrorIs(t, err, ErrUserNotAuthenticated)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockNotifier))
		_, err := svc.SendMessage(context.Background(), 7, 7, utils.RoleBuyer, "   ")
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("TooLong", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockNotifier))
		_, err := svc.SendMessage(context.Background(), 7, 7, utils.RoleBuyer, strings.Repeat("a", maxMessageLen+1))
		assert.ErrorIs(t, err, ErrMessageTooLong)
	})
}

func TestHistory(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockNotifier))

	repo.On("History", mock.Anything, uint(7), 50).
		Return([]*Message{{ID: 1, Body: "oi"}}, nil)

	msgs, err := svc.History(context.Background(), 7, 50)

	assert.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestHistoryUnauthenticated(t *testing.T) {
	svc := NewService(new(MockRepository), new(MockNotifier))
	_, err := svc.History(context.Background(), 0, 50)
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)
}
