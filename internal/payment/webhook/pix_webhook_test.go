package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"minecart-be/internal/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockFinalizer struct {
	mock.Mock
}

func (m *mockFinalizer) MarkAsPaid(ctx context.Context, referenceID string) error {
	args := m.Called(ctx, referenceID)
	return args.Error(0)
}

func (m *mockFinalizer) MarkAsFailed(ctx context.Context, referenceID string) error {
	args := m.Called(ctx, referenceID)
	return args.Error(0)
}

type mockGateway struct {
	sigErr error
}

func (g *mockGateway) CreateCharge(ctx context.Context, referenceID, payerEmail string, amount decimal.Decimal, items []payment.ChargeItem) (*payment.ChargeResponse, error) {
	return nil, errors.New("not implemented")
}

func (g *mockGateway) GetChargeStatus(ctx context.Context, paymentID string) (*payment.ChargeStatus, error) {
	return nil, errors.New("not implemented")
}

func (g *mockGateway) CancelCharge(ctx context.Context, paymentID string) error { return nil }

func (g *mockGateway) VerifySignature(r *http.Request) error { return g.sigErr }

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) SavePayment(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPaymentRepo) UpdatePaymentStatus(ctx context.Context, paymentID string, status payment.Status) error {
	args := m.Called(ctx, paymentID, status)
	return args.Error(0)
}

func (m *mockPaymentRepo) UpdatePaymentStatusByReference(ctx context.Context, referenceID string, status payment.Status) error {
	args := m.Called(ctx, referenceID, status)
	return args.Error(0)
}

func (m *mockPaymentRepo) GetPaymentByOrder(ctx context.Context, orderID uint) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepo) GetPaymentByPaymentID(ctx context.Context, paymentID string) (*payment.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepo) SavePaymentWebhook(ctx context.Context, provider, eventID, eventType, paymentID string, payload json.RawMessage, signatureValid bool) (int64, bool, error) {
	args := m.Called(ctx, provider, eventID, eventType, paymentID, payload, signatureValid)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *mockPaymentRepo) MarkWebhookProcessed(ctx context.Context, webhookID int64) error {
	args := m.Called(ctx, webhookID)
	return args.Error(0)
}

func (m *mockPaymentRepo) MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error {
	args := m.Called(ctx, webhookID, reason)
	return args.Error(0)
}

func postPayload(t *testing.T, h *Handler, payload WebhookPayload) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req := httptest.NewRequest("POST", "/webhook/pix", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.WebhookHandler(rr, req)
	return rr
}

func TestWebhookPaid(t *testing.T) {
	orders := new(mockFinalizer)
	repo := new(mockPaymentRepo)

	repo.On("SavePaymentWebhook", mock.Anything, "PIX", "evt-1", "charge.paid", "pix-1", mock.Anything, true).
		Return(int64(10), false, nil)
	orders.On("MarkAsPaid", mock.Anything, "ORD-1").Return(nil)
	repo.On("UpdatePaymentStatus", mock.Anything, "pix-1", payment.StatusApproved).Return(nil)
	repo.On("MarkWebhookProcessed", mock.Anything, int64(10)).Return(nil)

	h := NewWebhookHandler(orders, &mockGateway{}, repo)
	rr := postPayload(t, h, WebhookPayload{
		EventID: "evt-1", EventType: "charge.paid",
		ChargeID: "pix-1", ReferenceID: "ORD-1", Status: "PAID",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	orders.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestWebhookDuplicateIsAcked(t *testing.T) {
	orders := new(mockFinalizer)
	repo := new(mockPaymentRepo)

	repo.On("SavePaymentWebhook", mock.Anything, "PIX", "evt-1", "charge.paid", "pix-1", mock.Anything, true).
		Return(int64(0), true, nil)

	h := NewWebhookHandler(orders, &mockGateway{}, repo)
	rr := postPayload(t, h, WebhookPayload{
		EventID: "evt-1", EventType: "charge.paid",
		ChargeID: "pix-1", ReferenceID: "ORD-1", Status: "PAID",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	orders.AssertNotCalled(t, "MarkAsPaid", mock.Anything, mock.Anything)
}

func TestWebhookBadSignature(t *testing.T) {
	orders := new(mockFinalizer)
	repo := new(mockPaymentRepo)

	repo.On("SavePaymentWebhook", mock.Anything, "PIX", "evt-2", "charge.paid", "pix-1", mock.Anything, false).
		Return(int64(11), false, nil)

	h := NewWebhookHandler(orders, &mockGateway{sigErr: errors.New("bad token")}, repo)
	rr := postPayload(t, h, WebhookPayload{
		EventID: "evt-2", EventType: "charge.paid",
		ChargeID: "pix-1", ReferenceID: "ORD-1", Status: "PAID",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	orders.AssertNotCalled(t, "MarkAsPaid", mock.Anything, mock.Anything)
}

func TestWebhookExpiredMarksFailed(t *testing.T) {
	orders := new(mockFinalizer)
	repo := new(mockPaymentRepo)

	repo.On("SavePaymentWebhook", mock.Anything, "PIX", "evt-3", "charge.expired", "pix-1", mock.Anything, true).
		Return(int64(12), false, nil)
	orders.On("MarkAsFailed", mock.Anything, "ORD-1").Return(nil)
	repo.On("UpdatePaymentStatus", mock.Anything, "pix-1", payment.StatusRejected).Return(nil)
	repo.On("MarkWebhookProcessed", mock.Anything, int64(12)).Return(nil)

	h := NewWebhookHandler(orders, &mockGateway{}, repo)
	rr := postPayload(t, h, WebhookPayload{
		EventID: "evt-3", EventType: "charge.expired",
		ChargeID: "pix-1", ReferenceID: "ORD-1", Status: "EXPIRED",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	orders.AssertExpectations(t)
}

func TestWebhookIgnoresNonTerminal(t *testing.T) {
	orders := new(mockFinalizer)
	repo := new(mockPaymentRepo)

	repo.On("SavePaymentWebhook", mock.Anything, "PIX", "evt-4", "charge.updated", "pix-1", mock.Anything, true).
		Return(int64(13), false, nil)
	repo.On("MarkWebhookProcessed", mock.Anything, int64(13)).Return(nil)

	h := NewWebhookHandler(orders, &mockGateway{}, repo)
	rr := postPayload(t, h, WebhookPayload{
		EventID: "evt-4", EventType: "charge.updated",
		ChargeID: "pix-1", ReferenceID: "ORD-1", Status: "PROCESSING",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	orders.AssertNotCalled(t, "MarkAsPaid", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "MarkAsFailed", mock.Anything, mock.Anything)
}
