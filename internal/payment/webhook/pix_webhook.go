package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	"minecart-be/internal/logger"
	"minecart-be/internal/payment"

	"go.uber.org/zap"
)

// WebhookPayload represents the JSON the PIX provider sends
type WebhookPayload struct {
	EventID     string  `json:"event_id"`
	EventType   string  `json:"event_type"`
	ChargeID    string  `json:"charge_id"`
	ReferenceID string  `json:"reference_id"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	PaidAt      string  `json:"paid_at,omitempty"`
}

type Handler struct {
	Orders      payment.Finalizer
	Gateway     payment.Gateway
	PaymentRepo payment.Repository
}

func NewWebhookHandler(orders payment.Finalizer, gateway payment.Gateway, repo payment.Repository) *Handler {
	return &Handler{
		Orders:      orders,
		Gateway:     gateway,
		PaymentRepo: repo,
	}
}

// WebhookHandler is the actual route handler
func (h *Handler) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)

	// 1. Verify signature
	sigErr := h.Gateway.VerifySignature(r)

	// 2. Parse the request body
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	// 3. Persist the event before acting on it; duplicates are acked without
	// reprocessing
	webhookID, isDuplicate, err := h.PaymentRepo.SavePaymentWebhook(
		ctx, "PIX", payload.EventID, payload.EventType, payload.ChargeID,
		json.RawMessage(body), sigErr == nil,
	)
	if err != nil {
		log.Error("failed to persist webhook", zap.Error(err))
		http.Error(w, "failed to persist webhook", http.StatusInternalServerError)
		return
	}
	if isDuplicate {
		w.WriteHeader(http.StatusOK)
		return
	}

	if sigErr != nil {
		log.Warn("webhook signature rejected", zap.String("event_id", payload.EventID))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	log.Info("webhook received",
		zap.String("event_id", payload.EventID),
		zap.String("charge_id", payload.ChargeID),
		zap.String("status", payload.Status),
	)

	// 4. Match webhook status to the order status
	status := payment.NormalizeStatus(payload.Status)
	switch status {
	case payment.StatusApproved:
		err = h.Orders.MarkAsPaid(ctx, payload.ReferenceID)
	case payment.StatusRejected, payment.StatusCancelled:
		err = h.Orders.MarkAsFailed(ctx, payload.ReferenceID)
	default:
		// Ignore non-terminal statuses
		_ = h.PaymentRepo.MarkWebhookProcessed(ctx, webhookID)
		w.WriteHeader(http.StatusOK)
		return
	}

	if err != nil {
		log.Error("failed to update order from webhook", zap.Error(err))
		_ = h.PaymentRepo.MarkWebhookFailed(ctx, webhookID, err.Error())
		http.Error(w, "failed to update order", http.StatusInternalServerError)
		return
	}

	if err := h.PaymentRepo.UpdatePaymentStatus(ctx, payload.ChargeID, status); err != nil {
		log.Error("failed to update payment status", zap.Error(err))
	}
	_ = h.PaymentRepo.MarkWebhookProcessed(ctx, webhookID)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
