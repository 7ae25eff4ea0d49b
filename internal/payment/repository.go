package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type Repository interface {
	SavePayment(ctx context.Context, p *Payment) error
	UpdatePaymentStatus(ctx context.Context, paymentID string, status Status) error
	UpdatePaymentStatusByReference(ctx context.Context, referenceID string, status Status) error
	GetPaymentByOrder(ctx context.Context, orderID uint) (*Payment, error)
	GetPaymentByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	SavePaymentWebhook(
		ctx context.Context,
		provider string,
		eventID string,
		eventType string,
		paymentID string,
		payload json.RawMessage,
		signatureValid bool,
	) (webhookID int64, isDuplicate bool, err error)
	MarkWebhookProcessed(ctx context.Context, webhookID int64) error
	MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SavePayment(ctx context.Context, p *Payment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (
			order_id,
			reference_id,
			payment_id,
			payable_code,
			qr_image_url,
			payment_link,
			amount,
			status,
			method,
			provider,
			currency,
			expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		p.OrderID, p.ReferenceID, p.PaymentID, p.PayableCode, p.QRImageURL,
		p.PaymentLink, p.Amount.StringFixed(2), p.Status, p.Method,
		"PIX", "BRL", p.ExpiresAt,
	)
	return err
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, paymentID string, status Status) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $1, updated_at = NOW() WHERE payment_id = $2
	`, status, paymentID)
	return err
}

func (r *repository) UpdatePaymentStatusByReference(ctx context.Context, referenceID string, status Status) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $1, updated_at = NOW() WHERE reference_id = $2
	`, status, referenceID)
	return err
}

const paymentColumns = `id, order_id, reference_id, payment_id, payable_code,
	qr_image_url, payment_link, amount, status, method, expires_at, created_at, updated_at`

func scanPayment(row *sql.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(
		&p.ID, &p.OrderID, &p.ReferenceID, &p.PaymentID, &p.PayableCode,
		&p.QRImageURL, &p.PaymentLink, &p.Amount, &p.Status, &p.Method,
		&p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetPaymentByOrder(ctx context.Context, orderID uint) (*Payment, error) {
	return scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, orderID))
}

func (r *repository) GetPaymentByPaymentID(ctx context.Context, paymentID string) (*Payment, error) {
	return scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, paymentID))
}

func (r *repository) SavePaymentWebhook(
	ctx context.Context,
	provider string,
	eventID string,
	eventType string,
	paymentID string,
	payload json.RawMessage,
	signatureValid bool,
) (int64, bool, error) {

	const q = `
	INSERT INTO payment_webhooks (
		provider,
		event_type,
		event_id,
		payment_id,
		signature_valid,
		payload
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (provider, event_id)
	DO NOTHING
	RETURNING id;
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		q,
		provider,
		eventType,
		eventID,
		paymentID,
		signatureValid,
		payload,
	).Scan(&id)

	if err != nil {
		// Duplicate webhook, idempotent success
		if errors.Is(err, sql.ErrNoRows) {
			return 0, true, nil
		}
		return 0, false, err
	}

	return id, false, nil
}

func (r *repository) MarkWebhookProcessed(ctx context.Context, webhookID int64) error {
	const q = `
	UPDATE payment_webhooks
	SET processed_at = now()
	WHERE id = $1;
	`

	_, err := r.db.ExecContext(ctx, q, webhookID)
	return err
}

func (r *repository) MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error {
	const q = `
	UPDATE payment_webhooks
	SET process_error = $2
	WHERE id = $1;
	`

	_, err := r.db.ExecContext(ctx, q, webhookID, reason)
	return err
}
