package notification

import (
	"context"
	"database/sql"
	"encoding/json"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) (*Notification, error)
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) (*Notification, error) {
	payload, err := json.Marshal(n.Data)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO notifications (user_id, type, severity, message, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, n.UserID, n.Type, n.Severity, n.Message, payload).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := `
		SELECT id, user_id, type, severity, message, payload, read_at, created_at
		FROM notifications
		WHERE user_id = $1`
	if unreadOnly {
		q += ` AND read_at IS NULL`
	}
	q += ` ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Notification
	for rows.Next() {
		var (
			n   Notification
			raw json.RawMessage
		)
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.Severity, &n.Message,
			&raw, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		if n.Data, err = decodeData(n.Type, raw); err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (r *repository) MarkRead(ctx context.Context, userID, notificationID uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND read_at IS NULL
	`, notificationID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
