package chat

import (
	"context"
	"database/sql"
)

type Repository interface {
	SaveMessage(ctx context.Context, m *Message) (*Message, error)
	History(ctx context.Context, roomUserID uint, limit int) ([]*Message, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveMessage(ctx context.Context, m *Message) (*Message, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO chat_messages (room_user_id, sender_id, sender_role, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.RoomUserID, m.SenderID, m.SenderRole, m.Body).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repository) History(ctx context.Context, roomUserID uint, limit int) ([]*Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, room_user_id, sender_id, sender_role, body, created_at
		FROM (
			SELECT id, room_user_id, sender_id, sender_role, body, created_at
			FROM chat_messages
			WHERE room_user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`, roomUserID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID, &m.RoomUserID, &m.SenderID, &m.SenderRole, &m.Body, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
