package chat

import "time"

type Message struct {
	ID         uint      `json:"id"`
	RoomUserID uint      `json:"room_user_id"`
	SenderID   uint      `json:"sender_id"`
	SenderRole string    `json:"sender_role"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// inbound is what a connected client sends over the socket.
type inbound struct {
	Body string `json:"body"`
}
