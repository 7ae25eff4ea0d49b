package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"minecart-be/internal/logger"
	"minecart-be/internal/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxInboundSize = 4096
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// client is one open socket. Buyers sit in their own room; support agents
// join the room of the buyer they are helping.
type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	roomID uint
	userID uint
	role   string
}

type outbound struct {
	roomID uint
	data   []byte
}

// Hub fans chat messages out to every socket in a room.
type Hub struct {
	svc Service

	rooms      map[uint]map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan outbound
}

func NewHub(svc Service) *Hub {
	return &Hub{
		svc:        svc,
		rooms:      make(map[uint]map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan outbound),
	}
}

// Run owns the room map. Everything that touches it goes through the three
// channels, so no extra locking is needed.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			room := h.rooms[c.roomID]
			if room == nil {
				room = make(map[*client]bool)
				h.rooms[c.roomID] = room
			}
			room[c] = true
		case c := <-h.unregister:
			if room, ok := h.rooms[c.roomID]; ok {
				if _, ok := room[c]; ok {
					delete(room, c)
					close(c.send)
					if len(room) == 0 {
						delete(h.rooms, c.roomID)
					}
				}
			}
		case msg := <-h.broadcast:
			for c := range h.rooms[msg.roomID] {
				select {
				case c.send <- msg.data:
				default:
					// slow consumer: drop the socket rather than block the hub
					delete(h.rooms[msg.roomID], c)
					close(c.send)
				}
			}
		}
	}
}

// ServeWS upgrades the request and attaches the caller to their chat room.
// Support agents may pass ?user_id= to join a buyer's room.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok || userID == 0 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	role := utils.GetUserRoleFromContext(ctx)

	roomID := userID
	if role == utils.RoleSupport || role == utils.RoleAdmin {
		if v := r.URL.Query().Get("user_id"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil && id != 0 {
				roomID = uint(id)
			}
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromCtx(ctx).Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		roomID: roomID,
		userID: userID,
		role:   role,
	}
	h.register <- c

	go c.writePump()
	go c.readPump(ctx)
}

func (c *client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxInboundSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.L().Debug("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		var in inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			continue
		}

		msg, err := c.hub.svc.SendMessage(ctx, c.roomID, c.userID, c.role, in.Body)
		if err != nil {
			continue
		}

		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		c.hub.broadcast <- outbound{roomID: c.roomID, data: data}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
