package chat

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	serviceTimeout = 10 * time.Second
	sendBuffer     = 256
	messageRate    = rate.Limit(5)
	messageBurst   = 10
)

// Client is one websocket connection of a user.
type Client struct {
	UserID int64
	Role   entity.Role

	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	// owned by the hub goroutine
	rooms map[int64]struct{}
}

func newClient(hub *Hub, conn *websocket.Conn, userID int64, role entity.Role, rooms []int64) *Client {
	c := &Client{
		UserID:  userID,
		Role:    role,
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(messageRate, messageBurst),
		rooms:   make(map[int64]struct{}, len(rooms)),
	}
	for _, id := range rooms {
		c.rooms[id] = struct{}{}
	}
	return c
}

func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(int64(maxMessageSize))
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug("Chat connection closed", zap.Error(err), zap.Int64("user_id", c.UserID))
			}
			return
		}

		if !c.limiter.Allow() {
			c.hub.reply(c, EventError, response.ChatError{Message: "too many messages"})
			continue
		}

		c.handle(raw)
	}
}

func (c *Client) handle(raw []byte) {
	var event request.ChatEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		c.hub.reply(c, EventError, response.ChatError{Message: "invalid message format"})
		return
	}

	if event.Event != EventSendMessage {
		c.hub.reply(c, EventError, response.ChatError{Message: "unknown event " + event.Event})
		return
	}

	if errs := utils.ValidateStruct(event.Data); errs != nil {
		c.hub.reply(c, EventError, response.ChatError{Message: utils.FormatValidationErrors(errs)})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
	sent, err := c.hub.service.SendMessage(ctx, c.UserID, c.Role, &event.Data)
	cancel()
	if err != nil {
		var serviceErr *usecase.Error
		if errors.As(err, &serviceErr) {
			c.hub.reply(c, EventError, response.ChatError{Message: serviceErr.Message})
			return
		}
		c.hub.log.Error("Failed to send chat message", zap.Error(err), zap.Int64("user_id", c.UserID))
		c.hub.reply(c, EventError, response.ChatError{Message: "failed to send message"})
		return
	}

	if sent.RoomCreated {
		c.hub.announceRoom(sent.Room)
	}
	c.hub.publish(c, sent.Message)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.log.Debug("Failed to write chat message", zap.Error(err), zap.Int64("user_id", c.UserID))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
