package chat

import (
	"context"
	"encoding/json"
	"sync"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/usecase"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	EventSendMessage = "sendMessage"
	EventNewMessage  = "newMessage"
	EventRoomCreated = "roomCreated"
	EventError       = "error"
)

// Hub owns every connected client and the rooms they listen to. All
// writes to client send channels happen on the Run goroutine.
type Hub struct {
	service usecase.ChatService
	log     *zap.Logger

	mu      sync.RWMutex
	clients map[int64]map[*Client]bool
	rooms   map[int64]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	join       chan *joinRequest
	broadcast  chan *roomMessage
	direct     chan *directMessage
	done       chan struct{}
}

type joinRequest struct {
	Room    int64
	UserIDs []int64
	Payload []byte
}

type roomMessage struct {
	Room    int64
	From    *Client
	Payload []byte
}

type directMessage struct {
	To      *Client
	Payload []byte
}

func NewHub(service usecase.ChatService, log *zap.Logger) *Hub {
	return &Hub{
		service:    service,
		log:        log.With(zap.String("component", "chat_hub")),
		clients:    make(map[int64]map[*Client]bool),
		rooms:      make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan *joinRequest),
		broadcast:  make(chan *roomMessage),
		direct:     make(chan *directMessage),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until ctx is cancelled, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.add(client)

		case client := <-h.unregister:
			h.remove(client)

		case req := <-h.join:
			h.joinRoom(req)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[msg.Room] {
				if client == msg.From {
					continue
				}
				h.trySend(client, msg.Payload)
			}
			h.mu.Unlock()

		case msg := <-h.direct:
			h.mu.Lock()
			if h.clients[msg.To.UserID][msg.To] {
				h.trySend(msg.To, msg.Payload)
			}
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for _, set := range h.clients {
				for client := range set {
					h.drop(client)
				}
			}
			h.mu.Unlock()
			h.log.Info("Chat hub stopped")
			return
		}
	}
}

// Serve registers an upgraded connection for the user and starts its pumps.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, userID int64, role entity.Role) {
	rooms, err := h.service.Rooms(ctx, userID)
	if err != nil {
		h.log.Error("Failed to load chat rooms", zap.Error(err), zap.Int64("user_id", userID))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "failed to load rooms"))
		conn.Close()
		return
	}

	client := newClient(h, conn, userID, role, rooms)

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true

	for room := range client.rooms {
		h.addToRoom(room, client)
	}

	h.log.Info("Chat client connected",
		zap.Int64("user_id", client.UserID),
		zap.Int("rooms", len(client.rooms)),
	)
}

func (h *Hub) addToRoom(room int64, client *Client) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	client.rooms[room] = struct{}{}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.UserID][client] {
		h.drop(client)
		h.log.Info("Chat client disconnected", zap.Int64("user_id", client.UserID))
	}
}

func (h *Hub) joinRoom(req *joinRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, userID := range req.UserIDs {
		for client := range h.clients[userID] {
			h.addToRoom(req.Room, client)
			h.trySend(client, req.Payload)
		}
	}
}

// drop forgets the client and closes its send channel. Callers hold mu.
func (h *Hub) drop(client *Client) {
	delete(h.clients[client.UserID], client)
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
	}

	for room := range client.rooms {
		delete(h.rooms[room], client)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}

	close(client.send)
}

// trySend drops clients whose buffer is full. Callers hold mu.
func (h *Hub) trySend(client *Client, payload []byte) {
	select {
	case client.send <- payload:
	default:
		h.log.Warn("Dropping slow chat client", zap.Int64("user_id", client.UserID))
		h.drop(client)
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) reply(client *Client, event string, data any) {
	payload, err := encode(event, data)
	if err != nil {
		h.log.Error("Failed to encode chat event", zap.Error(err), zap.String("event", event))
		return
	}

	select {
	case h.direct <- &directMessage{To: client, Payload: payload}:
	case <-h.done:
	}
}

func (h *Hub) announceRoom(room *entity.ChatRoom) {
	payload, err := encode(EventRoomCreated, response.RoomCreated{Room: room.ID, UserIDs: room.UserIDs})
	if err != nil {
		h.log.Error("Failed to encode chat event", zap.Error(err))
		return
	}

	select {
	case h.join <- &joinRequest{Room: room.ID, UserIDs: room.UserIDs, Payload: payload}:
	case <-h.done:
	}
}

func (h *Hub) publish(from *Client, message response.ChatMessage) {
	payload, err := encode(EventNewMessage, message)
	if err != nil {
		h.log.Error("Failed to encode chat event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- &roomMessage{Room: message.Room, From: from, Payload: payload}:
	case <-h.done:
	}
}

func encode(event string, data any) ([]byte, error) {
	return json.Marshal(response.ChatEvent{Event: event, Data: data})
}
