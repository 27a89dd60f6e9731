package response

import "time"

// ChatEvent is the envelope of every outbound websocket frame.
type ChatEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type ChatMessage struct {
	ID       int64     `json:"id"`
	Room     int64     `json:"room"`
	AuthorID int64     `json:"authorId"`
	Message  string    `json:"message"`
	SentAt   time.Time `json:"createdAt"`
}

type RoomCreated struct {
	Room    int64   `json:"room"`
	UserIDs []int64 `json:"userIds"`
}

type ChatError struct {
	Message string `json:"message"`
}
