package request

// ChatEvent is the envelope of every inbound websocket frame.
type ChatEvent struct {
	Event string          `json:"event"`
	Data  SendMessageData `json:"data"`
}

type SendMessageData struct {
	Message string `json:"message" validate:"required,min=1"`
	Room    *int64 `json:"room,omitempty"`
}
