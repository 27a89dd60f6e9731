package usecase

import (
	"context"
	"fmt"
	"strings"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"

	"go.uber.org/zap"
)

// Sent is the outcome of one chat message.
type Sent struct {
	Message response.ChatMessage
	Room    *entity.ChatRoom
	// RoomCreated is set when the message opened a new support room.
	RoomCreated bool
}

type ChatService interface {
	// Rooms lists the ids of every room the user belongs to.
	Rooms(ctx context.Context, userID int64) ([]int64, error)
	SendMessage(ctx context.Context, userID int64, role entity.Role, data *request.SendMessageData) (*Sent, error)
}

type chatService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewChatService(repo *repository.Repository, log *zap.Logger) ChatService {
	return &chatService{
		repo: repo,
		log:  log.With(zap.String("service", "chat")),
	}
}

func (s *chatService) Rooms(ctx context.Context, userID int64) ([]int64, error) {
	rooms, err := s.repo.ChatRoom.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find chat rooms: %w", err)
	}

	ids := make([]int64, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	return ids, nil
}

// resolveRoom picks the target room: admins address a room explicitly, other
// users always talk in their room with an admin, created on first use.
func (s *chatService) resolveRoom(ctx context.Context, userID int64, role entity.Role, room *int64) (*entity.ChatRoom, bool, error) {
	if role == entity.RoleAdmin {
		if room == nil {
			return nil, false, badRequest("room is required for admin messages")
		}
		found, err := s.repo.ChatRoom.FindByID(ctx, *room)
		if err != nil {
			return nil, false, fmt.Errorf("find chat room: %w", err)
		}
		if found == nil {
			return nil, false, notFound("chat room %d does not exist", *room)
		}
		return found, false, nil
	}

	existing, err := s.repo.ChatRoom.FindFirstByUserID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("find chat room: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	admin, err := s.repo.User.FindFirstByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return nil, false, fmt.Errorf("find admin: %w", err)
	}
	if admin == nil {
		return nil, false, notFound("no admin is available to chat")
	}

	created, err := s.repo.ChatRoom.Create(ctx, []int64{userID, admin.ID})
	if err != nil {
		return nil, false, fmt.Errorf("create chat room: %w", err)
	}
	return created, true, nil
}

func (s *chatService) SendMessage(ctx context.Context, userID int64, role entity.Role, data *request.SendMessageData) (*Sent, error) {
	message := strings.TrimSpace(data.Message)
	if message == "" {
		return nil, badRequest("message must not be empty")
	}

	var sent *Sent
	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		room, created, err := s.resolveRoom(ctx, userID, role, data.Room)
		if err != nil {
			return err
		}

		chat := &entity.Chat{AuthorID: userID, Message: message, ChatRoomID: room.ID}
		if err := s.repo.Chat.Create(ctx, chat); err != nil {
			return fmt.Errorf("create chat: %w", err)
		}

		sent = &Sent{
			Message: response.ChatMessage{
				ID:       chat.ID,
				Room:     room.ID,
				AuthorID: userID,
				Message:  chat.Message,
				SentAt:   chat.CreatedAt,
			},
			Room:        room,
			RoomCreated: created,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("Chat message stored",
		zap.Int64("chat_id", sent.Message.ID),
		zap.Int64("room_id", sent.Room.ID),
		zap.Int64("author_id", userID),
		zap.Bool("room_created", sent.RoomCreated),
	)

	return sent, nil
}
