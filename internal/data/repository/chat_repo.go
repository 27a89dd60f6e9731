package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ChatRoomRepository interface {
	Create(ctx context.Context, userIDs []int64) (*entity.ChatRoom, error)
	FindByID(ctx context.Context, id int64) (*entity.ChatRoom, error)
	// FindFirstByUserID returns the oldest room the user belongs to.
	FindFirstByUserID(ctx context.Context, userID int64) (*entity.ChatRoom, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.ChatRoom, error)
}

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
}

type chatRoomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewChatRoomRepository(db database.PgxIface, log *zap.Logger) ChatRoomRepository {
	return &chatRoomRepository{
		db:  db,
		log: log.With(zap.String("repository", "chat_room")),
	}
}

// rooms with their member ids aggregated
const chatRoomSelect = `
	SELECT r.id, r.created_at, r.updated_at,
	       COALESCE(ARRAY_AGG(u.user_id ORDER BY u.user_id) FILTER (WHERE u.user_id IS NOT NULL), '{}')
	FROM chat_rooms r
	LEFT JOIN chat_room_users u ON u.chat_room_id = r.id
`

func scanChatRoom(row pgx.Row) (*entity.ChatRoom, error) {
	var room entity.ChatRoom
	if err := row.Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt, &room.UserIDs); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRoomRepository) Create(ctx context.Context, userIDs []int64) (*entity.ChatRoom, error) {
	db := conn(ctx, r.db)

	room := &entity.ChatRoom{UserIDs: userIDs}
	err := db.QueryRow(ctx,
		`INSERT INTO chat_rooms DEFAULT VALUES RETURNING id, created_at, updated_at`,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create chat room", zap.Error(err))
		return nil, fmt.Errorf("create chat room: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO chat_room_users (chat_room_id, user_id) SELECT $1, UNNEST($2::BIGINT[])`,
		room.ID, userIDs,
	)
	if err != nil {
		r.log.Error("Failed to add chat room users",
			zap.Error(err),
			zap.Int64("room_id", room.ID),
		)
		return nil, fmt.Errorf("add chat room users: %w", err)
	}

	return room, nil
}

func (r *chatRoomRepository) FindByID(ctx context.Context, id int64) (*entity.ChatRoom, error) {
	query := chatRoomSelect + ` WHERE r.id = $1 GROUP BY r.id`

	room, err := scanChatRoom(conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find chat room",
			zap.Error(err),
			zap.Int64("room_id", id),
		)
		return nil, fmt.Errorf("find chat room: %w", err)
	}

	return room, nil
}

func (r *chatRoomRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.ChatRoom, error) {
	query := chatRoomSelect + `
		WHERE r.id IN (SELECT chat_room_id FROM chat_room_users WHERE user_id = $1)
		GROUP BY r.id
		ORDER BY r.id
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find chat rooms by user",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find chat rooms: %w", err)
	}
	defer rows.Close()

	rooms := []*entity.ChatRoom{}
	for rows.Next() {
		room, err := scanChatRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat room: %w", err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat rooms: %w", err)
	}

	return rooms, nil
}

func (r *chatRoomRepository) FindFirstByUserID(ctx context.Context, userID int64) (*entity.ChatRoom, error) {
	rooms, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, nil
	}
	return rooms[0], nil
}

type chatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewChatRepository(db database.PgxIface, log *zap.Logger) ChatRepository {
	return &chatRepository{
		db:  db,
		log: log.With(zap.String("repository", "chat")),
	}
}

func (r *chatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	query := `
		INSERT INTO chats (author_id, message, chat_room_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRow(ctx, query, chat.AuthorID, chat.Message, chat.ChatRoomID).
		Scan(&chat.ID, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create chat",
			zap.Error(err),
			zap.Int64("room_id", chat.ChatRoomID),
			zap.Int64("author_id", chat.AuthorID),
		)
		return fmt.Errorf("create chat: %w", err)
	}

	return nil
}
