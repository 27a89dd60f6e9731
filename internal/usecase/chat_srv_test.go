package usecase

import (
	"context"
	"testing"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChatSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("admin needs a room", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewChatService(repo.Repository, zap.NewNop())

		_, err := svc.SendMessage(ctx, 1, entity.RoleAdmin, &request.SendMessageData{Message: "hi"})
		assert.ErrorIs(t, err, ErrBadRequest)

		missing := int64(9)
		_, err = svc.SendMessage(ctx, 1, entity.RoleAdmin, &request.SendMessageData{Message: "hi", Room: &missing})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("user without admin available", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addUser(5, "user@example.com", entity.RoleUser)
		svc := NewChatService(repo.Repository, zap.NewNop())

		_, err := svc.SendMessage(ctx, 5, entity.RoleUser, &request.SendMessageData{Message: "hi"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("user room is created once", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addUser(1, "admin@example.com", entity.RoleAdmin)
		repo.addUser(5, "user@example.com", entity.RoleUser)
		svc := NewChatService(repo.Repository, zap.NewNop())

		first, err := svc.SendMessage(ctx, 5, entity.RoleUser, &request.SendMessageData{Message: "  help  "})
		require.NoError(t, err)
		assert.True(t, first.RoomCreated)
		assert.ElementsMatch(t, []int64{5, 1}, first.Room.UserIDs)
		assert.Equal(t, "help", first.Message.Message)

		second, err := svc.SendMessage(ctx, 5, entity.RoleUser, &request.SendMessageData{Message: "again"})
		require.NoError(t, err)
		assert.False(t, second.RoomCreated)
		assert.Equal(t, first.Room.ID, second.Room.ID)

		room := first.Room.ID
		reply, err := svc.SendMessage(ctx, 1, entity.RoleAdmin, &request.SendMessageData{Message: "on it", Room: &room})
		require.NoError(t, err)
		assert.Equal(t, room, reply.Message.Room)
		assert.Len(t, repo.chats.saved, 3)

		rooms, err := svc.Rooms(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, []int64{room}, rooms)
	})

	t.Run("blank message", func(t *testing.T) {
		svc := NewChatService(newFakeRepo().Repository, zap.NewNop())
		_, err := svc.SendMessage(ctx, 5, entity.RoleUser, &request.SendMessageData{Message: "   "})
		assert.ErrorIs(t, err, ErrBadRequest)
	})
}
