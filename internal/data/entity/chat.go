package entity

type ChatRoom struct {
	BaseNoVersion
	UserIDs []int64
}

func (r *ChatRoom) HasUser(userID int64) bool {
	for _, id := range r.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type Chat struct {
	BaseNoVersion
	AuthorID   int64  `db:"author_id"`
	Message    string `db:"message"`
	ChatRoomID int64  `db:"chat_room_id"`
}
