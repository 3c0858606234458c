package usecase

import (
	"context"

	"carelink-backend/internal/chat/domain"
	"carelink-backend/internal/notification"
)

// RoomWithUnread is a room plus its unread counter for one viewer
type RoomWithUnread struct {
	*domain.Room
	UnreadCount int64 `json:"unread_count"`
}

// MessageNotifier feeds inbound message events to the alerting pipeline
type MessageNotifier interface {
	HandleMessage(ctx context.Context, event notification.MessageEvent)
}

// ChatUsecase defines the interface for chat business logic
type ChatUsecase interface {
	// OpenRoomWith finds or creates the room between a client and a consultant
	OpenRoomWith(clientID, consultantID string) (*domain.Room, error)

	// ListRooms returns the user's rooms with their unread counters
	ListRooms(userID string) ([]RoomWithUnread, error)

	// SendMessage persists a message and notifies the participants
	SendMessage(ctx context.Context, userID, roomID, content, attachmentURL string) (*domain.Message, error)

	// ListMessages returns a room's messages (membership checked)
	ListMessages(userID, roomID string, limit, offset int) ([]*domain.Message, int64, error)

	// EnterRoom marks the room open for the viewer and resets its unread counter
	EnterRoom(userID, roomID string) error

	// LeaveRoom clears the viewer's open-room marker
	LeaveRoom(userID string)

	// SetNotifier wires the alerting pipeline
	SetNotifier(notifier MessageNotifier)

	// Participants and OpenRoomID serve the notification service
	Participants(roomID string) ([]string, error)
	OpenRoomID(userID string) string
}
