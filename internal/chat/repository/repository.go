package repository

import (
	"time"

	"carelink-backend/internal/chat/domain"
)

// ChatRepository defines the interface for chat data access
type ChatRepository interface {
	// CreateRoom creates a new room
	CreateRoom(room *domain.Room) error

	// FindRoomByID finds a room by its ID
	FindRoomByID(id string) (*domain.Room, error)

	// FindRoomByPair finds the room between a client and a consultant
	FindRoomByPair(clientID, consultantID string) (*domain.Room, error)

	// FindRoomsByUserID lists every room the user participates in,
	// most recently active first
	FindRoomsByUserID(userID string) ([]*domain.Room, error)

	// CreateMessage stores a message and touches the room's activity time
	CreateMessage(message *domain.Message) error

	// FindMessagesByRoomID lists a room's messages, oldest first
	FindMessagesByRoomID(roomID string, limit, offset int) ([]*domain.Message, int64, error)

	// MarkRead records how far the user has read in a room
	MarkRead(roomID, userID string, at time.Time) error

	// UnreadCount counts messages from the other participant since the
	// user's last read mark
	UnreadCount(roomID, userID string) (int64, error)
}
