package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"carelink-backend/internal/chat/domain"
	"carelink-backend/internal/chat/repository"
	"carelink-backend/internal/notification"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNotInRoom    = errors.New("not a participant of this room")
	ErrEmptyMessage = errors.New("message is empty")
	ErrSelfRoom     = errors.New("cannot open a room with yourself")
)

// chatUsecase implements ChatUsecase interface
type chatUsecase struct {
	chatRepo repository.ChatRepository
	notifier MessageNotifier

	// presence: userID -> currently open room, maintained by the
	// enter/leave endpoints as the user navigates
	presenceMu sync.RWMutex
	presence   map[string]string
}

// NewChatUsecase creates a new instance of chatUsecase
func NewChatUsecase(chatRepo repository.ChatRepository) ChatUsecase {
	return &chatUsecase{
		chatRepo: chatRepo,
		presence: make(map[string]string),
	}
}

func (u *chatUsecase) SetNotifier(notifier MessageNotifier) {
	u.notifier = notifier
}

func (u *chatUsecase) OpenRoomWith(clientID, consultantID string) (*domain.Room, error) {
	if clientID == consultantID {
		return nil, ErrSelfRoom
	}

	room, err := u.chatRepo.FindRoomByPair(clientID, consultantID)
	if err != nil {
		return nil, err
	}
	if room != nil {
		return room, nil
	}

	room = &domain.Room{
		ID:           uuid.New().String(),
		ClientID:     clientID,
		ConsultantID: consultantID,
	}
	if err := u.chatRepo.CreateRoom(room); err != nil {
		return nil, err
	}
	return room, nil
}

func (u *chatUsecase) ListRooms(userID string) ([]RoomWithUnread, error) {
	rooms, err := u.chatRepo.FindRoomsByUserID(userID)
	if err != nil {
		return nil, err
	}

	result := make([]RoomWithUnread, 0, len(rooms))
	for _, room := range rooms {
		unread, err := u.chatRepo.UnreadCount(room.ID, userID)
		if err != nil {
			return nil, err
		}
		result = append(result, RoomWithUnread{Room: room, UnreadCount: unread})
	}
	return result, nil
}

func (u *chatUsecase) SendMessage(ctx context.Context, userID, roomID, content, attachmentURL string) (*domain.Message, error) {
	if content == "" && attachmentURL == "" {
		return nil, ErrEmptyMessage
	}

	room, err := u.memberRoom(userID, roomID)
	if err != nil {
		return nil, err
	}

	message := &domain.Message{
		ID:            uuid.New().String(),
		RoomID:        room.ID,
		SenderID:      userID,
		Content:       content,
		HasAttachment: attachmentURL != "",
		AttachmentURL: attachmentURL,
	}
	if err := u.chatRepo.CreateMessage(message); err != nil {
		return nil, err
	}

	if u.notifier != nil {
		u.notifier.HandleMessage(ctx, notification.MessageEvent{
			RoomID:        message.RoomID,
			SenderID:      message.SenderID,
			Content:       message.Content,
			HasAttachment: message.HasAttachment,
			SentAt:        message.CreatedAt,
		})
	}

	return message, nil
}

func (u *chatUsecase) ListMessages(userID, roomID string, limit, offset int) ([]*domain.Message, int64, error) {
	if _, err := u.memberRoom(userID, roomID); err != nil {
		return nil, 0, err
	}
	return u.chatRepo.FindMessagesByRoomID(roomID, limit, offset)
}

func (u *chatUsecase) EnterRoom(userID, roomID string) error {
	if _, err := u.memberRoom(userID, roomID); err != nil {
		return err
	}

	u.presenceMu.Lock()
	u.presence[userID] = roomID
	u.presenceMu.Unlock()

	return u.chatRepo.MarkRead(roomID, userID, time.Now())
}

func (u *chatUsecase) LeaveRoom(userID string) {
	u.presenceMu.Lock()
	delete(u.presence, userID)
	u.presenceMu.Unlock()
}

// Participants implements notification.RoomDirectory
func (u *chatUsecase) Participants(roomID string) ([]string, error) {
	room, err := u.chatRepo.FindRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room.Participants(), nil
}

// OpenRoomID implements notification.PresenceTracker
func (u *chatUsecase) OpenRoomID(userID string) string {
	u.presenceMu.RLock()
	defer u.presenceMu.RUnlock()
	return u.presence[userID]
}

func (u *chatUsecase) memberRoom(userID, roomID string) (*domain.Room, error) {
	room, err := u.chatRepo.FindRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if !room.HasParticipant(userID) {
		return nil, ErrNotInRoom
	}
	return room, nil
}
