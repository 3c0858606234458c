package repository

import (
	"errors"
	"time"

	"carelink-backend/internal/chat/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormChatRepository implements ChatRepository using GORM
type gormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates a new GORM-based ChatRepository
func NewGormChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

func (r *gormChatRepository) CreateRoom(room *domain.Room) error {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	room.CreatedAt = time.Now()
	room.UpdatedAt = time.Now()
	return r.db.Create(room).Error
}

func (r *gormChatRepository) FindRoomByID(id string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *gormChatRepository) FindRoomByPair(clientID, consultantID string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.Where("client_id = ? AND consultant_id = ?", clientID, consultantID).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *gormChatRepository) FindRoomsByUserID(userID string) ([]*domain.Room, error) {
	var rooms []*domain.Room
	err := r.db.Where("client_id = ? OR consultant_id = ?", userID, userID).
		Order("updated_at DESC").Find(&rooms).Error
	return rooms, err
}

func (r *gormChatRepository) CreateMessage(message *domain.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		// Bump the room so it sorts to the top of the list
		return tx.Model(&domain.Room{}).Where("id = ?", message.RoomID).
			Update("updated_at", message.CreatedAt).Error
	})
}

func (r *gormChatRepository) FindMessagesByRoomID(roomID string, limit, offset int) ([]*domain.Message, int64, error) {
	var messages []*domain.Message
	var total int64

	query := r.db.Model(&domain.Message{}).Where("room_id = ?", roomID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&messages).Error
	return messages, total, err
}

func (r *gormChatRepository) MarkRead(roomID, userID string, at time.Time) error {
	read := &domain.RoomRead{
		RoomID:     roomID,
		UserID:     userID,
		LastReadAt: at,
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_read_at"}),
	}).Create(read).Error
}

func (r *gormChatRepository) UnreadCount(roomID, userID string) (int64, error) {
	var lastRead time.Time
	var read domain.RoomRead
	err := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).First(&read).Error
	if err == nil {
		lastRead = read.LastReadAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	var count int64
	err = r.db.Model(&domain.Message{}).
		Where("room_id = ? AND sender_id != ? AND created_at > ?", roomID, userID, lastRead).
		Count(&count).Error
	return count, err
}
