package repository

import (
	"time"

	"carelink-backend/internal/timesheet/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormSessionRepository implements SessionRepository using GORM
type gormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM-based SessionRepository
func NewGormSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

func (r *gormSessionRepository) Create(session *domain.TimeSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = time.Now()
	return r.db.Create(session).Error
}

func (r *gormSessionRepository) FindByUserID(userID string, limit, offset int) ([]*domain.TimeSession, int64, error) {
	var sessions []*domain.TimeSession
	var total int64

	query := r.db.Model(&domain.TimeSession{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("start_time DESC").Limit(limit).Offset(offset).Find(&sessions).Error
	return sessions, total, err
}

func (r *gormSessionRepository) TotalDurationByUserID(userID string) (int64, error) {
	var total int64
	err := r.db.Model(&domain.TimeSession{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&total).Error
	return total, err
}
