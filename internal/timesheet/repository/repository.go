package repository

import (
	"carelink-backend/internal/timesheet/domain"
)

// SessionRepository defines the interface for time session persistence
type SessionRepository interface {
	// Create stores a finished session
	Create(session *domain.TimeSession) error

	// FindByUserID lists a user's sessions, newest first
	FindByUserID(userID string, limit, offset int) ([]*domain.TimeSession, int64, error)

	// TotalDurationByUserID sums the seconds a user has logged
	TotalDurationByUserID(userID string) (int64, error)
}
