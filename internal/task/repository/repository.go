package repository

import (
	"carelink-backend/internal/task/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *domain.Task) error

	// FindByID finds a task by its ID
	FindByID(id string) (*domain.Task, error)

	// FindByUserID finds all tasks for a user, optionally filtered by
	// completion state
	FindByUserID(userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error)

	// FindIncompleteByUserID returns every incomplete task for a user,
	// for suggestion ranking
	FindIncompleteByUserID(userID string) ([]*domain.Task, error)

	// Update updates an existing task
	Update(task *domain.Task) error

	// Delete deletes a task by ID
	Delete(id string) error
}
