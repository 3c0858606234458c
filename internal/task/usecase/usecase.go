package usecase

import (
	"time"

	"carelink-backend/internal/task/domain"
)

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// CreateTask creates a new task
	CreateTask(userID, title string, dueDate *string, priority, context string, impact, complexity int) (*domain.Task, error)

	// GetTaskByID retrieves a task by ID (with ownership check)
	GetTaskByID(userID, taskID string) (*domain.Task, error)

	// GetUserTasks retrieves all tasks for a user with optional completion filter
	GetUserTasks(userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error)

	// GetSuggestions ranks the user's incomplete tasks and returns the top picks
	GetSuggestions(userID string, now time.Time) ([]domain.ScoredTask, error)

	// UpdateTask updates an existing task
	UpdateTask(userID, taskID string, updates TaskUpdateRequest) (*domain.Task, error)

	// SetCompleted toggles a task's completion state
	SetCompleted(userID, taskID string, completed bool) (*domain.Task, error)

	// DeleteTask deletes a task
	DeleteTask(userID, taskID string) error
}

// TaskUpdateRequest represents the fields that can be updated
type TaskUpdateRequest struct {
	Title      *string `json:"title,omitempty"`
	DueDate    *string `json:"due_date,omitempty"`
	Priority   *string `json:"priority,omitempty"`
	Context    *string `json:"context,omitempty"`
	Impact     *int    `json:"impact,omitempty"`
	Complexity *int    `json:"complexity,omitempty"`
	Completed  *bool   `json:"completed,omitempty"`
}
