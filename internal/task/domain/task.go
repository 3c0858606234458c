package domain

import "time"

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Context is a task's declared category of work, used to judge
// hour-of-day fit when scoring.
type Context string

const (
	ContextWork           Context = "work"
	ContextCreative       Context = "creative"
	ContextAdministrative Context = "administrative"
	ContextLearning       Context = "learning"
	ContextPersonal       Context = "personal"
)

// Task represents a personal to-do item on a user's dashboard
type Task struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	UserID     string     `json:"user_id" gorm:"index;not null"`
	Title      string     `json:"title" gorm:"not null"`
	Priority   Priority   `json:"priority" gorm:"default:medium"`
	Impact     int        `json:"impact" gorm:"default:3"`     // 1-5
	Complexity int        `json:"complexity" gorm:"default:3"` // 1-5, lower = simpler
	Context    Context    `json:"context" gorm:"default:work"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Completed  bool       `json:"completed" gorm:"default:false"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ScoredTask is a Task with its computed urgency score. Transient:
// recomputed on every ranking call, never persisted.
type ScoredTask struct {
	Task
	AIScore float64 `json:"ai_score"`
}
