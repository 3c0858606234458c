package domain

import "time"

// TimeSession is one completed stretch of focused work, emitted by the
// timer at stop time. Immutable once created: duration counts only the
// seconds spent in the running state, pauses excluded.
type TimeSession struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"index;not null"`
	TaskLabel     string    `json:"task_label" gorm:"not null"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Duration      int       `json:"duration"` // whole seconds
	SessionType   string    `json:"session_type"`
	EnergyLevel   int       `json:"energy_level"`  // 1-5
	FocusQuality  int       `json:"focus_quality"` // 1-5
	Interruptions int       `json:"interruptions"`
	Note          string    `json:"note"`
	Completed     bool      `json:"completed"`
	CreatedAt     time.Time `json:"created_at"`
}
