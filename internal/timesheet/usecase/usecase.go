package usecase

import (
	"sync"

	"carelink-backend/internal/timesheet/domain"
	"carelink-backend/internal/timesheet/repository"
)

// TimesheetUsecase defines the interface for focus-timer business logic
type TimesheetUsecase interface {
	// StartTimer starts (or resumes) the user's timer
	StartTimer(userID, taskLabel string) (TimerStatus, error)

	// PauseTimer pauses the user's running timer
	PauseTimer(userID string) (TimerStatus, error)

	// StopTimer stops the user's timer, persisting the finished session
	// if any time was counted. On a persistence failure the session is
	// returned alongside the error so the counted time is not lost.
	StopTimer(userID string, input StopInput) (*domain.TimeSession, error)

	// TimerStatus reports the current state of the user's timer
	TimerStatus(userID string) TimerStatus

	// ListSessions returns the user's finished sessions, newest first
	ListSessions(userID string, limit, offset int) ([]*domain.TimeSession, int64, error)
}

// timesheetUsecase keeps one in-memory timer per user and persists the
// sessions they emit
type timesheetUsecase struct {
	mu          sync.Mutex
	timers      map[string]*Timer
	sessionRepo repository.SessionRepository
}

// NewTimesheetUsecase creates a new instance of timesheetUsecase
func NewTimesheetUsecase(sessionRepo repository.SessionRepository) TimesheetUsecase {
	return &timesheetUsecase{
		timers:      make(map[string]*Timer),
		sessionRepo: sessionRepo,
	}
}

func (u *timesheetUsecase) timerFor(userID string) *Timer {
	u.mu.Lock()
	defer u.mu.Unlock()
	t, ok := u.timers[userID]
	if !ok {
		t = NewTimer()
		u.timers[userID] = t
	}
	return t
}

func (u *timesheetUsecase) StartTimer(userID, taskLabel string) (TimerStatus, error) {
	t := u.timerFor(userID)
	if err := t.Start(taskLabel); err != nil {
		return t.Status(), err
	}
	return t.Status(), nil
}

func (u *timesheetUsecase) PauseTimer(userID string) (TimerStatus, error) {
	t := u.timerFor(userID)
	if err := t.Pause(); err != nil {
		return t.Status(), err
	}
	return t.Status(), nil
}

func (u *timesheetUsecase) StopTimer(userID string, input StopInput) (*domain.TimeSession, error) {
	t := u.timerFor(userID)
	session, err := t.Stop(input)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	session.UserID = userID
	if err := u.sessionRepo.Create(session); err != nil {
		// The timer has already reset, so hand the counted session
		// back with the error instead of losing it
		return session, err
	}
	return session, nil
}

func (u *timesheetUsecase) TimerStatus(userID string) TimerStatus {
	return u.timerFor(userID).Status()
}

func (u *timesheetUsecase) ListSessions(userID string, limit, offset int) ([]*domain.TimeSession, int64, error) {
	return u.sessionRepo.FindByUserID(userID, limit, offset)
}
