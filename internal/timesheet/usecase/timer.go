package usecase

import (
	"errors"
	"strings"
	"sync"
	"time"

	"carelink-backend/internal/timesheet/domain"

	"github.com/google/uuid"
)

// TimerState is the timer's lifecycle position
type TimerState string

const (
	StateIdle    TimerState = "idle"
	StateRunning TimerState = "running"
	StatePaused  TimerState = "paused"
)

var (
	// ErrBlankTaskLabel is a validation error: the user must name the
	// task before the session starts
	ErrBlankTaskLabel = errors.New("task label is required")

	ErrTimerRunning    = errors.New("timer already running")
	ErrTimerNotRunning = errors.New("no session in progress")
)

// tickerFunc supplies a tick channel plus its cancel function.
// Swapped out in tests for a hand-driven channel.
type tickerFunc func(d time.Duration) (<-chan time.Time, func())

func defaultTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// StopInput carries the user's self-report collected at stop time
type StopInput struct {
	SessionType   string `json:"session_type"`
	EnergyLevel   int    `json:"energy_level"`
	FocusQuality  int    `json:"focus_quality"`
	Interruptions int    `json:"interruptions"`
	Note          string `json:"note"`
}

// TimerStatus is a snapshot of the timer for the UI
type TimerStatus struct {
	State     TimerState `json:"state"`
	TaskLabel string     `json:"task_label"`
	Elapsed   int        `json:"elapsed"`
	StartTime *time.Time `json:"start_time,omitempty"`
}

// Timer is one user's focus timer. Idle -> Running <-> Paused, and
// Running/Paused -> stop, which resets back to Idle. The elapsed
// counter advances once per wall-clock second, only while Running.
type Timer struct {
	mu         sync.Mutex
	state      TimerState
	taskLabel  string
	startedAt  time.Time
	elapsed    int
	cancelTick func()

	now       func() time.Time
	newTicker tickerFunc
}

func NewTimer() *Timer {
	return &Timer{
		state:     StateIdle,
		now:       time.Now,
		newTicker: defaultTicker,
	}
}

// Start begins a session, or resumes a paused one. While paused the
// task label is fixed; the passed label is ignored on resume.
func (t *Timer) Start(taskLabel string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StateRunning:
		return ErrTimerRunning
	case StatePaused:
		t.state = StateRunning
		t.startTicking()
		return nil
	default:
		if strings.TrimSpace(taskLabel) == "" {
			return ErrBlankTaskLabel
		}
		t.taskLabel = taskLabel
		t.startedAt = t.now()
		t.elapsed = 0
		t.state = StateRunning
		t.startTicking()
		return nil
	}
}

// Pause halts the counter, preserving its value. Valid only from Running.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return ErrTimerNotRunning
	}

	// Cancel the ticker before the state changes so no stale tick can
	// land on a paused timer.
	t.stopTicking()
	t.state = StatePaused
	return nil
}

// Stop ends the session from Running or Paused. If any time was
// counted it returns the finished session record; either way the timer
// resets to Idle with a zero counter and an empty label.
func (t *Timer) Stop(input StopInput) (*domain.TimeSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateIdle {
		return nil, ErrTimerNotRunning
	}

	t.stopTicking()

	var session *domain.TimeSession
	if t.elapsed > 0 {
		session = &domain.TimeSession{
			ID:            uuid.New().String(),
			TaskLabel:     t.taskLabel,
			StartTime:     t.startedAt,
			EndTime:       t.now(),
			Duration:      t.elapsed,
			SessionType:   input.SessionType,
			EnergyLevel:   clampRating(input.EnergyLevel),
			FocusQuality:  clampRating(input.FocusQuality),
			Interruptions: input.Interruptions,
			Note:          input.Note,
			Completed:     true,
		}
		if session.SessionType == "" {
			session.SessionType = "focus"
		}
	}

	t.elapsed = 0
	t.taskLabel = ""
	t.state = StateIdle
	return session, nil
}

// Status returns a snapshot for display
func (t *Timer) Status() TimerStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	status := TimerStatus{
		State:     t.state,
		TaskLabel: t.taskLabel,
		Elapsed:   t.elapsed,
	}
	if t.state != StateIdle {
		started := t.startedAt
		status.StartTime = &started
	}
	return status
}

// startTicking launches the per-second counter goroutine. Caller holds mu.
func (t *Timer) startTicking() {
	tick, stopTicker := t.newTicker(time.Second)
	done := make(chan struct{})
	t.cancelTick = func() {
		stopTicker()
		close(done)
	}

	go func() {
		for {
			select {
			case <-done:
				return
			case <-tick:
				t.tick()
			}
		}
	}()
}

// stopTicking cancels the counter goroutine. Caller holds mu. Every
// transition out of Running goes through here before the state changes.
func (t *Timer) stopTicking() {
	if t.cancelTick != nil {
		t.cancelTick()
		t.cancelTick = nil
	}
}

// tick advances the counter by one second. A tick already in flight
// when the timer left Running finds the state changed and is dropped.
func (t *Timer) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateRunning {
		t.elapsed++
	}
}

func clampRating(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}
