package usecase

import (
	"errors"
	"testing"
	"time"

	"carelink-backend/internal/timesheet/domain"
	"carelink-backend/internal/timesheet/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) repository.SessionRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.TimeSession{}))
	return repository.NewGormSessionRepository(db)
}

func TestStopTimerPersistsSession(t *testing.T) {
	t.Parallel()

	uc := NewTimesheetUsecase(newTestRepo(t)).(*timesheetUsecase)

	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	timer := newTestTimer(&clock)
	uc.timers["user-1"] = timer

	_, err := uc.StartTimer("user-1", "write progress recap")
	require.NoError(t, err)
	timer.advance(&clock, 4)

	session, err := uc.StopTimer("user-1", StopInput{Note: "good stretch"})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, 4, session.Duration)

	sessions, total, err := uc.ListSessions("user-1", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, sessions, 1)
	assert.Equal(t, session.ID, sessions[0].ID)
	assert.Equal(t, "good stretch", sessions[0].Note)
}

type failingSessionRepo struct{}

func (failingSessionRepo) Create(*domain.TimeSession) error { return errors.New("disk full") }
func (failingSessionRepo) FindByUserID(string, int, int) ([]*domain.TimeSession, int64, error) {
	return nil, 0, nil
}
func (failingSessionRepo) TotalDurationByUserID(string) (int64, error) { return 0, nil }

func TestStopTimerKeepsSessionWhenPersistFails(t *testing.T) {
	t.Parallel()

	uc := NewTimesheetUsecase(failingSessionRepo{}).(*timesheetUsecase)

	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	timer := newTestTimer(&clock)
	uc.timers["user-1"] = timer

	_, err := uc.StartTimer("user-1", "write progress recap")
	require.NoError(t, err)
	timer.advance(&clock, 3)

	session, err := uc.StopTimer("user-1", StopInput{})
	require.Error(t, err)
	require.NotNil(t, session, "counted time must survive a failed persist")
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, 3, session.Duration)
}

func TestStopTimerWithNoElapsedPersistsNothing(t *testing.T) {
	t.Parallel()

	uc := NewTimesheetUsecase(newTestRepo(t)).(*timesheetUsecase)

	clock := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	uc.timers["user-1"] = newTestTimer(&clock)

	_, err := uc.StartTimer("user-1", "momentary")
	require.NoError(t, err)

	session, err := uc.StopTimer("user-1", StopInput{})
	require.NoError(t, err)
	assert.Nil(t, session)

	_, total, err := uc.ListSessions("user-1", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestTimersAreIsolatedPerUser(t *testing.T) {
	t.Parallel()

	uc := NewTimesheetUsecase(newTestRepo(t)).(*timesheetUsecase)

	clockA := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	clockB := clockA
	timerA := newTestTimer(&clockA)
	timerB := newTestTimer(&clockB)
	uc.timers["user-a"] = timerA
	uc.timers["user-b"] = timerB

	_, err := uc.StartTimer("user-a", "task a")
	require.NoError(t, err)
	_, err = uc.StartTimer("user-b", "task b")
	require.NoError(t, err)

	timerA.advance(&clockA, 3)

	assert.Equal(t, 3, uc.TimerStatus("user-a").Elapsed)
	assert.Equal(t, 0, uc.TimerStatus("user-b").Elapsed)
}
