package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTimer returns a timer whose ticker never fires on its own;
// tests drive the counter through tick() for determinism.
func newTestTimer(clock *time.Time) *Timer {
	t := NewTimer()
	t.now = func() time.Time { return *clock }
	t.newTicker = func(d time.Duration) (<-chan time.Time, func()) {
		return make(chan time.Time), func() {}
	}
	return t
}

func (t *Timer) advance(clock *time.Time, seconds int) {
	for i := 0; i < seconds; i++ {
		*clock = clock.Add(time.Second)
		t.tick()
	}
}

func TestTimerStartRejectsBlankLabel(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	timer := newTestTimer(&clock)

	for _, label := range []string{"", "   ", "\t\n"} {
		err := timer.Start(label)
		assert.ErrorIs(t, err, ErrBlankTaskLabel)
		assert.Equal(t, StateIdle, timer.Status().State)
	}

	// Nothing started, so there is nothing to stop
	_, err := timer.Stop(StopInput{})
	assert.ErrorIs(t, err, ErrTimerNotRunning)
}

func TestTimerFullCycle(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	start := clock
	timer := newTestTimer(&clock)

	require.NoError(t, timer.Start("prep client notes"))
	assert.Equal(t, StateRunning, timer.Status().State)

	timer.advance(&clock, 5)
	assert.Equal(t, 5, timer.Status().Elapsed)

	session, err := timer.Stop(StopInput{SessionType: "deep_work", EnergyLevel: 4, FocusQuality: 5})
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Equal(t, "prep client notes", session.TaskLabel)
	assert.Equal(t, 5, session.Duration)
	assert.True(t, session.Completed)
	assert.Equal(t, start, session.StartTime)
	assert.Equal(t, clock, session.EndTime)
	assert.Equal(t, "deep_work", session.SessionType)
	assert.Equal(t, 4, session.EnergyLevel)
	assert.Equal(t, 5, session.FocusQuality)

	// Stop resets everything for the next session
	status := timer.Status()
	assert.Equal(t, StateIdle, status.State)
	assert.Equal(t, 0, status.Elapsed)
	assert.Equal(t, "", status.TaskLabel)
}

func TestTimerPausePreservesElapsed(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	timer := newTestTimer(&clock)

	require.NoError(t, timer.Start("review booking queue"))
	timer.advance(&clock, 3)

	require.NoError(t, timer.Pause())
	assert.Equal(t, StatePaused, timer.Status().State)

	// Wall clock keeps moving while paused; the counter must not
	timer.advance(&clock, 2)
	assert.Equal(t, 3, timer.Status().Elapsed)

	// Resume keeps the counter and the label
	require.NoError(t, timer.Start("ignored while resuming"))
	assert.Equal(t, "review booking queue", timer.Status().TaskLabel)
	timer.advance(&clock, 2)

	session, err := timer.Stop(StopInput{})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, 5, session.Duration)
}

func TestTimerStopWithoutElapsedEmitsNothing(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	timer := newTestTimer(&clock)

	require.NoError(t, timer.Start("blink and stop"))
	session, err := timer.Stop(StopInput{})
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, StateIdle, timer.Status().State)
}

func TestTimerStaleTickAfterStopIsDropped(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	timer := newTestTimer(&clock)

	require.NoError(t, timer.Start("short burst"))
	timer.advance(&clock, 1)

	session, err := timer.Stop(StopInput{})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, 1, session.Duration)

	// A tick that was in flight when the timer stopped must not touch
	// the reset counter
	timer.tick()
	assert.Equal(t, 0, timer.Status().Elapsed)
	assert.Equal(t, StateIdle, timer.Status().State)
}

func TestTimerInvalidTransitions(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	timer := newTestTimer(&clock)

	assert.ErrorIs(t, timer.Pause(), ErrTimerNotRunning)

	require.NoError(t, timer.Start("one thing"))
	assert.ErrorIs(t, timer.Start("another thing"), ErrTimerRunning)

	require.NoError(t, timer.Pause())
	assert.ErrorIs(t, timer.Pause(), ErrTimerNotRunning)

	// Stop is valid from Paused
	_, err := timer.Stop(StopInput{})
	require.NoError(t, err)
}
