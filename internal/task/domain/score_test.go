package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dueIn(now time.Time, d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestScoreReferenceVector(t *testing.T) {
	t.Parallel()

	// 2026-03-02 is a Monday; hour 18 is an optimal hour for "personal".
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	task := &Task{
		Priority:   PriorityHigh,
		Impact:     5,
		Complexity: 1,
		Context:    ContextPersonal,
		DueDate:    dueIn(now, 24*time.Hour),
	}

	// 10*0.3 + 10*0.25 + 10*0.2 + 5*0.15 + 5*0.1 = 8.75 -> 8.8
	assert.Equal(t, 8.8, Score(task, now))
}

func TestScoreWorkContextTimingBonus(t *testing.T) {
	t.Parallel()

	task := &Task{
		Priority:   PriorityMedium,
		Impact:     3,
		Complexity: 3,
		Context:    ContextWork,
	}

	workHours := map[int]bool{9: true, 10: true, 11: true, 14: true, 15: true, 16: true}
	for hour := 0; hour < 24; hour++ {
		now := time.Date(2026, 3, 2, hour, 30, 0, 0, time.UTC)
		got := Score(task, now)
		// base 6*0.3 + impact 6*0.25 + urgency 0 + complexity 3*0.15 = 3.75,
		// rounds to 3.8; the timing bonus adds the full 0.5 on top.
		want := 3.8
		if workHours[hour] {
			want = 4.3
		}
		assert.Equal(t, want, got, "hour %d", hour)
	}
}

func TestScoreUrgencyBands(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		due     *time.Time
		urgency float64
	}{
		{name: "no due date", due: nil, urgency: 0},
		{name: "overdue", due: dueIn(now, -48 * time.Hour), urgency: 10},
		{name: "due tomorrow", due: dueIn(now, 24 * time.Hour), urgency: 10},
		{name: "due in 3 days", due: dueIn(now, 3 * 24 * time.Hour), urgency: 7},
		{name: "due in a week", due: dueIn(now, 7 * 24 * time.Hour), urgency: 4},
		{name: "due far out", due: dueIn(now, 30 * 24 * time.Hour), urgency: 2},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			task := &Task{
				Priority:   PriorityLow,
				Impact:     1,
				Complexity: 5,
				Context:    ContextWork,
				DueDate:    tc.due,
			}
			// base 3*0.3 + impact 2*0.25 + complexity 1*0.15 = 1.55
			want := 1.55 + tc.urgency*0.2
			// hour 0 never earns a timing bonus
			assert.InDelta(t, want, Score(task, now), 0.051)
		})
	}
}

func TestScoreDoesNotMutateTask(t *testing.T) {
	t.Parallel()

	now := time.Now()
	task := &Task{Priority: PriorityHigh, Impact: 4, Complexity: 2, Context: ContextCreative}
	before := *task
	Score(task, now)
	assert.Equal(t, before, *task)
}

func TestRankFiltersCompletedAndCapsAtThree(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	tasks := []*Task{
		{ID: "a", Priority: PriorityHigh, Impact: 5, Complexity: 1, Context: ContextWork},
		{ID: "b", Priority: PriorityHigh, Impact: 5, Complexity: 1, Context: ContextWork, Completed: true},
		{ID: "c", Priority: PriorityLow, Impact: 1, Complexity: 5, Context: ContextWork},
		{ID: "d", Priority: PriorityMedium, Impact: 3, Complexity: 3, Context: ContextWork},
		{ID: "e", Priority: PriorityMedium, Impact: 4, Complexity: 2, Context: ContextWork},
	}

	ranked := Rank(tasks, now)
	require.Len(t, ranked, 3)
	for _, st := range ranked {
		assert.False(t, st.Completed)
		assert.NotEqual(t, "b", st.ID)
	}

	// Descending by score
	assert.GreaterOrEqual(t, ranked[0].AIScore, ranked[1].AIScore)
	assert.GreaterOrEqual(t, ranked[1].AIScore, ranked[2].AIScore)
	assert.Equal(t, "a", ranked[0].ID)
}

func TestRankStableOnTies(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	// Identical tasks score identically; order of arrival must survive.
	tasks := []*Task{
		{ID: "first", Priority: PriorityMedium, Impact: 3, Complexity: 3, Context: ContextWork},
		{ID: "second", Priority: PriorityMedium, Impact: 3, Complexity: 3, Context: ContextWork},
		{ID: "third", Priority: PriorityMedium, Impact: 3, Complexity: 3, Context: ContextWork},
	}

	ranked := Rank(tasks, now)
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].ID)
	assert.Equal(t, "second", ranked[1].ID)
	assert.Equal(t, "third", ranked[2].ID)
}

func TestRankIdempotent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tasks := []*Task{
		{ID: "a", Priority: PriorityHigh, Impact: 2, Complexity: 4, Context: ContextLearning, DueDate: dueIn(now, 48 * time.Hour)},
		{ID: "b", Priority: PriorityLow, Impact: 5, Complexity: 1, Context: ContextPersonal},
		{ID: "c", Priority: PriorityMedium, Impact: 3, Complexity: 2, Context: ContextCreative},
	}

	first := Rank(tasks, now)
	second := Rank(tasks, now)
	assert.Equal(t, first, second)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tasks := []*Task{
		{ID: "a", Priority: PriorityLow, Impact: 1, Complexity: 5, Context: ContextWork},
		{ID: "b", Priority: PriorityHigh, Impact: 5, Complexity: 1, Context: ContextWork},
	}

	Rank(tasks, now)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, "b", tasks[1].ID)
}
