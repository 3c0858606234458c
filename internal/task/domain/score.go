package domain

import (
	"math"
	"sort"
	"time"
)

// Scoring weights. These reflect product tuning and are carried over
// from the original dashboard as-is.
const (
	weightPriority   = 0.3
	weightImpact     = 0.25
	weightUrgency    = 0.2
	weightComplexity = 0.15
	weightContext    = 0.1
)

// optimalHours maps each task context to the hours of day (24h clock)
// where working on it scores a timing bonus.
var optimalHours = map[Context][]int{
	ContextWork:           {9, 10, 11, 14, 15, 16},
	ContextCreative:       {8, 9, 10, 20, 21},
	ContextAdministrative: {13, 14, 15, 16, 17},
	ContextLearning:       {8, 9, 10, 19, 20},
	ContextPersonal:       {17, 18, 19, 20, 21},
}

// Score computes the urgency score for a task at the given instant.
// Pure: the task is never mutated. An unknown context simply earns no
// timing bonus; passing one is a caller bug, not a runtime error.
func Score(task *Task, now time.Time) float64 {
	var base float64
	switch task.Priority {
	case PriorityHigh:
		base = 10
	case PriorityMedium:
		base = 6
	case PriorityLow:
		base = 3
	}

	urgency := 2.0
	if task.DueDate == nil {
		urgency = 0
	} else {
		days := int(math.Ceil(task.DueDate.Sub(now).Hours() / 24))
		switch {
		case days <= 1:
			urgency = 10
		case days <= 3:
			urgency = 7
		case days <= 7:
			urgency = 4
		}
	}

	timing := 0.0
	for _, h := range optimalHours[task.Context] {
		if now.Hour() == h {
			timing = 5
			break
		}
	}

	score := base*weightPriority +
		float64(task.Impact*2)*weightImpact +
		urgency*weightUrgency +
		float64(6-task.Complexity)*weightComplexity +
		timing*weightContext

	return math.Round(score*10) / 10
}

// maxSuggestions bounds how many ranked tasks the dashboard shows
const maxSuggestions = 3

// Rank filters out completed tasks, scores the rest at the given
// instant and returns at most three, highest score first. Ties keep
// their original relative order. The input slice is not mutated.
func Rank(tasks []*Task, now time.Time) []ScoredTask {
	scored := make([]ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		scored = append(scored, ScoredTask{Task: *t, AIScore: Score(t, now)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].AIScore > scored[j].AIScore
	})

	if len(scored) > maxSuggestions {
		scored = scored[:maxSuggestions]
	}
	return scored
}
