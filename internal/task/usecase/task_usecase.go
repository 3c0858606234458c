package usecase

import (
	"errors"
	"time"

	"carelink-backend/internal/task/domain"
	"carelink-backend/internal/task/repository"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo repository.TaskRepository
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository) TaskUsecase {
	return &taskUsecase{
		taskRepo: taskRepo,
	}
}

func (u *taskUsecase) CreateTask(userID, title string, dueDate *string, priority, context string, impact, complexity int) (*domain.Task, error) {
	task := &domain.Task{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      title,
		Priority:   parsePriority(priority),
		Context:    parseContext(context),
		Impact:     clampScale(impact),
		Complexity: clampScale(complexity),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if dueDate != nil && *dueDate != "" {
		if t, err := time.Parse(time.RFC3339, *dueDate); err == nil {
			task.DueDate = &t
		}
	}

	if err := u.taskRepo.Create(task); err != nil {
		return nil, err
	}

	return task, nil
}

func (u *taskUsecase) GetTaskByID(userID, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.UserID != userID {
		return nil, ErrUnauthorized
	}
	return task, nil
}

func (u *taskUsecase) GetUserTasks(userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error) {
	return u.taskRepo.FindByUserID(userID, completed, limit, offset)
}

func (u *taskUsecase) GetSuggestions(userID string, now time.Time) ([]domain.ScoredTask, error) {
	tasks, err := u.taskRepo.FindIncompleteByUserID(userID)
	if err != nil {
		return nil, err
	}
	return domain.Rank(tasks, now), nil
}

func (u *taskUsecase) UpdateTask(userID, taskID string, updates TaskUpdateRequest) (*domain.Task, error) {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		task.Title = *updates.Title
	}
	if updates.Priority != nil {
		task.Priority = parsePriority(*updates.Priority)
	}
	if updates.Context != nil {
		task.Context = parseContext(*updates.Context)
	}
	if updates.Impact != nil {
		task.Impact = clampScale(*updates.Impact)
	}
	if updates.Complexity != nil {
		task.Complexity = clampScale(*updates.Complexity)
	}
	if updates.Completed != nil {
		task.Completed = *updates.Completed
	}
	if updates.DueDate != nil {
		if *updates.DueDate == "" {
			task.DueDate = nil
		} else if t, err := time.Parse(time.RFC3339, *updates.DueDate); err == nil {
			task.DueDate = &t
		}
	}

	task.UpdatedAt = time.Now()
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}

	return task, nil
}

func (u *taskUsecase) SetCompleted(userID, taskID string, completed bool) (*domain.Task, error) {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = completed
	task.UpdatedAt = time.Now()
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}

	return task, nil
}

func (u *taskUsecase) DeleteTask(userID, taskID string) error {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return err
	}
	return u.taskRepo.Delete(task.ID)
}

func parsePriority(p string) domain.Priority {
	switch p {
	case "high":
		return domain.PriorityHigh
	case "low":
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}

func parseContext(c string) domain.Context {
	switch domain.Context(c) {
	case domain.ContextCreative, domain.ContextAdministrative, domain.ContextLearning, domain.ContextPersonal:
		return domain.Context(c)
	default:
		return domain.ContextWork
	}
}

func clampScale(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}
