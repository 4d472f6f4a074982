package services

import (
	"context"
	"errors"
	"log"
	"time"

	"county-workhub/internal/adapters/persistence/models"
	"county-workhub/internal/adapters/persistence/repositories"
	"county-workhub/internal/core/domain"

	"gorm.io/gorm"
)

// Task service errors
var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrWorkerNotFound      = errors.New("worker not found")
	ErrNotAWorker          = errors.New("assignee is not a worker")
	ErrInvalidDateRange    = errors.New("start date must not be after end date")
	ErrInvalidTaskProgress = errors.New("invalid progress status")
	ErrInvalidTaskVerdict  = errors.New("verdict must be approved or denied")
	ErrTaskNotCompleted    = errors.New("task has not been completed")
	ErrNotTaskParticipant  = errors.New("not allowed to modify this task")
)

// TaskService handles task lifecycle business logic
type TaskService struct {
	taskRepo repositories.TaskRepository
	userRepo repositories.UserRepository
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repositories.TaskRepository, userRepo repositories.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents create task input
type CreateTaskInput struct {
	Title       string    `json:"title" validate:"required,min=2,max=150"`
	Description string    `json:"description"`
	AssignedTo  uint      `json:"assigned_to" validate:"required"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
}

// UpdateTaskInput represents update task input. Workers may only set
// ProgressStatus; the remaining fields are supervisor/admin only.
type UpdateTaskInput struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	ProgressStatus *string    `json:"progress_status"`
}

// ReviewTaskInput represents task review input
type ReviewTaskInput struct {
	Verdict string  `json:"verdict" validate:"required"`
	Comment *string `json:"comment"`
}

// CreateTask assigns a new task to a worker
func (s *TaskService) CreateTask(ctx context.Context, supervisorID uint, input *CreateTaskInput) (*models.TaskResponse, error) {
	worker, err := s.userRepo.GetByID(ctx, input.AssignedTo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	if worker.Role != domain.RoleWorker {
		return nil, ErrNotAWorker
	}

	if input.StartDate.After(input.EndDate) {
		return nil, ErrInvalidDateRange
	}

	task := &models.Task{
		Title:          input.Title,
		Description:    input.Description,
		AssignedTo:     worker.ID,
		SupervisorID:   supervisorID,
		ProgressStatus: domain.TaskStatusPending,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	created, err := s.taskRepo.GetByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Task created: %s (worker %d)", task.Title, worker.ID)
	return created.ToResponse(), nil
}

// GetTask gets a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uint) (*models.TaskResponse, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task.ToResponse(), nil
}

// ListTasks lists tasks scoped by role: admins see all, supervisors the
// tasks they assigned, workers the tasks assigned to them, everyone else
// an empty list.
func (s *TaskService) ListTasks(ctx context.Context, actorID uint, actorRole domain.Role) ([]*models.TaskResponse, error) {
	var tasks []*models.Task
	var err error

	switch actorRole {
	case domain.RoleAdmin:
		tasks, err = s.taskRepo.List(ctx)
	case domain.RoleSupervisor:
		tasks, err = s.taskRepo.ListBySupervisor(ctx, actorID)
	case domain.RoleWorker:
		tasks, err = s.taskRepo.ListByWorker(ctx, actorID)
	default:
		tasks = nil
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*models.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, t.ToResponse())
	}
	return responses, nil
}

// UpdateTask updates a task. The assigned worker may only move
// progress_status through pending, in_progress and completed; the first
// transition to completed stamps completed_at.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, actorID uint, actorRole domain.Role, input *UpdateTaskInput) (*models.TaskResponse, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	isStaff := actorRole == domain.RoleAdmin || actorRole == domain.RoleSupervisor
	isAssignee := task.AssignedTo == actorID

	if !isStaff && !isAssignee {
		return nil, ErrNotTaskParticipant
	}

	if !isStaff && (input.Title != nil || input.Description != nil || input.StartDate != nil || input.EndDate != nil) {
		return nil, ErrNotTaskParticipant
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.StartDate != nil {
		task.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		task.EndDate = *input.EndDate
	}
	if task.StartDate.After(task.EndDate) {
		return nil, ErrInvalidDateRange
	}

	if input.ProgressStatus != nil {
		if !domain.ValidTaskProgress(*input.ProgressStatus) {
			return nil, ErrInvalidTaskProgress
		}
		if *input.ProgressStatus == domain.TaskStatusCompleted && task.CompletedAt == nil {
			now := time.Now().UTC()
			task.CompletedAt = &now
		}
		task.ProgressStatus = *input.ProgressStatus
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	updated, err := s.taskRepo.GetByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Task updated: ID %d", task.ID)
	return updated.ToResponse(), nil
}

// ReviewTask approves or denies a completed task
func (s *TaskService) ReviewTask(ctx context.Context, id uint, input *ReviewTaskInput) (*models.TaskResponse, error) {
	if input.Verdict != domain.TaskStatusApproved && input.Verdict != domain.TaskStatusDenied {
		return nil, ErrInvalidTaskVerdict
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if task.ProgressStatus != domain.TaskStatusCompleted {
		return nil, ErrTaskNotCompleted
	}

	now := time.Now().UTC()
	task.ProgressStatus = input.Verdict
	task.ApprovedAt = &now
	task.SupervisorComment = input.Comment

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	updated, err := s.taskRepo.GetByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Task %d reviewed: %s", task.ID, input.Verdict)
	return updated.ToResponse(), nil
}

// DeleteTask deletes a task. Payments referencing it keep a stale
// task_id and render the task title as null.
func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	if _, err := s.taskRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Task deleted: ID %d", id)
	return nil
}
