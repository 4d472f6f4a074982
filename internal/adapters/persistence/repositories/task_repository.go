package repositories

import (
	"context"

	"county-workhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// taskRepository implements TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task
func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID gets a task by ID
func (r *taskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Preload("Supervisor").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates a task
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete deletes a task
func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}

// List lists all tasks
func (r *taskRepository) List(ctx context.Context) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Preload("Supervisor").
		Order("id").
		Find(&tasks).Error
	return tasks, err
}

// ListBySupervisor lists tasks assigned by a supervisor
func (r *taskRepository) ListBySupervisor(ctx context.Context, supervisorID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Preload("Supervisor").
		Where("supervisor_id = ?", supervisorID).
		Order("id").
		Find(&tasks).Error
	return tasks, err
}

// ListByWorker lists tasks assigned to a worker
func (r *taskRepository) ListByWorker(ctx context.Context, workerID uint) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Preload("Supervisor").
		Where("assigned_to = ?", workerID).
		Order("id").
		Find(&tasks).Error
	return tasks, err
}
