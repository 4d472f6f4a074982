package repositories

import (
	"context"

	"county-workhub/internal/adapters/persistence/models"
	"county-workhub/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, role *domain.Role, offset, limit int) ([]*models.User, int64, error)
	ListByDepartmentAndRole(ctx context.Context, departmentID uint, role domain.Role) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// FindSupervisorOfDepartment returns the user supervising the given
	// department, excluding excludeUserID (0 to exclude nobody).
	FindSupervisorOfDepartment(ctx context.Context, departmentID uint, excludeUserID uint) (*models.User, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
}

// DepartmentRepository defines department repository interface
type DepartmentRepository interface {
	Create(ctx context.Context, dept *models.Department) error
	GetByID(ctx context.Context, id uint) (*models.Department, error)
	GetByName(ctx context.Context, name string) (*models.Department, error)
	Update(ctx context.Context, dept *models.Department) error
	List(ctx context.Context) ([]*models.Department, error)
}

// JobRepository defines job repository interface
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	List(ctx context.Context, status string, offset, limit int) ([]*models.Job, int64, error)
}

// ApplicationRepository defines application repository interface
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Application, error)
	ListByApplicant(ctx context.Context, applicantID uint) ([]*models.Application, error)
	ExistsByApplicantAndJob(ctx context.Context, applicantID, jobID uint) (bool, error)
}

// TaskRepository defines task repository interface
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Task, error)
	ListBySupervisor(ctx context.Context, supervisorID uint) ([]*models.Task, error)
	ListByWorker(ctx context.Context, workerID uint) ([]*models.Task, error)
}

// ContractRepository defines contract repository interface
type ContractRepository interface {
	Create(ctx context.Context, contract *models.Contract) error
	GetByID(ctx context.Context, id uint) (*models.Contract, error)
	Update(ctx context.Context, contract *models.Contract) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Contract, error)
	ListByWorker(ctx context.Context, workerID uint) ([]*models.Contract, error)
}

// PaymentRepository defines payment repository interface
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Payment, error)
	ListByWorker(ctx context.Context, workerID uint) ([]*models.Payment, error)
}
