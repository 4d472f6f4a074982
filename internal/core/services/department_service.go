package services

import (
	"context"
	"errors"
	"log"

	"county-workhub/internal/adapters/persistence/models"
	"county-workhub/internal/adapters/persistence/repositories"
	"county-workhub/internal/core/domain"

	"gorm.io/gorm"
)

// Department service errors
var (
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrDepartmentExists    = errors.New("department name already exists")
	ErrSupervisorNotFound  = errors.New("supervisor not found")
	ErrNotASupervisor      = errors.New("user is not a supervisor")
	ErrSupervisorAssigned  = errors.New("supervisor already assigned to another department")
)

// DepartmentService handles department registry business logic
type DepartmentService struct {
	deptRepo repositories.DepartmentRepository
	userRepo repositories.UserRepository
	db       *gorm.DB
}

// NewDepartmentService creates a new department service
func NewDepartmentService(
	deptRepo repositories.DepartmentRepository,
	userRepo repositories.UserRepository,
	db *gorm.DB,
) *DepartmentService {
	return &DepartmentService{
		deptRepo: deptRepo,
		userRepo: userRepo,
		db:       db,
	}
}

// CreateDepartmentInput represents create department input
type CreateDepartmentInput struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	SupervisorID *uint  `json:"supervisor_id"`
}

// UpdateDepartmentInput represents update department input
type UpdateDepartmentInput struct {
	Name         *string `json:"name"`
	SupervisorID *uint   `json:"supervisor_id"`
}

// checkSupervisor verifies the user exists, holds the supervisor role and
// does not already head another department.
func (s *DepartmentService) checkSupervisor(ctx context.Context, supervisorID uint, deptID uint) error {
	sup, err := s.userRepo.GetByID(ctx, supervisorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupervisorNotFound
		}
		return err
	}
	if sup.Role != domain.RoleSupervisor {
		return ErrNotASupervisor
	}

	depts, err := s.deptRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range depts {
		if d.ID != deptID && d.SupervisorID != nil && *d.SupervisorID == supervisorID {
			return ErrSupervisorAssigned
		}
	}
	return nil
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, input *CreateDepartmentInput) (*models.DepartmentResponse, error) {
	if _, err := s.deptRepo.GetByName(ctx, input.Name); err == nil {
		return nil, ErrDepartmentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.SupervisorID != nil {
		if err := s.checkSupervisor(ctx, *input.SupervisorID, 0); err != nil {
			return nil, err
		}
	}

	dept := &models.Department{
		Name:         input.Name,
		SupervisorID: input.SupervisorID,
	}
	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, err
	}

	created, err := s.deptRepo.GetByID(ctx, dept.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Department created: %s", dept.Name)
	return created.ToResponse(), nil
}

// GetDepartment gets a department by ID
func (s *DepartmentService) GetDepartment(ctx context.Context, id uint) (*models.DepartmentResponse, error) {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return dept.ToResponse(), nil
}

// ListDepartments lists all departments
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]*models.DepartmentResponse, error) {
	depts, err := s.deptRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		responses = append(responses, d.ToResponse())
	}
	return responses, nil
}

// UpdateDepartment updates a department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uint, input *UpdateDepartmentInput) (*models.DepartmentResponse, error) {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	if input.Name != nil && *input.Name != dept.Name {
		if _, err := s.deptRepo.GetByName(ctx, *input.Name); err == nil {
			return nil, ErrDepartmentExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		dept.Name = *input.Name
	}

	if input.SupervisorID != nil {
		if err := s.checkSupervisor(ctx, *input.SupervisorID, dept.ID); err != nil {
			return nil, err
		}
		dept.SupervisorID = input.SupervisorID
	}

	if err := s.deptRepo.Update(ctx, dept); err != nil {
		return nil, err
	}

	updated, err := s.deptRepo.GetByID(ctx, dept.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Department updated: %s", updated.Name)
	return updated.ToResponse(), nil
}

// DeleteDepartment deletes a department together with its jobs and their
// applications, and detaches members assigned to it
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uint) error {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var jobIDs []uint
		if err := tx.Model(&models.Job{}).
			Where("department_id = ?", dept.ID).
			Pluck("id", &jobIDs).Error; err != nil {
			return err
		}

		if len(jobIDs) > 0 {
			if err := tx.Where("job_id IN ?", jobIDs).Delete(&models.Application{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", jobIDs).Delete(&models.Job{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.User{}).
			Where("department_id = ?", dept.ID).
			Update("department_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Department{}, dept.ID).Error
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Department deleted: %s", dept.Name)
	return nil
}

// ListWorkers lists the workers attached to a department
func (s *DepartmentService) ListWorkers(ctx context.Context, id uint) ([]*models.UserResponse, error) {
	if _, err := s.deptRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	workers, err := s.userRepo.ListByDepartmentAndRole(ctx, id, domain.RoleWorker)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, w.ToResponse())
	}
	return responses, nil
}
