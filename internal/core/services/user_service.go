package services

import (
	"context"
	"errors"
	"log"

	"county-workhub/internal/adapters/persistence/models"
	"county-workhub/internal/adapters/persistence/repositories"
	"county-workhub/internal/core/domain"
	"county-workhub/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrInvalidRole           = errors.New("invalid role")
	ErrCannotDeleteSelf      = errors.New("cannot delete your own account")
	ErrSupervisorTaken       = errors.New("department already has a supervisor")
	ErrDepartmentNotFoundSvc = errors.New("department not found")
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
	deptRepo repositories.DepartmentRepository
	db       *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	deptRepo repositories.DepartmentRepository,
	db *gorm.DB,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		deptRepo: deptRepo,
		db:       db,
	}
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Page  int
	Limit int
	Role  string
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users      []*models.UserResponse `json:"users"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// UpdateUserInput represents update user input (admin only).
// Nil fields are left untouched.
type UpdateUserInput struct {
	FullName      *string      `json:"full_name"`
	Email         *string      `json:"email"`
	Role          *domain.Role `json:"role"`
	DepartmentID  *uint        `json:"department_id"`
	Salary        *float64     `json:"salary"`
	SalaryBalance *float64     `json:"salary_balance"`
	Password      *string      `json:"password"`
}

// ListUsers lists users with optional role filter and pagination
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 || input.Limit > 100 {
		input.Limit = 20
	}
	offset := (input.Page - 1) * input.Limit

	var roleFilter *domain.Role
	if input.Role != "" {
		role := domain.Role(input.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		roleFilter = &role
	}

	users, total, err := s.userRepo.List(ctx, roleFilter, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListUsersOutput{
		Users:      responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetUser gets a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateUser updates a user record (admin only)
func (s *UserService) UpdateUser(ctx context.Context, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}

	if input.DepartmentID != nil {
		if _, err := s.deptRepo.GetByID(ctx, *input.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFoundSvc
			}
			return nil, err
		}
		user.DepartmentID = input.DepartmentID
	}

	// A department holds at most one supervisor.
	if user.Role == domain.RoleSupervisor && user.DepartmentID != nil {
		other, err := s.userRepo.FindSupervisorOfDepartment(ctx, *user.DepartmentID, user.ID)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrSupervisorTaken
		}
	}

	if input.Salary != nil {
		user.Salary = input.Salary
	}
	if input.SalaryBalance != nil {
		user.SalaryBalance = input.SalaryBalance
	}

	if input.Password != nil {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Re-read so the department association reflects any change
	updated, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User updated: ID %d", user.ID)
	return updated.ToResponse(), nil
}

// DeleteUser deletes a user along with their sessions, applications,
// payments and contracts. Tasks are kept; their worker and supervisor
// references go stale and render as null.
func (s *UserService) DeleteUser(ctx context.Context, id uint, actorID uint) error {
	if id == actorID {
		return ErrCannotDeleteSelf
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("applicant_id = ?", user.ID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("worker_id = ?", user.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("worker_id = ?", user.ID).Delete(&models.Contract{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Department{}).
			Where("supervisor_id = ?", user.ID).
			Update("supervisor_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, user.ID).Error
	})
	if err != nil {
		return err
	}

	log.Printf("✅ User deleted: ID %d", id)
	return nil
}

// GetProfile gets the authenticated user's own profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	return s.GetUser(ctx, userID)
}
