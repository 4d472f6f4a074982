package repositories

import (
	"context"

	"county-workhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// departmentRepository implements DepartmentRepository interface
type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

// Create creates a new department
func (r *departmentRepository) Create(ctx context.Context, dept *models.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

// GetByID gets a department by ID
func (r *departmentRepository) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	err := r.db.WithContext(ctx).Preload("Supervisor").Where("id = ?", id).First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// GetByName gets a department by name
func (r *departmentRepository) GetByName(ctx context.Context, name string) (*models.Department, error) {
	var dept models.Department
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// Update updates a department
func (r *departmentRepository) Update(ctx context.Context, dept *models.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

// List lists all departments
func (r *departmentRepository) List(ctx context.Context) ([]*models.Department, error) {
	var depts []*models.Department
	err := r.db.WithContext(ctx).Preload("Supervisor").Order("id").Find(&depts).Error
	return depts, err
}
