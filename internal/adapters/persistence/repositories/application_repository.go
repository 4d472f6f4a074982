package repositories

import (
	"context"

	"county-workhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create creates a new application
func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID gets an application by ID
func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Job.Department").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Delete deletes an application
func (r *applicationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Application{}, id).Error
}

// List lists all applications
func (r *applicationRepository) List(ctx context.Context) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Job.Department").
		Order("id").
		Find(&apps).Error
	return apps, err
}

// ListByApplicant lists applications submitted by a user
func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID uint) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Job.Department").
		Where("applicant_id = ?", applicantID).
		Order("id").
		Find(&apps).Error
	return apps, err
}

// ExistsByApplicantAndJob checks if an applicant already applied for a job
func (r *applicationRepository) ExistsByApplicantAndJob(ctx context.Context, applicantID, jobID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("applicant_id = ? AND job_id = ?", applicantID, jobID).
		Count(&count).Error
	return count > 0, err
}
