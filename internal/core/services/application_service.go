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

// Application service errors
var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrJobNotOpen           = errors.New("job is not open for applications")
	ErrAlreadyApplied       = errors.New("already applied for this job")
	ErrApplicationReviewed  = errors.New("application already reviewed")
	ErrInvalidReviewStatus  = errors.New("review status must be accepted or rejected")
	ErrNotApplicationOwner  = errors.New("not the owner of this application")
)

// ApplicationService handles job application business logic
type ApplicationService struct {
	appRepo repositories.ApplicationRepository
	jobRepo repositories.JobRepository
	db      *gorm.DB
}

// NewApplicationService creates a new application service
func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	db *gorm.DB,
) *ApplicationService {
	return &ApplicationService{
		appRepo: appRepo,
		jobRepo: jobRepo,
		db:      db,
	}
}

// SubmitApplicationInput represents submit application input
type SubmitApplicationInput struct {
	JobID uint `json:"job_id" validate:"required"`
}

// ReviewApplicationInput represents review application input
type ReviewApplicationInput struct {
	Status string `json:"status" validate:"required"`
}

// SubmitApplication submits an application for an open job
func (s *ApplicationService) SubmitApplication(ctx context.Context, applicantID uint, input *SubmitApplicationInput) (*models.ApplicationResponse, error) {
	// 1. Job must exist and be open
	job, err := s.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if job.Status != domain.JobStatusOpen {
		return nil, ErrJobNotOpen
	}

	// 2. One application per applicant per job
	exists, err := s.appRepo.ExistsByApplicantAndJob(ctx, applicantID, job.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	app := &models.Application{
		ApplicantID: applicantID,
		JobID:       job.ID,
		Status:      domain.ApplicationStatusPending,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	created, err := s.appRepo.GetByID(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Application submitted: user %d -> job %d", applicantID, job.ID)
	return created.ToResponse(), nil
}

// GetApplication gets an application by ID
func (s *ApplicationService) GetApplication(ctx context.Context, id uint) (*models.ApplicationResponse, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return app.ToResponse(), nil
}

// ListApplications lists applications. Admins see every application,
// everyone else only their own.
func (s *ApplicationService) ListApplications(ctx context.Context, actorID uint, actorRole domain.Role) ([]*models.ApplicationResponse, error) {
	var apps []*models.Application
	var err error

	if actorRole == domain.RoleAdmin {
		apps, err = s.appRepo.List(ctx)
	} else {
		apps, err = s.appRepo.ListByApplicant(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		responses = append(responses, a.ToResponse())
	}
	return responses, nil
}

// ReviewApplication accepts or rejects a pending application. Accepting
// promotes the applicant to worker in the job's department atomically
// with the status change.
func (s *ApplicationService) ReviewApplication(ctx context.Context, id uint, input *ReviewApplicationInput) (*models.ApplicationResponse, error) {
	if input.Status != domain.ApplicationStatusAccepted && input.Status != domain.ApplicationStatusRejected {
		return nil, ErrInvalidReviewStatus
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if app.Status != domain.ApplicationStatusPending {
		return nil, ErrApplicationReviewed
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Application{}).
			Where("id = ?", app.ID).
			Updates(map[string]interface{}{
				"status":      input.Status,
				"reviewed_at": now,
			}).Error; err != nil {
			return err
		}

		if input.Status == domain.ApplicationStatusAccepted {
			return tx.Model(&models.User{}).
				Where("id = ?", app.ApplicantID).
				Updates(map[string]interface{}{
					"role":          domain.RoleWorker,
					"department_id": app.Job.DepartmentID,
				}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	reviewed, err := s.appRepo.GetByID(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Application %d reviewed: %s", app.ID, input.Status)
	return reviewed.ToResponse(), nil
}

// WithdrawApplication deletes an application. Only the owner or an admin
// may withdraw.
func (s *ApplicationService) WithdrawApplication(ctx context.Context, id uint, actorID uint, actorRole domain.Role) error {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}

	if app.ApplicantID != actorID && actorRole != domain.RoleAdmin {
		return ErrNotApplicationOwner
	}

	if err := s.appRepo.Delete(ctx, app.ID); err != nil {
		return err
	}

	log.Printf("✅ Application withdrawn: ID %d", id)
	return nil
}
