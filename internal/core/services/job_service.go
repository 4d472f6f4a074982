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

// Job service errors
var (
	ErrJobNotFound      = errors.New("job not found")
	ErrInvalidJobStatus = errors.New("invalid job status")
)

// JobService handles job posting business logic
type JobService struct {
	jobRepo  repositories.JobRepository
	deptRepo repositories.DepartmentRepository
	db       *gorm.DB
}

// NewJobService creates a new job service
func NewJobService(
	jobRepo repositories.JobRepository,
	deptRepo repositories.DepartmentRepository,
	db *gorm.DB,
) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		deptRepo: deptRepo,
		db:       db,
	}
}

// CreateJobInput represents create job input
type CreateJobInput struct {
	Title        string `json:"title" validate:"required,min=2,max=150"`
	Description  string `json:"description"`
	DepartmentID uint   `json:"department_id" validate:"required"`
}

// UpdateJobInput represents update job input
type UpdateJobInput struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DepartmentID *uint   `json:"department_id"`
	Status       *string `json:"status"`
}

// ListJobsInput represents list jobs input. Status defaults to open;
// pass "all" to list every job.
type ListJobsInput struct {
	Page   int
	Limit  int
	Status string
}

// ListJobsOutput represents list jobs output
type ListJobsOutput struct {
	Jobs       []*models.JobResponse `json:"jobs"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

// CreateJob creates a new job posting
func (s *JobService) CreateJob(ctx context.Context, input *CreateJobInput) (*models.JobResponse, error) {
	if _, err := s.deptRepo.GetByID(ctx, input.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	job := &models.Job{
		Title:        input.Title,
		Description:  input.Description,
		DepartmentID: input.DepartmentID,
		Status:       domain.JobStatusOpen,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	created, err := s.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Job created: %s", job.Title)
	return created.ToResponse(), nil
}

// GetJob gets a job by ID
func (s *JobService) GetJob(ctx context.Context, id uint) (*models.JobResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job.ToResponse(), nil
}

// ListJobs lists jobs with pagination
func (s *JobService) ListJobs(ctx context.Context, input *ListJobsInput) (*ListJobsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 || input.Limit > 100 {
		input.Limit = 20
	}
	offset := (input.Page - 1) * input.Limit

	status := input.Status
	switch status {
	case "":
		status = domain.JobStatusOpen
	case "all":
		status = ""
	default:
		if !domain.ValidJobStatus(status) {
			return nil, ErrInvalidJobStatus
		}
	}

	jobs, total, err := s.jobRepo.List(ctx, status, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		responses = append(responses, j.ToResponse())
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListJobsOutput{
		Jobs:       responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateJob updates a job posting
func (s *JobService) UpdateJob(ctx context.Context, id uint, input *UpdateJobInput) (*models.JobResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.DepartmentID != nil {
		if _, err := s.deptRepo.GetByID(ctx, *input.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		job.DepartmentID = *input.DepartmentID
	}
	if input.Status != nil {
		if !domain.ValidJobStatus(*input.Status) {
			return nil, ErrInvalidJobStatus
		}
		job.Status = *input.Status
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	updated, err := s.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Job updated: ID %d", job.ID)
	return updated.ToResponse(), nil
}

// DeleteJob deletes a job posting and its applications
func (s *JobService) DeleteJob(ctx context.Context, id uint) error {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, job.ID).Error
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Job deleted: ID %d", id)
	return nil
}
