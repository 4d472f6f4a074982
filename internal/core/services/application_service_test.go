package services_test

import (
	"context"
	"errors"
	"testing"

	"county-workhub/internal/adapters/persistence/models"
	"county-workhub/internal/adapters/persistence/repositories"
	"county-workhub/internal/core/domain"
	"county-workhub/internal/core/services"

	"gorm.io/gorm"
)

func newApplicationService(db *gorm.DB) *services.ApplicationService {
	return services.NewApplicationService(
		repositories.NewApplicationRepository(db),
		repositories.NewJobRepository(db),
		db,
	)
}

func TestSubmitApplication(t *testing.T) {
	db := setupDB(t)
	svc := newApplicationService(db)
	ctx := context.Background()

	dept := createDepartment(t, db, "Sanitation", nil)
	openJob := createJob(t, db, "Street Sweeper", dept.ID, domain.JobStatusOpen)
	closedJob := createJob(t, db, "Old Posting", dept.ID, domain.JobStatusClosed)
	applicant := createUser(t, db, "Jane Mwangi", "jane@example.com", domain.RoleApplicant, nil)

	app, err := svc.SubmitApplication(ctx, applicant.ID, &services.SubmitApplicationInput{JobID: openJob.ID})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if app.Status != domain.ApplicationStatusPending {
		t.Errorf("expected pending status, got %s", app.Status)
	}
	if app.JobTitle == nil || *app.JobTitle != "Street Sweeper" {
		t.Errorf("expected job title in response, got %v", app.JobTitle)
	}

	// Duplicate pair is rejected
	if _, err := svc.SubmitApplication(ctx, applicant.ID, &services.SubmitApplicationInput{JobID: openJob.ID}); !errors.Is(err, services.ErrAlreadyApplied) {
		t.Errorf("expected ErrAlreadyApplied, got %v", err)
	}

	// Closed jobs do not accept applications
	if _, err := svc.SubmitApplication(ctx, applicant.ID, &services.SubmitApplicationInput{JobID: closedJob.ID}); !errors.Is(err, services.ErrJobNotOpen) {
		t.Errorf("expected ErrJobNotOpen, got %v", err)
	}

	// Unknown job
	if _, err := svc.SubmitApplication(ctx, applicant.ID, &services.SubmitApplicationInput{JobID: 9999}); !errors.Is(err, services.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestReviewApplicationAcceptPromotesApplicant(t *testing.T) {
	db := setupDB(t)
	svc := newApplicationService(db)
	ctx := context.Background()

	dept := createDepartment(t, db, "Public Works", nil)
	job := createJob(t, db, "Road Crew", dept.ID, domain.JobStatusOpen)
	applicant := createUser(t, db, "Otieno Odhiambo", "otieno@example.com", domain.RoleApplicant, nil)

	app, err := svc.SubmitApplication(ctx, applicant.ID, &services.SubmitApplicationInput{JobID: job.ID})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	reviewed, err := svc.ReviewApplication(ctx, app.ID, &services.ReviewApplicationInput{Status: domain.ApplicationStatusAccepted})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != domain.ApplicationStatusAccepted {
		t.Errorf("expected accepted, got %s", reviewed.Status)
	}
	if reviewed.ReviewedAt == nil {
		t.Error("expected reviewed_at to be stamped")
	}

	// Acceptance promotes the applicant into the job's department
	var promoted models.User
	if err := db.First(&promoted, applicant.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if promoted.Role != domain.RoleWorker {
		t.Errorf("expected worker role after acceptance, got %s", promoted.Role)
	}
	if promoted.DepartmentID == nil || *promoted.DepartmentID != dept.ID {
		t.Errorf("expected department %d, got %v", dept.ID, promoted.DepartmentID)
	}

	// Terminal states are not re-reviewable
	if _, err := svc.ReviewApplication(ctx, app.ID, &services.ReviewApplicationInput{Status: domain.ApplicationStatusRejected}); !errors.Is(err, services.ErrApplicationReviewed) {
		t.Errorf("expected ErrApplicationReviewed, got %v", err)
	}
}

func TestReviewApplicationRejectLeavesApplicant(t *testing.T) {
	db := setupDB(t)
	svc := newApplicationService(db)
	ctx := context.Background()

	dept := createDepartment(t, db, "Health Services", nil)
	job := createJob(t, db, "Clinic Aide", dept.ID, domain.JobStatusOpen)
	applicant := createUser(t, db, "Amina Hassan", "amina@example.com", domain.RoleApplicant, nil)

	app, _ := svc.SubmitApplication(ctx, applicant.ID, &services.SubmitApplicationInput{JobID: job.ID})

	if _, err := svc.ReviewApplication(ctx, app.ID, &services.ReviewApplicationInput{Status: domain.ApplicationStatusRejected}); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	var user models.User
	db.First(&user, applicant.ID)
	if user.Role != domain.RoleApplicant {
		t.Errorf("rejection must not change role, got %s", user.Role)
	}
	if user.DepartmentID != nil {
		t.Errorf("rejection must not assign a department, got %v", user.DepartmentID)
	}
}

func TestReviewApplicationInvalidStatus(t *testing.T) {
	db := setupDB(t)
	svc := newApplicationService(db)
	ctx := context.Background()

	dept := createDepartment(t, db, "Water", nil)
	job := createJob(t, db, "Meter Reader", dept.ID, domain.JobStatusOpen)
	applicant := createUser(t, db, "K. Njoroge", "knj@example.com", domain.RoleApplicant, nil)
	app, _ := svc.SubmitApplication(ctx, applicant.ID, &services.SubmitApplicationInput{JobID: job.ID})

	if _, err := svc.ReviewApplication(ctx, app.ID, &services.ReviewApplicationInput{Status: "pending"}); !errors.Is(err, services.ErrInvalidReviewStatus) {
		t.Errorf("expected ErrInvalidReviewStatus, got %v", err)
	}
}

func TestWithdrawApplication(t *testing.T) {
	db := setupDB(t)
	svc := newApplicationService(db)
	ctx := context.Background()

	dept := createDepartment(t, db, "Sanitation", nil)
	job := createJob(t, db, "Collector", dept.ID, domain.JobStatusOpen)
	owner := createUser(t, db, "Owner", "owner@example.com", domain.RoleApplicant, nil)
	other := createUser(t, db, "Other", "other@example.com", domain.RoleApplicant, nil)
	admin := createUser(t, db, "Admin", "admin@example.com", domain.RoleAdmin, nil)

	app, _ := svc.SubmitApplication(ctx, owner.ID, &services.SubmitApplicationInput{JobID: job.ID})

	// A stranger cannot withdraw
	if err := svc.WithdrawApplication(ctx, app.ID, other.ID, domain.RoleApplicant); !errors.Is(err, services.ErrNotApplicationOwner) {
		t.Errorf("expected ErrNotApplicationOwner, got %v", err)
	}

	// The owner can
	if err := svc.WithdrawApplication(ctx, app.ID, owner.ID, domain.RoleApplicant); err != nil {
		t.Fatalf("owner withdraw failed: %v", err)
	}

	// And an admin can withdraw someone else's
	app2, _ := svc.SubmitApplication(ctx, owner.ID, &services.SubmitApplicationInput{JobID: job.ID})
	if err := svc.WithdrawApplication(ctx, app2.ID, admin.ID, domain.RoleAdmin); err != nil {
		t.Fatalf("admin withdraw failed: %v", err)
	}

	var count int64
	db.Model(&models.Application{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no applications left, got %d", count)
	}
}

func TestListApplicationsScoping(t *testing.T) {
	db := setupDB(t)
	svc := newApplicationService(db)
	ctx := context.Background()

	dept := createDepartment(t, db, "Sanitation", nil)
	job1 := createJob(t, db, "Job A", dept.ID, domain.JobStatusOpen)
	job2 := createJob(t, db, "Job B", dept.ID, domain.JobStatusOpen)
	a1 := createUser(t, db, "A1", "a1@example.com", domain.RoleApplicant, nil)
	a2 := createUser(t, db, "A2", "a2@example.com", domain.RoleApplicant, nil)
	admin := createUser(t, db, "Admin", "adm@example.com", domain.RoleAdmin, nil)

	svc.SubmitApplication(ctx, a1.ID, &services.SubmitApplicationInput{JobID: job1.ID})
	svc.SubmitApplication(ctx, a2.ID, &services.SubmitApplicationInput{JobID: job1.ID})
	svc.SubmitApplication(ctx, a2.ID, &services.SubmitApplicationInput{JobID: job2.ID})

	all, err := svc.ListApplications(ctx, admin.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("admin should see 3 applications, got %d", len(all))
	}

	own, err := svc.ListApplications(ctx, a2.ID, domain.RoleApplicant)
	if err != nil {
		t.Fatalf("applicant list failed: %v", err)
	}
	if len(own) != 2 {
		t.Errorf("applicant should see 2 own applications, got %d", len(own))
	}
}
