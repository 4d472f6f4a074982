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

func newDepartmentService(db *gorm.DB) *services.DepartmentService {
	return services.NewDepartmentService(
		repositories.NewDepartmentRepository(db),
		repositories.NewUserRepository(db),
		db,
	)
}

func TestCreateDepartment(t *testing.T) {
	db := setupDB(t)
	svc := newDepartmentService(db)
	ctx := context.Background()

	sup := createUser(t, db, "Sup", "sup@example.com", domain.RoleSupervisor, nil)
	worker := createUser(t, db, "Worker", "w@example.com", domain.RoleWorker, nil)

	dept, err := svc.CreateDepartment(ctx, &services.CreateDepartmentInput{
		Name:         "Sanitation",
		SupervisorID: &sup.ID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if dept.SupervisorName == nil || *dept.SupervisorName != "Sup" {
		t.Errorf("expected supervisor name, got %v", dept.SupervisorName)
	}

	// Duplicate name
	if _, err := svc.CreateDepartment(ctx, &services.CreateDepartmentInput{Name: "Sanitation"}); !errors.Is(err, services.ErrDepartmentExists) {
		t.Errorf("expected ErrDepartmentExists, got %v", err)
	}

	// Supervisor must hold the supervisor role
	if _, err := svc.CreateDepartment(ctx, &services.CreateDepartmentInput{
		Name: "Roads", SupervisorID: &worker.ID,
	}); !errors.Is(err, services.ErrNotASupervisor) {
		t.Errorf("expected ErrNotASupervisor, got %v", err)
	}

	// One supervisor heads at most one department
	if _, err := svc.CreateDepartment(ctx, &services.CreateDepartmentInput{
		Name: "Water", SupervisorID: &sup.ID,
	}); !errors.Is(err, services.ErrSupervisorAssigned) {
		t.Errorf("expected ErrSupervisorAssigned, got %v", err)
	}

	missing := uint(9999)
	if _, err := svc.CreateDepartment(ctx, &services.CreateDepartmentInput{
		Name: "Ghost", SupervisorID: &missing,
	}); !errors.Is(err, services.ErrSupervisorNotFound) {
		t.Errorf("expected ErrSupervisorNotFound, got %v", err)
	}
}

func TestUpdateDepartmentKeepsOwnSupervisor(t *testing.T) {
	db := setupDB(t)
	svc := newDepartmentService(db)
	ctx := context.Background()

	sup := createUser(t, db, "Sup", "sup@example.com", domain.RoleSupervisor, nil)
	dept := createDepartment(t, db, "Sanitation", &sup.ID)

	// Re-assigning the department's own supervisor is not a conflict
	updated, err := svc.UpdateDepartment(ctx, dept.ID, &services.UpdateDepartmentInput{
		Name:         strPtr("Sanitation & Waste"),
		SupervisorID: &sup.ID,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Sanitation & Waste" {
		t.Errorf("expected renamed department, got %s", updated.Name)
	}
}

func TestDeleteDepartmentCascades(t *testing.T) {
	db := setupDB(t)
	svc := newDepartmentService(db)
	appSvc := newApplicationService(db)
	ctx := context.Background()

	dept := createDepartment(t, db, "Public Works", nil)
	other := createDepartment(t, db, "Health", nil)
	job := createJob(t, db, "Road Crew", dept.ID, domain.JobStatusOpen)
	otherJob := createJob(t, db, "Nurse Aide", other.ID, domain.JobStatusOpen)

	member := createUser(t, db, "Member", "m@example.com", domain.RoleWorker, &dept.ID)
	applicant := createUser(t, db, "App", "a@example.com", domain.RoleApplicant, nil)
	appSvc.SubmitApplication(ctx, applicant.ID, &services.SubmitApplicationInput{JobID: job.ID})
	appSvc.SubmitApplication(ctx, applicant.ID, &services.SubmitApplicationInput{JobID: otherJob.ID})

	if err := svc.DeleteDepartment(ctx, dept.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var jobCount, appCount int64
	db.Model(&models.Job{}).Count(&jobCount)
	db.Model(&models.Application{}).Count(&appCount)
	if jobCount != 1 {
		t.Errorf("expected only the other department's job to survive, got %d", jobCount)
	}
	if appCount != 1 {
		t.Errorf("expected only the other job's application to survive, got %d", appCount)
	}

	// Members are detached, not deleted
	var reloaded models.User
	if err := db.First(&reloaded, member.ID).Error; err != nil {
		t.Fatalf("member should survive department deletion: %v", err)
	}
	if reloaded.DepartmentID != nil {
		t.Errorf("member department_id should be nulled, got %v", reloaded.DepartmentID)
	}

	if err := svc.DeleteDepartment(ctx, dept.ID); !errors.Is(err, services.ErrDepartmentNotFound) {
		t.Errorf("expected ErrDepartmentNotFound on second delete, got %v", err)
	}
}

func TestListWorkers(t *testing.T) {
	db := setupDB(t)
	svc := newDepartmentService(db)
	ctx := context.Background()

	dept := createDepartment(t, db, "Sanitation", nil)
	createUser(t, db, "W1", "w1@example.com", domain.RoleWorker, &dept.ID)
	createUser(t, db, "W2", "w2@example.com", domain.RoleWorker, &dept.ID)
	createUser(t, db, "Sup", "sup@example.com", domain.RoleSupervisor, &dept.ID)
	createUser(t, db, "Outsider", "o@example.com", domain.RoleWorker, nil)

	workers, err := svc.ListWorkers(ctx, dept.ID)
	if err != nil {
		t.Fatalf("list workers failed: %v", err)
	}
	if len(workers) != 2 {
		t.Errorf("expected 2 workers, got %d", len(workers))
	}

	if _, err := svc.ListWorkers(ctx, 9999); !errors.Is(err, services.ErrDepartmentNotFound) {
		t.Errorf("expected ErrDepartmentNotFound, got %v", err)
	}
}
