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

func newUserService(db *gorm.DB) *services.UserService {
	return services.NewUserService(
		repositories.NewUserRepository(db),
		repositories.NewDepartmentRepository(db),
		db,
	)
}

func TestListUsersRoleFilter(t *testing.T) {
	db := setupDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	createUser(t, db, "A1", "a1@example.com", domain.RoleApplicant, nil)
	createUser(t, db, "A2", "a2@example.com", domain.RoleApplicant, nil)
	createUser(t, db, "W", "w@example.com", domain.RoleWorker, nil)

	out, err := svc.ListUsers(ctx, &services.ListUsersInput{Role: "applicant"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if out.Total != 2 {
		t.Errorf("expected 2 applicants, got %d", out.Total)
	}

	out, err = svc.ListUsers(ctx, &services.ListUsersInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if out.Total != 3 {
		t.Errorf("expected 3 users, got %d", out.Total)
	}

	if _, err := svc.ListUsers(ctx, &services.ListUsersInput{Role: "manager"}); !errors.Is(err, services.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	db := setupDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	dept := createDepartment(t, db, "Sanitation", nil)
	user := createUser(t, db, "Jane", "jane@example.com", domain.RoleApplicant, nil)
	taken := createUser(t, db, "Taken", "taken@example.com", domain.RoleApplicant, nil)
	_ = taken

	role := domain.RoleWorker
	updated, err := svc.UpdateUser(ctx, user.ID, &services.UpdateUserInput{
		Role:         &role,
		DepartmentID: &dept.ID,
		Salary:       floatPtr(42000),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleWorker {
		t.Errorf("expected worker role, got %s", updated.Role)
	}
	if updated.DepartmentName == nil || *updated.DepartmentName != "Sanitation" {
		t.Errorf("expected department name, got %v", updated.DepartmentName)
	}
	if updated.Salary == nil || *updated.Salary != 42000 {
		t.Errorf("expected salary 42000, got %v", updated.Salary)
	}

	// Email collision
	if _, err := svc.UpdateUser(ctx, user.ID, &services.UpdateUserInput{Email: strPtr("taken@example.com")}); !errors.Is(err, services.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}

	// Unknown roles rejected
	bad := domain.Role("manager")
	if _, err := svc.UpdateUser(ctx, user.ID, &services.UpdateUserInput{Role: &bad}); !errors.Is(err, services.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}

	// Unknown department rejected
	missing := uint(9999)
	if _, err := svc.UpdateUser(ctx, user.ID, &services.UpdateUserInput{DepartmentID: &missing}); !errors.Is(err, services.ErrDepartmentNotFoundSvc) {
		t.Errorf("expected department not found, got %v", err)
	}
}

func TestUpdateUserSupervisorInvariant(t *testing.T) {
	db := setupDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	dept := createDepartment(t, db, "Sanitation", nil)
	existing := createUser(t, db, "Existing", "e@example.com", domain.RoleSupervisor, &dept.ID)
	_ = existing
	candidate := createUser(t, db, "Candidate", "c@example.com", domain.RoleWorker, nil)

	role := domain.RoleSupervisor
	if _, err := svc.UpdateUser(ctx, candidate.ID, &services.UpdateUserInput{
		Role:         &role,
		DepartmentID: &dept.ID,
	}); !errors.Is(err, services.ErrSupervisorTaken) {
		t.Errorf("expected ErrSupervisorTaken, got %v", err)
	}

	// Promoting the existing supervisor in place is fine
	if _, err := svc.UpdateUser(ctx, existing.ID, &services.UpdateUserInput{Role: &role}); err != nil {
		t.Errorf("re-promoting existing supervisor failed: %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupDB(t)
	svc := newUserService(db)
	appSvc := newApplicationService(db)
	ctx := context.Background()

	admin := createUser(t, db, "Admin", "adm@example.com", domain.RoleAdmin, nil)
	dept := createDepartment(t, db, "Sanitation", nil)
	job := createJob(t, db, "Sweeper", dept.ID, domain.JobStatusOpen)

	sup := createUser(t, db, "Sup", "sup@example.com", domain.RoleSupervisor, &dept.ID)
	db.Model(&models.Department{}).Where("id = ?", dept.ID).Update("supervisor_id", sup.ID)

	victim := createUser(t, db, "Victim", "v@example.com", domain.RoleApplicant, nil)
	appSvc.SubmitApplication(ctx, victim.ID, &services.SubmitApplicationInput{JobID: job.ID})
	db.Create(&models.Payment{WorkerID: victim.ID, Amount: 100, Status: domain.PaymentStatusUnpaid})
	task := createTask(t, db, victim.ID, sup.ID, domain.TaskStatusPending)

	// Self-deletion is blocked
	if err := svc.DeleteUser(ctx, admin.ID, admin.ID); !errors.Is(err, services.ErrCannotDeleteSelf) {
		t.Errorf("expected ErrCannotDeleteSelf, got %v", err)
	}

	if err := svc.DeleteUser(ctx, victim.ID, admin.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var appCount, payCount, taskCount int64
	db.Model(&models.Application{}).Where("applicant_id = ?", victim.ID).Count(&appCount)
	db.Model(&models.Payment{}).Where("worker_id = ?", victim.ID).Count(&payCount)
	db.Model(&models.Task{}).Count(&taskCount)
	if appCount != 0 {
		t.Errorf("applications should be deleted, got %d", appCount)
	}
	if payCount != 0 {
		t.Errorf("payments should be deleted, got %d", payCount)
	}
	// Tasks survive with a stale assignee reference
	if taskCount != 1 {
		t.Errorf("tasks should survive user deletion, got %d", taskCount)
	}
	var stale models.Task
	db.First(&stale, task.ID)
	if stale.AssignedTo != victim.ID {
		t.Errorf("task keeps the stale assignee id, got %d", stale.AssignedTo)
	}

	// Deleting a supervisor detaches them from their department
	if err := svc.DeleteUser(ctx, sup.ID, admin.ID); err != nil {
		t.Fatalf("supervisor delete failed: %v", err)
	}
	var reloaded models.Department
	db.First(&reloaded, dept.ID)
	if reloaded.SupervisorID != nil {
		t.Errorf("department supervisor_id should be nulled, got %v", reloaded.SupervisorID)
	}
}
