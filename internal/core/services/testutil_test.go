package services_test

import (
	"testing"
	"time"

	"county-workhub/internal/adapters/persistence/models"
	"county-workhub/internal/core/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email string, role domain.Role, deptID *uint) *models.User {
	t.Helper()

	user := &models.User{
		FullName:     name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		DepartmentID: deptID,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func createDepartment(t *testing.T, db *gorm.DB, name string, supervisorID *uint) *models.Department {
	t.Helper()

	dept := &models.Department{Name: name, SupervisorID: supervisorID}
	if err := db.Create(dept).Error; err != nil {
		t.Fatalf("failed to create department %s: %v", name, err)
	}
	return dept
}

func createJob(t *testing.T, db *gorm.DB, title string, deptID uint, status string) *models.Job {
	t.Helper()

	job := &models.Job{
		Title:        title,
		Description:  "test job",
		DepartmentID: deptID,
		Status:       status,
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("failed to create job %s: %v", title, err)
	}
	return job
}

func createTask(t *testing.T, db *gorm.DB, workerID, supervisorID uint, status string) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:          "Inspect drainage",
		Description:    "test task",
		AssignedTo:     workerID,
		SupervisorID:   supervisorID,
		ProgressStatus: status,
		StartDate:      time.Now().UTC(),
		EndDate:        time.Now().UTC().Add(48 * time.Hour),
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func uintPtr(v uint) *uint          { return &v }
func strPtr(v string) *string       { return &v }
func floatPtr(v float64) *float64   { return &v }
