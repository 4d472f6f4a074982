package config

import (
	"log"

	"county-workhub/internal/adapters/persistence/models"
	"county-workhub/internal/core/domain"
	"county-workhub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Intended for development environments;
// each step is skipped if its data already exists.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedDepartments(); err != nil {
		log.Printf("⚠️ Department seeder skipped: %v", err)
	}
	if err := s.seedUsers(); err != nil {
		log.Printf("⚠️ User seeder skipped: %v", err)
	}
	if err := s.seedJobs(); err != nil {
		log.Printf("⚠️ Job seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedDepartments seeds the default county departments
func (s *Seeder) seedDepartments() error {
	var count int64
	s.db.Model(&models.Department{}).Count(&count)
	if count > 0 {
		return nil
	}

	departments := []models.Department{
		{Name: "Human Resources"},
		{Name: "Sanitation"},
		{Name: "Public Works"},
		{Name: "Health Services"},
		{Name: "Water & Infrastructure"},
	}

	return s.db.Create(&departments).Error
}

// seedUsers seeds one user per role for development logins
func (s *Seeder) seedUsers() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash("password")
	if err != nil {
		return err
	}

	var hr, sanitation models.Department
	if err := s.db.Where("name = ?", "Human Resources").First(&hr).Error; err != nil {
		return err
	}
	if err := s.db.Where("name = ?", "Sanitation").First(&sanitation).Error; err != nil {
		return err
	}

	users := []models.User{
		{
			FullName:     "HR Administrator",
			Email:        "admin@county.go.ke",
			PasswordHash: hashed,
			Role:         domain.RoleAdmin,
			DepartmentID: &hr.ID,
		},
		{
			FullName:     "John Supervisor",
			Email:        "sup@county.go.ke",
			PasswordHash: hashed,
			Role:         domain.RoleSupervisor,
			DepartmentID: &sanitation.ID,
		},
		{
			FullName:     "Peter Worker",
			Email:        "worker@county.go.ke",
			PasswordHash: hashed,
			Role:         domain.RoleWorker,
			DepartmentID: &sanitation.ID,
		},
		{
			FullName:     "Jane Applicant",
			Email:        "applicant@county.go.ke",
			PasswordHash: hashed,
			Role:         domain.RoleApplicant,
		},
	}

	if err := s.db.Create(&users).Error; err != nil {
		return err
	}

	// Bind the seeded supervisor to their department
	var sup models.User
	if err := s.db.Where("email = ?", "sup@county.go.ke").First(&sup).Error; err != nil {
		return err
	}
	return s.db.Model(&models.Department{}).
		Where("id = ?", sanitation.ID).
		Update("supervisor_id", sup.ID).Error
}

// seedJobs seeds sample open job postings
func (s *Seeder) seedJobs() error {
	var count int64
	s.db.Model(&models.Job{}).Count(&count)
	if count > 0 {
		return nil
	}

	var sanitation, publicWorks models.Department
	if err := s.db.Where("name = ?", "Sanitation").First(&sanitation).Error; err != nil {
		return err
	}
	if err := s.db.Where("name = ?", "Public Works").First(&publicWorks).Error; err != nil {
		return err
	}

	jobs := []models.Job{
		{
			Title:        "Sanitation Worker",
			Description:  "Responsible for waste collection and street cleaning. Physical fitness required.",
			DepartmentID: sanitation.ID,
			Status:       domain.JobStatusOpen,
		},
		{
			Title:        "Road Maintenance Worker",
			Description:  "Maintain and repair county roads. Experience in construction or road work preferred.",
			DepartmentID: publicWorks.ID,
			Status:       domain.JobStatusOpen,
		},
	}

	return s.db.Create(&jobs).Error
}
