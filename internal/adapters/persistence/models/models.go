package models

import (
	"time"

	"county-workhub/internal/core/domain"

	"gorm.io/gorm"
)

// User represents users table
type User struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	FullName      string      `gorm:"size:100;not null" json:"full_name"`
	Email         string      `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash  string      `gorm:"size:255;not null" json:"-"`
	Role          domain.Role `gorm:"size:20;not null;default:'applicant'" json:"role"`
	DepartmentID  *uint       `gorm:"index" json:"department_id"`
	Salary        *float64    `json:"salary"`
	SalaryBalance *float64    `gorm:"default:0" json:"salary_balance"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID             uint        `json:"id"`
	FullName       string      `json:"full_name"`
	Email          string      `json:"email"`
	Role           domain.Role `json:"role"`
	DepartmentID   *uint       `json:"department_id"`
	DepartmentName *string     `json:"department_name"`
	Salary         *float64    `json:"salary"`
	SalaryBalance  *float64    `json:"salary_balance"`
	CreatedAt      time.Time   `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		Role:          u.Role,
		DepartmentID:  u.DepartmentID,
		Salary:        u.Salary,
		SalaryBalance: u.SalaryBalance,
		CreatedAt:     u.CreatedAt,
	}

	if u.Department != nil {
		resp.DepartmentName = &u.Department.Name
	}

	return resp
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().UTC().After(rt.ExpiresAt)
}

// Department represents departments table
type Department struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	SupervisorID *uint     `json:"supervisor_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Supervisor *User `gorm:"foreignKey:SupervisorID" json:"-"`
	Jobs       []Job `gorm:"foreignKey:DepartmentID" json:"-"`
}

func (Department) TableName() string {
	return "departments"
}

// DepartmentResponse DTO
type DepartmentResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	SupervisorID   *uint     `json:"supervisor_id"`
	SupervisorName *string   `json:"supervisor_name"`
	CreatedAt      time.Time `json:"created_at"`
}

func (d *Department) ToResponse() *DepartmentResponse {
	resp := &DepartmentResponse{
		ID:           d.ID,
		Name:         d.Name,
		SupervisorID: d.SupervisorID,
		CreatedAt:    d.CreatedAt,
	}

	if d.Supervisor != nil {
		resp.SupervisorName = &d.Supervisor.FullName
	}

	return resp
}

// Job represents jobs table
type Job struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	DepartmentID uint      `gorm:"not null;index" json:"department_id"`
	Status       string    `gorm:"size:20;not null;default:'open'" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Department   *Department   `gorm:"foreignKey:DepartmentID" json:"-"`
	Applications []Application `gorm:"foreignKey:JobID" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}

// JobResponse DTO
type JobResponse struct {
	ID                uint      `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	DepartmentID      uint      `json:"department_id"`
	DepartmentName    *string   `json:"department_name"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	ApplicationsCount int       `json:"applications_count"`
}

func (j *Job) ToResponse() *JobResponse {
	resp := &JobResponse{
		ID:                j.ID,
		Title:             j.Title,
		Description:       j.Description,
		DepartmentID:      j.DepartmentID,
		Status:            j.Status,
		CreatedAt:         j.CreatedAt,
		ApplicationsCount: len(j.Applications),
	}

	if j.Department != nil {
		resp.DepartmentName = &j.Department.Name
	}

	return resp
}

// Application represents applications table.
// A user may hold at most one application per job, enforced by the
// composite unique index.
type Application struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ApplicantID uint       `gorm:"not null;uniqueIndex:idx_applicant_job" json:"applicant_id"`
	JobID       uint       `gorm:"not null;uniqueIndex:idx_applicant_job" json:"job_id"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	AppliedAt   time.Time  `gorm:"autoCreateTime" json:"applied_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`

	Applicant *User `gorm:"foreignKey:ApplicantID" json:"-"`
	Job       *Job  `gorm:"foreignKey:JobID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}

// ApplicationResponse DTO
type ApplicationResponse struct {
	ID             uint       `json:"id"`
	ApplicantID    uint       `json:"applicant_id"`
	ApplicantName  *string    `json:"applicant_name"`
	ApplicantEmail *string    `json:"applicant_email"`
	JobID          uint       `json:"job_id"`
	JobTitle       *string    `json:"job_title"`
	Department     *string    `json:"department"`
	Status         string     `json:"status"`
	AppliedAt      time.Time  `json:"applied_at"`
	ReviewedAt     *time.Time `json:"reviewed_at"`
}

func (a *Application) ToResponse() *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:          a.ID,
		ApplicantID: a.ApplicantID,
		JobID:       a.JobID,
		Status:      a.Status,
		AppliedAt:   a.AppliedAt,
		ReviewedAt:  a.ReviewedAt,
	}

	if a.Applicant != nil {
		resp.ApplicantName = &a.Applicant.FullName
		resp.ApplicantEmail = &a.Applicant.Email
	}
	if a.Job != nil {
		resp.JobTitle = &a.Job.Title
		if a.Job.Department != nil {
			resp.Department = &a.Job.Department.Name
		}
	}

	return resp
}

// Task represents tasks table
type Task struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Title             string     `gorm:"size:200;not null" json:"title"`
	Description       string     `gorm:"type:text;not null" json:"description"`
	AssignedTo        uint       `gorm:"not null;index" json:"assigned_to"`
	SupervisorID      uint       `gorm:"not null;index" json:"supervisor_id"`
	ProgressStatus    string     `gorm:"size:20;not null;default:'pending'" json:"progress_status"`
	StartDate         time.Time  `gorm:"not null" json:"start_date"`
	EndDate           time.Time  `gorm:"not null" json:"end_date"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at"`
	ApprovedAt        *time.Time `json:"approved_at"`
	SupervisorComment *string    `gorm:"type:text" json:"supervisor_comment"`

	Worker     *User `gorm:"foreignKey:AssignedTo" json:"-"`
	Supervisor *User `gorm:"foreignKey:SupervisorID" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskResponse DTO
type TaskResponse struct {
	ID                uint       `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	AssignedTo        uint       `json:"assigned_to"`
	WorkerName        *string    `json:"worker_name"`
	SupervisorID      uint       `json:"supervisor_id"`
	SupervisorName    *string    `json:"supervisor_name"`
	ProgressStatus    string     `json:"progress_status"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           time.Time  `json:"end_date"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at"`
	ApprovedAt        *time.Time `json:"approved_at"`
	SupervisorComment *string    `json:"supervisor_comment"`
}

func (t *Task) ToResponse() *TaskResponse {
	resp := &TaskResponse{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		AssignedTo:        t.AssignedTo,
		SupervisorID:      t.SupervisorID,
		ProgressStatus:    t.ProgressStatus,
		StartDate:         t.StartDate,
		EndDate:           t.EndDate,
		CreatedAt:         t.CreatedAt,
		CompletedAt:       t.CompletedAt,
		ApprovedAt:        t.ApprovedAt,
		SupervisorComment: t.SupervisorComment,
	}

	if t.Worker != nil {
		resp.WorkerName = &t.Worker.FullName
	}
	if t.Supervisor != nil {
		resp.SupervisorName = &t.Supervisor.FullName
	}

	return resp
}

// Contract represents contracts table
type Contract struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WorkerID   uint      `gorm:"not null;index" json:"worker_id"`
	FileURL    *string   `gorm:"size:500" json:"file_url"`
	StartDate  time.Time `gorm:"not null" json:"start_date"`
	EndDate    time.Time `gorm:"not null" json:"end_date"`
	ApprovedBy *uint     `json:"approved_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Worker   *User `gorm:"foreignKey:WorkerID" json:"-"`
	Approver *User `gorm:"foreignKey:ApprovedBy" json:"-"`
}

func (Contract) TableName() string {
	return "contracts"
}

// ContractResponse DTO
type ContractResponse struct {
	ID           uint      `json:"id"`
	WorkerID     uint      `json:"worker_id"`
	WorkerName   *string   `json:"worker_name"`
	FileURL      *string   `json:"file_url"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	ApprovedBy   *uint     `json:"approved_by"`
	ApproverName *string   `json:"approver_name"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ct *Contract) ToResponse() *ContractResponse {
	resp := &ContractResponse{
		ID:         ct.ID,
		WorkerID:   ct.WorkerID,
		FileURL:    ct.FileURL,
		StartDate:  ct.StartDate,
		EndDate:    ct.EndDate,
		ApprovedBy: ct.ApprovedBy,
		CreatedAt:  ct.CreatedAt,
	}

	if ct.Worker != nil {
		resp.WorkerName = &ct.Worker.FullName
	}
	if ct.Approver != nil {
		resp.ApproverName = &ct.Approver.FullName
	}

	return resp
}

// Payment represents payments table.
// TaskID may point at a deleted task; readers must render that as a
// missing task, not fail.
type Payment struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	WorkerID uint       `gorm:"not null;index" json:"worker_id"`
	TaskID   *uint      `gorm:"index" json:"task_id"`
	Amount   float64    `gorm:"not null" json:"amount"`
	Status   string     `gorm:"size:20;not null;default:'unpaid'" json:"status"`
	Date     time.Time  `gorm:"autoCreateTime" json:"date"`
	PaidAt   *time.Time `json:"paid_at"`

	Worker *User `gorm:"foreignKey:WorkerID" json:"-"`
	Task   *Task `gorm:"foreignKey:TaskID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

// PaymentResponse DTO
type PaymentResponse struct {
	ID         uint       `json:"id"`
	WorkerID   uint       `json:"worker_id"`
	WorkerName *string    `json:"worker_name"`
	TaskID     *uint      `json:"task_id"`
	TaskTitle  *string    `json:"task_title"`
	Amount     float64    `json:"amount"`
	Status     string     `json:"status"`
	Date       time.Time  `json:"date"`
	PaidAt     *time.Time `json:"paid_at"`
}

func (p *Payment) ToResponse() *PaymentResponse {
	resp := &PaymentResponse{
		ID:       p.ID,
		WorkerID: p.WorkerID,
		TaskID:   p.TaskID,
		Amount:   p.Amount,
		Status:   p.Status,
		Date:     p.Date,
		PaidAt:   p.PaidAt,
	}

	if p.Worker != nil {
		resp.WorkerName = &p.Worker.FullName
	}
	if p.Task != nil {
		resp.TaskTitle = &p.Task.Title
	}

	return resp
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Department{},
		&Job{},
		&Application{},
		&Task{},
		&Contract{},
		&Payment{},
	)
}
