package services

import (
	"context"
	"time"

	"county-workhub/internal/adapters/persistence/models"
	"county-workhub/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles dashboard aggregations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// Workforce
	TotalUsers       int64 `json:"total_users"`
	TotalApplicants  int64 `json:"total_applicants"`
	TotalWorkers     int64 `json:"total_workers"`
	TotalSupervisors int64 `json:"total_supervisors"`
	TotalDepartments int64 `json:"total_departments"`

	// Hiring pipeline
	OpenJobs             int64 `json:"open_jobs"`
	TotalJobs            int64 `json:"total_jobs"`
	PendingApplications  int64 `json:"pending_applications"`
	AcceptedApplications int64 `json:"accepted_applications"`
	RejectedApplications int64 `json:"rejected_applications"`

	// Tasks
	PendingTasks    int64 `json:"pending_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
	ApprovedTasks   int64 `json:"approved_tasks"`
	DeniedTasks     int64 `json:"denied_tasks"`

	// Payments
	UnpaidAmount  float64 `json:"unpaid_amount"`
	PaidAmount    float64 `json:"paid_amount"`
	PaidThisMonth float64 `json:"paid_this_month"`

	// Recent activity
	RecentApplications []*models.ApplicationResponse `json:"recent_applications"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	// Workforce counts by role
	s.db.WithContext(ctx).Model(&models.User{}).Count(&data.TotalUsers)
	s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", domain.RoleApplicant).Count(&data.TotalApplicants)
	s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", domain.RoleWorker).Count(&data.TotalWorkers)
	s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", domain.RoleSupervisor).Count(&data.TotalSupervisors)
	s.db.WithContext(ctx).Model(&models.Department{}).Count(&data.TotalDepartments)

	// Hiring pipeline
	s.db.WithContext(ctx).Model(&models.Job{}).Count(&data.TotalJobs)
	s.db.WithContext(ctx).Model(&models.Job{}).Where("status = ?", domain.JobStatusOpen).Count(&data.OpenJobs)
	s.db.WithContext(ctx).Model(&models.Application{}).Where("status = ?", domain.ApplicationStatusPending).Count(&data.PendingApplications)
	s.db.WithContext(ctx).Model(&models.Application{}).Where("status = ?", domain.ApplicationStatusAccepted).Count(&data.AcceptedApplications)
	s.db.WithContext(ctx).Model(&models.Application{}).Where("status = ?", domain.ApplicationStatusRejected).Count(&data.RejectedApplications)

	// Task counts by state
	s.db.WithContext(ctx).Model(&models.Task{}).Where("progress_status = ?", domain.TaskStatusPending).Count(&data.PendingTasks)
	s.db.WithContext(ctx).Model(&models.Task{}).Where("progress_status = ?", domain.TaskStatusInProgress).Count(&data.InProgressTasks)
	s.db.WithContext(ctx).Model(&models.Task{}).Where("progress_status = ?", domain.TaskStatusCompleted).Count(&data.CompletedTasks)
	s.db.WithContext(ctx).Model(&models.Task{}).Where("progress_status = ?", domain.TaskStatusApproved).Count(&data.ApprovedTasks)
	s.db.WithContext(ctx).Model(&models.Task{}).Where("progress_status = ?", domain.TaskStatusDenied).Count(&data.DeniedTasks)

	// Payment totals
	s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ?", domain.PaymentStatusUnpaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.UnpaidAmount)

	s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ?", domain.PaymentStatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.PaidAmount)

	startOfMonth := time.Now().UTC().AddDate(0, 0, -time.Now().UTC().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ? AND paid_at >= ?", domain.PaymentStatusPaid, startOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.PaidThisMonth)

	// 5 most recent applications
	var recent []*models.Application
	s.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Job.Department").
		Order("applied_at DESC").
		Limit(5).
		Find(&recent)

	data.RecentApplications = make([]*models.ApplicationResponse, 0, len(recent))
	for _, a := range recent {
		data.RecentApplications = append(data.RecentApplications, a.ToResponse())
	}

	return data, nil
}

// ============================================================
// Supervisor Dashboard
// ============================================================

// SupervisorDashboardData represents supervisor dashboard data
type SupervisorDashboardData struct {
	AssignedTasks  int64 `json:"assigned_tasks"`
	AwaitingReview int64 `json:"awaiting_review"`
	ApprovedTasks  int64 `json:"approved_tasks"`
	DeniedTasks    int64 `json:"denied_tasks"`

	RecentTasks []*models.TaskResponse `json:"recent_tasks"`
}

// GetSupervisorDashboard returns dashboard data for a supervisor
func (s *DashboardService) GetSupervisorDashboard(ctx context.Context, supervisorID uint) (*SupervisorDashboardData, error) {
	data := &SupervisorDashboardData{}

	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Task{}).Where("supervisor_id = ?", supervisorID)
	}

	base().Count(&data.AssignedTasks)
	base().Where("progress_status = ?", domain.TaskStatusCompleted).Count(&data.AwaitingReview)
	base().Where("progress_status = ?", domain.TaskStatusApproved).Count(&data.ApprovedTasks)
	base().Where("progress_status = ?", domain.TaskStatusDenied).Count(&data.DeniedTasks)

	var recent []*models.Task
	s.db.WithContext(ctx).
		Preload("Worker").
		Preload("Supervisor").
		Where("supervisor_id = ?", supervisorID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent)

	data.RecentTasks = make([]*models.TaskResponse, 0, len(recent))
	for _, t := range recent {
		data.RecentTasks = append(data.RecentTasks, t.ToResponse())
	}

	return data, nil
}

// ============================================================
// Worker Dashboard
// ============================================================

// WorkerDashboardData represents worker dashboard data
type WorkerDashboardData struct {
	OpenTasks      int64   `json:"open_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	ApprovedTasks  int64   `json:"approved_tasks"`
	UnpaidAmount   float64 `json:"unpaid_amount"`
	PaidAmount     float64 `json:"paid_amount"`

	RecentTasks []*models.TaskResponse `json:"recent_tasks"`
}

// GetWorkerDashboard returns dashboard data for a worker
func (s *DashboardService) GetWorkerDashboard(ctx context.Context, workerID uint) (*WorkerDashboardData, error) {
	data := &WorkerDashboardData{}

	s.db.WithContext(ctx).Model(&models.Task{}).
		Where("assigned_to = ? AND progress_status IN ?", workerID,
			[]string{domain.TaskStatusPending, domain.TaskStatusInProgress}).
		Count(&data.OpenTasks)
	s.db.WithContext(ctx).Model(&models.Task{}).
		Where("assigned_to = ? AND progress_status = ?", workerID, domain.TaskStatusCompleted).
		Count(&data.CompletedTasks)
	s.db.WithContext(ctx).Model(&models.Task{}).
		Where("assigned_to = ? AND progress_status = ?", workerID, domain.TaskStatusApproved).
		Count(&data.ApprovedTasks)

	s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("worker_id = ? AND status = ?", workerID, domain.PaymentStatusUnpaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.UnpaidAmount)
	s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("worker_id = ? AND status = ?", workerID, domain.PaymentStatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.PaidAmount)

	var recent []*models.Task
	s.db.WithContext(ctx).
		Preload("Worker").
		Preload("Supervisor").
		Where("assigned_to = ?", workerID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent)

	data.RecentTasks = make([]*models.TaskResponse, 0, len(recent))
	for _, t := range recent {
		data.RecentTasks = append(data.RecentTasks, t.ToResponse())
	}

	return data, nil
}
