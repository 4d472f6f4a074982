package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"county-workhub/internal/adapters/persistence/models"
	"county-workhub/internal/adapters/persistence/repositories"
	"county-workhub/internal/core/domain"
	"county-workhub/internal/core/services"

	"gorm.io/gorm"
)

func newPaymentService(db *gorm.DB) *services.PaymentService {
	return services.NewPaymentService(
		repositories.NewPaymentRepository(db),
		repositories.NewTaskRepository(db),
		repositories.NewUserRepository(db),
	)
}

func TestCreatePayment(t *testing.T) {
	db := setupDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	sup := createUser(t, db, "Sup", "sup@example.com", domain.RoleSupervisor, nil)
	worker := createUser(t, db, "Worker", "w@example.com", domain.RoleWorker, nil)
	task := createTask(t, db, worker.ID, sup.ID, domain.TaskStatusApproved)

	payment, err := svc.CreatePayment(ctx, &services.CreatePaymentInput{
		WorkerID: worker.ID,
		TaskID:   &task.ID,
		Amount:   1500,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if payment.Status != domain.PaymentStatusUnpaid {
		t.Errorf("new payment should be unpaid, got %s", payment.Status)
	}
	if payment.PaidAt != nil {
		t.Error("paid_at must be nil for unpaid payment")
	}
	if payment.TaskTitle == nil || *payment.TaskTitle != "Inspect drainage" {
		t.Errorf("expected task title, got %v", payment.TaskTitle)
	}

	// Only workers receive payments
	if _, err := svc.CreatePayment(ctx, &services.CreatePaymentInput{WorkerID: sup.ID, Amount: 100}); !errors.Is(err, services.ErrNotAWorker) {
		t.Errorf("expected ErrNotAWorker, got %v", err)
	}

	// Referenced task must exist
	missing := uint(9999)
	if _, err := svc.CreatePayment(ctx, &services.CreatePaymentInput{WorkerID: worker.ID, TaskID: &missing, Amount: 100}); !errors.Is(err, services.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}

	if _, err := svc.CreatePayment(ctx, &services.CreatePaymentInput{WorkerID: worker.ID, Amount: -5}); !errors.Is(err, services.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestSettlePaymentStampsPaidAtOnce(t *testing.T) {
	db := setupDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	worker := createUser(t, db, "Worker", "w@example.com", domain.RoleWorker, nil)
	payment, err := svc.CreatePayment(ctx, &services.CreatePaymentInput{WorkerID: worker.ID, Amount: 2000})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	settled, err := svc.SettlePayment(ctx, payment.ID, &services.SettlePaymentInput{
		Status: strPtr(domain.PaymentStatusPaid),
	})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if settled.Status != domain.PaymentStatusPaid {
		t.Errorf("expected paid, got %s", settled.Status)
	}
	if settled.PaidAt == nil {
		t.Fatal("expected paid_at stamp")
	}
	first := *settled.PaidAt

	// Paying again keeps the original stamp
	time.Sleep(10 * time.Millisecond)
	settled, err = svc.SettlePayment(ctx, payment.ID, &services.SettlePaymentInput{
		Status: strPtr(domain.PaymentStatusPaid),
	})
	if err != nil {
		t.Fatalf("re-settle failed: %v", err)
	}
	if !settled.PaidAt.Equal(first) {
		t.Errorf("paid_at must keep its first stamp")
	}

	// Amount is correctable independently of status
	settled, err = svc.SettlePayment(ctx, payment.ID, &services.SettlePaymentInput{Amount: floatPtr(2500)})
	if err != nil {
		t.Fatalf("amount update failed: %v", err)
	}
	if settled.Amount != 2500 {
		t.Errorf("expected amount 2500, got %.2f", settled.Amount)
	}
	if settled.Status != domain.PaymentStatusPaid {
		t.Errorf("amount update must not touch status, got %s", settled.Status)
	}

	// Reverting to unpaid clears the stamp
	settled, err = svc.SettlePayment(ctx, payment.ID, &services.SettlePaymentInput{
		Status: strPtr(domain.PaymentStatusUnpaid),
	})
	if err != nil {
		t.Fatalf("revert failed: %v", err)
	}
	if settled.PaidAt != nil {
		t.Error("paid_at must be cleared when payment is unpaid")
	}

	// Unknown statuses are rejected
	if _, err := svc.SettlePayment(ctx, payment.ID, &services.SettlePaymentInput{Status: strPtr("settled")}); !errors.Is(err, services.ErrInvalidPaymentStatus) {
		t.Errorf("expected ErrInvalidPaymentStatus, got %v", err)
	}
}

func TestPaymentSurvivesTaskDeletion(t *testing.T) {
	db := setupDB(t)
	svc := newPaymentService(db)
	taskSvc := newTaskService(db)
	ctx := context.Background()

	sup := createUser(t, db, "Sup", "sup@example.com", domain.RoleSupervisor, nil)
	worker := createUser(t, db, "Worker", "w@example.com", domain.RoleWorker, nil)
	task := createTask(t, db, worker.ID, sup.ID, domain.TaskStatusApproved)

	payment, err := svc.CreatePayment(ctx, &services.CreatePaymentInput{
		WorkerID: worker.ID,
		TaskID:   &task.ID,
		Amount:   800,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := taskSvc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("task delete failed: %v", err)
	}

	// The payment still reads fine; the task title renders as null
	got, err := svc.GetPayment(ctx, payment.ID, worker.ID, domain.RoleWorker)
	if err != nil {
		t.Fatalf("get after task deletion failed: %v", err)
	}
	if got.TaskID == nil || *got.TaskID != task.ID {
		t.Errorf("task_id reference should survive, got %v", got.TaskID)
	}
	if got.TaskTitle != nil {
		t.Errorf("task_title should render null for a deleted task, got %v", *got.TaskTitle)
	}
}

func TestPaymentAccessScoping(t *testing.T) {
	db := setupDB(t)
	svc := newPaymentService(db)
	ctx := context.Background()

	admin := createUser(t, db, "Admin", "adm@example.com", domain.RoleAdmin, nil)
	w1 := createUser(t, db, "W1", "w1@example.com", domain.RoleWorker, nil)
	w2 := createUser(t, db, "W2", "w2@example.com", domain.RoleWorker, nil)
	applicant := createUser(t, db, "App", "a@example.com", domain.RoleApplicant, nil)

	p1, _ := svc.CreatePayment(ctx, &services.CreatePaymentInput{WorkerID: w1.ID, Amount: 100})
	svc.CreatePayment(ctx, &services.CreatePaymentInput{WorkerID: w1.ID, Amount: 200})
	svc.CreatePayment(ctx, &services.CreatePaymentInput{WorkerID: w2.ID, Amount: 300})

	if got, _ := svc.ListPayments(ctx, admin.ID, domain.RoleAdmin); len(got) != 3 {
		t.Errorf("admin should see 3 payments, got %d", len(got))
	}
	if got, _ := svc.ListPayments(ctx, w1.ID, domain.RoleWorker); len(got) != 2 {
		t.Errorf("w1 should see 2 payments, got %d", len(got))
	}
	if got, _ := svc.ListPayments(ctx, applicant.ID, domain.RoleApplicant); len(got) != 0 {
		t.Errorf("applicant should see no payments, got %d", len(got))
	}

	// A worker cannot read another worker's payment
	if _, err := svc.GetPayment(ctx, p1.ID, w2.ID, domain.RoleWorker); !errors.Is(err, services.ErrNotPaymentOwner) {
		t.Errorf("expected ErrNotPaymentOwner, got %v", err)
	}
	if _, err := svc.GetPayment(ctx, p1.ID, admin.ID, domain.RoleAdmin); err != nil {
		t.Errorf("admin read failed: %v", err)
	}

	// Deleting removes the record
	if err := svc.DeletePayment(ctx, p1.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 payments after delete, got %d", count)
	}
}
