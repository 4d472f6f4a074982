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

// Payment service errors
var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrNotPaymentOwner      = errors.New("not the owner of this payment")
)

// PaymentService handles payment ledger business logic
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	taskRepo    repositories.TaskRepository
	userRepo    repositories.UserRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
	}
}

// CreatePaymentInput represents create payment input
type CreatePaymentInput struct {
	WorkerID uint    `json:"worker_id" validate:"required"`
	TaskID   *uint   `json:"task_id"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// SettlePaymentInput represents payment settlement input
type SettlePaymentInput struct {
	Status *string  `json:"status"`
	Amount *float64 `json:"amount"`
}

// CreatePayment records a new unpaid payment for a worker
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*models.PaymentResponse, error) {
	worker, err := s.userRepo.GetByID(ctx, input.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	if worker.Role != domain.RoleWorker {
		return nil, ErrNotAWorker
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if input.TaskID != nil {
		if _, err := s.taskRepo.GetByID(ctx, *input.TaskID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskNotFound
			}
			return nil, err
		}
	}

	payment := &models.Payment{
		WorkerID: worker.ID,
		TaskID:   input.TaskID,
		Amount:   input.Amount,
		Status:   domain.PaymentStatusUnpaid,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	created, err := s.paymentRepo.GetByID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Payment created: %.2f for worker %d", payment.Amount, worker.ID)
	return created.ToResponse(), nil
}

// GetPayment gets a payment by ID. Workers may only read their own.
func (s *PaymentService) GetPayment(ctx context.Context, id uint, actorID uint, actorRole domain.Role) (*models.PaymentResponse, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if actorRole != domain.RoleAdmin && payment.WorkerID != actorID {
		return nil, ErrNotPaymentOwner
	}

	return payment.ToResponse(), nil
}

// ListPayments lists payments: admins see all, workers their own,
// everyone else an empty list.
func (s *PaymentService) ListPayments(ctx context.Context, actorID uint, actorRole domain.Role) ([]*models.PaymentResponse, error) {
	var payments []*models.Payment
	var err error

	switch actorRole {
	case domain.RoleAdmin:
		payments, err = s.paymentRepo.List(ctx)
	case domain.RoleWorker:
		payments, err = s.paymentRepo.ListByWorker(ctx, actorID)
	default:
		payments = nil
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*models.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, p.ToResponse())
	}
	return responses, nil
}

// SettlePayment updates a payment's status and amount. The first
// transition to paid stamps paid_at; moving back to unpaid clears it.
func (s *PaymentService) SettlePayment(ctx context.Context, id uint, input *SettlePaymentInput) (*models.PaymentResponse, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		payment.Amount = *input.Amount
	}

	if input.Status != nil {
		if !domain.ValidPaymentStatus(*input.Status) {
			return nil, ErrInvalidPaymentStatus
		}
		if *input.Status == domain.PaymentStatusPaid && payment.PaidAt == nil {
			now := time.Now().UTC()
			payment.PaidAt = &now
		}
		if *input.Status == domain.PaymentStatusUnpaid {
			payment.PaidAt = nil
		}
		payment.Status = *input.Status
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	updated, err := s.paymentRepo.GetByID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Payment updated: ID %d", payment.ID)
	return updated.ToResponse(), nil
}

// DeletePayment deletes a payment record
func (s *PaymentService) DeletePayment(ctx context.Context, id uint) error {
	if _, err := s.paymentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Payment deleted: ID %d", id)
	return nil
}
