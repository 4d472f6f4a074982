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

// Contract service errors
var (
	ErrContractNotFound  = errors.New("contract not found")
	ErrNotContractOwner  = errors.New("not the owner of this contract")
)

// ContractService handles employment contract business logic
type ContractService struct {
	contractRepo repositories.ContractRepository
	userRepo     repositories.UserRepository
}

// NewContractService creates a new contract service
func NewContractService(
	contractRepo repositories.ContractRepository,
	userRepo repositories.UserRepository,
) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		userRepo:     userRepo,
	}
}

// CreateContractInput represents create contract input
type CreateContractInput struct {
	WorkerID  uint      `json:"worker_id" validate:"required"`
	FileURL   *string   `json:"file_url"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// UpdateContractInput represents update contract input
type UpdateContractInput struct {
	FileURL   *string    `json:"file_url"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// CreateContract creates an employment contract for a worker
func (s *ContractService) CreateContract(ctx context.Context, adminID uint, input *CreateContractInput) (*models.ContractResponse, error) {
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

	if input.StartDate.After(input.EndDate) {
		return nil, ErrInvalidDateRange
	}

	contract := &models.Contract{
		WorkerID:   worker.ID,
		FileURL:    input.FileURL,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		ApprovedBy: &adminID,
	}
	if err := s.contractRepo.Create(ctx, contract); err != nil {
		return nil, err
	}

	created, err := s.contractRepo.GetByID(ctx, contract.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Contract created for worker %d", worker.ID)
	return created.ToResponse(), nil
}

// GetContract gets a contract by ID. Workers may only read their own.
func (s *ContractService) GetContract(ctx context.Context, id uint, actorID uint, actorRole domain.Role) (*models.ContractResponse, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}

	if actorRole != domain.RoleAdmin && contract.WorkerID != actorID {
		return nil, ErrNotContractOwner
	}

	return contract.ToResponse(), nil
}

// ListContracts lists contracts: admins see all, workers their own,
// everyone else an empty list.
func (s *ContractService) ListContracts(ctx context.Context, actorID uint, actorRole domain.Role) ([]*models.ContractResponse, error) {
	var contracts []*models.Contract
	var err error

	switch actorRole {
	case domain.RoleAdmin:
		contracts, err = s.contractRepo.List(ctx)
	case domain.RoleWorker:
		contracts, err = s.contractRepo.ListByWorker(ctx, actorID)
	default:
		contracts = nil
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		responses = append(responses, c.ToResponse())
	}
	return responses, nil
}

// UpdateContract updates a contract
func (s *ContractService) UpdateContract(ctx context.Context, id uint, input *UpdateContractInput) (*models.ContractResponse, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}

	if input.FileURL != nil {
		contract.FileURL = input.FileURL
	}
	if input.StartDate != nil {
		contract.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		contract.EndDate = *input.EndDate
	}
	if contract.StartDate.After(contract.EndDate) {
		return nil, ErrInvalidDateRange
	}

	if err := s.contractRepo.Update(ctx, contract); err != nil {
		return nil, err
	}

	updated, err := s.contractRepo.GetByID(ctx, contract.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Contract updated: ID %d", contract.ID)
	return updated.ToResponse(), nil
}

// DeleteContract deletes a contract
func (s *ContractService) DeleteContract(ctx context.Context, id uint) error {
	if _, err := s.contractRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContractNotFound
		}
		return err
	}

	if err := s.contractRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Contract deleted: ID %d", id)
	return nil
}
