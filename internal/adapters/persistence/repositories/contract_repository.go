package repositories

import (
	"context"

	"county-workhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// contractRepository implements ContractRepository interface
type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

// Create creates a new contract
func (r *contractRepository) Create(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

// GetByID gets a contract by ID
func (r *contractRepository) GetByID(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Preload("Approver").
		Where("id = ?", id).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// Update updates a contract
func (r *contractRepository) Update(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

// Delete deletes a contract
func (r *contractRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Contract{}, id).Error
}

// List lists all contracts
func (r *contractRepository) List(ctx context.Context) ([]*models.Contract, error) {
	var contracts []*models.Contract
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Preload("Approver").
		Order("id").
		Find(&contracts).Error
	return contracts, err
}

// ListByWorker lists contracts belonging to a worker
func (r *contractRepository) ListByWorker(ctx context.Context, workerID uint) ([]*models.Contract, error) {
	var contracts []*models.Contract
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Preload("Approver").
		Where("worker_id = ?", workerID).
		Order("id").
		Find(&contracts).Error
	return contracts, err
}
