package store

import (
	"context"
	"fmt"

	"github.com/yourusername/invoicer/invoicepdf"
	"github.com/yourusername/invoicer/models"
)

var _ invoicepdf.ContractLookup = (*Store)(nil)

// ListContracts returns every contract in insertion order.
func (s *Store) ListContracts(ctx context.Context) ([]models.Contract, error) {
	var contracts []models.Contract
	if err := s.db.WithContext(ctx).Order("created_at").Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

func (s *Store) GetContractByID(ctx context.Context, id string) (*models.Contract, error) {
	var contract models.Contract
	ok, err := first(s.db.WithContext(ctx), &contract, "id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract %s: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return &contract, nil
}

// GetContractsByClientID returns the client's contracts in insertion order.
// Rendering of legacy invoices picks the first one.
func (s *Store) GetContractsByClientID(ctx context.Context, clientID string) ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at").
		Find(&contracts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts of client %s: %w", clientID, err)
	}
	return contracts, nil
}

// CreateContract inserts contract, filling in an id and the documented
// defaults for unset fields.
func (s *Store) CreateContract(ctx context.Context, contract *models.Contract) error {
	if contract.ID == "" {
		contract.ID = newID()
	}
	applyContractDefaults(contract)
	if err := s.db.WithContext(ctx).Create(contract).Error; err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

func (s *Store) UpdateContract(ctx context.Context, contract *models.Contract) error {
	applyContractDefaults(contract)
	if err := s.db.WithContext(ctx).Save(contract).Error; err != nil {
		return fmt.Errorf("failed to update contract %s: %w", contract.ID, err)
	}
	return nil
}

func (s *Store) DeleteContract(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Contract{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete contract %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func applyContractDefaults(c *models.Contract) {
	if c.Currency == "" {
		c.Currency = models.DefaultCurrency
	}
	if c.Quantity == 0 {
		c.Quantity = 1
	}
	c.DueDays = c.EffectiveDueDays()
	c.DueDateMethod = c.EffectiveDueDateMethod()
}
