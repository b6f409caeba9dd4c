package store

import (
	"context"
	"fmt"

	"github.com/yourusername/invoicer/models"
	"gorm.io/gorm"
)

func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).Order("company_name").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *Store) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	ok, err := first(s.db.WithContext(ctx), &client, "id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load client %s: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return &client, nil
}

// CreateClient inserts client, assigning an id when it has none.
func (s *Store) CreateClient(ctx context.Context, client *models.Client) error {
	if client.ID == "" {
		client.ID = newID()
	}
	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (s *Store) UpdateClient(ctx context.Context, client *models.Client) error {
	if err := s.db.WithContext(ctx).Save(client).Error; err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ID, err)
	}
	return nil
}

// DeleteClient removes the client together with its contracts. Invoices are
// kept: they are historical records. It reports whether the client existed.
func (s *Store) DeleteClient(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Client{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return tx.Delete(&models.Contract{}, "client_id = ?", id).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	return deleted, nil
}
