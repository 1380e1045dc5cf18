package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	catalogRepo "slotify/database/repository/catalog"
	"slotify/models"
)

// ErrNotOwned is returned when a service does not belong to the provider.
var ErrNotOwned = errors.New("service does not belong to this provider")

// CatalogService validates service ownership against the marketplace's
// service catalog. The catalog itself is owned elsewhere; this is a read-only
// collaborator.
type CatalogService interface {
	ValidateOwnership(ctx context.Context, providerID string, serviceIDs []string) error
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo catalogRepo.CatalogRepository
}

// ValidateOwnership checks that every service ID exists and belongs to the
// provider. An empty list is valid (the rule applies to all services).
func (s *DefaultCatalogService) ValidateOwnership(ctx context.Context, providerID string, serviceIDs []string) error {
	for _, id := range serviceIDs {
		svc, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("service %s not found", id)
			}
			return fmt.Errorf("failed to look up service %s: %w", id, err)
		}
		if svc.ProviderID != providerID {
			return fmt.Errorf("service %s: %w", id, ErrNotOwned)
		}
	}
	return nil
}

// GetService returns a single catalog entry.
func (s *DefaultCatalogService) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("service %s not found: %w", serviceID, err)
	}
	return svc, nil
}
