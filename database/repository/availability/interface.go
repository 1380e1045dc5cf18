// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"slotify/database"
	"slotify/models"
)

// AvailabilityRepository persists availability rules.
type AvailabilityRepository interface {
	Create(ctx context.Context, rule *models.AvailabilityRule) error
	Update(ctx context.Context, rule *models.AvailabilityRule) error
	DeleteByID(ctx context.Context, providerID, ruleID string) error
	GetByID(ctx context.Context, providerID, ruleID string) (*models.AvailabilityRule, error)
	ListByProvider(ctx context.Context, providerID string, activeOnly bool) ([]models.AvailabilityRule, error)
	ListForWeekday(ctx context.Context, providerID string, day time.Weekday) ([]models.AvailabilityRule, error)
	ListForDate(ctx context.Context, providerID, date string) ([]models.AvailabilityRule, error)
	// InTransaction runs fn inside a MongoDB transaction so that a
	// conflict re-check and the subsequent write commit atomically.
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	EnsureIndexes() error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a MongoDB-backed AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database(database.Name)
	return &mongoAvailabilityRepo{
		coll: db.Collection("availability_rules"),
	}
}
