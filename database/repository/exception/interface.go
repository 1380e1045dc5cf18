// File: database/repository/exception/interface.go
package exceptionRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"slotify/database"
	"slotify/models"
)

// ErrDuplicateDate is returned when an exception already exists for the
// provider on that date.
var ErrDuplicateDate = errors.New("an exception already exists for this date")

// ExceptionRepository persists schedule exceptions.
type ExceptionRepository interface {
	Create(ctx context.Context, ex *models.Exception) error
	GetByID(ctx context.Context, providerID, exceptionID string) (*models.Exception, error)
	GetByDate(ctx context.Context, providerID, date string) (*models.Exception, error)
	ListInWindow(ctx context.Context, providerID, startDate, endDate string) ([]models.Exception, error)
	DeleteByID(ctx context.Context, providerID, exceptionID string) error
	EnsureIndexes() error
}

type mongoExceptionRepo struct {
	coll *mongo.Collection
}

// NewMongoExceptionRepo constructs a MongoDB-backed ExceptionRepository.
func NewMongoExceptionRepo() ExceptionRepository {
	db := database.MongoClient.Database(database.Name)
	return &mongoExceptionRepo{
		coll: db.Collection("exceptions"),
	}
}
