// File: database/repository/exception/mongo.go
package exceptionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotify/models"
)

func (r *mongoExceptionRepo) Create(ctx context.Context, ex *models.Exception) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, ex); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateDate
		}
		return fmt.Errorf("failed to insert exception: %w", err)
	}
	return nil
}

func (r *mongoExceptionRepo) GetByID(ctx context.Context, providerID, exceptionID string) (*models.Exception, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": exceptionID, "provider_id": providerID}
	var ex models.Exception
	if err := r.coll.FindOne(ctx, filter).Decode(&ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

func (r *mongoExceptionRepo) GetByDate(ctx context.Context, providerID, date string) (*models.Exception, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID, "date": date}
	var ex models.Exception
	if err := r.coll.FindOne(ctx, filter).Decode(&ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

func (r *mongoExceptionRepo) ListInWindow(ctx context.Context, providerID, startDate, endDate string) ([]models.Exception, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"date":        bson.M{"$gte": startDate, "$lte": endDate},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query exceptions: %w", err)
	}
	defer cursor.Close(ctx)

	var exceptions []models.Exception
	if err := cursor.All(ctx, &exceptions); err != nil {
		return nil, fmt.Errorf("failed to decode exceptions: %w", err)
	}
	return exceptions, nil
}

func (r *mongoExceptionRepo) DeleteByID(ctx context.Context, providerID, exceptionID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": exceptionID, "provider_id": providerID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete exception %s: %w", exceptionID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// EnsureIndexes creates the unique (provider, date) index that enforces the
// one-exception-per-day invariant at the storage layer.
func (r *mongoExceptionRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "provider_id", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create exception indexes: %w", err)
	}
	return nil
}
