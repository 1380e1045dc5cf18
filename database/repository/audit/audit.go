// File: database/repository/audit/audit.go
package auditRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotify/database"
	"slotify/models"
)

// AuditRepository appends schedule mutation records.
type AuditRepository interface {
	Insert(ctx context.Context, entry *models.AuditEntry) error
	ListByProvider(ctx context.Context, providerID string, limit int64) ([]models.AuditEntry, error)
}

type mongoAuditRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditRepo constructs a MongoDB-backed AuditRepository.
func NewMongoAuditRepo() AuditRepository {
	db := database.MongoClient.Database(database.Name)
	return &mongoAuditRepo{
		coll: db.Collection("schedule_audit"),
	}
}

func (r *mongoAuditRepo) Insert(ctx context.Context, entry *models.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

func (r *mongoAuditRepo) ListByProvider(ctx context.Context, providerID string, limit int64) ([]models.AuditEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.AuditEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}
	return entries, nil
}
