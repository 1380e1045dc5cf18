// File: database/repository/availability/mongo.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotify/models"
)

func (r *mongoAvailabilityRepo) Create(ctx context.Context, rule *models.AvailabilityRule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rule); err != nil {
		return fmt.Errorf("failed to insert availability rule: %w", err)
	}
	return nil
}

func (r *mongoAvailabilityRepo) Update(ctx context.Context, rule *models.AvailabilityRule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": rule.ID, "provider_id": rule.ProviderID}
	res, err := r.coll.ReplaceOne(ctx, filter, rule)
	if err != nil {
		return fmt.Errorf("failed to update availability rule %s: %w", rule.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAvailabilityRepo) DeleteByID(ctx context.Context, providerID, ruleID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": ruleID, "provider_id": providerID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete availability rule %s: %w", ruleID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAvailabilityRepo) GetByID(ctx context.Context, providerID, ruleID string) (*models.AvailabilityRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": ruleID, "provider_id": providerID}
	var rule models.AvailabilityRule
	if err := r.coll.FindOne(ctx, filter).Decode(&rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *mongoAvailabilityRepo) ListByProvider(ctx context.Context, providerID string, activeOnly bool) ([]models.AvailabilityRule, error) {
	filter := bson.M{"provider_id": providerID}
	if activeOnly {
		filter["is_active"] = true
	}
	return r.find(ctx, filter)
}

func (r *mongoAvailabilityRepo) ListForWeekday(ctx context.Context, providerID string, day time.Weekday) ([]models.AvailabilityRule, error) {
	filter := bson.M{
		"provider_id": providerID,
		"kind":        models.RuleKindRecurring,
		"day_of_week": int(day),
		"is_active":   true,
	}
	return r.find(ctx, filter)
}

func (r *mongoAvailabilityRepo) ListForDate(ctx context.Context, providerID, date string) ([]models.AvailabilityRule, error) {
	filter := bson.M{
		"provider_id":   providerID,
		"kind":          models.RuleKindOneTime,
		"specific_date": date,
		"is_active":     true,
	}
	return r.find(ctx, filter)
}

func (r *mongoAvailabilityRepo) find(ctx context.Context, filter bson.M) ([]models.AvailabilityRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []models.AvailabilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode availability rules: %w", err)
	}
	return rules, nil
}

// InTransaction runs fn inside a session transaction. The session context is
// passed down so that reads performed by fn join the transaction, closing the
// check-then-act window between two concurrent rule mutations.
func (r *mongoAvailabilityRepo) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}
