// File: database/repository/booking/mongo.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotify/models"
)

func (r *mongoBookingRepo) ListActiveInWindow(ctx context.Context, providerID, startDate, endDate string) ([]models.Booking, error) {
	filter := bson.M{
		"provider_id": providerID,
		"date":        bson.M{"$gte": startDate, "$lte": endDate},
		"status":      bson.M{"$in": models.ActiveBookingStatuses},
	}
	return r.find(ctx, filter)
}

func (r *mongoBookingRepo) ListActiveOnDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	filter := bson.M{
		"provider_id": providerID,
		"date":        date,
		"status":      bson.M{"$in": models.ActiveBookingStatuses},
	}
	return r.find(ctx, filter)
}

func (r *mongoBookingRepo) ListInWindow(ctx context.Context, providerID, startDate, endDate string) ([]models.Booking, error) {
	filter := bson.M{
		"provider_id": providerID,
		"date":        bson.M{"$gte": startDate, "$lte": endDate},
	}
	return r.find(ctx, filter)
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
