// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"slotify/database"
	"slotify/models"
)

// BookingRepository is a read-only view over the bookings collection. The
// booking lifecycle is owned by the booking service; the scheduler only
// queries it for conflict and impact checks.
type BookingRepository interface {
	ListActiveInWindow(ctx context.Context, providerID, startDate, endDate string) ([]models.Booking, error)
	ListActiveOnDate(ctx context.Context, providerID, date string) ([]models.Booking, error)
	ListInWindow(ctx context.Context, providerID, startDate, endDate string) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB-backed BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.Name)
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
