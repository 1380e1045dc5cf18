package models

import "time"

// Booking statuses. The booking lifecycle is owned by the booking service;
// the scheduling engine only reads these records.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingInProgress = "in_progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

// ActiveBookingStatuses are the statuses that block a time range.
var ActiveBookingStatuses = []string{BookingPending, BookingConfirmed, BookingInProgress}

// Booking represents a client booking against a provider's schedule.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	ServiceID  string    `bson:"service_id" json:"service_id"`
	ClientID   string    `bson:"client_id" json:"client_id"`
	Date       string    `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Start      int       `bson:"start" json:"start"` // minutes from midnight
	End        int       `bson:"end" json:"end"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// IsActive reports whether the booking still holds its time range.
func (b *Booking) IsActive() bool {
	switch b.Status {
	case BookingPending, BookingConfirmed, BookingInProgress:
		return true
	}
	return false
}
