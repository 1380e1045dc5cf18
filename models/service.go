package models

import "time"

// Service is a read-only view of a provider's catalog entry. The catalog is
// owned by the marketplace; the scheduler only validates ownership and reads
// default durations.
type Service struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	Name       string    `bson:"name" json:"name"`
	Duration   int       `bson:"duration" json:"duration"` // default duration in minutes
	IsActive   bool      `bson:"is_active" json:"is_active"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
