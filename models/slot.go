package models

import "time"

// Slot is a bookable time window materialized by the slot generator.
// Slots are computed fresh per query and never persisted.
type Slot struct {
	ProviderID      string    `json:"provider_id"`
	ServiceID       string    `json:"service_id,omitempty"`
	Date            string    `json:"date"`  // "YYYY-MM-DD"
	Start           int       `json:"start"` // minutes from midnight
	End             int       `json:"end"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	IsAvailable     bool      `json:"is_available"`
	MaxBookings     int       `json:"max_bookings"`
	CurrentBookings int       `json:"current_bookings"`
	PriceMultiplier float64   `json:"price_multiplier"`
	RuleID          string    `json:"rule_id"`
}
