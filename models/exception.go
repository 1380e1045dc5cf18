package models

import "time"

// Exception types.
const (
	ExceptionUnavailable  = "unavailable"
	ExceptionSpecialHours = "special_hours"
	ExceptionHoliday      = "holiday"
)

// Exception overrides a provider's normal availability on a single date.
// At most one exception may exist per (provider, date).
type Exception struct {
	ID         string `bson:"id" json:"id"`
	ProviderID string `bson:"provider_id" json:"provider_id"`
	Date       string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Type       string `bson:"type" json:"type"` // "unavailable", "special_hours" or "holiday"

	// Start/End are set only for special_hours exceptions; for an
	// unavailable exception a nil Start means the whole day is blocked.
	Start *int `bson:"start,omitempty" json:"start,omitempty"` // minutes from midnight
	End   *int `bson:"end,omitempty" json:"end,omitempty"`

	AffectsAllServices bool     `bson:"affects_all_services" json:"affects_all_services"`
	ServiceIDs         []string `bson:"service_ids,omitempty" json:"service_ids,omitempty"`

	NotifyClients       bool   `bson:"notify_clients" json:"notify_clients"`
	NotificationMessage string `bson:"notification_message,omitempty" json:"notification_message,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// BlocksWholeDay reports whether the exception removes the entire day
// from a provider's schedule.
func (e *Exception) BlocksWholeDay() bool {
	return e.Type != ExceptionSpecialHours && e.Start == nil
}
