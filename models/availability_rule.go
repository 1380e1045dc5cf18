package models

import "time"

// Rule kinds.
const (
	RuleKindRecurring = "recurring"
	RuleKindOneTime   = "one_time"
)

// Default rule parameters applied when the provider leaves them unset.
const (
	DefaultSlotDuration       = 60 // minutes
	DefaultBufferTime         = 15 // minutes of dead time between slots
	DefaultMinimumNoticeHours = 24
	DefaultMaximumAdvanceDays = 60
)

// AvailabilityRule describes when a provider can be booked. A recurring rule
// repeats on a weekday; a one-time rule applies to a single calendar date.
type AvailabilityRule struct {
	ID         string `bson:"id" json:"id"`
	ProviderID string `bson:"provider_id" json:"provider_id"`
	Kind       string `bson:"kind" json:"kind"` // "recurring" or "one_time"

	DayOfWeek    time.Weekday `bson:"day_of_week,omitempty" json:"day_of_week,omitempty"`     // recurring rules only (0=Sunday)
	SpecificDate string       `bson:"specific_date,omitempty" json:"specific_date,omitempty"` // one-time rules only, "YYYY-MM-DD"

	Start int `bson:"start" json:"start"` // minutes from midnight (e.g., 540 for 9:00 AM)
	End   int `bson:"end" json:"end"`     // minutes from midnight, always > Start

	SlotDuration       int `bson:"slot_duration" json:"slot_duration"` // minutes per bookable slot
	BufferTime         int `bson:"buffer_time" json:"buffer_time"`     // minutes between slots, not bookable
	MaxBookingsPerSlot int `bson:"max_bookings_per_slot" json:"max_bookings_per_slot"`
	MinimumNoticeHours int `bson:"minimum_notice_hours" json:"minimum_notice_hours"`
	MaximumAdvanceDays int `bson:"maximum_advance_days" json:"maximum_advance_days"`

	// ServiceIDs scopes the rule to a subset of the provider's services.
	// Empty means the rule applies to every service.
	ServiceIDs []string `bson:"service_ids,omitempty" json:"service_ids,omitempty"`

	PriceMultiplier float64 `bson:"price_multiplier" json:"price_multiplier"` // 0.5 to 3.0
	IsActive        bool    `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// AppliesToService reports whether the rule covers the given service.
func (r *AvailabilityRule) AppliesToService(serviceID string) bool {
	if len(r.ServiceIDs) == 0 {
		return true
	}
	for _, id := range r.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// AppliesToDate reports whether the rule produces slots on the given day.
func (r *AvailabilityRule) AppliesToDate(day time.Time) bool {
	switch r.Kind {
	case RuleKindRecurring:
		return day.Weekday() == r.DayOfWeek
	case RuleKindOneTime:
		return day.Format("2006-01-02") == r.SpecificDate
	}
	return false
}
