package models

// Conflict types returned by the conflict checker.
const (
	ConflictTimeOverlap = "time_overlap"       // recurring rule vs recurring rule on the same weekday
	ConflictRecurring   = "recurring_conflict" // one-time rule vs a recurring rule on that weekday
	ConflictSpecific    = "specific_conflict"  // one-time rule vs another one-time rule on the same date
	ConflictBooking     = "booking_conflict"   // candidate rule vs an existing active booking
)

// Conflict describes a single overlap between a candidate availability rule
// and an existing rule or booking.
type Conflict struct {
	Type      string `json:"type"`
	RuleID    string `json:"rule_id,omitempty"`    // set for rule conflicts
	BookingID string `json:"booking_id,omitempty"` // set for booking conflicts
	Date      string `json:"date,omitempty"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Message   string `json:"message"`
}

// Impact types reported by the impact analyzer.
const (
	ImpactCancellationRequired = "cancellation_required"
	ImpactRescheduleRequired   = "reschedule_required"
)

// AffectedBooking is a booking that a proposed rule edit would orphan.
type AffectedBooking struct {
	Booking           Booking `json:"booking"`
	ImpactType        string  `json:"impact_type"`
	RecommendedAction string  `json:"recommended_action"`
}
