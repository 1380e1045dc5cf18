package models

// CalendarSummary holds aggregate counts for a calendar window.
type CalendarSummary struct {
	TotalSlots     int `json:"total_slots"`
	AvailableSlots int `json:"available_slots"`
	BookedSlots    int `json:"booked_slots"`
	ExceptionDays  int `json:"exception_days"`
}

// CalendarView is the full answer to "what does my calendar look like".
type CalendarView struct {
	ProviderID string             `json:"provider_id"`
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	View       string             `json:"view"` // "day", "week" or "month"
	Rules      []AvailabilityRule `json:"rules"`
	Bookings   []Booking          `json:"bookings"`
	Exceptions []Exception        `json:"exceptions"`
	Slots      []Slot             `json:"slots"`
	Summary    CalendarSummary    `json:"summary"`
}

// CreateAvailabilityRequest is the payload for creating an availability rule.
// Times are "HH:MM" strings; the service converts them to minutes.
type CreateAvailabilityRequest struct {
	Kind               string   `json:"kind" binding:"required,oneof=recurring one_time"`
	DayOfWeek          *int     `json:"day_of_week,omitempty"`   // 0=Sunday, required for recurring
	SpecificDate       string   `json:"specific_date,omitempty"` // required for one_time
	StartTime          string   `json:"start_time" binding:"required"`
	EndTime            string   `json:"end_time" binding:"required"`
	SlotDuration       int      `json:"slot_duration,omitempty"`
	BufferTime         *int     `json:"buffer_time,omitempty"`
	MaxBookingsPerSlot int      `json:"max_bookings_per_slot,omitempty"`
	MinimumNoticeHours *int     `json:"minimum_notice_hours,omitempty"`
	MaximumAdvanceDays int      `json:"maximum_advance_days,omitempty"`
	ServiceIDs         []string `json:"service_ids,omitempty"`
	PriceMultiplier    float64  `json:"price_multiplier,omitempty"`
}

// UpdateAvailabilityRequest is a partial update; nil fields are unchanged.
type UpdateAvailabilityRequest struct {
	StartTime          *string  `json:"start_time,omitempty"`
	EndTime            *string  `json:"end_time,omitempty"`
	DayOfWeek          *int     `json:"day_of_week,omitempty"`
	SlotDuration       *int     `json:"slot_duration,omitempty"`
	BufferTime         *int     `json:"buffer_time,omitempty"`
	MaxBookingsPerSlot *int     `json:"max_bookings_per_slot,omitempty"`
	MinimumNoticeHours *int     `json:"minimum_notice_hours,omitempty"`
	MaximumAdvanceDays *int     `json:"maximum_advance_days,omitempty"`
	ServiceIDs         []string `json:"service_ids,omitempty"`
	PriceMultiplier    *float64 `json:"price_multiplier,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

// CreateExceptionRequest is the payload for creating a schedule exception.
type CreateExceptionRequest struct {
	Date                string   `json:"date" binding:"required"`
	Type                string   `json:"type" binding:"required,oneof=unavailable special_hours holiday"`
	StartTime           string   `json:"start_time,omitempty"` // required for special_hours
	EndTime             string   `json:"end_time,omitempty"`
	AffectsAllServices  bool     `json:"affects_all_services"`
	ServiceIDs          []string `json:"service_ids,omitempty"`
	NotifyClients       bool     `json:"notify_clients"`
	NotificationMessage string   `json:"notification_message,omitempty"`
}

// BulkAvailabilityRequest generates one-time rules from a weekly pattern
// over a date range, minus excluded dates. Capped at 100 generated rules.
type BulkAvailabilityRequest struct {
	DaysOfWeek         []int    `json:"days_of_week" binding:"required,min=1"`
	StartDate          string   `json:"start_date" binding:"required"`
	EndDate            string   `json:"end_date" binding:"required"`
	ExcludedDates      []string `json:"excluded_dates,omitempty"`
	StartTime          string   `json:"start_time" binding:"required"`
	EndTime            string   `json:"end_time" binding:"required"`
	SlotDuration       int      `json:"slot_duration,omitempty"`
	BufferTime         *int     `json:"buffer_time,omitempty"`
	MaxBookingsPerSlot int      `json:"max_bookings_per_slot,omitempty"`
	MinimumNoticeHours *int     `json:"minimum_notice_hours,omitempty"`
	ServiceIDs         []string `json:"service_ids,omitempty"`
	PriceMultiplier    float64  `json:"price_multiplier,omitempty"`
}

// BulkDateResult reports the outcome for one generated date.
type BulkDateResult struct {
	Date    string `json:"date"`
	Created bool   `json:"created"`
	RuleID  string `json:"rule_id,omitempty"`
	Reason  string `json:"reason,omitempty"` // set when skipped
}

// BulkAvailabilityResult summarizes a bulk creation run.
type BulkAvailabilityResult struct {
	CreatedCount int              `json:"created_count"`
	SkippedCount int              `json:"skipped_count"`
	Dates        []BulkDateResult `json:"dates"`
}
