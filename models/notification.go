package models

// ExceptionNoticePayload is the queued task payload for notifying a single
// client that a schedule exception affects their bookings.
type ExceptionNoticePayload struct {
	ProviderID string   `json:"provider_id"`
	ClientID   string   `json:"client_id"`
	Date       string   `json:"date"`
	Type       string   `json:"type"`
	Message    string   `json:"message,omitempty"`
	BookingIDs []string `json:"booking_ids"`
}
