package notification

import (
	"context"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/messaging"

	"slotify/models"
)

// FCMSender delivers exception notices as push messages. Clients subscribe
// to their own topic when the app registers for push.
type FCMSender struct {
	Client *messaging.Client
}

// SendExceptionNotice pushes a single notice to the client's topic.
func (s *FCMSender) SendExceptionNotice(ctx context.Context, p models.ExceptionNoticePayload) error {
	title := "Schedule change from your provider"
	body := p.Message
	if body == "" {
		body = fmt.Sprintf("Your provider updated their availability on %s. %d of your bookings may be affected.",
			p.Date, len(p.BookingIDs))
	}

	msg := &messaging.Message{
		Topic: "client_" + p.ClientID,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type":       "schedule_exception",
			"providerId": p.ProviderID,
			"date":       p.Date,
			"bookingIds": strings.Join(p.BookingIDs, ","),
		},
	}

	if _, err := s.Client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send exception notice to client %s: %w", p.ClientID, err)
	}
	return nil
}
