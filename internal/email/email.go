package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/tripavista/internal/kafka"
)

// Sender delivers notification emails. Delivery is simulated: each email
// becomes one log record.
type Sender struct {
	log *slog.Logger
}

func NewSender(log *slog.Logger) *Sender {
	if log == nil {
		log = slog.Default()
	}
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.TripEvent) error {
	if event.Email == "" {
		s.log.Warn("dropping notification without recipient", slog.String("type", event.Type))
		return nil
	}
	s.log.InfoContext(ctx, "email sent",
		slog.String("to", event.Email),
		slog.String("type", event.Type),
		slog.String("subject", Subject(event)),
		slog.String("reference", event.Reference),
	)
	return nil
}

// Subject is the subject line of the email an event produces.
func Subject(event kafka.TripEvent) string {
	switch event.Type {
	case kafka.EventBookingConfirmed:
		return fmt.Sprintf("Booking %s confirmed: %s", event.Reference, event.Destination)
	case kafka.EventTicketEmailRequested:
		return fmt.Sprintf("Your e-ticket %s", event.Reference)
	case kafka.EventRoadmapEmailRequested:
		return fmt.Sprintf("Your trip roadmap to %s", event.Destination)
	case kafka.EventContactMessage:
		if event.Subject != "" {
			return "We received your message: " + event.Subject
		}
		return "We received your message"
	}
	return "TravelWise notification"
}
