package email

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/Domenick1991/tripavista/internal/kafka"
	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	tests := []struct {
		event kafka.TripEvent
		want  string
	}{
		{kafka.TripEvent{Type: kafka.EventBookingConfirmed, Reference: "TWV1", Destination: "Paris"}, "Booking TWV1 confirmed: Paris"},
		{kafka.TripEvent{Type: kafka.EventTicketEmailRequested, Reference: "TWV1"}, "Your e-ticket TWV1"},
		{kafka.TripEvent{Type: kafka.EventRoadmapEmailRequested, Destination: "Bali"}, "Your trip roadmap to Bali"},
		{kafka.TripEvent{Type: kafka.EventContactMessage}, "We received your message"},
		{kafka.TripEvent{Type: "other"}, "TravelWise notification"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Subject(tt.event))
	}
}

func TestSender_Send(t *testing.T) {
	var buf bytes.Buffer
	sender := NewSender(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := sender.Send(context.Background(), kafka.TripEvent{Type: kafka.EventTicketEmailRequested, Email: "jane@x.com", Reference: "TWV1"})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"to":"jane@x.com"`)
	assert.Contains(t, buf.String(), `"subject":"Your e-ticket TWV1"`)

	buf.Reset()
	assert.NoError(t, sender.Send(context.Background(), kafka.TripEvent{Type: kafka.EventContactMessage}))
	assert.Contains(t, buf.String(), "dropping notification")
}
