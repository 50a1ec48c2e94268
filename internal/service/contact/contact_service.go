package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/Domenick1991/tripavista/internal/kafka"
)

const ReceivedNotice = "Thanks for your message! We'll respond as soon as possible."

type ContactUseCase interface {
	Submit(ctx context.Context, msg Message) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (m Message) Validate() error {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case !strings.Contains(m.Email, "@"):
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	case strings.TrimSpace(m.Message) == "":
		return fmt.Errorf("%w: message is required", domain.ErrValidation)
	}
	return nil
}

type ContactService struct {
	producer Producer
	topic    string
	log      *slog.Logger
}

func NewContactService(producer Producer, topic string, log *slog.Logger) *ContactService {
	if log == nil {
		log = slog.Default()
	}
	return &ContactService{producer: producer, topic: topic, log: log}
}

func (s *ContactService) Submit(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if s.producer == nil || s.topic == "" {
		return nil
	}
	event := kafka.TripEvent{
		Type:       kafka.EventContactMessage,
		Name:       strings.TrimSpace(msg.Name),
		Email:      strings.TrimSpace(msg.Email),
		Subject:    strings.TrimSpace(msg.Subject),
		Message:    msg.Message,
		OccurredAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.topic, event.Email, event); err != nil {
		s.log.Warn("failed to publish contact message", slog.String("email", event.Email), slog.Any("error", err))
	}
	return nil
}

var _ ContactUseCase = (*ContactService)(nil)
