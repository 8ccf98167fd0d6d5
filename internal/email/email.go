package email

import (
	"context"

	"github.com/courtify/courtify/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers booking confirmations. Delivery is a log line for now; the
// contact field is free-form and not guaranteed to be an email address.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("booking confirmation",
		zap.String("booking_id", event.BookingID),
		zap.String("customer", event.CustomerName),
		zap.String("contact", event.Contact),
		zap.String("date", event.Date),
		zap.String("time", event.Time),
		zap.String("unit", event.UnitName),
	)
	return nil
}
