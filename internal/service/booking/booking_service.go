package booking

import (
	"context"
	"time"

	"github.com/courtify/courtify/internal/domain"
	"github.com/courtify/courtify/internal/kafka"
	"github.com/courtify/courtify/internal/ledger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UseCase is the booking surface the HTTP layer consumes. There is no update
// or delete, and no conflict detection: identical concurrent bookings both
// succeed and both persist.
type UseCase interface {
	Create(ctx context.Context, input CreateInput) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
}

// Producer publishes booking events. Optional; publishing is best-effort and
// never fails a booking.
type Producer interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

type CreateInput struct {
	ServiceID    string   `json:"serviceId"`
	ServiceName  string   `json:"serviceName"`
	UnitID       string   `json:"unitId"`
	UnitName     string   `json:"unitName"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	CustomerName string   `json:"customerName"`
	Contact      string   `json:"contact"`
	Price        *float64 `json:"price"`
}

type Service struct {
	store        ledger.Store
	log          *zap.Logger
	producer     Producer
	bookingTopic string
}

type Option func(*Service)

func WithProducer(producer Producer, topic string) Option {
	return func(s *Service) {
		s.producer = producer
		s.bookingTopic = topic
	}
}

func New(store ledger.Store, log *zap.Logger, opts ...Option) *Service {
	service := &Service{store: store, log: log}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Booking, error) {
	if input.ServiceID == "" || input.UnitID == "" || input.Date == "" || input.Time == "" || input.CustomerName == "" {
		return nil, domain.NewValidationError("Missing required fields")
	}

	booking := domain.Booking{
		ID:           "bk-" + uuid.NewString(),
		ServiceID:    input.ServiceID,
		ServiceName:  input.ServiceName,
		UnitID:       input.UnitID,
		UnitName:     input.UnitName,
		Date:         input.Date,
		Time:         input.Time,
		CustomerName: input.CustomerName,
		Contact:      input.Contact,
		Price:        input.Price,
		Status:       domain.BookingStatusConfirmed,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Append(ctx, booking); err != nil {
		return nil, err
	}

	if s.producer != nil {
		event := kafka.BookingEvent{
			Type:         "booking_created",
			BookingID:    booking.ID,
			ServiceID:    booking.ServiceID,
			ServiceName:  booking.ServiceName,
			UnitID:       booking.UnitID,
			UnitName:     booking.UnitName,
			Date:         booking.Date,
			Time:         booking.Time,
			CustomerName: booking.CustomerName,
			Contact:      booking.Contact,
			Status:       booking.Status,
			CreatedAt:    booking.CreatedAt,
		}
		if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
			s.log.Warn("failed to publish booking_created event",
				zap.String("booking_id", booking.ID),
				zap.Error(err),
			)
		}
	}

	return &booking, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Booking, error) {
	return s.store.List(ctx)
}

var _ UseCase = (*Service)(nil)
