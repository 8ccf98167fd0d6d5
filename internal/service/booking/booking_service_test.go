package booking

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/courtify/courtify/internal/domain"
	"github.com/courtify/courtify/internal/kafka"
	"github.com/courtify/courtify/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, payload any) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	store := ledger.NewFileStore(filepath.Join(t.TempDir(), "bookings.json"))
	return New(store, zap.NewNop(), opts...)
}

func validInput() CreateInput {
	return CreateInput{
		ServiceID:    "svc-1",
		ServiceName:  "Tennis Court (Outdoor)",
		UnitID:       "u-1",
		UnitName:     "Court 1",
		Date:         "2025-06-01",
		Time:         "18:00",
		CustomerName: "Ana",
		Contact:      "ana@example.com",
	}
}

func TestCreateMissingRequiredFields(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	for _, mutate := range []func(*CreateInput){
		func(in *CreateInput) { in.ServiceID = "" },
		func(in *CreateInput) { in.UnitID = "" },
		func(in *CreateInput) { in.Date = "" },
		func(in *CreateInput) { in.Time = "" },
		func(in *CreateInput) { in.CustomerName = "" },
	} {
		input := validInput()
		mutate(&input)
		_, err := service.Create(ctx, input)
		assert.True(t, domain.IsValidation(err))
	}
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	first, err := service.Create(ctx, validInput())
	require.NoError(t, err)
	second, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Contains(t, first.ID, "bk-")
	assert.Equal(t, domain.BookingStatusConfirmed, first.Status)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestCreateThenList(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	bookings, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, created.ID, bookings[0].ID)
	assert.Equal(t, "Ana", bookings[0].CustomerName)
}

func TestCreateDuplicatesBothPersist(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	// no conflict detection: two identical bookings both succeed
	_, err := service.Create(ctx, validInput())
	require.NoError(t, err)
	_, err = service.Create(ctx, validInput())
	require.NoError(t, err)

	bookings, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestCreatePublishesEvent(t *testing.T) {
	mockProducer := &MockProducer{}
	service := newTestService(t, WithProducer(mockProducer, "bookings"))
	ctx := context.Background()

	mockProducer.On("Publish", ctx, "bookings", mock.AnythingOfType("string"), mock.AnythingOfType("kafka.BookingEvent")).
		Return(nil).Once()

	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	mockProducer.AssertExpectations(t)
	event := mockProducer.Calls[0].Arguments.Get(3).(kafka.BookingEvent)
	assert.Equal(t, "booking_created", event.Type)
	assert.Equal(t, created.ID, event.BookingID)
}

func TestCreateSucceedsWhenPublishFails(t *testing.T) {
	mockProducer := &MockProducer{}
	service := newTestService(t, WithProducer(mockProducer, "bookings"))
	ctx := context.Background()

	mockProducer.On("Publish", ctx, "bookings", mock.AnythingOfType("string"), mock.AnythingOfType("kafka.BookingEvent")).
		Return(errors.New("broker down")).Once()

	created, err := service.Create(ctx, validInput())
	require.NoError(t, err)
	assert.NotNil(t, created)

	bookings, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
