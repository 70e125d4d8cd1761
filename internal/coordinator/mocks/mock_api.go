package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/api"
	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
)

// MockSeatAPI is a mock implementation of coordinator.SeatAPI.
type MockSeatAPI struct {
	mock.Mock
}

func (m *MockSeatAPI) GetSeats(ctx context.Context, flightID string) ([]models.Seat, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Seat), args.Error(1)
}

func (m *MockSeatAPI) LockSeat(ctx context.Context, req api.LockRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockSeatAPI) UnlockSeat(ctx context.Context, req api.UnlockRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
