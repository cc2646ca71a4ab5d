package jobs

import (
	"context"
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/ops"
	"rental-ops-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockBookingService
type MockBookingService struct {
	service.BookingService
	mock.Mock
}

func (m *MockBookingService) ListUpcomingPickups(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockOpsService
type MockOpsService struct {
	service.OpsService
	mock.Mock
}

func (m *MockOpsService) GetWorkflow(ctx context.Context, bookingID int32, requested ops.StepID) (*service.Workflow, error) {
	args := m.Called(ctx, bookingID, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Workflow), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendActivationNotice(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockEmailService) SendUnreadyPickupAlert(ctx context.Context, b *domain.Booking, issues []string) error {
	args := m.Called(ctx, b, issues)
	return args.Error(0)
}
