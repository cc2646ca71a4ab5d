package http

import (
	"context"
	"io"
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/ops"
	"rental-ops-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockOpsService
type MockOpsService struct {
	mock.Mock
}

func (m *MockOpsService) GetWorkflow(ctx context.Context, bookingID int32, requested ops.StepID) (*service.Workflow, error) {
	args := m.Called(ctx, bookingID, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Workflow), args.Error(1)
}
func (m *MockOpsService) MarkIntakeReviewed(ctx context.Context, staffID, bookingID int32) (*service.Workflow, error) {
	args := m.Called(ctx, staffID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Workflow), args.Error(1)
}
func (m *MockOpsService) SaveCheckIn(ctx context.Context, staffID, bookingID int32, in service.CheckInInput) (*service.CheckInResult, error) {
	args := m.Called(ctx, staffID, bookingID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckInResult), args.Error(1)
}
func (m *MockOpsService) PreviewModification(ctx context.Context, bookingID int32, newEnd time.Time) (*ops.ModificationPreview, error) {
	args := m.Called(ctx, bookingID, newEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ops.ModificationPreview), args.Error(1)
}
func (m *MockOpsService) ConfirmModification(ctx context.Context, staffID, bookingID int32, newEnd time.Time, reason string) (*domain.BookingModification, error) {
	args := m.Called(ctx, staffID, bookingID, newEnd, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingModification), args.Error(1)
}
func (m *MockOpsService) ActivateBooking(ctx context.Context, staffID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, staffID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockOpsService) DispatchDelivery(ctx context.Context, staffID, bookingID, driverID int32) (*domain.DeliveryTask, error) {
	args := m.Called(ctx, staffID, bookingID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryTask), args.Error(1)
}

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) SetBookingStatus(ctx context.Context, staffID, id int32, to domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, staffID, id, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListUpcomingPickups(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListModifications(ctx context.Context, bookingID int32) ([]domain.BookingModification, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingModification), args.Error(1)
}

// MockPhotoService
type MockPhotoService struct {
	mock.Mock
}

func (m *MockPhotoService) UploadPhoto(ctx context.Context, staffID, bookingID int32, phase domain.PhotoPhase, photoType domain.PhotoType, contentType string, body io.Reader) (*domain.Photo, error) {
	args := m.Called(ctx, staffID, bookingID, phase, photoType, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}
func (m *MockPhotoService) ListPhotos(ctx context.Context, bookingID int32) ([]domain.Photo, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}
func (m *MockPhotoService) OpenPhoto(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(int64), args.Error(2)
}

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.Staff, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Staff), args.Error(2)
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error {
	return p.err
}
