package service

import (
	"context"
	"io"
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/security"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/mock"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) MarkIntakeReviewed(ctx context.Context, id, staffID int32, at time.Time) error {
	args := m.Called(ctx, id, staffID, at)
	return args.Error(0)
}
func (m *MockBookingRepo) AssignDriver(ctx context.Context, id, driverID int32) error {
	args := m.Called(ctx, id, driverID)
	return args.Error(0)
}
func (m *MockBookingRepo) ListStartingBetween(ctx context.Context, status domain.BookingStatus, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, status, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ApplyModification(ctx context.Context, b *domain.Booking, mod *domain.BookingModification) error {
	args := m.Called(ctx, b, mod)
	return args.Error(0)
}
func (m *MockBookingRepo) ListModifications(ctx context.Context, bookingID int32) ([]domain.BookingModification, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingModification), args.Error(1)
}

// MockCheckInRepo
type MockCheckInRepo struct {
	mock.Mock
}

func (m *MockCheckInRepo) GetByBooking(ctx context.Context, bookingID int32) (*domain.CheckInRecord, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckInRecord), args.Error(1)
}
func (m *MockCheckInRepo) Save(ctx context.Context, rec *domain.CheckInRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockCheckInRepo) UpdateStatus(ctx context.Context, bookingID int32, status domain.CheckInStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) GetDepositHold(ctx context.Context, bookingID int32) (*domain.DepositHold, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositHold), args.Error(1)
}

// MockAgreementRepo
type MockAgreementRepo struct {
	mock.Mock
}

func (m *MockAgreementRepo) GetByBooking(ctx context.Context, bookingID int32) (*domain.Agreement, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}

// MockWalkaroundRepo
type MockWalkaroundRepo struct {
	mock.Mock
}

func (m *MockWalkaroundRepo) GetByBooking(ctx context.Context, bookingID int32) (*domain.Walkaround, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Walkaround), args.Error(1)
}

// MockPhotoRepo
type MockPhotoRepo struct {
	mock.Mock
}

func (m *MockPhotoRepo) Create(ctx context.Context, photo *domain.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}
func (m *MockPhotoRepo) ListByBooking(ctx context.Context, bookingID int32, phases []domain.PhotoPhase) ([]domain.Photo, error) {
	args := m.Called(ctx, bookingID, phases)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

// MockPrepRepo
type MockPrepRepo struct {
	mock.Mock
}

func (m *MockPrepRepo) GetByBooking(ctx context.Context, bookingID int32) (*domain.VehiclePrep, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehiclePrep), args.Error(1)
}

// MockDispatchRepo
type MockDispatchRepo struct {
	mock.Mock
}

func (m *MockDispatchRepo) GetByBooking(ctx context.Context, bookingID int32) (*domain.DeliveryTask, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryTask), args.Error(1)
}
func (m *MockDispatchRepo) Upsert(ctx context.Context, task *domain.DeliveryTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// MockStaffRepo
type MockStaffRepo struct {
	mock.Mock
}

func (m *MockStaffRepo) GetByID(ctx context.Context, id int32) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}
func (m *MockStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
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

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(staffID int32, email string, role domain.StaffRole) (string, error) {
	args := m.Called(staffID, email, role)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.StaffClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.StaffClaims), args.Error(1)
}

// MockPhotoStore
type MockPhotoStore struct {
	mock.Mock
}

func (m *MockPhotoStore) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	args := m.Called(ctx, key, r)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPhotoStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockPhotoStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockPhotoStore) Exists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

// MockMailSender
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rest.Response), args.Error(1)
}

// MockPushService
type MockPushService struct {
	mock.Mock
}

func (m *MockPushService) NotifyDriverDispatched(ctx context.Context, driver *domain.Staff, b *domain.Booking) error {
	args := m.Called(ctx, driver, b)
	return args.Error(0)
}
