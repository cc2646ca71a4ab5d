package service

import (
	"context"
	"io"
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/ops"
)

type BookingService interface {
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	SetBookingStatus(ctx context.Context, staffID, id int32, to domain.BookingStatus) (*domain.Booking, error)
	ListUpcomingPickups(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
	ListModifications(ctx context.Context, bookingID int32) ([]domain.BookingModification, error)
}

// OpsService drives the staff workflow for a single booking. Every read rebuilds
// the step projection from the underlying records.
type OpsService interface {
	GetWorkflow(ctx context.Context, bookingID int32, requested ops.StepID) (*Workflow, error)
	MarkIntakeReviewed(ctx context.Context, staffID, bookingID int32) (*Workflow, error)
	SaveCheckIn(ctx context.Context, staffID, bookingID int32, in CheckInInput) (*CheckInResult, error)
	PreviewModification(ctx context.Context, bookingID int32, newEnd time.Time) (*ops.ModificationPreview, error)
	ConfirmModification(ctx context.Context, staffID, bookingID int32, newEnd time.Time, reason string) (*domain.BookingModification, error)
	ActivateBooking(ctx context.Context, staffID, bookingID int32) (*domain.Booking, error)
	DispatchDelivery(ctx context.Context, staffID, bookingID, driverID int32) (*domain.DeliveryTask, error)
}

type PhotoService interface {
	UploadPhoto(ctx context.Context, staffID, bookingID int32, phase domain.PhotoPhase, photoType domain.PhotoType, contentType string, body io.Reader) (*domain.Photo, error)
	ListPhotos(ctx context.Context, bookingID int32) ([]domain.Photo, error)
	OpenPhoto(ctx context.Context, key string) (io.ReadCloser, int64, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Staff, error)
}

// PushService notifies delivery drivers on their devices.
type PushService interface {
	NotifyDriverDispatched(ctx context.Context, driver *domain.Staff, b *domain.Booking) error
}

type EmailService interface {
	SendActivationNotice(ctx context.Context, b *domain.Booking) error
	SendUnreadyPickupAlert(ctx context.Context, b *domain.Booking, issues []string) error
}
