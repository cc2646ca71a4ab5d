package repository

import (
	"context"
	"time"

	"rental-ops-backend/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error
	MarkIntakeReviewed(ctx context.Context, id, staffID int32, at time.Time) error
	AssignDriver(ctx context.Context, id, driverID int32) error
	ListStartingBetween(ctx context.Context, status domain.BookingStatus, from, to time.Time) ([]domain.Booking, error)

	// ApplyModification updates the booking schedule and writes the audit row atomically.
	ApplyModification(ctx context.Context, b *domain.Booking, mod *domain.BookingModification) error
	ListModifications(ctx context.Context, bookingID int32) ([]domain.BookingModification, error)
}

type CheckInRepository interface {
	GetByBooking(ctx context.Context, bookingID int32) (*domain.CheckInRecord, error)
	Save(ctx context.Context, rec *domain.CheckInRecord) error
	UpdateStatus(ctx context.Context, bookingID int32, status domain.CheckInStatus) error
}

// PaymentRepository reads the deposit hold mirrored from the card processor.
type PaymentRepository interface {
	GetDepositHold(ctx context.Context, bookingID int32) (*domain.DepositHold, error)
}

type AgreementRepository interface {
	GetByBooking(ctx context.Context, bookingID int32) (*domain.Agreement, error)
}

type WalkaroundRepository interface {
	GetByBooking(ctx context.Context, bookingID int32) (*domain.Walkaround, error)
}

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	ListByBooking(ctx context.Context, bookingID int32, phases []domain.PhotoPhase) ([]domain.Photo, error)
}

type PrepRepository interface {
	GetByBooking(ctx context.Context, bookingID int32) (*domain.VehiclePrep, error)
}

type DispatchRepository interface {
	GetByBooking(ctx context.Context, bookingID int32) (*domain.DeliveryTask, error)
	Upsert(ctx context.Context, task *domain.DeliveryTask) error
}

type StaffRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Staff, error)
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
}
