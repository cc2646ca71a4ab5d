package postgres

import (
	"database/sql"
	"errors"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.CheckInRepository
	repository.PaymentRepository
	repository.AgreementRepository
	repository.WalkaroundRepository
	repository.PhotoRepository
	repository.PrepRepository
	repository.DispatchRepository
	repository.StaffRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		BookingRepository:    NewBookingRepository(db),
		CheckInRepository:    NewCheckInRepository(db),
		PaymentRepository:    NewPaymentRepository(db),
		AgreementRepository:  NewAgreementRepository(db),
		WalkaroundRepository: NewWalkaroundRepository(db),
		PhotoRepository:      NewPhotoRepository(db),
		PrepRepository:       NewPrepRepository(db),
		DispatchRepository:   NewDispatchRepository(db),
		StaffRepository:      NewStaffRepository(db),
	}
}

// DB exposes the pool for health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// mapNotFound turns a missing row into the domain sentinel.
func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
