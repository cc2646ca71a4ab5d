package postgres

import (
	"context"
	"database/sql"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository"
)

// The deposit, agreement and walkaround tables are written by other systems;
// the console only reads them.

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetDepositHold(ctx context.Context, bookingID int32) (*domain.DepositHold, error) {
	logger.EnterMethod("paymentRepository.GetDepositHold", "bookingID", bookingID)

	query := `SELECT booking_id, status, amount_cents, currency, COALESCE(processor_ref, ''), updated_on
	          FROM deposit_holds WHERE booking_id = $1 ORDER BY updated_on DESC LIMIT 1`
	h := &domain.DepositHold{}
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&h.BookingID, &h.Status, &h.AmountCents, &h.Currency, &h.ProcessorRef, &h.UpdatedOn)
	if err != nil {
		err = mapNotFound(err)
		logger.ExitMethodWithError("paymentRepository.GetDepositHold", err, "bookingID", bookingID)
		return nil, err
	}

	logger.ExitMethod("paymentRepository.GetDepositHold", "bookingID", bookingID, "status", h.Status)
	return h, nil
}

type agreementRepository struct {
	db *sql.DB
}

func NewAgreementRepository(db *sql.DB) repository.AgreementRepository {
	return &agreementRepository{db: db}
}

func (r *agreementRepository) GetByBooking(ctx context.Context, bookingID int32) (*domain.Agreement, error) {
	logger.EnterMethod("agreementRepository.GetByBooking", "bookingID", bookingID)

	query := `SELECT booking_id, status, COALESCE(signer_name, ''), signed_at FROM rental_agreements WHERE booking_id = $1`
	a := &domain.Agreement{}
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&a.BookingID, &a.Status, &a.SignerName, &a.SignedAt)
	if err != nil {
		err = mapNotFound(err)
		logger.ExitMethodWithError("agreementRepository.GetByBooking", err, "bookingID", bookingID)
		return nil, err
	}

	logger.ExitMethod("agreementRepository.GetByBooking", "bookingID", bookingID, "status", a.Status)
	return a, nil
}

type walkaroundRepository struct {
	db *sql.DB
}

func NewWalkaroundRepository(db *sql.DB) repository.WalkaroundRepository {
	return &walkaroundRepository{db: db}
}

func (r *walkaroundRepository) GetByBooking(ctx context.Context, bookingID int32) (*domain.Walkaround, error) {
	logger.EnterMethod("walkaroundRepository.GetByBooking", "bookingID", bookingID)

	query := `SELECT booking_id, inspection_complete, customer_acknowledged, COALESCE(notes, ''), completed_at
	          FROM walkarounds WHERE booking_id = $1`
	w := &domain.Walkaround{}
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&w.BookingID, &w.InspectionComplete, &w.CustomerAcknowledged, &w.Notes, &w.CompletedAt)
	if err != nil {
		err = mapNotFound(err)
		logger.ExitMethodWithError("walkaroundRepository.GetByBooking", err, "bookingID", bookingID)
		return nil, err
	}

	logger.ExitMethod("walkaroundRepository.GetByBooking", "bookingID", bookingID)
	return w, nil
}
