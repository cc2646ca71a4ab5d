package postgres

import (
	"context"
	"database/sql"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository"
)

type dispatchRepository struct {
	db *sql.DB
}

func NewDispatchRepository(db *sql.DB) repository.DispatchRepository {
	return &dispatchRepository{db: db}
}

func (r *dispatchRepository) GetByBooking(ctx context.Context, bookingID int32) (*domain.DeliveryTask, error) {
	logger.EnterMethod("dispatchRepository.GetByBooking", "bookingID", bookingID)

	query := `SELECT booking_id, driver_id, status, dispatched_at FROM delivery_tasks WHERE booking_id = $1`
	d := &domain.DeliveryTask{}
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&d.BookingID, &d.DriverID, &d.Status, &d.DispatchedAt)
	if err != nil {
		err = mapNotFound(err)
		logger.ExitMethodWithError("dispatchRepository.GetByBooking", err, "bookingID", bookingID)
		return nil, err
	}

	logger.ExitMethod("dispatchRepository.GetByBooking", "bookingID", bookingID, "status", d.Status)
	return d, nil
}

func (r *dispatchRepository) Upsert(ctx context.Context, d *domain.DeliveryTask) error {
	logger.EnterMethod("dispatchRepository.Upsert", "bookingID", d.BookingID, "status", d.Status)

	query := `
		INSERT INTO delivery_tasks (booking_id, driver_id, status, dispatched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (booking_id) DO UPDATE SET
			driver_id = EXCLUDED.driver_id,
			status = EXCLUDED.status,
			dispatched_at = EXCLUDED.dispatched_at
	`
	_, err := r.db.ExecContext(ctx, query, d.BookingID, d.DriverID, d.Status, d.DispatchedAt)
	if err != nil {
		logger.ExitMethodWithError("dispatchRepository.Upsert", err, "bookingID", d.BookingID)
		return err
	}

	logger.ExitMethod("dispatchRepository.Upsert", "bookingID", d.BookingID)
	return nil
}
