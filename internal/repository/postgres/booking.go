package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository"
)

const bookingColumns = `id, customer_id, customer_name, customer_email, status, start_at, end_at, total_days,
		daily_rate_cents, subtotal_cents, tax_amount_cents, young_driver_fee_cents, protection_plan_fee_cents,
		total_amount_cents, vehicle_id, assigned_unit_vin, assigned_driver_id, COALESCE(delivery_address, ''),
		intake_reviewed_at, intake_reviewed_by, created_on, updated_on`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.CustomerName, &b.CustomerEmail, &b.Status, &b.StartAt, &b.EndAt, &b.TotalDays,
		&b.DailyRateCents, &b.SubtotalCents, &b.TaxAmountCents, &b.YoungDriverFeeCents, &b.ProtectionPlanFeeCents,
		&b.TotalAmountCents, &b.VehicleID, &b.AssignedUnitVIN, &b.AssignedDriverID, &b.DeliveryAddress,
		&b.IntakeReviewedAt, &b.IntakeReviewedBy, &b.CreatedOn, &b.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	logger.EnterMethod("bookingRepository.GetByID", "bookingID", id)

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		err = mapNotFound(err)
		logger.ExitMethodWithError("bookingRepository.GetByID", err, "bookingID", id)
		return nil, err
	}

	logger.ExitMethod("bookingRepository.GetByID", "bookingID", id, "status", b.Status)
	return b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	logger.EnterMethod("bookingRepository.UpdateStatus", "bookingID", id, "status", status)

	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = $1, updated_on = $2 WHERE id = $3`, status, time.Now(), id)
	if err == nil {
		err = requireRow(res)
	}
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.UpdateStatus", err, "bookingID", id)
		return err
	}

	logger.ExitMethod("bookingRepository.UpdateStatus", "bookingID", id)
	return nil
}

func (r *bookingRepository) MarkIntakeReviewed(ctx context.Context, id, staffID int32, at time.Time) error {
	logger.EnterMethod("bookingRepository.MarkIntakeReviewed", "bookingID", id, "staffID", staffID)

	query := `UPDATE bookings SET intake_reviewed_at = $1, intake_reviewed_by = $2, updated_on = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, at, staffID, time.Now(), id)
	if err == nil {
		err = requireRow(res)
	}
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.MarkIntakeReviewed", err, "bookingID", id)
		return err
	}

	logger.ExitMethod("bookingRepository.MarkIntakeReviewed", "bookingID", id)
	return nil
}

func (r *bookingRepository) AssignDriver(ctx context.Context, id, driverID int32) error {
	logger.EnterMethod("bookingRepository.AssignDriver", "bookingID", id, "driverID", driverID)

	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET assigned_driver_id = $1, updated_on = $2 WHERE id = $3`, driverID, time.Now(), id)
	if err == nil {
		err = requireRow(res)
	}
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.AssignDriver", err, "bookingID", id)
		return err
	}

	logger.ExitMethod("bookingRepository.AssignDriver", "bookingID", id)
	return nil
}

func (r *bookingRepository) ListStartingBetween(ctx context.Context, status domain.BookingStatus, from, to time.Time) ([]domain.Booking, error) {
	logger.EnterMethod("bookingRepository.ListStartingBetween", "status", status, "from", from, "to", to)

	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status = $1 AND start_at >= $2 AND start_at < $3 ORDER BY start_at`
	logger.DatabaseCall("SELECT", "bookings", "status", status)
	rows, err := r.db.QueryContext(ctx, query, status, from, to)
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.ListStartingBetween", err)
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			logger.ExitMethodWithError("bookingRepository.ListStartingBetween", err)
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		logger.ExitMethodWithError("bookingRepository.ListStartingBetween", err)
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(bookings)), nil)

	logger.ExitMethod("bookingRepository.ListStartingBetween", "count", len(bookings))
	return bookings, nil
}

func (r *bookingRepository) ApplyModification(ctx context.Context, b *domain.Booking, mod *domain.BookingModification) (err error) {
	logger.EnterMethod("bookingRepository.ApplyModification", "bookingID", b.ID, "newEndAt", mod.NewEndAt)
	defer func() {
		if err != nil {
			logger.ExitMethodWithError("bookingRepository.ApplyModification", err, "bookingID", b.ID)
			return
		}
		logger.ExitMethod("bookingRepository.ApplyModification", "bookingID", b.ID, "modificationID", mod.ID)
	}()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now()
	update := `UPDATE bookings SET end_at = $1, total_days = $2, subtotal_cents = $3, total_amount_cents = $4, updated_on = $5
	           WHERE id = $6`
	res, err := tx.ExecContext(ctx, update, b.EndAt, b.TotalDays, b.SubtotalCents, b.TotalAmountCents, now, b.ID)
	if err != nil {
		return fmt.Errorf("update booking schedule: %w", err)
	}
	if err = requireRow(res); err != nil {
		return err
	}

	insert := `INSERT INTO booking_modifications (
			booking_id, staff_id, previous_end_at, new_end_at, previous_days, new_days,
			previous_total_cents, new_total_cents, price_difference_cents, reason, created_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err = tx.QueryRowContext(ctx, insert,
		mod.BookingID, mod.StaffID, mod.PreviousEndAt, mod.NewEndAt, mod.PreviousDays, mod.NewDays,
		mod.PreviousTotalCents, mod.NewTotalCents, mod.PriceDifferenceCents, mod.Reason, now,
	).Scan(&mod.ID)
	if err != nil {
		return fmt.Errorf("insert booking modification: %w", err)
	}
	mod.CreatedOn = now
	b.UpdatedOn = now

	return tx.Commit()
}

func (r *bookingRepository) ListModifications(ctx context.Context, bookingID int32) ([]domain.BookingModification, error) {
	logger.EnterMethod("bookingRepository.ListModifications", "bookingID", bookingID)

	query := `SELECT id, booking_id, staff_id, previous_end_at, new_end_at, previous_days, new_days,
	                 previous_total_cents, new_total_cents, price_difference_cents, reason, created_on
	          FROM booking_modifications WHERE booking_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.ListModifications", err, "bookingID", bookingID)
		return nil, err
	}
	defer rows.Close()

	var mods []domain.BookingModification
	for rows.Next() {
		var m domain.BookingModification
		if err := rows.Scan(&m.ID, &m.BookingID, &m.StaffID, &m.PreviousEndAt, &m.NewEndAt, &m.PreviousDays, &m.NewDays,
			&m.PreviousTotalCents, &m.NewTotalCents, &m.PriceDifferenceCents, &m.Reason, &m.CreatedOn); err != nil {
			logger.ExitMethodWithError("bookingRepository.ListModifications", err, "bookingID", bookingID)
			return nil, err
		}
		mods = append(mods, m)
	}

	logger.ExitMethod("bookingRepository.ListModifications", "bookingID", bookingID, "count", len(mods))
	return mods, rows.Err()
}

// requireRow reports domain.ErrNotFound when an update touched nothing.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
