package postgres

import (
	"context"
	"database/sql"
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository"
)

type checkInRepository struct {
	db *sql.DB
}

func NewCheckInRepository(db *sql.DB) repository.CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) GetByBooking(ctx context.Context, bookingID int32) (*domain.CheckInRecord, error) {
	logger.EnterMethod("checkInRepository.GetByBooking", "bookingID", bookingID)

	query := `
		SELECT booking_id, gov_id_verified, COALESCE(license_number, ''), COALESCE(license_name, ''),
		       license_expiry, date_of_birth, name_matches, arrived_at, status, COALESCE(notes, ''),
		       updated_by, updated_on
		FROM checkins WHERE booking_id = $1
	`
	rec := &domain.CheckInRecord{}
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(
		&rec.BookingID, &rec.GovIDVerified, &rec.LicenseNumber, &rec.LicenseName,
		&rec.LicenseExpiry, &rec.DateOfBirth, &rec.NameMatches, &rec.ArrivedAt, &rec.Status, &rec.Notes,
		&rec.UpdatedBy, &rec.UpdatedOn,
	)
	if err != nil {
		err = mapNotFound(err)
		logger.ExitMethodWithError("checkInRepository.GetByBooking", err, "bookingID", bookingID)
		return nil, err
	}

	logger.ExitMethod("checkInRepository.GetByBooking", "bookingID", bookingID, "status", rec.Status)
	return rec, nil
}

// Save upserts the desk's check-in fields. The status column is left to UpdateStatus.
func (r *checkInRepository) Save(ctx context.Context, rec *domain.CheckInRecord) error {
	logger.EnterMethod("checkInRepository.Save", "bookingID", rec.BookingID, "staffID", rec.UpdatedBy)

	query := `
		INSERT INTO checkins (
			booking_id, gov_id_verified, license_number, license_name, license_expiry, date_of_birth,
			name_matches, arrived_at, status, notes, updated_by, updated_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (booking_id) DO UPDATE SET
			gov_id_verified = EXCLUDED.gov_id_verified,
			license_number = EXCLUDED.license_number,
			license_name = EXCLUDED.license_name,
			license_expiry = EXCLUDED.license_expiry,
			date_of_birth = EXCLUDED.date_of_birth,
			name_matches = EXCLUDED.name_matches,
			arrived_at = EXCLUDED.arrived_at,
			notes = EXCLUDED.notes,
			updated_by = EXCLUDED.updated_by,
			updated_on = EXCLUDED.updated_on
	`
	if rec.Status == "" {
		rec.Status = domain.CheckInStatusPending
	}
	rec.UpdatedOn = time.Now()
	logger.DatabaseCall("UPSERT", "checkins", "bookingID", rec.BookingID)
	res, err := r.db.ExecContext(ctx, query,
		rec.BookingID, rec.GovIDVerified, rec.LicenseNumber, rec.LicenseName, rec.LicenseExpiry, rec.DateOfBirth,
		rec.NameMatches, rec.ArrivedAt, rec.Status, rec.Notes, rec.UpdatedBy, rec.UpdatedOn,
	)
	var affected int64
	if res != nil {
		affected, _ = res.RowsAffected()
	}
	logger.DatabaseResult("UPSERT", affected, err, "bookingID", rec.BookingID)
	if err != nil {
		logger.ExitMethodWithError("checkInRepository.Save", err, "bookingID", rec.BookingID)
		return err
	}

	logger.ExitMethod("checkInRepository.Save", "bookingID", rec.BookingID)
	return nil
}

func (r *checkInRepository) UpdateStatus(ctx context.Context, bookingID int32, status domain.CheckInStatus) error {
	logger.EnterMethod("checkInRepository.UpdateStatus", "bookingID", bookingID, "status", status)

	res, err := r.db.ExecContext(ctx, `UPDATE checkins SET status = $1, updated_on = $2 WHERE booking_id = $3`, status, time.Now(), bookingID)
	if err == nil {
		err = requireRow(res)
	}
	if err != nil {
		logger.ExitMethodWithError("checkInRepository.UpdateStatus", err, "bookingID", bookingID)
		return err
	}

	logger.ExitMethod("checkInRepository.UpdateStatus", "bookingID", bookingID)
	return nil
}
