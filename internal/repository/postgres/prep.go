package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository"
)

type prepRepository struct {
	db *sql.DB
}

func NewPrepRepository(db *sql.DB) repository.PrepRepository {
	return &prepRepository{db: db}
}

func (r *prepRepository) GetByBooking(ctx context.Context, bookingID int32) (*domain.VehiclePrep, error) {
	logger.EnterMethod("prepRepository.GetByBooking", "bookingID", bookingID)

	query := `SELECT booking_id, items, fuel_level_eighths, odometer_miles, pricing_locked, updated_on
	          FROM vehicle_preps WHERE booking_id = $1`
	p := &domain.VehiclePrep{}
	var items []byte
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&p.BookingID, &items, &p.FuelLevelEighths, &p.OdometerMiles, &p.PricingLocked, &p.UpdatedOn)
	if err != nil {
		err = mapNotFound(err)
		logger.ExitMethodWithError("prepRepository.GetByBooking", err, "bookingID", bookingID)
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &p.Items); err != nil {
			err = fmt.Errorf("decode prep items: %w", err)
			logger.ExitMethodWithError("prepRepository.GetByBooking", err, "bookingID", bookingID)
			return nil, err
		}
	}

	logger.ExitMethod("prepRepository.GetByBooking", "bookingID", bookingID, "checked", p.CheckedCount(), "total", len(p.Items))
	return p, nil
}
