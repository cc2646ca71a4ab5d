package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository"
)

type photoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) repository.PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, p *domain.Photo) error {
	logger.EnterMethod("photoRepository.Create", "bookingID", p.BookingID, "phase", p.Phase, "type", p.Type)

	query := `INSERT INTO vehicle_photos (booking_id, phase, photo_type, storage_key, content_type, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	p.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query, p.BookingID, p.Phase, p.Type, p.StorageKey, p.ContentType, p.CreatedBy, p.CreatedOn).Scan(&p.ID)
	if err != nil {
		logger.ExitMethodWithError("photoRepository.Create", err, "bookingID", p.BookingID)
		return err
	}

	logger.ExitMethod("photoRepository.Create", "photoID", p.ID)
	return nil
}

func (r *photoRepository) ListByBooking(ctx context.Context, bookingID int32, phases []domain.PhotoPhase) ([]domain.Photo, error) {
	logger.EnterMethod("photoRepository.ListByBooking", "bookingID", bookingID, "phases", phases)

	phaseStrs := make([]string, len(phases))
	for i, ph := range phases {
		phaseStrs[i] = string(ph)
	}

	query := `SELECT id, booking_id, phase, photo_type, storage_key, content_type, created_by, created_on
	          FROM vehicle_photos WHERE booking_id = $1 AND phase = ANY($2) ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, bookingID, pq.Array(phaseStrs))
	if err != nil {
		logger.ExitMethodWithError("photoRepository.ListByBooking", err, "bookingID", bookingID)
		return nil, err
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Phase, &p.Type, &p.StorageKey, &p.ContentType, &p.CreatedBy, &p.CreatedOn); err != nil {
			logger.ExitMethodWithError("photoRepository.ListByBooking", err, "bookingID", bookingID)
			return nil, err
		}
		photos = append(photos, p)
	}

	logger.ExitMethod("photoRepository.ListByBooking", "bookingID", bookingID, "count", len(photos))
	return photos, rows.Err()
}
