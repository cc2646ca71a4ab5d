package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository"
	"rental-ops-backend/internal/storage"
)

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/heic": ".heic",
}

type photoService struct {
	bookingRepo repository.BookingRepository
	photoRepo   repository.PhotoRepository
	store       storage.PhotoStore
}

func NewPhotoService(bookingRepo repository.BookingRepository, photoRepo repository.PhotoRepository, store storage.PhotoStore) PhotoService {
	return &photoService{
		bookingRepo: bookingRepo,
		photoRepo:   photoRepo,
		store:       store,
	}
}

func (s *photoService) UploadPhoto(ctx context.Context, staffID, bookingID int32, phase domain.PhotoPhase, photoType domain.PhotoType, contentType string, body io.Reader) (*domain.Photo, error) {
	logger.EnterMethod("photoService.UploadPhoto", "staffID", staffID, "bookingID", bookingID, "phase", phase, "type", photoType)

	ext, ok := photoExtensions[contentType]
	if !phase.IsValid() || !photoType.IsValid() || !ok {
		logger.ExitMethodWithError("photoService.UploadPhoto", ErrInvalidPhoto, "bookingID", bookingID)
		return nil, ErrInvalidPhoto
	}
	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = ErrBookingNotFound
		}
		logger.ExitMethodWithError("photoService.UploadPhoto", err, "bookingID", bookingID)
		return nil, err
	}

	key := storage.NewPhotoKey(bookingID, string(phase), string(photoType), ext)
	logger.ExternalServiceCall("storage", "Save", "key", key)
	size, err := s.store.Save(ctx, key, body)
	logger.ExternalServiceResult("storage", "Save", err, "key", key, "bytes", size)
	if err != nil {
		logger.ExitMethodWithError("photoService.UploadPhoto", err, "bookingID", bookingID)
		return nil, fmt.Errorf("store photo: %w", err)
	}

	photo := &domain.Photo{
		BookingID:   bookingID,
		Phase:       phase,
		Type:        photoType,
		StorageKey:  key,
		ContentType: contentType,
		CreatedBy:   staffID,
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logger.Warn("orphaned photo left in storage", "key", key, "error", delErr)
		}
		logger.ExitMethodWithError("photoService.UploadPhoto", err, "bookingID", bookingID)
		return nil, fmt.Errorf("record photo: %w", err)
	}

	logger.ExitMethod("photoService.UploadPhoto", "photoID", photo.ID, "key", key)
	return photo, nil
}

func (s *photoService) ListPhotos(ctx context.Context, bookingID int32) ([]domain.Photo, error) {
	return s.photoRepo.ListByBooking(ctx, bookingID, []domain.PhotoPhase{domain.PhotoPhasePrep, domain.PhotoPhasePickup, domain.PhotoPhaseReturn})
}

// OpenPhoto returns the stored object and its size in bytes.
func (s *photoService) OpenPhoto(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	exists, size, err := s.store.Exists(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, storage.ErrNotFound
	}
	rc, err := s.store.Open(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	return rc, size, nil
}
