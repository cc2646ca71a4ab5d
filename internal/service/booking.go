package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/repository"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
}

func NewBookingService(bookingRepo repository.BookingRepository) BookingService {
	return &bookingService{bookingRepo: bookingRepo}
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	return b, err
}

// SetBookingStatus moves a booking along its lifecycle. Activation is excluded:
// it only happens through the workflow's terminal step.
func (s *bookingService) SetBookingStatus(ctx context.Context, staffID, id int32, to domain.BookingStatus) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.SetBookingStatus", "staffID", staffID, "bookingID", id, "to", to)

	b, err := s.GetBooking(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("bookingService.SetBookingStatus", err, "bookingID", id)
		return nil, err
	}
	if to == domain.BookingStatusActive || !domain.CanTransitionBooking(b.Status, to) {
		err := fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, to)
		logger.ExitMethodWithError("bookingService.SetBookingStatus", err, "bookingID", id)
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, to); err != nil {
		logger.ExitMethodWithError("bookingService.SetBookingStatus", err, "bookingID", id)
		return nil, err
	}
	b.Status = to

	logger.ExitMethod("bookingService.SetBookingStatus", "bookingID", id, "status", to)
	return b, nil
}

func (s *bookingService) ListUpcomingPickups(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	return s.bookingRepo.ListStartingBetween(ctx, domain.BookingStatusConfirmed, from, to)
}

func (s *bookingService) ListModifications(ctx context.Context, bookingID int32) ([]domain.BookingModification, error) {
	if _, err := s.GetBooking(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListModifications(ctx, bookingID)
}
