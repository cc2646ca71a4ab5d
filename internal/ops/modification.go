package ops

import (
	"errors"
	"math"
	"strings"
	"time"

	"rental-ops-backend/internal/domain"
)

var (
	ErrReasonRequired = errors.New("a reason is required to modify a booking")
	ErrEndBeforeStart = errors.New("new end date must be after the rental start")
	ErrBookingClosed  = errors.New("booking is completed or cancelled")
)

// ModificationPreview is the informational price change for a proposed end date.
type ModificationPreview struct {
	OriginalDays         int32 `json:"originalDays"`
	NewDays              int32 `json:"newDays"`
	OriginalTotalCents   int32 `json:"originalTotalCents"`
	NewTotalCents        int32 `json:"newTotalCents"`
	PriceDifferenceCents int32 `json:"priceDifferenceCents"`
	AddedDays            int32 `json:"addedDays"`
}

// RentalDays counts started 24-hour periods between start and end, minimum one.
func RentalDays(start, end time.Time) int32 {
	days := int32(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// PreviewModification recomputes the rental length and total for a new end date.
// Fixed fees do not move with the dates.
func PreviewModification(booking *domain.Booking, newEnd time.Time) ModificationPreview {
	originalDays := booking.TotalDays
	if originalDays <= 0 {
		originalDays = RentalDays(booking.StartAt, booking.EndAt)
	}
	newDays := RentalDays(booking.StartAt, newEnd)
	newTotal := booking.DailyRateCents*newDays + booking.FixedFeesCents()

	return ModificationPreview{
		OriginalDays:         originalDays,
		NewDays:              newDays,
		OriginalTotalCents:   booking.TotalAmountCents,
		NewTotalCents:        newTotal,
		PriceDifferenceCents: newTotal - booking.TotalAmountCents,
		AddedDays:            newDays - originalDays,
	}
}

// ValidateModification checks a confirmation request before anything is persisted.
func ValidateModification(booking *domain.Booking, newEnd time.Time, reason string) error {
	if booking.Status.IsTerminal() {
		return ErrBookingClosed
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	if !newEnd.After(booking.StartAt) {
		return ErrEndBeforeStart
	}
	return nil
}
