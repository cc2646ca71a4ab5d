package ops

import (
	"fmt"

	"rental-ops-backend/internal/domain"
)

// DispatchReadiness is the gate a delivery must pass before a driver leaves the depot.
type DispatchReadiness struct {
	IsReady             bool     `json:"isReady"`
	MissingRequirements []string `json:"missingRequirements,omitempty"`
}

// CheckDispatchReadiness requires an active deposit hold, an assigned vehicle unit
// and enough prep photos. It is independent of the dispatch step's own completion.
func CheckDispatchReadiness(booking *domain.Booking, deposit domain.PaymentStatus, prepPhotoCount, minPrepPhotos int) DispatchReadiness {
	var missing []string

	if !deposit.IsHeld() {
		status := string(deposit)
		if status == "" {
			status = "none"
		}
		missing = append(missing, fmt.Sprintf("Deposit hold is not active (status: %s)", status))
	}
	if !booking.HasAssignedUnit() {
		missing = append(missing, "No vehicle unit (VIN) assigned")
	}
	if prepPhotoCount < minPrepPhotos {
		missing = append(missing, fmt.Sprintf("Prep photos: %d of %d required", prepPhotoCount, minPrepPhotos))
	}

	return DispatchReadiness{IsReady: len(missing) == 0, MissingRequirements: missing}
}
