package ops

import (
	"time"

	"rental-ops-backend/internal/domain"
)

// Policy carries the tunable workflow thresholds.
type Policy struct {
	MinimumAge         int
	OnTime             TimingWindow
	MinPrepPhotos      int
	RequiredPhotoTypes []domain.PhotoType
}

// DefaultPolicy returns the thresholds used when configuration leaves them unset.
func DefaultPolicy() Policy {
	return Policy{
		MinimumAge:    21,
		OnTime:        TimingWindow{Before: 15 * time.Minute, After: 15 * time.Minute},
		MinPrepPhotos: 4,
		RequiredPhotoTypes: []domain.PhotoType{
			domain.PhotoTypeFront,
			domain.PhotoTypeRear,
			domain.PhotoTypeDriverSide,
			domain.PhotoTypePassengerSide,
			domain.PhotoTypeOdometer,
			domain.PhotoTypeFuelGauge,
		},
	}
}

// Records are the collaborator reads a projection is built from. Only Booking is
// required; a missing record simply counts as nothing done.
type Records struct {
	Booking      *domain.Booking
	CheckIn      *domain.CheckInRecord
	Deposit      *domain.DepositHold
	Agreement    *domain.Agreement
	Walkaround   *domain.Walkaround
	Prep         *domain.VehiclePrep
	PrepPhotos   []domain.PhotoType
	PickupPhotos []domain.PhotoType
	Delivery     *domain.DeliveryTask
}

// PaymentFlags maps the processor status onto the payment step booleans.
func PaymentFlags(status domain.PaymentStatus) PaymentCompletion {
	held := status.IsHeld()
	return PaymentCompletion{PaymentComplete: held, DepositCollected: held}
}

// AgreementSigned reports whether the agreement status counts as signed.
func AgreementSigned(status domain.AgreementStatus) bool {
	return status == domain.AgreementStatusSigned || status == domain.AgreementStatusConfirmed
}

// PhotoSetComplete compares captured tags with the required list and returns
// how many required tags are covered and which are missing.
func PhotoSetComplete(captured, required []domain.PhotoType) (bool, int, []domain.PhotoType) {
	have := make(map[domain.PhotoType]bool, len(captured))
	for _, t := range captured {
		have[t] = true
	}
	var missing []domain.PhotoType
	covered := 0
	for _, t := range required {
		if have[t] {
			covered++
		} else {
			missing = append(missing, t)
		}
	}
	return len(missing) == 0, covered, missing
}

// distinctPhotoTypes counts tags once each; retakes are stored as extra rows.
func distinctPhotoTypes(tags []domain.PhotoType) int {
	seen := make(map[domain.PhotoType]struct{}, len(tags))
	for _, t := range tags {
		seen[t] = struct{}{}
	}
	return len(seen)
}

// BuildStepCompletion derives the step projection from the collaborator records.
func BuildStepCompletion(r Records, now time.Time, policy Policy) StepCompletion {
	b := r.Booking
	var c StepCompletion

	c.Intake.Reviewed = b.IntakeReviewedAt != nil
	c.CheckIn = checkInCompletion(BuildCheckInValidation(r.CheckIn, b, now, policy))

	var depositStatus domain.PaymentStatus
	if r.Deposit != nil {
		depositStatus = r.Deposit.Status
	}
	c.Payment = PaymentFlags(depositStatus)

	if r.Agreement != nil {
		c.Agreement.AgreementSigned = AgreementSigned(r.Agreement.Status)
	}
	if r.Walkaround != nil {
		c.Walkaround = WalkaroundCompletion{
			InspectionComplete:   r.Walkaround.InspectionComplete,
			CustomerAcknowledged: r.Walkaround.CustomerAcknowledged,
		}
	}

	prepPhotosDone, prepCovered, prepMissing := PhotoSetComplete(r.PrepPhotos, policy.RequiredPhotoTypes)
	c.Prep = PrepCompletion{
		VehiclePrepared: r.Prep.AllComplete(),
		PhotosComplete:  prepPhotosDone,
		ItemsChecked:    r.Prep.CheckedCount(),
		PhotosCaptured:  prepCovered,
		PhotosRequired:  len(policy.RequiredPhotoTypes),
		MissingPhotos:   prepMissing,
	}
	if r.Prep != nil {
		c.Prep.ItemsTotal = len(r.Prep.Items)
		c.ReadyLine = ReadyLineCompletion{
			FuelRecorded:     r.Prep.FuelLevelEighths != nil,
			OdometerRecorded: r.Prep.OdometerMiles != nil,
			PricingLocked:    r.Prep.PricingLocked,
		}
	}
	c.ReadyLine.ChecklistComplete = c.Prep.VehiclePrepared
	c.ReadyLine.PhotosComplete = c.Prep.PhotosComplete

	pickupDone, pickupCovered, pickupMissing := PhotoSetComplete(r.PickupPhotos, policy.RequiredPhotoTypes)
	c.Photos = PhotosCompletion{
		PhotosComplete: pickupDone,
		Captured:       pickupCovered,
		Required:       len(policy.RequiredPhotoTypes),
		Missing:        pickupMissing,
	}

	c.Dispatch = DispatchCompletion{
		DriverAssigned: b.AssignedDriverID != nil || (r.Delivery != nil && r.Delivery.DriverID != nil),
		Dispatched:     r.Delivery.IsDispatched(),
		Readiness:      CheckDispatchReadiness(b, depositStatus, distinctPhotoTypes(r.PrepPhotos), policy.MinPrepPhotos),
	}

	c.Activated = b.Status == domain.BookingStatusActive || b.Status == domain.BookingStatusCompleted
	return c
}
