package ops

import (
	"fmt"

	"rental-ops-backend/internal/domain"
)

type NextAction string

const (
	ActionNone          NextAction = "none"
	ActionAssignVehicle NextAction = "assign_vehicle"
	ActionPrep          NextAction = "prep"
	ActionPhotos        NextAction = "photos"
	ActionCheckIn       NextAction = "checkin"
	ActionPayment       NextAction = "payment"
	ActionAgreement     NextAction = "agreement"
	ActionWalkaround    NextAction = "walkaround"
	ActionActivate      NextAction = "activate"
	ActionConfirm       NextAction = "confirm_booking"
)

type Variant string

const (
	VariantDefault Variant = "default"
	VariantWarning Variant = "warning"
	VariantSuccess Variant = "success"
)

// NextStepInput is the flattened view the drawer summary works from.
type NextStepInput struct {
	IsDelivery             bool
	VehicleAssigned        bool
	PrepComplete           bool
	PrepCompletedItems     int
	PrepTotalItems         int
	PhotosComplete         bool
	PhotosCaptured         int
	PhotosRequired         int
	CheckedIn              bool
	PaymentComplete        bool
	DepositCollected       bool
	AgreementSigned        bool
	WalkaroundComplete     bool
	WalkaroundAcknowledged bool
	BookingStatus          domain.BookingStatus
}

// NextStep is the single recommended action. Action and Step tell the caller
// what to bind the button to.
type NextStep struct {
	Action      NextAction `json:"action"`
	Step        StepID     `json:"step,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ButtonLabel string     `json:"buttonLabel"`
	Variant     Variant    `json:"variant"`
	IsComplete  bool       `json:"isComplete"`
}

type BadgeStatus string

const (
	BadgeComplete BadgeStatus = "complete"
	BadgePending  BadgeStatus = "pending"
)

type Badge struct {
	Label  string      `json:"label"`
	Status BadgeStatus `json:"status"`
}

// GetNextStep walks a fixed priority chain and returns the first unmet item:
// vehicle, prep, photos, check-in, payment, agreement, walkaround, then
// confirmation and activation.
// The order is deliberate and must not change.
func GetNextStep(in NextStepInput) NextStep {
	switch in.BookingStatus {
	case domain.BookingStatusActive, domain.BookingStatusCompleted:
		return NextStep{
			Action:      ActionNone,
			Title:       "Rental is active",
			Description: "Nothing left to do at pickup",
			Variant:     VariantSuccess,
			IsComplete:  true,
		}
	case domain.BookingStatusCancelled:
		return NextStep{
			Action:      ActionNone,
			Title:       "Booking cancelled",
			Description: "This booking was cancelled and cannot be handed over",
			Variant:     VariantWarning,
		}
	}

	prepStep, terminal := StepPrep, StepHandover
	if in.IsDelivery {
		prepStep, terminal = StepReadyLine, StepOpsActivate
	}

	switch {
	case !in.VehicleAssigned:
		return NextStep{
			Action:      ActionAssignVehicle,
			Step:        prepStep,
			Title:       "Assign a vehicle",
			Description: "No vehicle unit is assigned to this booking yet",
			ButtonLabel: "Assign Vehicle",
			Variant:     VariantWarning,
		}
	case !in.PrepComplete:
		return NextStep{
			Action:      ActionPrep,
			Step:        prepStep,
			Title:       "Prep the vehicle",
			Description: fmt.Sprintf("%d of %d checklist items done", in.PrepCompletedItems, in.PrepTotalItems),
			ButtonLabel: "Open Prep Checklist",
			Variant:     VariantDefault,
		}
	case !in.PhotosComplete:
		return NextStep{
			Action:      ActionPhotos,
			Step:        prepStep,
			Title:       "Capture vehicle photos",
			Description: fmt.Sprintf("%d of %d required photos captured", in.PhotosCaptured, in.PhotosRequired),
			ButtonLabel: "Take Photos",
			Variant:     VariantDefault,
		}
	case !in.CheckedIn:
		return NextStep{
			Action:      ActionCheckIn,
			Step:        StepCheckIn,
			Title:       "Check in the customer",
			Description: "Verify ID, license and age",
			ButtonLabel: "Start Check-In",
			Variant:     VariantDefault,
		}
	case !in.PaymentComplete || !in.DepositCollected:
		return NextStep{
			Action:      ActionPayment,
			Step:        StepPayment,
			Title:       "Collect payment and deposit",
			Description: "Payment authorization and deposit hold are required before handover",
			ButtonLabel: "Collect Payment",
			Variant:     VariantWarning,
		}
	case !in.AgreementSigned:
		return NextStep{
			Action:      ActionAgreement,
			Step:        StepAgreement,
			Title:       "Get the agreement signed",
			Description: "The customer has not signed the rental agreement",
			ButtonLabel: "Open Agreement",
			Variant:     VariantDefault,
		}
	case !in.WalkaroundComplete:
		return NextStep{
			Action:      ActionWalkaround,
			Step:        StepWalkaround,
			Title:       "Do the walkaround",
			Description: "Inspect the vehicle with the customer",
			ButtonLabel: "Start Walkaround",
			Variant:     VariantDefault,
		}
	}

	// Activation only accepts confirmed bookings.
	if in.BookingStatus != domain.BookingStatusConfirmed {
		return NextStep{
			Action:      ActionConfirm,
			Step:        terminal,
			Title:       "Confirm the booking first",
			Description: fmt.Sprintf("Pickup requirements are met but the booking is still %s", in.BookingStatus),
			ButtonLabel: "Confirm Booking",
			Variant:     VariantWarning,
		}
	}

	return NextStep{
		Action:      ActionActivate,
		Step:        terminal,
		Title:       "Ready to activate",
		Description: "All pickup requirements are met",
		ButtonLabel: "Activate Rental",
		Variant:     VariantSuccess,
		IsComplete:  true,
	}
}

// GetReadinessBadges returns the short status list shown above the workflow.
func GetReadinessBadges(in NextStepInput) []Badge {
	badge := func(label string, done bool) Badge {
		if done {
			return Badge{Label: label, Status: BadgeComplete}
		}
		return Badge{Label: label, Status: BadgePending}
	}
	return []Badge{
		badge("Vehicle", in.VehicleAssigned),
		badge("Prep", in.PrepComplete),
		badge("Photos", in.PhotosComplete),
		badge("Check-In", in.CheckedIn),
		badge("Payment", in.PaymentComplete && in.DepositCollected),
		badge("Agreement", in.AgreementSigned),
		badge("Walkaround", in.WalkaroundComplete),
	}
}

// NextStepInputFromCompletion flattens the projection for the aggregator.
func NextStepInputFromCompletion(c StepCompletion, booking *domain.Booking) NextStepInput {
	isDelivery := booking.IsDelivery()
	return NextStepInput{
		IsDelivery:             isDelivery,
		VehicleAssigned:        booking.HasAssignedUnit(),
		PrepComplete:           c.Prep.VehiclePrepared,
		PrepCompletedItems:     c.Prep.ItemsChecked,
		PrepTotalItems:         c.Prep.ItemsTotal,
		PhotosComplete:         c.Prep.PhotosComplete,
		PhotosCaptured:         c.Prep.PhotosCaptured,
		PhotosRequired:         c.Prep.PhotosRequired,
		CheckedIn:              CheckStepComplete(StepCheckIn, c, isDelivery),
		PaymentComplete:        c.Payment.PaymentComplete,
		DepositCollected:       c.Payment.DepositCollected,
		AgreementSigned:        c.Agreement.AgreementSigned,
		WalkaroundComplete:     c.Walkaround.InspectionComplete,
		WalkaroundAcknowledged: c.Walkaround.CustomerAcknowledged,
		BookingStatus:          booking.Status,
	}
}
