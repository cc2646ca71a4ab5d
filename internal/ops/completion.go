package ops

import (
	"fmt"
	"strings"

	"rental-ops-backend/internal/domain"
)

type CheckInCompletion struct {
	GovIDVerified     bool `json:"govIdVerified"`
	LicenseOnFile     bool `json:"licenseOnFile"`
	NameMatches       bool `json:"nameMatches"`
	LicenseNotExpired bool `json:"licenseNotExpired"`
	AgeVerified       bool `json:"ageVerified"`
}

type PaymentCompletion struct {
	PaymentComplete  bool `json:"paymentComplete"`
	DepositCollected bool `json:"depositCollected"`
}

type AgreementCompletion struct {
	AgreementSigned bool `json:"agreementSigned"`
}

type WalkaroundCompletion struct {
	InspectionComplete   bool `json:"inspectionComplete"`
	CustomerAcknowledged bool `json:"customerAcknowledged"`
}

type PhotosCompletion struct {
	PhotosComplete bool               `json:"photosComplete"`
	Captured       int                `json:"captured"`
	Required       int                `json:"required"`
	Missing        []domain.PhotoType `json:"missing,omitempty"`
}

type PrepCompletion struct {
	VehiclePrepared bool               `json:"vehiclePrepared"`
	PhotosComplete  bool               `json:"photosComplete"`
	ItemsChecked    int                `json:"itemsChecked"`
	ItemsTotal      int                `json:"itemsTotal"`
	PhotosCaptured  int                `json:"photosCaptured"`
	PhotosRequired  int                `json:"photosRequired"`
	MissingPhotos   []domain.PhotoType `json:"missingPhotos,omitempty"`
}

type ReadyLineCompletion struct {
	ChecklistComplete bool `json:"checklistComplete"`
	PhotosComplete    bool `json:"photosComplete"`
	FuelRecorded      bool `json:"fuelRecorded"`
	OdometerRecorded  bool `json:"odometerRecorded"`
	PricingLocked     bool `json:"pricingLocked"`
}

type DispatchCompletion struct {
	DriverAssigned bool              `json:"driverAssigned"`
	Dispatched     bool              `json:"dispatched"`
	Readiness      DispatchReadiness `json:"readiness"`
}

type IntakeCompletion struct {
	Reviewed bool `json:"reviewed"`
}

// StepCompletion is a projection of the collaborator records for one booking.
// It is rebuilt on every read and is never a source of truth.
type StepCompletion struct {
	Intake     IntakeCompletion     `json:"intake"`
	CheckIn    CheckInCompletion    `json:"checkin"`
	Payment    PaymentCompletion    `json:"payment"`
	Agreement  AgreementCompletion  `json:"agreement"`
	Walkaround WalkaroundCompletion `json:"walkaround"`
	Photos     PhotosCompletion     `json:"photos"`
	Prep       PrepCompletion       `json:"prep"`
	ReadyLine  ReadyLineCompletion  `json:"readyLine"`
	Dispatch   DispatchCompletion   `json:"dispatch"`
	// Activated is set once the booking itself has moved to active.
	Activated bool `json:"activated"`
}

// MissingItem is one unmet requirement of a step.
type MissingItem struct {
	Step  StepID `json:"step"`
	Field string `json:"field"`
	Label string `json:"label"`
}

type requirement struct {
	field string
	label string
	met   bool
}

// requirements is the single table of what each step needs.
// Terminal steps have no requirements of their own.
func requirements(step StepID, c StepCompletion) []requirement {
	switch step {
	case StepIntake:
		return []requirement{
			{"intake_reviewed", "Intake reviewed", c.Intake.Reviewed},
		}
	case StepCheckIn:
		return []requirement{
			{"gov_id_verified", "Government ID verified", c.CheckIn.GovIDVerified},
			{"license_on_file", "Driver's license on file", c.CheckIn.LicenseOnFile},
			{"name_matches", "Name matches license", c.CheckIn.NameMatches},
			{"license_not_expired", "License valid through rental", c.CheckIn.LicenseNotExpired},
			{"age_verified", "Minimum age verified", c.CheckIn.AgeVerified},
		}
	case StepPayment:
		return []requirement{
			{"payment_complete", "Payment authorized", c.Payment.PaymentComplete},
			{"deposit_collected", "Security deposit collected", c.Payment.DepositCollected},
		}
	case StepPrep:
		return []requirement{
			{"vehicle_prepared", "Prep checklist complete", c.Prep.VehiclePrepared},
			{"prep_photos_complete", photoLabel("Prep photos captured", c.Prep.MissingPhotos), c.Prep.PhotosComplete},
		}
	case StepReadyLine:
		return []requirement{
			{"checklist_complete", "Prep checklist complete", c.ReadyLine.ChecklistComplete},
			{"prep_photos_complete", photoLabel("Prep photos captured", c.Prep.MissingPhotos), c.ReadyLine.PhotosComplete},
			{"fuel_recorded", "Fuel level recorded", c.ReadyLine.FuelRecorded},
			{"odometer_recorded", "Odometer recorded", c.ReadyLine.OdometerRecorded},
			{"pricing_locked", "Pricing locked", c.ReadyLine.PricingLocked},
		}
	case StepAgreement:
		return []requirement{
			{"agreement_signed", "Rental agreement signed", c.Agreement.AgreementSigned},
		}
	case StepWalkaround:
		// Customer acknowledgement is tracked but staff can complete the walkaround alone.
		return []requirement{
			{"inspection_complete", "Walkaround inspection complete", c.Walkaround.InspectionComplete},
		}
	case StepPhotos:
		return []requirement{
			{"photos_complete", photoLabel("Pickup photos captured", c.Photos.Missing), c.Photos.PhotosComplete},
		}
	case StepDispatch:
		return []requirement{
			{"driver_assigned", "Driver assigned", c.Dispatch.DriverAssigned},
			{"dispatched", "Vehicle dispatched", c.Dispatch.Dispatched},
		}
	}
	return nil
}

func photoLabel(base string, missing []domain.PhotoType) string {
	if len(missing) == 0 {
		return base
	}
	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = string(m)
	}
	return fmt.Sprintf("%s (missing: %s)", base, strings.Join(names, ", "))
}

// CheckStepComplete reports whether a step's own requirements are satisfied.
// Terminal steps are never complete here: they are satisfied only by the booking
// moving to active. Steps outside the mode's sequence are never complete.
func CheckStepComplete(step StepID, c StepCompletion, isDelivery bool) bool {
	if step.IsTerminal() || StepIndex(step, isDelivery) < 0 {
		return false
	}
	reqs := requirements(step, c)
	if len(reqs) == 0 {
		return false
	}
	for _, r := range reqs {
		if !r.met {
			return false
		}
	}
	return true
}

// MissingItems lists what is still outstanding for a step. For the terminal step
// that is everything unmet across the earlier steps of the sequence.
func MissingItems(step StepID, c StepCompletion, isDelivery bool) []MissingItem {
	idx := StepIndex(step, isDelivery)
	if idx < 0 {
		return nil
	}
	if !step.IsTerminal() {
		return unmet(step, c)
	}
	var items []MissingItem
	for _, s := range GetOpsSteps(isDelivery)[:idx] {
		items = append(items, unmet(s.ID, c)...)
	}
	return items
}

func unmet(step StepID, c StepCompletion) []MissingItem {
	var items []MissingItem
	for _, r := range requirements(step, c) {
		if !r.met {
			items = append(items, MissingItem{Step: step, Field: r.field, Label: r.label})
		}
	}
	return items
}
