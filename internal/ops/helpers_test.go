package ops

import (
	"time"

	"rental-ops-backend/internal/domain"
)

// stepSetters marks one step's own requirements as met.
var stepSetters = map[StepID]func(c *StepCompletion){
	StepIntake: func(c *StepCompletion) { c.Intake.Reviewed = true },
	StepCheckIn: func(c *StepCompletion) {
		c.CheckIn = CheckInCompletion{true, true, true, true, true}
	},
	StepPrep: func(c *StepCompletion) {
		c.Prep.VehiclePrepared = true
		c.Prep.PhotosComplete = true
	},
	StepReadyLine: func(c *StepCompletion) {
		c.ReadyLine = ReadyLineCompletion{true, true, true, true, true}
	},
	StepPayment: func(c *StepCompletion) {
		c.Payment = PaymentCompletion{PaymentComplete: true, DepositCollected: true}
	},
	StepAgreement:  func(c *StepCompletion) { c.Agreement.AgreementSigned = true },
	StepWalkaround: func(c *StepCompletion) { c.Walkaround.InspectionComplete = true },
	StepPhotos:     func(c *StepCompletion) { c.Photos.PhotosComplete = true },
	StepDispatch: func(c *StepCompletion) {
		c.Dispatch.DriverAssigned = true
		c.Dispatch.Dispatched = true
	},
}

// stepFields lists every required field of each non-terminal step.
var stepFields = map[StepID][]func(c *StepCompletion) *bool{
	StepIntake: {
		func(c *StepCompletion) *bool { return &c.Intake.Reviewed },
	},
	StepCheckIn: {
		func(c *StepCompletion) *bool { return &c.CheckIn.GovIDVerified },
		func(c *StepCompletion) *bool { return &c.CheckIn.LicenseOnFile },
		func(c *StepCompletion) *bool { return &c.CheckIn.NameMatches },
		func(c *StepCompletion) *bool { return &c.CheckIn.LicenseNotExpired },
		func(c *StepCompletion) *bool { return &c.CheckIn.AgeVerified },
	},
	StepPrep: {
		func(c *StepCompletion) *bool { return &c.Prep.VehiclePrepared },
		func(c *StepCompletion) *bool { return &c.Prep.PhotosComplete },
	},
	StepReadyLine: {
		func(c *StepCompletion) *bool { return &c.ReadyLine.ChecklistComplete },
		func(c *StepCompletion) *bool { return &c.ReadyLine.PhotosComplete },
		func(c *StepCompletion) *bool { return &c.ReadyLine.FuelRecorded },
		func(c *StepCompletion) *bool { return &c.ReadyLine.OdometerRecorded },
		func(c *StepCompletion) *bool { return &c.ReadyLine.PricingLocked },
	},
	StepPayment: {
		func(c *StepCompletion) *bool { return &c.Payment.PaymentComplete },
		func(c *StepCompletion) *bool { return &c.Payment.DepositCollected },
	},
	StepAgreement: {
		func(c *StepCompletion) *bool { return &c.Agreement.AgreementSigned },
	},
	StepWalkaround: {
		func(c *StepCompletion) *bool { return &c.Walkaround.InspectionComplete },
	},
	StepPhotos: {
		func(c *StepCompletion) *bool { return &c.Photos.PhotosComplete },
	},
	StepDispatch: {
		func(c *StepCompletion) *bool { return &c.Dispatch.DriverAssigned },
		func(c *StepCompletion) *bool { return &c.Dispatch.Dispatched },
	},
}

// allFlags lists every boolean of the projection.
var allFlags = []func(c *StepCompletion) *bool{
	func(c *StepCompletion) *bool { return &c.Intake.Reviewed },
	func(c *StepCompletion) *bool { return &c.CheckIn.GovIDVerified },
	func(c *StepCompletion) *bool { return &c.CheckIn.LicenseOnFile },
	func(c *StepCompletion) *bool { return &c.CheckIn.NameMatches },
	func(c *StepCompletion) *bool { return &c.CheckIn.LicenseNotExpired },
	func(c *StepCompletion) *bool { return &c.CheckIn.AgeVerified },
	func(c *StepCompletion) *bool { return &c.Payment.PaymentComplete },
	func(c *StepCompletion) *bool { return &c.Payment.DepositCollected },
	func(c *StepCompletion) *bool { return &c.Agreement.AgreementSigned },
	func(c *StepCompletion) *bool { return &c.Walkaround.InspectionComplete },
	func(c *StepCompletion) *bool { return &c.Walkaround.CustomerAcknowledged },
	func(c *StepCompletion) *bool { return &c.Photos.PhotosComplete },
	func(c *StepCompletion) *bool { return &c.Prep.VehiclePrepared },
	func(c *StepCompletion) *bool { return &c.Prep.PhotosComplete },
	func(c *StepCompletion) *bool { return &c.ReadyLine.ChecklistComplete },
	func(c *StepCompletion) *bool { return &c.ReadyLine.PhotosComplete },
	func(c *StepCompletion) *bool { return &c.ReadyLine.FuelRecorded },
	func(c *StepCompletion) *bool { return &c.ReadyLine.OdometerRecorded },
	func(c *StepCompletion) *bool { return &c.ReadyLine.PricingLocked },
	func(c *StepCompletion) *bool { return &c.Dispatch.DriverAssigned },
	func(c *StepCompletion) *bool { return &c.Dispatch.Dispatched },
	func(c *StepCompletion) *bool { return &c.Dispatch.Readiness.IsReady },
	func(c *StepCompletion) *bool { return &c.Activated },
}

// completeThrough returns a projection with every non-terminal step of the mode done.
func completeThrough(isDelivery bool) StepCompletion {
	var c StepCompletion
	for _, s := range GetOpsSteps(isDelivery) {
		if set, ok := stepSetters[s.ID]; ok {
			set(&c)
		}
	}
	return c
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func counterBooking() *domain.Booking {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:               1,
		Status:           domain.BookingStatusConfirmed,
		StartAt:          start,
		EndAt:            start.Add(72 * time.Hour),
		TotalDays:        3,
		DailyRateCents:   5000,
		SubtotalCents:    15000,
		TotalAmountCents: 15000,
		AssignedUnitVIN:  ptr("1HGCM82633A004352"),
	}
}

func deliveryBooking() *domain.Booking {
	b := counterBooking()
	b.DeliveryAddress = "1 Harbor Way"
	return b
}
