// Package ops holds the workflow rules of the operations console: which steps a
// booking goes through, when each step counts as complete, what blocks progress
// and what staff should do next. Everything here is a pure function over plain
// records; persistence and side effects live in the service layer.
package ops

type StepID string

const (
	StepIntake      StepID = "intake"
	StepCheckIn     StepID = "checkin"
	StepPrep        StepID = "prep"
	StepReadyLine   StepID = "ready_line"
	StepPayment     StepID = "payment"
	StepAgreement   StepID = "agreement"
	StepWalkaround  StepID = "walkaround"
	StepPhotos      StepID = "photos"
	StepDispatch    StepID = "dispatch"
	StepOpsActivate StepID = "ops_activate"
	StepHandover    StepID = "handover"
)

// OpsStep is the static descriptor of one workflow step.
type OpsStep struct {
	ID          StepID `json:"id"`
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var counterSteps = []OpsStep{
	{ID: StepCheckIn, Number: 1, Title: "Customer Check-In", Description: "Verify government ID, license and age"},
	{ID: StepPrep, Number: 2, Title: "Vehicle Prep", Description: "Complete the prep checklist and prep photos"},
	{ID: StepPayment, Number: 3, Title: "Payment & Deposit", Description: "Authorize payment and security deposit"},
	{ID: StepAgreement, Number: 4, Title: "Rental Agreement", Description: "Customer signs the rental agreement"},
	{ID: StepWalkaround, Number: 5, Title: "Walkaround", Description: "Inspect the vehicle with the customer"},
	{ID: StepPhotos, Number: 6, Title: "Pickup Photos", Description: "Capture the required pickup photos"},
	{ID: StepHandover, Number: 7, Title: "Handover", Description: "Hand over the keys and activate the rental"},
}

var deliverySteps = []OpsStep{
	{ID: StepIntake, Number: 1, Title: "Intake Review", Description: "Review the delivery booking details"},
	{ID: StepReadyLine, Number: 2, Title: "Ready Line", Description: "Checklist, photos, fuel, odometer and pricing lock"},
	{ID: StepPayment, Number: 3, Title: "Payment & Deposit", Description: "Authorize payment and security deposit"},
	{ID: StepDispatch, Number: 4, Title: "Dispatch", Description: "Assign a driver and send the vehicle out"},
	{ID: StepCheckIn, Number: 5, Title: "Customer Check-In", Description: "Verify government ID, license and age"},
	{ID: StepAgreement, Number: 6, Title: "Rental Agreement", Description: "Customer signs the rental agreement"},
	{ID: StepWalkaround, Number: 7, Title: "Walkaround", Description: "Inspect the vehicle with the customer"},
	{ID: StepPhotos, Number: 8, Title: "Delivery Photos", Description: "Capture the required photos at drop-off"},
	{ID: StepOpsActivate, Number: 9, Title: "Activate Rental", Description: "Confirm delivery and activate the rental"},
}

// GetOpsSteps returns the ordered step sequence for the booking mode.
func GetOpsSteps(isDelivery bool) []OpsStep {
	src := counterSteps
	if isDelivery {
		src = deliverySteps
	}
	steps := make([]OpsStep, len(src))
	copy(steps, src)
	return steps
}

// StepIndex returns the position of a step in the mode's sequence, or -1.
func StepIndex(id StepID, isDelivery bool) int {
	src := counterSteps
	if isDelivery {
		src = deliverySteps
	}
	for i, s := range src {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether the step is the final activation action of a sequence.
func (id StepID) IsTerminal() bool {
	return id == StepHandover || id == StepOpsActivate
}

// IsValid reports whether id names a known step in either mode.
func (id StepID) IsValid() bool {
	return StepIndex(id, false) >= 0 || StepIndex(id, true) >= 0
}
