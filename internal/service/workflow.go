package service

import (
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/ops"
)

// StepView is one step of the progress indicator with everything the console
// needs to render it.
type StepView struct {
	ops.OpsStep
	Status               ops.StepStatus      `json:"status"`
	Complete             bool                `json:"complete"`
	MissingItems         []ops.MissingItem   `json:"missingItems,omitempty"`
	BlockingIssues       []ops.BlockingIssue `json:"blockingIssues,omitempty"`
	PrimaryActionEnabled bool                `json:"primaryActionEnabled"`
}

type Workflow struct {
	Booking           *domain.Booking         `json:"booking"`
	IsDelivery        bool                    `json:"isDelivery"`
	Completion        ops.StepCompletion      `json:"completion"`
	Steps             []StepView              `json:"steps"`
	CurrentIndex      int                     `json:"currentIndex"`
	ActiveStep        ops.OpsStep             `json:"activeStep"`
	NextStep          ops.NextStep            `json:"nextStep"`
	Badges            []ops.Badge             `json:"badges"`
	CheckIn           []ops.CheckInValidation `json:"checkinValidation"`
	DispatchReadiness *ops.DispatchReadiness  `json:"dispatchReadiness,omitempty"`
}

// buildWorkflow assembles the read model. Navigation (ActiveStep) and progress
// (CurrentIndex) are derived independently from the same projection.
func buildWorkflow(r ops.Records, requested ops.StepID, now time.Time, policy ops.Policy) *Workflow {
	b := r.Booking
	isDelivery := b.IsDelivery()
	c := ops.BuildStepCompletion(r, now, policy)
	current := ops.GetCurrentStepIndex(c, isDelivery)

	steps := ops.GetOpsSteps(isDelivery)
	views := make([]StepView, len(steps))
	for i, s := range steps {
		views[i] = StepView{
			OpsStep:              s,
			Status:               ops.GetStepStatus(s.ID, c, current, isDelivery),
			Complete:             ops.CheckStepComplete(s.ID, c, isDelivery),
			MissingItems:         ops.MissingItems(s.ID, c, isDelivery),
			BlockingIssues:       ops.GetBlockingIssues(s.ID, c, isDelivery),
			PrimaryActionEnabled: ops.PrimaryActionEnabled(s.ID, c, isDelivery),
		}
	}

	in := ops.NextStepInputFromCompletion(c, b)
	wf := &Workflow{
		Booking:      b,
		IsDelivery:   isDelivery,
		Completion:   c,
		Steps:        views,
		CurrentIndex: current,
		ActiveStep:   ops.ResolveActiveStep(requested, c, isDelivery),
		NextStep:     ops.GetNextStep(in),
		Badges:       ops.GetReadinessBadges(in),
		CheckIn:      ops.BuildCheckInValidation(r.CheckIn, b, now, policy),
	}
	if isDelivery {
		readiness := c.Dispatch.Readiness
		wf.DispatchReadiness = &readiness
	}
	return wf
}

// terminalStep returns the activation step of the booking's sequence.
func terminalStep(isDelivery bool) ops.StepID {
	steps := ops.GetOpsSteps(isDelivery)
	return steps[len(steps)-1].ID
}
