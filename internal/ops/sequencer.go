package ops

type StepState string

const (
	StepStateComplete StepState = "complete"
	StepStateActive   StepState = "active"
	StepStatePending  StepState = "pending"
)

// StepStatus is the display state of one step in the progress indicator.
type StepStatus struct {
	Status StepState `json:"status"`
	Reason string    `json:"reason"`
}

// GetCurrentStepIndex returns the index of the first incomplete step, or the last
// index when every step before it is complete.
func GetCurrentStepIndex(c StepCompletion, isDelivery bool) int {
	steps := GetOpsSteps(isDelivery)
	for i, s := range steps {
		if !CheckStepComplete(s.ID, c, isDelivery) {
			return i
		}
	}
	return len(steps) - 1
}

// GetStepStatus derives the display status of a step relative to the current index.
// There is no locked state: every step stays navigable.
func GetStepStatus(step StepID, c StepCompletion, currentIndex int, isDelivery bool) StepStatus {
	idx := StepIndex(step, isDelivery)
	if idx < 0 {
		return StepStatus{Status: StepStatePending, Reason: "Not part of this booking's workflow"}
	}

	if step.IsTerminal() && c.Activated {
		return StepStatus{Status: StepStateComplete, Reason: "Rental is active"}
	}

	switch {
	case idx < currentIndex:
		return StepStatus{Status: StepStateComplete, Reason: "Completed"}
	case CheckStepComplete(step, c, isDelivery):
		return StepStatus{Status: StepStateComplete, Reason: "Requirements met"}
	case idx == currentIndex:
		return StepStatus{Status: StepStateActive, Reason: "Current step"}
	default:
		return StepStatus{Status: StepStatePending, Reason: "Waiting on earlier steps"}
	}
}

// ResolveActiveStep picks the step the console opens. Staff may open any step of
// the sequence; an unknown or empty request falls back to the current step.
func ResolveActiveStep(requested StepID, c StepCompletion, isDelivery bool) OpsStep {
	steps := GetOpsSteps(isDelivery)
	if idx := StepIndex(requested, isDelivery); idx >= 0 {
		return steps[idx]
	}
	return steps[GetCurrentStepIndex(c, isDelivery)]
}
