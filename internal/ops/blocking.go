package ops

// BlockingIssue is a precondition owned by another step that no local action on
// the current step can satisfy. It disables the step's primary action.
type BlockingIssue struct {
	Step    StepID `json:"step"`
	Message string `json:"message"`
}

const paymentBlockMessage = "Payment must be authorized before the vehicle is handed over"

// GetBlockingIssues returns the hard blockers for a step.
func GetBlockingIssues(step StepID, c StepCompletion, isDelivery bool) []BlockingIssue {
	var issues []BlockingIssue

	switch {
	case step.IsTerminal():
		if !c.Payment.PaymentComplete {
			issues = append(issues, BlockingIssue{Step: StepPayment, Message: paymentBlockMessage})
		}
	case step == StepDispatch && isDelivery:
		for _, missing := range c.Dispatch.Readiness.MissingRequirements {
			issues = append(issues, BlockingIssue{Step: StepDispatch, Message: missing})
		}
	}

	return issues
}

// PrimaryActionEnabled reports whether the step's main button can be pressed.
// Blocking issues always disable it. Otherwise only the check-in and terminal
// actions wait on requirements; other steps can be saved at any time.
func PrimaryActionEnabled(step StepID, c StepCompletion, isDelivery bool) bool {
	idx := StepIndex(step, isDelivery)
	if idx < 0 {
		return false
	}
	if len(GetBlockingIssues(step, c, isDelivery)) > 0 {
		return false
	}

	switch {
	case step.IsTerminal():
		if c.Activated {
			return false
		}
		for _, s := range GetOpsSteps(isDelivery)[:idx] {
			if !CheckStepComplete(s.ID, c, isDelivery) {
				return false
			}
		}
		return true
	case step == StepCheckIn:
		return CheckStepComplete(StepCheckIn, c, isDelivery)
	}
	return true
}
