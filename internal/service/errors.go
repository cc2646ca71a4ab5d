package service

import (
	"errors"
	"fmt"
	"strings"

	"rental-ops-backend/internal/ops"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrWorkflowBlocked    = errors.New("workflow is blocked")
	ErrStepsIncomplete    = errors.New("earlier steps are incomplete")
	ErrInvalidTransition  = errors.New("invalid booking status transition")
	ErrNotDelivery        = errors.New("booking is not a delivery")
	ErrInvalidDriver      = errors.New("driver must be delivery staff")
	ErrInvalidPhoto       = errors.New("invalid photo phase, type or content type")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// BlockedError lists the hard blockers that stopped an action.
type BlockedError struct {
	Issues []ops.BlockingIssue
}

func (e *BlockedError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Message
	}
	return fmt.Sprintf("%s: %s", ErrWorkflowBlocked, strings.Join(msgs, "; "))
}

func (e *BlockedError) Unwrap() error {
	return ErrWorkflowBlocked
}

// IncompleteError lists the requirements still outstanding before an action.
type IncompleteError struct {
	Missing []ops.MissingItem
}

func (e *IncompleteError) Error() string {
	labels := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		labels[i] = m.Label
	}
	return fmt.Sprintf("%s: %s", ErrStepsIncomplete, strings.Join(labels, "; "))
}

func (e *IncompleteError) Unwrap() error {
	return ErrStepsIncomplete
}
