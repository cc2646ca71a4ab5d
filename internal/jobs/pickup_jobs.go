package jobs

import (
	"context"
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/service"
)

// FlagUnreadyPickups alerts the ops desk about confirmed bookings starting within
// the lookahead window whose handover is still blocked or incomplete.
func (jr *JobRunner) FlagUnreadyPickups() {
	jr.runWithRecovery("FlagUnreadyPickups", func() {
		ctx := context.Background()
		log := logger.WithJob("FlagUnreadyPickups")

		from := jr.now()
		to := from.Add(time.Duration(jr.config.Scheduler.LookaheadHours) * time.Hour)

		bookings, err := jr.services.Bookings.ListUpcomingPickups(ctx, from, to)
		if err != nil {
			log.Error("Failed to list upcoming pickups", "error", err)
			return
		}

		flagged := 0
		for i := range bookings {
			b := &bookings[i]
			wf, err := jr.services.Ops.GetWorkflow(ctx, b.ID, "")
			if err != nil {
				log.Error("Failed to load workflow", "booking_id", b.ID, "error", err)
				continue
			}

			issues := outstandingHandoverItems(wf)
			if len(issues) == 0 {
				continue
			}
			if err := jr.services.Email.SendUnreadyPickupAlert(ctx, b, issues); err != nil {
				log.Error("Failed to send unready pickup alert", "booking_id", b.ID, "error", err)
				continue
			}
			flagged++
			log.Debug("Flagged unready pickup", "booking_id", b.ID, "start_at", b.StartAt, "issues", len(issues))
		}

		log.Info("Checked upcoming pickups", "checked", len(bookings), "flagged", flagged)
	})
}

// outstandingHandoverItems lists what still stands between the booking and
// activation: hard blockers first, then unmet requirements.
func outstandingHandoverItems(wf *service.Workflow) []string {
	if wf.Booking != nil && wf.Booking.Status != domain.BookingStatusConfirmed {
		return nil
	}
	if len(wf.Steps) == 0 {
		return nil
	}
	terminal := wf.Steps[len(wf.Steps)-1]

	var out []string
	for _, issue := range terminal.BlockingIssues {
		out = append(out, issue.Message)
	}
	for _, item := range terminal.MissingItems {
		out = append(out, item.Label)
	}
	return out
}
