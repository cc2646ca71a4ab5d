package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/ops"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

type opsFixture struct {
	bookings    *MockBookingRepo
	checkIns    *MockCheckInRepo
	payments    *MockPaymentRepo
	agreements  *MockAgreementRepo
	walkarounds *MockWalkaroundRepo
	photos      *MockPhotoRepo
	preps       *MockPrepRepo
	dispatches  *MockDispatchRepo
	staff       *MockStaffRepo
	email       *MockEmailService
	push        *MockPushService
	svc         *opsService
}

func newOpsFixture() *opsFixture {
	f := &opsFixture{
		bookings:    new(MockBookingRepo),
		checkIns:    new(MockCheckInRepo),
		payments:    new(MockPaymentRepo),
		agreements:  new(MockAgreementRepo),
		walkarounds: new(MockWalkaroundRepo),
		photos:      new(MockPhotoRepo),
		preps:       new(MockPrepRepo),
		dispatches:  new(MockDispatchRepo),
		staff:       new(MockStaffRepo),
		email:       new(MockEmailService),
		push:        new(MockPushService),
	}
	svc := NewOpsService(OpsRepositories{
		Bookings:    f.bookings,
		CheckIns:    f.checkIns,
		Payments:    f.payments,
		Agreements:  f.agreements,
		Walkarounds: f.walkarounds,
		Photos:      f.photos,
		Preps:       f.preps,
		Dispatches:  f.dispatches,
		Staff:       f.staff,
	}, f.email, f.push, ops.DefaultPolicy()).(*opsService)
	svc.now = func() time.Time { return testNow }
	f.svc = svc
	return f
}

func counterBooking() *domain.Booking {
	vin := "1HGCM82633A004352"
	return &domain.Booking{
		ID:               1,
		CustomerName:     "Dana Reyes",
		CustomerEmail:    "dana@example.com",
		Status:           domain.BookingStatusConfirmed,
		StartAt:          testNow.Add(5 * time.Minute),
		EndAt:            testNow.Add(5*time.Minute + 72*time.Hour),
		TotalDays:        3,
		DailyRateCents:   5000,
		SubtotalCents:    15000,
		TotalAmountCents: 15000,
		AssignedUnitVIN:  &vin,
	}
}

func deliveryBooking() *domain.Booking {
	b := counterBooking()
	b.ID = 2
	b.DeliveryAddress = "12 Harbor Rd"
	return b
}

func photoSet(bookingID int32, phase domain.PhotoPhase, types []domain.PhotoType) []domain.Photo {
	out := make([]domain.Photo, len(types))
	for i, t := range types {
		out[i] = domain.Photo{BookingID: bookingID, Phase: phase, Type: t}
	}
	return out
}

// readyRecords returns records that satisfy every step for the booking.
func readyRecords(b *domain.Booking) ops.Records {
	expiry := testNow.AddDate(4, 0, 0)
	dob := testNow.AddDate(-30, 0, 0)
	fuel, odo := int32(8), int32(12000)
	required := ops.DefaultPolicy().RequiredPhotoTypes
	return ops.Records{
		Booking: b,
		CheckIn: &domain.CheckInRecord{
			BookingID:     b.ID,
			GovIDVerified: true,
			LicenseNumber: "D1234567",
			LicenseName:   b.CustomerName,
			LicenseExpiry: &expiry,
			DateOfBirth:   &dob,
			NameMatches:   true,
		},
		Deposit:    &domain.DepositHold{BookingID: b.ID, Status: domain.PaymentStatusAuthorized},
		Agreement:  &domain.Agreement{BookingID: b.ID, Status: domain.AgreementStatusSigned},
		Walkaround: &domain.Walkaround{BookingID: b.ID, InspectionComplete: true},
		Prep: &domain.VehiclePrep{
			BookingID:        b.ID,
			Items:            []domain.PrepItem{{Key: "wash", Checked: true}, {Key: "tires", Checked: true}},
			FuelLevelEighths: &fuel,
			OdometerMiles:    &odo,
			PricingLocked:    true,
		},
		PrepPhotos:   required,
		PickupPhotos: required,
	}
}

func (f *opsFixture) expectRecords(r ops.Records) {
	id := r.Booking.ID
	f.bookings.On("GetByID", mock.Anything, id).Return(r.Booking, nil)

	if r.CheckIn != nil {
		f.checkIns.On("GetByBooking", mock.Anything, id).Return(r.CheckIn, nil)
	} else {
		f.checkIns.On("GetByBooking", mock.Anything, id).Return(nil, domain.ErrNotFound)
	}
	if r.Deposit != nil {
		f.payments.On("GetDepositHold", mock.Anything, id).Return(r.Deposit, nil)
	} else {
		f.payments.On("GetDepositHold", mock.Anything, id).Return(nil, domain.ErrNotFound)
	}
	if r.Agreement != nil {
		f.agreements.On("GetByBooking", mock.Anything, id).Return(r.Agreement, nil)
	} else {
		f.agreements.On("GetByBooking", mock.Anything, id).Return(nil, domain.ErrNotFound)
	}
	if r.Walkaround != nil {
		f.walkarounds.On("GetByBooking", mock.Anything, id).Return(r.Walkaround, nil)
	} else {
		f.walkarounds.On("GetByBooking", mock.Anything, id).Return(nil, domain.ErrNotFound)
	}
	if r.Prep != nil {
		f.preps.On("GetByBooking", mock.Anything, id).Return(r.Prep, nil)
	} else {
		f.preps.On("GetByBooking", mock.Anything, id).Return(nil, domain.ErrNotFound)
	}

	photos := append(photoSet(id, domain.PhotoPhasePrep, r.PrepPhotos), photoSet(id, domain.PhotoPhasePickup, r.PickupPhotos)...)
	f.photos.On("ListByBooking", mock.Anything, id, []domain.PhotoPhase{domain.PhotoPhasePrep, domain.PhotoPhasePickup}).Return(photos, nil)

	if r.Booking.IsDelivery() {
		if r.Delivery != nil {
			f.dispatches.On("GetByBooking", mock.Anything, id).Return(r.Delivery, nil)
		} else {
			f.dispatches.On("GetByBooking", mock.Anything, id).Return(nil, domain.ErrNotFound)
		}
	}
}

func TestOpsService_GetWorkflow(t *testing.T) {
	ctx := context.Background()

	t.Run("CounterReadyForHandover", func(t *testing.T) {
		f := newOpsFixture()
		f.expectRecords(readyRecords(counterBooking()))

		wf, err := f.svc.GetWorkflow(ctx, 1, "")
		require.NoError(t, err)

		assert.False(t, wf.IsDelivery)
		require.Len(t, wf.Steps, 7)
		assert.Equal(t, 6, wf.CurrentIndex)
		assert.Equal(t, ops.StepHandover, wf.ActiveStep.ID)
		assert.True(t, wf.Steps[6].PrimaryActionEnabled)
		assert.Equal(t, ops.ActionActivate, wf.NextStep.Action)
		assert.Nil(t, wf.DispatchReadiness)
		for _, s := range wf.Steps[:6] {
			assert.True(t, s.Complete, s.ID)
		}
	})

	t.Run("NothingRecordedYet", func(t *testing.T) {
		f := newOpsFixture()
		f.expectRecords(ops.Records{Booking: counterBooking()})

		wf, err := f.svc.GetWorkflow(ctx, 1, ops.StepPayment)
		require.NoError(t, err)

		assert.Equal(t, 0, wf.CurrentIndex)
		assert.Equal(t, ops.StepPayment, wf.ActiveStep.ID)
		assert.False(t, wf.Steps[6].PrimaryActionEnabled)
		assert.NotEmpty(t, wf.Steps[6].BlockingIssues)
		assert.Equal(t, ops.ActionPrep, wf.NextStep.Action)
	})

	t.Run("DeliveryIncludesDispatchReadiness", func(t *testing.T) {
		f := newOpsFixture()
		f.expectRecords(ops.Records{Booking: deliveryBooking()})

		wf, err := f.svc.GetWorkflow(ctx, 2, "")
		require.NoError(t, err)

		assert.True(t, wf.IsDelivery)
		assert.Len(t, wf.Steps, 9)
		assert.Equal(t, ops.StepIntake, wf.Steps[wf.CurrentIndex].ID)
		require.NotNil(t, wf.DispatchReadiness)
		assert.False(t, wf.DispatchReadiness.IsReady)
		assert.Contains(t, wf.DispatchReadiness.MissingRequirements, "Deposit hold is not active (status: none)")
	})

	t.Run("BookingNotFound", func(t *testing.T) {
		f := newOpsFixture()
		f.bookings.On("GetByID", mock.Anything, int32(99)).Return(nil, domain.ErrNotFound)

		_, err := f.svc.GetWorkflow(ctx, 99, "")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("RecordLoadFailure", func(t *testing.T) {
		f := newOpsFixture()
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(counterBooking(), nil)
		f.checkIns.On("GetByBooking", mock.Anything, int32(1)).Return(nil, errors.New("connection reset"))

		_, err := f.svc.GetWorkflow(ctx, 1, "")
		assert.ErrorContains(t, err, "load check-in")
	})
}

func TestOpsService_ActivateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newOpsFixture()
		f.expectRecords(readyRecords(counterBooking()))
		f.bookings.On("UpdateStatus", mock.Anything, int32(1), domain.BookingStatusActive).Return(nil)
		f.email.On("SendActivationNotice", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

		b, err := f.svc.ActivateBooking(ctx, 7, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusActive, b.Status)
		f.bookings.AssertExpectations(t)
		f.email.AssertExpectations(t)
	})

	t.Run("EmailFailureDoesNotUndoActivation", func(t *testing.T) {
		f := newOpsFixture()
		f.expectRecords(readyRecords(counterBooking()))
		f.bookings.On("UpdateStatus", mock.Anything, int32(1), domain.BookingStatusActive).Return(nil)
		f.email.On("SendActivationNotice", mock.Anything, mock.Anything).Return(errors.New("sendgrid down"))

		b, err := f.svc.ActivateBooking(ctx, 7, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusActive, b.Status)
	})

	t.Run("BlockedWithoutDeposit", func(t *testing.T) {
		f := newOpsFixture()
		r := readyRecords(counterBooking())
		r.Deposit = &domain.DepositHold{BookingID: 1, Status: domain.PaymentStatusAuthorizing}
		f.expectRecords(r)

		_, err := f.svc.ActivateBooking(ctx, 7, 1)
		assert.ErrorIs(t, err, ErrWorkflowBlocked)

		var blocked *BlockedError
		require.True(t, errors.As(err, &blocked))
		require.Len(t, blocked.Issues, 1)
		assert.Equal(t, ops.StepPayment, blocked.Issues[0].Step)
		f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("IncompleteWithoutAgreement", func(t *testing.T) {
		f := newOpsFixture()
		r := readyRecords(counterBooking())
		r.Agreement = nil
		f.expectRecords(r)

		_, err := f.svc.ActivateBooking(ctx, 7, 1)
		assert.ErrorIs(t, err, ErrStepsIncomplete)

		var incomplete *IncompleteError
		require.True(t, errors.As(err, &incomplete))
		fields := make([]string, len(incomplete.Missing))
		for i, m := range incomplete.Missing {
			fields[i] = m.Field
		}
		assert.Contains(t, fields, "agreement_signed")
		f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("WrongStatus", func(t *testing.T) {
		f := newOpsFixture()
		b := counterBooking()
		b.Status = domain.BookingStatusPending
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(b, nil)

		_, err := f.svc.ActivateBooking(ctx, 7, 1)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		f.checkIns.AssertNotCalled(t, "GetByBooking", mock.Anything, mock.Anything)
	})

	t.Run("DeliveryNeedsDispatch", func(t *testing.T) {
		f := newOpsFixture()
		b := deliveryBooking()
		reviewed := testNow.Add(-time.Hour)
		b.IntakeReviewedAt = &reviewed
		f.expectRecords(readyRecords(b))

		_, err := f.svc.ActivateBooking(ctx, 7, 2)
		var incomplete *IncompleteError
		require.True(t, errors.As(err, &incomplete))
		assert.Equal(t, ops.StepDispatch, incomplete.Missing[0].Step)
	})
}

func TestOpsService_SaveCheckIn(t *testing.T) {
	ctx := context.Background()
	expiry := testNow.AddDate(4, 0, 0)
	adult := testNow.AddDate(-30, 0, 0)
	minor := testNow.AddDate(-19, 0, 0)

	t.Run("Passed", func(t *testing.T) {
		f := newOpsFixture()
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(counterBooking(), nil)
		f.checkIns.On("Save", mock.Anything, mock.AnythingOfType("*domain.CheckInRecord")).Return(nil)
		f.checkIns.On("UpdateStatus", mock.Anything, int32(1), domain.CheckInStatusPassed).Return(nil)

		res, err := f.svc.SaveCheckIn(ctx, 7, 1, CheckInInput{
			GovIDVerified: true,
			LicenseNumber: "D1234567",
			LicenseExpiry: &expiry,
			DateOfBirth:   &adult,
			NameMatches:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CheckInStatusPassed, res.Status)
		assert.Equal(t, int32(7), res.Record.UpdatedBy)
		assert.Len(t, res.Validations, 6)
		f.checkIns.AssertExpectations(t)
	})

	t.Run("UnderAgeIsBlocked", func(t *testing.T) {
		f := newOpsFixture()
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(counterBooking(), nil)
		f.checkIns.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.checkIns.On("UpdateStatus", mock.Anything, int32(1), domain.CheckInStatusBlocked).Return(nil)

		res, err := f.svc.SaveCheckIn(ctx, 7, 1, CheckInInput{
			GovIDVerified: true,
			LicenseNumber: "D1234567",
			LicenseExpiry: &expiry,
			DateOfBirth:   &minor,
			NameMatches:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CheckInStatusBlocked, res.Status)
	})

	t.Run("FailedSaveLeavesStatusAlone", func(t *testing.T) {
		f := newOpsFixture()
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(counterBooking(), nil)
		f.checkIns.On("Save", mock.Anything, mock.Anything).Return(errors.New("deadlock detected"))

		_, err := f.svc.SaveCheckIn(ctx, 7, 1, CheckInInput{GovIDVerified: true})
		assert.ErrorContains(t, err, "save check-in")
		f.checkIns.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ClosedBooking", func(t *testing.T) {
		f := newOpsFixture()
		b := counterBooking()
		b.Status = domain.BookingStatusCancelled
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(b, nil)

		_, err := f.svc.SaveCheckIn(ctx, 7, 1, CheckInInput{})
		assert.ErrorIs(t, err, ops.ErrBookingClosed)
		f.checkIns.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestOpsService_Modification(t *testing.T) {
	ctx := context.Background()

	t.Run("Preview", func(t *testing.T) {
		f := newOpsFixture()
		b := counterBooking()
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(b, nil)

		p, err := f.svc.PreviewModification(ctx, 1, b.StartAt.Add(120*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int32(5), p.NewDays)
		assert.Equal(t, int32(10000), p.PriceDifferenceCents)
	})

	t.Run("ConfirmExtends", func(t *testing.T) {
		f := newOpsFixture()
		b := counterBooking()
		newEnd := b.StartAt.Add(120 * time.Hour)
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(b, nil)
		f.bookings.On("ApplyModification", mock.Anything,
			mock.MatchedBy(func(u *domain.Booking) bool {
				return u.EndAt.Equal(newEnd) && u.TotalDays == 5 && u.TotalAmountCents == 25000 && u.SubtotalCents == 25000
			}),
			mock.MatchedBy(func(m *domain.BookingModification) bool {
				return m.PreviousDays == 3 && m.NewDays == 5 && m.PriceDifferenceCents == 10000 && m.StaffID == 7
			}),
		).Return(nil)

		mod, err := f.svc.ConfirmModification(ctx, 7, 1, newEnd, "customer extended trip")
		require.NoError(t, err)
		assert.Equal(t, "customer extended trip", mod.Reason)
		// the loaded booking is not mutated
		assert.Equal(t, int32(3), b.TotalDays)
		f.bookings.AssertExpectations(t)
	})

	t.Run("ReasonRequired", func(t *testing.T) {
		f := newOpsFixture()
		b := counterBooking()
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(b, nil)

		_, err := f.svc.ConfirmModification(ctx, 7, 1, b.EndAt.Add(24*time.Hour), "  ")
		assert.ErrorIs(t, err, ops.ErrReasonRequired)
		f.bookings.AssertNotCalled(t, "ApplyModification", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		f := newOpsFixture()
		b := counterBooking()
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(b, nil)

		_, err := f.svc.ConfirmModification(ctx, 7, 1, b.StartAt.Add(-time.Hour), "typo")
		assert.ErrorIs(t, err, ops.ErrEndBeforeStart)
	})
}

func TestOpsService_DispatchDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newOpsFixture()
		f.expectRecords(readyRecords(deliveryBooking()))
		driver := &domain.Staff{ID: 30, Role: domain.StaffRoleDelivery, PushToken: "device-token"}
		f.staff.On("GetByID", mock.Anything, int32(30)).Return(driver, nil)
		f.bookings.On("AssignDriver", mock.Anything, int32(2), int32(30)).Return(nil)
		f.push.On("NotifyDriverDispatched", mock.Anything, driver, mock.AnythingOfType("*domain.Booking")).Return(errors.New("fcm down"))
		f.dispatches.On("Upsert", mock.Anything, mock.MatchedBy(func(task *domain.DeliveryTask) bool {
			return task.Status == domain.DispatchStatusEnRoute && *task.DriverID == 30 && task.DispatchedAt.Equal(testNow)
		})).Return(nil)

		task, err := f.svc.DispatchDelivery(ctx, 7, 2, 30)
		require.NoError(t, err)
		assert.True(t, task.IsDispatched())
		f.dispatches.AssertExpectations(t)
		f.push.AssertExpectations(t)
	})

	t.Run("NotDelivery", func(t *testing.T) {
		f := newOpsFixture()
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(counterBooking(), nil)

		_, err := f.svc.DispatchDelivery(ctx, 7, 1, 30)
		assert.ErrorIs(t, err, ErrNotDelivery)
	})

	t.Run("NotConfirmed", func(t *testing.T) {
		f := newOpsFixture()
		b := deliveryBooking()
		b.Status = domain.BookingStatusPending
		f.bookings.On("GetByID", mock.Anything, int32(2)).Return(b, nil)

		_, err := f.svc.DispatchDelivery(ctx, 7, 2, 30)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("DriverMustBeDeliveryStaff", func(t *testing.T) {
		f := newOpsFixture()
		f.expectRecords(readyRecords(deliveryBooking()))
		f.staff.On("GetByID", mock.Anything, int32(30)).Return(&domain.Staff{ID: 30, Role: domain.StaffRoleDesk}, nil)
		f.staff.On("GetByID", mock.Anything, int32(31)).Return(nil, domain.ErrNotFound)

		_, err := f.svc.DispatchDelivery(ctx, 7, 2, 30)
		assert.ErrorIs(t, err, ErrInvalidDriver)
		_, err = f.svc.DispatchDelivery(ctx, 7, 2, 31)
		assert.ErrorIs(t, err, ErrInvalidDriver)
		f.bookings.AssertNotCalled(t, "AssignDriver", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("BlockedByReadiness", func(t *testing.T) {
		f := newOpsFixture()
		b := deliveryBooking()
		b.AssignedUnitVIN = nil
		r := readyRecords(b)
		r.PrepPhotos = r.PrepPhotos[:2]
		f.expectRecords(r)

		_, err := f.svc.DispatchDelivery(ctx, 7, 2, 30)
		var blocked *BlockedError
		require.True(t, errors.As(err, &blocked))
		msgs := []string{blocked.Issues[0].Message, blocked.Issues[1].Message}
		assert.Equal(t, []string{"No vehicle unit (VIN) assigned", "Prep photos: 2 of 4 required"}, msgs)
		f.bookings.AssertNotCalled(t, "AssignDriver", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOpsService_MarkIntakeReviewed(t *testing.T) {
	ctx := context.Background()

	t.Run("Delivery", func(t *testing.T) {
		f := newOpsFixture()
		b := deliveryBooking()
		f.expectRecords(ops.Records{Booking: b})
		f.bookings.On("MarkIntakeReviewed", mock.Anything, int32(2), int32(7), testNow).Return(nil)

		wf, err := f.svc.MarkIntakeReviewed(ctx, 7, 2)
		require.NoError(t, err)
		assert.Equal(t, ops.StepIntake, wf.ActiveStep.ID)
		f.bookings.AssertExpectations(t)
	})

	t.Run("CounterHasNoIntake", func(t *testing.T) {
		f := newOpsFixture()
		f.bookings.On("GetByID", mock.Anything, int32(1)).Return(counterBooking(), nil)

		_, err := f.svc.MarkIntakeReviewed(ctx, 7, 1)
		assert.ErrorIs(t, err, ErrNotDelivery)
	})
}
