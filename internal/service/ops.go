package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/ops"
	"rental-ops-backend/internal/repository"
)

// OpsRepositories groups the record sources the workflow is projected from.
type OpsRepositories struct {
	Bookings    repository.BookingRepository
	CheckIns    repository.CheckInRepository
	Payments    repository.PaymentRepository
	Agreements  repository.AgreementRepository
	Walkarounds repository.WalkaroundRepository
	Photos      repository.PhotoRepository
	Preps       repository.PrepRepository
	Dispatches  repository.DispatchRepository
	Staff       repository.StaffRepository
}

type CheckInInput struct {
	GovIDVerified bool       `json:"govIdVerified"`
	LicenseNumber string     `json:"licenseNumber"`
	LicenseName   string     `json:"licenseName"`
	LicenseExpiry *time.Time `json:"licenseExpiry,omitempty"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	NameMatches   bool       `json:"nameMatches"`
	ArrivedAt     *time.Time `json:"arrivedAt,omitempty"`
	Notes         string     `json:"notes"`
}

type CheckInResult struct {
	Record      *domain.CheckInRecord   `json:"record"`
	Validations []ops.CheckInValidation `json:"validations"`
	Status      domain.CheckInStatus    `json:"status"`
}

type opsService struct {
	repos    OpsRepositories
	emailSvc EmailService
	pushSvc  PushService
	policy   ops.Policy
	now      func() time.Time
}

func NewOpsService(repos OpsRepositories, emailSvc EmailService, pushSvc PushService, policy ops.Policy) OpsService {
	return &opsService{
		repos:    repos,
		emailSvc: emailSvc,
		pushSvc:  pushSvc,
		policy:   policy,
		now:      time.Now,
	}
}

func (s *opsService) getBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	b, err := s.repos.Bookings.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking %d: %w", id, err)
	}
	return b, nil
}

// optional treats a missing record as "nothing recorded yet".
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func (s *opsService) loadRecords(ctx context.Context, b *domain.Booking) (ops.Records, error) {
	r := ops.Records{Booking: b}
	var err error

	if r.CheckIn, err = optional(s.repos.CheckIns.GetByBooking(ctx, b.ID)); err != nil {
		return r, fmt.Errorf("load check-in: %w", err)
	}
	if r.Deposit, err = optional(s.repos.Payments.GetDepositHold(ctx, b.ID)); err != nil {
		return r, fmt.Errorf("load deposit hold: %w", err)
	}
	if r.Agreement, err = optional(s.repos.Agreements.GetByBooking(ctx, b.ID)); err != nil {
		return r, fmt.Errorf("load agreement: %w", err)
	}
	if r.Walkaround, err = optional(s.repos.Walkarounds.GetByBooking(ctx, b.ID)); err != nil {
		return r, fmt.Errorf("load walkaround: %w", err)
	}
	if r.Prep, err = optional(s.repos.Preps.GetByBooking(ctx, b.ID)); err != nil {
		return r, fmt.Errorf("load prep: %w", err)
	}

	photos, err := s.repos.Photos.ListByBooking(ctx, b.ID, []domain.PhotoPhase{domain.PhotoPhasePrep, domain.PhotoPhasePickup})
	if err != nil {
		return r, fmt.Errorf("load photos: %w", err)
	}
	for _, p := range photos {
		switch p.Phase {
		case domain.PhotoPhasePrep:
			r.PrepPhotos = append(r.PrepPhotos, p.Type)
		case domain.PhotoPhasePickup:
			r.PickupPhotos = append(r.PickupPhotos, p.Type)
		}
	}

	if b.IsDelivery() {
		if r.Delivery, err = optional(s.repos.Dispatches.GetByBooking(ctx, b.ID)); err != nil {
			return r, fmt.Errorf("load delivery task: %w", err)
		}
	}
	return r, nil
}

func (s *opsService) GetWorkflow(ctx context.Context, bookingID int32, requested ops.StepID) (*Workflow, error) {
	logger.EnterMethod("opsService.GetWorkflow", "bookingID", bookingID, "requested", requested)

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("opsService.GetWorkflow", err, "bookingID", bookingID)
		return nil, err
	}
	records, err := s.loadRecords(ctx, b)
	if err != nil {
		logger.ExitMethodWithError("opsService.GetWorkflow", err, "bookingID", bookingID)
		return nil, err
	}

	wf := buildWorkflow(records, requested, s.now(), s.policy)
	logger.ExitMethod("opsService.GetWorkflow", "bookingID", bookingID, "currentStep", wf.Steps[wf.CurrentIndex].ID, "next", wf.NextStep.Action)
	return wf, nil
}

func (s *opsService) MarkIntakeReviewed(ctx context.Context, staffID, bookingID int32) (*Workflow, error) {
	logger.EnterMethod("opsService.MarkIntakeReviewed", "staffID", staffID, "bookingID", bookingID)

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("opsService.MarkIntakeReviewed", err, "bookingID", bookingID)
		return nil, err
	}
	if !b.IsDelivery() {
		logger.ExitMethodWithError("opsService.MarkIntakeReviewed", ErrNotDelivery, "bookingID", bookingID)
		return nil, ErrNotDelivery
	}
	if err := s.repos.Bookings.MarkIntakeReviewed(ctx, bookingID, staffID, s.now()); err != nil {
		logger.ExitMethodWithError("opsService.MarkIntakeReviewed", err, "bookingID", bookingID)
		return nil, fmt.Errorf("mark intake reviewed: %w", err)
	}

	logger.ExitMethod("opsService.MarkIntakeReviewed", "bookingID", bookingID)
	return s.GetWorkflow(ctx, bookingID, ops.StepIntake)
}

// SaveCheckIn persists the desk's entries and only then derives and stores the
// check-in status. A failed save leaves the stored status untouched.
func (s *opsService) SaveCheckIn(ctx context.Context, staffID, bookingID int32, in CheckInInput) (*CheckInResult, error) {
	logger.EnterMethod("opsService.SaveCheckIn", "staffID", staffID, "bookingID", bookingID)

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("opsService.SaveCheckIn", err, "bookingID", bookingID)
		return nil, err
	}
	if b.Status.IsTerminal() {
		logger.ExitMethodWithError("opsService.SaveCheckIn", ops.ErrBookingClosed, "bookingID", bookingID)
		return nil, ops.ErrBookingClosed
	}

	rec := &domain.CheckInRecord{
		BookingID:     bookingID,
		GovIDVerified: in.GovIDVerified,
		LicenseNumber: in.LicenseNumber,
		LicenseName:   in.LicenseName,
		LicenseExpiry: in.LicenseExpiry,
		DateOfBirth:   in.DateOfBirth,
		NameMatches:   in.NameMatches,
		ArrivedAt:     in.ArrivedAt,
		Notes:         in.Notes,
		UpdatedBy:     staffID,
	}
	if err := s.repos.CheckIns.Save(ctx, rec); err != nil {
		logger.ExitMethodWithError("opsService.SaveCheckIn", err, "bookingID", bookingID)
		return nil, fmt.Errorf("save check-in: %w", err)
	}

	validations := ops.BuildCheckInValidation(rec, b, s.now(), s.policy)
	status := ops.DeriveCheckInStatus(rec, validations)
	if err := s.repos.CheckIns.UpdateStatus(ctx, bookingID, status); err != nil {
		logger.ExitMethodWithError("opsService.SaveCheckIn", err, "bookingID", bookingID)
		return nil, fmt.Errorf("update check-in status: %w", err)
	}
	rec.Status = status

	logger.ExitMethod("opsService.SaveCheckIn", "bookingID", bookingID, "status", status)
	return &CheckInResult{Record: rec, Validations: validations, Status: status}, nil
}

func (s *opsService) PreviewModification(ctx context.Context, bookingID int32, newEnd time.Time) (*ops.ModificationPreview, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	preview := ops.PreviewModification(b, newEnd)
	return &preview, nil
}

func (s *opsService) ConfirmModification(ctx context.Context, staffID, bookingID int32, newEnd time.Time, reason string) (*domain.BookingModification, error) {
	logger.EnterMethod("opsService.ConfirmModification", "staffID", staffID, "bookingID", bookingID, "newEnd", newEnd)

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("opsService.ConfirmModification", err, "bookingID", bookingID)
		return nil, err
	}
	if err := ops.ValidateModification(b, newEnd, reason); err != nil {
		logger.ExitMethodWithError("opsService.ConfirmModification", err, "bookingID", bookingID)
		return nil, err
	}

	preview := ops.PreviewModification(b, newEnd)
	mod := &domain.BookingModification{
		BookingID:            bookingID,
		StaffID:              staffID,
		PreviousEndAt:        b.EndAt,
		NewEndAt:             newEnd,
		PreviousDays:         preview.OriginalDays,
		NewDays:              preview.NewDays,
		PreviousTotalCents:   preview.OriginalTotalCents,
		NewTotalCents:        preview.NewTotalCents,
		PriceDifferenceCents: preview.PriceDifferenceCents,
		Reason:               reason,
	}

	updated := *b
	updated.EndAt = newEnd
	updated.TotalDays = preview.NewDays
	updated.SubtotalCents = b.DailyRateCents * preview.NewDays
	updated.TotalAmountCents = preview.NewTotalCents

	if err := s.repos.Bookings.ApplyModification(ctx, &updated, mod); err != nil {
		logger.ExitMethodWithError("opsService.ConfirmModification", err, "bookingID", bookingID)
		return nil, fmt.Errorf("apply modification: %w", err)
	}

	logger.ExitMethod("opsService.ConfirmModification", "bookingID", bookingID, "difference", mod.PriceDifferenceCents)
	return mod, nil
}

// ActivateBooking is the terminal action. It refuses while a blocking issue
// exists or any earlier step is incomplete.
func (s *opsService) ActivateBooking(ctx context.Context, staffID, bookingID int32) (*domain.Booking, error) {
	logger.EnterMethod("opsService.ActivateBooking", "staffID", staffID, "bookingID", bookingID)

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("opsService.ActivateBooking", err, "bookingID", bookingID)
		return nil, err
	}
	if !domain.CanTransitionBooking(b.Status, domain.BookingStatusActive) {
		err := fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, domain.BookingStatusActive)
		logger.ExitMethodWithError("opsService.ActivateBooking", err, "bookingID", bookingID)
		return nil, err
	}

	records, err := s.loadRecords(ctx, b)
	if err != nil {
		logger.ExitMethodWithError("opsService.ActivateBooking", err, "bookingID", bookingID)
		return nil, err
	}
	isDelivery := b.IsDelivery()
	terminal := terminalStep(isDelivery)
	c := ops.BuildStepCompletion(records, s.now(), s.policy)

	if issues := ops.GetBlockingIssues(terminal, c, isDelivery); len(issues) > 0 {
		err := &BlockedError{Issues: issues}
		logger.ExitMethodWithError("opsService.ActivateBooking", err, "bookingID", bookingID)
		return nil, err
	}
	if !ops.PrimaryActionEnabled(terminal, c, isDelivery) {
		err := &IncompleteError{Missing: ops.MissingItems(terminal, c, isDelivery)}
		logger.ExitMethodWithError("opsService.ActivateBooking", err, "bookingID", bookingID)
		return nil, err
	}

	if err := s.repos.Bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusActive); err != nil {
		logger.ExitMethodWithError("opsService.ActivateBooking", err, "bookingID", bookingID)
		return nil, fmt.Errorf("activate booking: %w", err)
	}
	b.Status = domain.BookingStatusActive
	log := logger.WithBooking(bookingID)
	log.Info("booking activated", "staff_id", staffID, "delivery", isDelivery)

	if s.emailSvc != nil {
		if err := s.emailSvc.SendActivationNotice(ctx, b); err != nil {
			log.Warn("activation notice not sent", "error", err)
		}
	}

	logger.ExitMethod("opsService.ActivateBooking", "bookingID", bookingID)
	return b, nil
}

func (s *opsService) DispatchDelivery(ctx context.Context, staffID, bookingID, driverID int32) (*domain.DeliveryTask, error) {
	logger.EnterMethod("opsService.DispatchDelivery", "staffID", staffID, "bookingID", bookingID, "driverID", driverID)

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("opsService.DispatchDelivery", err, "bookingID", bookingID)
		return nil, err
	}
	if !b.IsDelivery() {
		logger.ExitMethodWithError("opsService.DispatchDelivery", ErrNotDelivery, "bookingID", bookingID)
		return nil, ErrNotDelivery
	}
	if b.Status != domain.BookingStatusConfirmed {
		err := fmt.Errorf("%w: cannot dispatch a %s booking", ErrInvalidTransition, b.Status)
		logger.ExitMethodWithError("opsService.DispatchDelivery", err, "bookingID", bookingID)
		return nil, err
	}

	records, err := s.loadRecords(ctx, b)
	if err != nil {
		logger.ExitMethodWithError("opsService.DispatchDelivery", err, "bookingID", bookingID)
		return nil, err
	}
	c := ops.BuildStepCompletion(records, s.now(), s.policy)
	if issues := ops.GetBlockingIssues(ops.StepDispatch, c, true); len(issues) > 0 {
		err := &BlockedError{Issues: issues}
		logger.ExitMethodWithError("opsService.DispatchDelivery", err, "bookingID", bookingID)
		return nil, err
	}

	driver, err := s.repos.Staff.GetByID(ctx, driverID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && driver.Role != domain.StaffRoleDelivery) {
		err = fmt.Errorf("%w: staff %d", ErrInvalidDriver, driverID)
	}
	if err != nil {
		logger.ExitMethodWithError("opsService.DispatchDelivery", err, "bookingID", bookingID, "driverID", driverID)
		return nil, err
	}

	if err := s.repos.Bookings.AssignDriver(ctx, bookingID, driverID); err != nil {
		logger.ExitMethodWithError("opsService.DispatchDelivery", err, "bookingID", bookingID)
		return nil, fmt.Errorf("assign driver: %w", err)
	}
	at := s.now()
	task := &domain.DeliveryTask{
		BookingID:    bookingID,
		DriverID:     &driverID,
		Status:       domain.DispatchStatusEnRoute,
		DispatchedAt: &at,
	}
	if err := s.repos.Dispatches.Upsert(ctx, task); err != nil {
		logger.ExitMethodWithError("opsService.DispatchDelivery", err, "bookingID", bookingID)
		return nil, fmt.Errorf("record dispatch: %w", err)
	}

	log := logger.WithBooking(bookingID)
	if err := s.pushSvc.NotifyDriverDispatched(ctx, driver, b); err != nil {
		log.Warn("driver push failed", "driver_id", driverID, "error", err)
	}
	log.Info("delivery dispatched", "staff_id", staffID, "driver_id", driverID)
	logger.ExitMethod("opsService.DispatchDelivery", "bookingID", bookingID, "driverID", driverID)
	return task, nil
}
