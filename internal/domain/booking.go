package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by repositories when the requested row does not exist.
var ErrNotFound = errors.New("not found")

type BookingStatus string

const (
	BookingStatusDraft     BookingStatus = "draft"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// bookingProgression is the strictly ordered lifecycle. Cancelled sits outside it.
var bookingProgression = []BookingStatus{
	BookingStatusDraft,
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusActive,
	BookingStatusCompleted,
}

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// IsValid reports whether s is a known lifecycle status.
func (s BookingStatus) IsValid() bool {
	if s == BookingStatusCancelled {
		return true
	}
	return progressionIndex(s) >= 0
}

func progressionIndex(s BookingStatus) int {
	for i, st := range bookingProgression {
		if st == s {
			return i
		}
	}
	return -1
}

// CanTransitionBooking reports whether a booking may move from one status to another.
// Only the next step of the progression is allowed, plus cancellation from any
// non-terminal status.
func CanTransitionBooking(from, to BookingStatus) bool {
	if !from.IsValid() || !to.IsValid() || from.IsTerminal() {
		return false
	}
	if to == BookingStatusCancelled {
		return true
	}
	fi, ti := progressionIndex(from), progressionIndex(to)
	return ti == fi+1
}

type Booking struct {
	ID                     int32         `json:"id"`
	CustomerID             int32         `json:"customer_id"`
	CustomerName           string        `json:"customer_name"`
	CustomerEmail          string        `json:"customer_email"`
	Status                 BookingStatus `json:"status"`
	StartAt                time.Time     `json:"start_at"`
	EndAt                  time.Time     `json:"end_at"`
	TotalDays              int32         `json:"total_days"`
	DailyRateCents         int32         `json:"daily_rate_cents"`
	SubtotalCents          int32         `json:"subtotal_cents"`
	TaxAmountCents         int32         `json:"tax_amount_cents"`
	YoungDriverFeeCents    int32         `json:"young_driver_fee_cents"`
	ProtectionPlanFeeCents int32         `json:"protection_plan_fee_cents"`
	TotalAmountCents       int32         `json:"total_amount_cents"`
	VehicleID              *int32        `json:"vehicle_id,omitempty"`
	AssignedUnitVIN        *string       `json:"assigned_unit_vin,omitempty"`
	AssignedDriverID       *int32        `json:"assigned_driver_id,omitempty"` // delivery only
	DeliveryAddress        string        `json:"delivery_address"`
	IntakeReviewedAt       *time.Time    `json:"intake_reviewed_at,omitempty"`
	IntakeReviewedBy       *int32        `json:"intake_reviewed_by,omitempty"`
	CreatedOn              time.Time     `json:"created_on"`
	UpdatedOn              time.Time     `json:"updated_on"`
}

// IsDelivery reports whether the vehicle is driven to the customer.
func (b *Booking) IsDelivery() bool {
	return strings.TrimSpace(b.DeliveryAddress) != ""
}

// HasAssignedUnit reports whether a specific vehicle unit (VIN) is assigned.
func (b *Booking) HasAssignedUnit() bool {
	return b.AssignedUnitVIN != nil && strings.TrimSpace(*b.AssignedUnitVIN) != ""
}

// FixedFeesCents returns the charges that do not scale with the rental length.
func (b *Booking) FixedFeesCents() int32 {
	return b.TaxAmountCents + b.YoungDriverFeeCents + b.ProtectionPlanFeeCents
}

// BookingModification is the audit row written when staff confirm a date change.
type BookingModification struct {
	ID                   int32     `json:"id"`
	BookingID            int32     `json:"booking_id"`
	StaffID              int32     `json:"staff_id"`
	PreviousEndAt        time.Time `json:"previous_end_at"`
	NewEndAt             time.Time `json:"new_end_at"`
	PreviousDays         int32     `json:"previous_days"`
	NewDays              int32     `json:"new_days"`
	PreviousTotalCents   int32     `json:"previous_total_cents"`
	NewTotalCents        int32     `json:"new_total_cents"`
	PriceDifferenceCents int32     `json:"price_difference_cents"`
	Reason               string    `json:"reason"`
	CreatedOn            time.Time `json:"created_on"`
}
