package domain

import "time"

// PaymentStatus mirrors the card processor's hold lifecycle. It is read-only here.
type PaymentStatus string

const (
	PaymentStatusRequiresPayment PaymentStatus = "requires_payment"
	PaymentStatusAuthorizing     PaymentStatus = "authorizing"
	PaymentStatusAuthorized      PaymentStatus = "authorized"
	PaymentStatusCapturing       PaymentStatus = "capturing"
	PaymentStatusCaptured        PaymentStatus = "captured"
	PaymentStatusReleasing       PaymentStatus = "releasing"
	PaymentStatusReleased        PaymentStatus = "released"
)

// IsHeld reports whether funds are secured (authorized hold or captured charge).
func (s PaymentStatus) IsHeld() bool {
	return s == PaymentStatusAuthorized || s == PaymentStatusCaptured
}

type DepositHold struct {
	BookingID    int32         `json:"booking_id"`
	Status       PaymentStatus `json:"status"`
	AmountCents  int32         `json:"amount_cents"`
	Currency     string        `json:"currency"`
	ProcessorRef string        `json:"processor_ref"`
	UpdatedOn    time.Time     `json:"updated_on"`
}

type AgreementStatus string

const (
	AgreementStatusUnsigned  AgreementStatus = "unsigned"
	AgreementStatusSigned    AgreementStatus = "signed"
	AgreementStatusConfirmed AgreementStatus = "confirmed"
)

type Agreement struct {
	BookingID  int32           `json:"booking_id"`
	Status     AgreementStatus `json:"status"`
	SignerName string          `json:"signer_name"`
	SignedAt   *time.Time      `json:"signed_at,omitempty"`
}

type Walkaround struct {
	BookingID            int32      `json:"booking_id"`
	InspectionComplete   bool       `json:"inspection_complete"`
	CustomerAcknowledged bool       `json:"customer_acknowledged"`
	Notes                string     `json:"notes"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
}
