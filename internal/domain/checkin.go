package domain

import "time"

type CheckInStatus string

const (
	CheckInStatusPending     CheckInStatus = "pending"
	CheckInStatusPassed      CheckInStatus = "passed"
	CheckInStatusNeedsReview CheckInStatus = "needs_review"
	CheckInStatusBlocked     CheckInStatus = "blocked"
)

// CheckInRecord holds what the desk captured while checking the customer in.
type CheckInRecord struct {
	BookingID     int32         `json:"booking_id"`
	GovIDVerified bool          `json:"gov_id_verified"`
	LicenseNumber string        `json:"license_number"`
	LicenseName   string        `json:"license_name"`
	LicenseExpiry *time.Time    `json:"license_expiry,omitempty"`
	DateOfBirth   *time.Time    `json:"date_of_birth,omitempty"`
	NameMatches   bool          `json:"name_matches"`
	ArrivedAt     *time.Time    `json:"arrived_at,omitempty"`
	Status        CheckInStatus `json:"status"`
	Notes         string        `json:"notes"`
	UpdatedBy     int32         `json:"updated_by"`
	UpdatedOn     time.Time     `json:"updated_on"`
}
