package ops

import (
	"fmt"
	"strings"
	"time"

	"rental-ops-backend/internal/domain"
)

const (
	FieldGovID         = "gov_id"
	FieldLicenseOnFile = "license_on_file"
	FieldNameMatches   = "name_matches"
	FieldLicenseValid  = "license_valid"
	FieldAge           = "age"
	FieldArrivalTiming = "arrival_timing"
)

// CheckInValidation is one line of the check-in review. Required entries must
// all pass before check-in is complete; the rest are informational.
type CheckInValidation struct {
	Field    string `json:"field"`
	Label    string `json:"label"`
	Passed   bool   `json:"passed"`
	Required bool   `json:"required"`
	Notes    string `json:"notes,omitempty"`
}

// BuildCheckInValidation evaluates a check-in record against the booking.
// A nil record fails every required entry.
func BuildCheckInValidation(rec *domain.CheckInRecord, booking *domain.Booking, now time.Time, policy Policy) []CheckInValidation {
	if rec == nil {
		rec = &domain.CheckInRecord{}
	}

	license := CheckInValidation{Field: FieldLicenseValid, Label: "License valid through rental", Required: true}
	switch {
	case rec.LicenseExpiry == nil:
		license.Notes = "No expiry date recorded"
	case IsLicenseExpired(*rec.LicenseExpiry, now):
		license.Notes = "License is expired"
	case IsLicenseExpiredForRental(*rec.LicenseExpiry, booking.EndAt):
		license.Notes = fmt.Sprintf("License expires %s, before the rental ends", rec.LicenseExpiry.Format("2006-01-02"))
	default:
		license.Passed = true
	}

	age := CheckInValidation{Field: FieldAge, Label: fmt.Sprintf("Customer is at least %d", policy.MinimumAge), Required: true}
	if rec.DateOfBirth == nil {
		age.Notes = "No date of birth recorded"
	} else {
		years := CalculateAge(*rec.DateOfBirth, now)
		age.Passed = years >= policy.MinimumAge
		age.Notes = fmt.Sprintf("Age %d", years)
	}

	timing := CheckInValidation{Field: FieldArrivalTiming, Label: "Arrived on time", Required: false}
	arrived := now
	if rec.ArrivedAt != nil {
		arrived = *rec.ArrivedAt
	}
	ts := CalculateTimingStatus(booking.StartAt, arrived, policy.OnTime)
	timing.Passed = ts.Status == TimingOnTime
	switch ts.Status {
	case TimingEarly:
		timing.Notes = fmt.Sprintf("%d minutes early", ts.MinutesDiff)
	case TimingLate:
		timing.Notes = fmt.Sprintf("%d minutes late", ts.MinutesDiff)
	}

	return []CheckInValidation{
		{Field: FieldGovID, Label: "Government ID verified", Passed: rec.GovIDVerified, Required: true},
		{Field: FieldLicenseOnFile, Label: "Driver's license on file", Passed: strings.TrimSpace(rec.LicenseNumber) != "", Required: true},
		{Field: FieldNameMatches, Label: "Name matches license", Passed: rec.NameMatches, Required: true},
		license,
		age,
		timing,
	}
}

// RequiredPassed reports whether every required validation passed.
func RequiredPassed(validations []CheckInValidation) bool {
	for _, v := range validations {
		if v.Required && !v.Passed {
			return false
		}
	}
	return true
}

// DeriveCheckInStatus condenses validations into the persisted check-in status.
func DeriveCheckInStatus(rec *domain.CheckInRecord, validations []CheckInValidation) domain.CheckInStatus {
	if RequiredPassed(validations) {
		return domain.CheckInStatusPassed
	}
	if rec == nil || !hasCheckInData(rec) {
		return domain.CheckInStatusPending
	}
	for _, v := range validations {
		if v.Passed || !v.Required {
			continue
		}
		// An expired license or an under-age driver cannot be fixed at the desk.
		if (v.Field == FieldLicenseValid && rec.LicenseExpiry != nil) || (v.Field == FieldAge && rec.DateOfBirth != nil) {
			return domain.CheckInStatusBlocked
		}
	}
	return domain.CheckInStatusNeedsReview
}

func hasCheckInData(rec *domain.CheckInRecord) bool {
	return rec.GovIDVerified || rec.NameMatches ||
		strings.TrimSpace(rec.LicenseNumber) != "" ||
		rec.LicenseExpiry != nil || rec.DateOfBirth != nil
}

// checkInCompletion maps validations onto the check-in part of the projection.
func checkInCompletion(validations []CheckInValidation) CheckInCompletion {
	passed := make(map[string]bool, len(validations))
	for _, v := range validations {
		passed[v.Field] = v.Passed
	}
	return CheckInCompletion{
		GovIDVerified:     passed[FieldGovID],
		LicenseOnFile:     passed[FieldLicenseOnFile],
		NameMatches:       passed[FieldNameMatches],
		LicenseNotExpired: passed[FieldLicenseValid],
		AgeVerified:       passed[FieldAge],
	}
}
