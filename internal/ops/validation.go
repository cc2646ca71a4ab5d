package ops

import (
	"math"
	"time"
)

type TimingState string

const (
	TimingEarly  TimingState = "early"
	TimingOnTime TimingState = "on_time"
	TimingLate   TimingState = "late"
)

// TimingWindow is the tolerance band around a scheduled start that still counts as on time.
type TimingWindow struct {
	Before time.Duration `yaml:"before"`
	After  time.Duration `yaml:"after"`
}

type TimingStatus struct {
	Status      TimingState `json:"status"`
	MinutesDiff int         `json:"minutesDiff"`
}

// dateOnly drops the time of day, keeping the calendar date as seen in t's location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalculateAge returns the age in whole years on now's calendar date.
func CalculateAge(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// IsLicenseExpired reports whether the license expired before today.
func IsLicenseExpired(expiry, now time.Time) bool {
	return dateOnly(expiry).Before(dateOnly(now))
}

// IsLicenseExpiredForRental reports whether the license expires before the rental ends.
func IsLicenseExpiredForRental(expiry, rentalEnd time.Time) bool {
	return dateOnly(expiry).Before(dateOnly(rentalEnd))
}

// CalculateTimingStatus classifies an arrival observed at now against the scheduled start.
func CalculateTimingStatus(scheduledStart, now time.Time, window TimingWindow) TimingStatus {
	diff := now.Sub(scheduledStart)
	switch {
	case diff > window.After:
		return TimingStatus{Status: TimingLate, MinutesDiff: int(diff.Minutes())}
	case -diff > window.Before:
		return TimingStatus{Status: TimingEarly, MinutesDiff: int((-diff).Minutes())}
	default:
		return TimingStatus{Status: TimingOnTime, MinutesDiff: int(math.Abs(diff.Minutes()))}
	}
}
