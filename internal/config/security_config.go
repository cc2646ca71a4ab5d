package config

import "rental-ops-backend/internal/domain"

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecurityAccess                       // Any signed-in staff member
	SecurityManager                      // Manager role required
)

// EndpointSecurityConfig maps "METHOD route-template" to the required level
var EndpointSecurityConfig = map[string]SecurityLevel{
	"POST /api/v1/auth/login": SecurityPublic,
	"GET /healthz":            SecurityPublic,

	"GET /api/v1/bookings/{id}/workflow":              SecurityAccess,
	"GET /api/v1/bookings/{id}/modifications":         SecurityAccess,
	"POST /api/v1/bookings/{id}/intake/review":        SecurityAccess,
	"PUT /api/v1/bookings/{id}/checkin":               SecurityAccess,
	"POST /api/v1/bookings/{id}/modification/preview": SecurityAccess,
	"POST /api/v1/bookings/{id}/modification":         SecurityAccess,
	"POST /api/v1/bookings/{id}/activate":             SecurityAccess,
	"POST /api/v1/bookings/{id}/dispatch":             SecurityAccess,
	"GET /api/v1/bookings/{id}/photos":                SecurityAccess,
	"PUT /api/v1/bookings/{id}/photos/{phase}/{type}": SecurityAccess,
	"GET /api/v1/files":                               SecurityAccess,
	"GET /api/v1/pickups":                             SecurityAccess,

	// Manual status overrides skip the workflow.
	"PUT /api/v1/bookings/{id}/status": SecurityManager,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityManager
}

// RoleAllowed reports whether a staff role satisfies a security level.
func RoleAllowed(level SecurityLevel, role domain.StaffRole) bool {
	switch level {
	case SecurityPublic:
		return true
	case SecurityAccess:
		return role == domain.StaffRoleDesk || role == domain.StaffRoleDelivery || role == domain.StaffRoleManager
	default:
		return role == domain.StaffRoleManager
	}
}
