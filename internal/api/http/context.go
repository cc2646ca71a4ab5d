package http

import (
	"context"

	"rental-ops-backend/internal/security"
)

type ctxKey int

const staffClaimsKey ctxKey = iota

func withStaff(ctx context.Context, claims *security.StaffClaims) context.Context {
	return context.WithValue(ctx, staffClaimsKey, claims)
}

// StaffFromContext returns the authenticated staff member, if any.
func StaffFromContext(ctx context.Context) (*security.StaffClaims, bool) {
	claims, ok := ctx.Value(staffClaimsKey).(*security.StaffClaims)
	return claims, ok && claims != nil
}

func staffID(ctx context.Context) int32 {
	if claims, ok := StaffFromContext(ctx); ok {
		return claims.StaffID
	}
	return 0
}
