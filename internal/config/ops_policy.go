package config

import (
	"fmt"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/ops"
)

// Policy converts the ops section into workflow thresholds. Unset photo types
// fall back to the default required set.
func (c OpsConfig) Policy() (ops.Policy, error) {
	p := ops.DefaultPolicy()
	p.MinimumAge = c.MinimumAge
	p.OnTime = ops.TimingWindow{Before: c.OnTimeBefore, After: c.OnTimeAfter}
	p.MinPrepPhotos = c.MinPrepPhotos

	if len(c.RequiredPhotoTypes) > 0 {
		types := make([]domain.PhotoType, 0, len(c.RequiredPhotoTypes))
		for _, raw := range c.RequiredPhotoTypes {
			t := domain.PhotoType(raw)
			if !t.IsValid() {
				return ops.Policy{}, fmt.Errorf("unknown photo type in ops.required_photo_types: %q", raw)
			}
			types = append(types, t)
		}
		p.RequiredPhotoTypes = types
	}
	return p, nil
}
