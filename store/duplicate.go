package store

import "speed-camera-registry/be/models"

// FindDuplicate reports the first camera in existing, other than candidate
// itself, that sits on the same intersection. Comparison is exact and
// case-sensitive.
func FindDuplicate(candidate models.Camera, existing []models.Camera) (models.Camera, bool) {
	key := candidate.Intersection()
	for _, c := range existing {
		if candidate.ID != 0 && c.ID == candidate.ID {
			continue
		}
		if c.Intersection() == key {
			return c, true
		}
	}
	return models.Camera{}, false
}
