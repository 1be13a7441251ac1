package services

import (
	"context"
	"strings"

	"speed-camera-registry/be/models"
	"speed-camera-registry/be/store"
)

// QueryEngine answers the read-only zipcode and street lookups.
type QueryEngine struct {
	store store.Store
}

func NewQueryEngine(s store.Store) *QueryEngine {
	return &QueryEngine{store: s}
}

// ByZipcode returns every camera in zipcode, or an empty slice.
func (q *QueryEngine) ByZipcode(ctx context.Context, zipcode string) ([]models.Camera, error) {
	if err := ValidateZipcode(zipcode); err != nil {
		return nil, err
	}
	return q.store.ListByZipcode(ctx, zipcode)
}

// SearchByStreet returns cameras in zipcode where street is a
// case-insensitive substring of either cross street.
func (q *QueryEngine) SearchByStreet(ctx context.Context, street, zipcode string) ([]models.Camera, error) {
	if street == "" {
		return nil, required("street")
	}
	if zipcode == "" {
		return nil, required("zipcode")
	}
	if err := ValidateZipcode(zipcode); err != nil {
		return nil, err
	}

	inZip, err := q.store.ListByZipcode(ctx, zipcode)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(street)
	matches := []models.Camera{}
	for _, c := range inZip {
		if strings.Contains(strings.ToLower(c.CrossStreet1), needle) ||
			strings.Contains(strings.ToLower(c.CrossStreet2), needle) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}
