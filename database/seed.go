package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"speed-camera-registry/be/models"
	"speed-camera-registry/be/store"
)

// SampleCameras are well-known intersections loaded into an empty registry.
var SampleCameras = []models.Camera{
	{CrossStreet1: "5th Ave", CrossStreet2: "W 42nd St", Zipcode: "10036", SpeedLimit: 25, Direction: "N"},
	{CrossStreet1: "Broadway", CrossStreet2: "W 34th St", Zipcode: "10001", SpeedLimit: 25, Direction: "S"},
	{CrossStreet1: "Park Ave", CrossStreet2: "E 59th St", Zipcode: "10022", SpeedLimit: 30, Direction: "E"},
	{CrossStreet1: "Madison Ave", CrossStreet2: "E 72nd St", Zipcode: "10021", SpeedLimit: 25, Direction: "W"},
	{CrossStreet1: "Wilshire Blvd", CrossStreet2: "S Beverly Dr", Zipcode: "90212", SpeedLimit: 35, Direction: "W"},
	{CrossStreet1: "Sunset Blvd", CrossStreet2: "N Highland Ave", Zipcode: "90028", SpeedLimit: 35, Direction: "E"},
	{CrossStreet1: "Michigan Ave", CrossStreet2: "E Randolph St", Zipcode: "60601", SpeedLimit: 30, Direction: "N"},
	{CrossStreet1: "State St", CrossStreet2: "W Madison St", Zipcode: "60602", SpeedLimit: 25, Direction: "S"},
	{CrossStreet1: "Market St", CrossStreet2: "5th St", Zipcode: "94103", SpeedLimit: 25, Direction: "NE"},
	{CrossStreet1: "Lombard St", CrossStreet2: "Hyde St", Zipcode: "94133", SpeedLimit: 15, Direction: "E"},
}

// Seed inserts SampleCameras when s holds no cameras. It returns the number
// of cameras created.
func Seed(ctx context.Context, s store.Store, log *slog.Logger) (int, error) {
	existing, err := s.Scan(ctx)
	if err != nil {
		return 0, fmt.Errorf("count cameras: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	created := 0
	for _, c := range SampleCameras {
		if _, err := s.Create(ctx, c); err != nil {
			// Another replica may be seeding concurrently.
			if errors.Is(err, store.ErrDuplicate) {
				continue
			}
			return created, fmt.Errorf("seed camera at %s and %s: %w", c.CrossStreet1, c.CrossStreet2, err)
		}
		created++
	}

	log.Info("sample cameras seeded", "count", created)
	return created, nil
}
