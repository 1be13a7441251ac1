// Package store persists camera records.
//
// Every implementation performs the duplicate check and the write as one
// atomic step, so two concurrent writers can never both commit the same
// intersection.
package store

import (
	"context"
	"errors"

	"speed-camera-registry/be/models"
)

var (
	ErrNotFound  = errors.New("camera not found")
	ErrDuplicate = errors.New("camera already exists at intersection")
)

// DuplicateError carries the camera that collided, as it would have been
// written. It matches ErrDuplicate under errors.Is.
type DuplicateError struct {
	Camera models.Camera
}

func (e *DuplicateError) Error() string { return ErrDuplicate.Error() }

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

func duplicateOf(err error, c models.Camera) error {
	if errors.Is(err, ErrDuplicate) {
		return &DuplicateError{Camera: c}
	}
	return err
}

// Store is a keyed collection of cameras.
type Store interface {
	// Create assigns the next id and inserts c unless its intersection is
	// already taken.
	Create(ctx context.Context, c models.Camera) (models.Camera, error)
	Get(ctx context.Context, id uint) (models.Camera, error)
	// Update merges patch onto the stored camera and writes it back unless
	// the merged intersection belongs to another camera.
	Update(ctx context.Context, id uint, patch models.CameraPatch) (models.Camera, error)
	Delete(ctx context.Context, id uint) error
	// Scan returns every camera ordered by id.
	Scan(ctx context.Context) ([]models.Camera, error)
	ListByZipcode(ctx context.Context, zipcode string) ([]models.Camera, error)
	Ping(ctx context.Context) error
}
