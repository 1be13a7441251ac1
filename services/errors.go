package services

import (
	"fmt"

	"speed-camera-registry/be/models"
)

// ValidationError reports a malformed field or query parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// DuplicateError reports that another camera already sits at Intersection.
type DuplicateError struct {
	Intersection models.Intersection
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("Camera already exists at %s and %s in zipcode %s",
		e.Intersection.CrossStreet1, e.Intersection.CrossStreet2, e.Intersection.Zipcode)
}

type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Camera %d not found", e.ID)
}
