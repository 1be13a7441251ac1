package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"speed-camera-registry/be/models"
)

const (
	MaxStreetLength = 100
	MinSpeedLimit   = 5
	MaxSpeedLimit   = 85
	ZipcodeLength   = 5
)

// ValidateCreate requires every field and returns the camera they describe.
func ValidateCreate(in models.CameraPatch) (models.Camera, error) {
	switch {
	case in.CrossStreet1 == nil:
		return models.Camera{}, required("cross_street_1")
	case in.CrossStreet2 == nil:
		return models.Camera{}, required("cross_street_2")
	case in.Zipcode == nil:
		return models.Camera{}, required("zipcode")
	case in.SpeedLimit == nil:
		return models.Camera{}, required("speed_limit")
	case in.Direction == nil:
		return models.Camera{}, required("direction")
	}

	if err := ValidatePatch(in); err != nil {
		return models.Camera{}, err
	}
	return in.Apply(models.Camera{}), nil
}

// ValidatePatch checks the fields present in p, stopping at the first
// failure. Absent fields are not inspected.
func ValidatePatch(p models.CameraPatch) error {
	if p.CrossStreet1 != nil {
		if err := validateStreet("cross_street_1", *p.CrossStreet1); err != nil {
			return err
		}
	}
	if p.CrossStreet2 != nil {
		if err := validateStreet("cross_street_2", *p.CrossStreet2); err != nil {
			return err
		}
	}
	if p.Zipcode != nil {
		if err := ValidateZipcode(*p.Zipcode); err != nil {
			return err
		}
	}
	if p.SpeedLimit != nil {
		if v := *p.SpeedLimit; v < MinSpeedLimit || v > MaxSpeedLimit {
			return &ValidationError{
				Field:   "speed_limit",
				Message: fmt.Sprintf("must be between %d and %d", MinSpeedLimit, MaxSpeedLimit),
			}
		}
	}
	if p.Direction != nil && !models.IsDirection(*p.Direction) {
		return &ValidationError{
			Field:   "direction",
			Message: fmt.Sprintf("must be one of %s", strings.Join(models.Directions, ", ")),
		}
	}
	return nil
}

// ValidateZipcode accepts exactly five ASCII digits.
func ValidateZipcode(zipcode string) error {
	if len(zipcode) != ZipcodeLength {
		return invalidZipcode()
	}
	for i := 0; i < len(zipcode); i++ {
		if zipcode[i] < '0' || zipcode[i] > '9' {
			return invalidZipcode()
		}
	}
	return nil
}

func validateStreet(field, value string) error {
	n := utf8.RuneCountInString(value)
	if n < 1 || n > MaxStreetLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between 1 and %d characters", MaxStreetLength),
		}
	}
	return nil
}

func invalidZipcode() error {
	return &ValidationError{Field: "zipcode", Message: "must be exactly 5 digits"}
}

func required(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}
