package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrNoProductID = errors.New("product has no id")
)

// requireField returns a validation error naming field when value is blank.
func requireField(field, value string) error {
	if isBlank(value) {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return nil
}
