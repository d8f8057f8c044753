package util

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// ValidationError represents a configuration field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateRequired checks that a string field is not empty.
func ValidateRequired(field, value string) *ValidationError {
	if value == "" {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	}
	return nil
}

// ValidateRange checks that an integer is within bounds.
func ValidateRange(field string, value, minVal, maxVal int) *ValidationError {
	if value < minVal || value > maxVal {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %d and %d, got %d", field, minVal, maxVal, value),
		}
	}
	return nil
}

// ValidatePositive checks that a float64 is finite and greater than zero.
func ValidatePositive(field string, value float64) *ValidationError {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be a positive number, got %v", field, value),
		}
	}
	return nil
}

// ValidateDir checks that path names an existing directory.
func ValidateDir(field, path string) *ValidationError {
	if v := ValidateRequired(field, path); v != nil {
		return v
	}
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s: %v", field, err)}
	}
	if !info.IsDir() {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s: %s is not a directory", field, path)}
	}
	return nil
}

// ValidateParentDir checks that the directory that would contain path exists.
func ValidateParentDir(field, path string) *ValidationError {
	if v := ValidateRequired(field, path); v != nil {
		return v
	}
	return ValidateDir(field, filepath.Dir(path))
}
