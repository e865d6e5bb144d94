package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates the value is out of range or malformed.
	ErrValidationFailed = errors.New("validation failed")

	// ErrFileNotFound indicates an explicitly named settings file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")
)

// SettingError ties a failure to the setting path that caused it.
type SettingError struct {
	Path  string
	Value any
	Err   error
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("setting %s = %v: %v", e.Path, e.Value, e.Err)
}

func (e *SettingError) Unwrap() error {
	return e.Err
}
