package ttynamed

import (
	"errors"
	"fmt"
)

// Predefined error types for robust error handling
var (
	ErrUnknownAlias     = errors.New("not a known alias")
	ErrDeviceNotPresent = errors.New("not a connected USB TTY")
	ErrAmbiguousMatch   = errors.New("multiple devices match")
	ErrInvalidName      = errors.New("invalid alias name")
	ErrReservedName     = fmt.Errorf("%w: reserved command keyword", ErrInvalidName)
	ErrEnumeration      = errors.New("device enumeration failed")
	ErrInvalidConfig    = errors.New("invalid configuration")

	// USB-related errors
	ErrUSBInfoNotAvailable  = errors.New("USB device information not available")
	ErrUSBResetNotAvailable = errors.New("usbreset utility not available")

	// ErrSilent signals a failure that has already been reported to the user.
	ErrSilent = errors.New("")
)

// LoadError is returned when an existing alias store cannot be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading alias store %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError is returned when the alias store cannot be encoded or written.
// The previous file on disk is left untouched.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("error saving alias store %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// EnumerationError records a device whose properties could not be queried.
type EnumerationError struct {
	SysPath string
	Err     error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("querying %s: %v", e.SysPath, e.Err)
}

func (e *EnumerationError) Unwrap() []error { return []error{ErrEnumeration, e.Err} }
