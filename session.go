package ttynamed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Session runs one command to completion: load the store, enumerate
// devices, reconcile, and persist when the store was changed.
type Session struct {
	StorePath string
	Devices   DeviceLister

	// Strict turns any per-device enumeration failure into a fatal error.
	Strict bool

	Logger zerolog.Logger
}

func (s *Session) enumerate(ctx context.Context) ([]PresentDevice, error) {
	result, err := s.Devices.Enumerate(ctx)
	if err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		if s.Strict {
			return nil, err
		}
		s.Logger.Warn().Int("failed", len(result.Failures)).Msg("some devices could not be queried")
	}
	return result.Devices, nil
}

// Resolve returns the current device path of alias name.
func (s *Session) Resolve(ctx context.Context, name string) (string, error) {
	store, err := LoadStore(s.StorePath)
	if err != nil {
		return "", err
	}
	devices, err := s.enumerate(ctx)
	if err != nil {
		return "", err
	}
	return Resolve(store, devices, name)
}

// Add binds name to the device at path and saves the store.
func (s *Session) Add(ctx context.Context, path, name string) (AddResult, error) {
	if err := ValidateName(name); err != nil {
		return AddResult{}, err
	}

	store, err := LoadStore(s.StorePath)
	if err != nil {
		return AddResult{}, err
	}
	devices, err := s.enumerate(ctx)
	if err != nil {
		return AddResult{}, err
	}

	result, err := Add(store, devices, path, name)
	if err != nil {
		return AddResult{}, err
	}
	if err := store.Save(s.StorePath); err != nil {
		return AddResult{}, err
	}

	s.Logger.Debug().Str("name", name).Str("path", path).
		Bool("created", result.Created).Strs("replaced", result.Replaced).
		Msg("alias saved")
	return result, nil
}

// Delete removes alias name and saves the store. Nothing is written when
// the alias does not exist.
func (s *Session) Delete(ctx context.Context, name string) (Fingerprint, error) {
	store, err := LoadStore(s.StorePath)
	if err != nil {
		return Fingerprint{}, err
	}

	fp, err := Delete(store, name)
	if err != nil {
		return Fingerprint{}, err
	}
	if err := store.Save(s.StorePath); err != nil {
		return Fingerprint{}, err
	}
	return fp, nil
}

// List classifies present devices against the store. If the store cannot
// be loaded, the present devices are still returned, as UnknownPresent,
// together with the load error.
func (s *Session) List(ctx context.Context) (Listing, error) {
	store, loadErr := LoadStore(s.StorePath)

	devices, err := s.enumerate(ctx)
	if err != nil {
		return Listing{}, err
	}

	if loadErr != nil {
		return Classify(NewStore(), devices), loadErr
	}
	return Classify(store, devices), nil
}

// Reset resolves alias name and performs a USB reset of that device.
func (s *Session) Reset(ctx context.Context, name string) (PresentDevice, error) {
	store, err := LoadStore(s.StorePath)
	if err != nil {
		return PresentDevice{}, err
	}
	devices, err := s.enumerate(ctx)
	if err != nil {
		return PresentDevice{}, err
	}

	path, err := Resolve(store, devices, name)
	if err != nil {
		return PresentDevice{}, err
	}
	for _, dev := range devices {
		if dev.Path == path {
			if err := ResetDevice(ctx, dev); err != nil {
				return dev, fmt.Errorf("resetting %s (%s): %w", name, path, err)
			}
			return dev, nil
		}
	}
	return PresentDevice{}, fmt.Errorf("%s: %w", name, ErrDeviceNotPresent)
}
