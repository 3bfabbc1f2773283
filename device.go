package ttynamed

import "strings"

// Fingerprint is the identity inherent to a USB TTY device; notably not
// including the /dev path it is currently allocated to. A nil field means
// the device did not report that property.
type Fingerprint struct {
	Manufacturer *string `toml:"manufacturer,omitempty"`
	Model        *string `toml:"model,omitempty"`
	Serial       *string `toml:"serial,omitempty"`
}

// NewFingerprint builds a fingerprint from optional identity fields.
func NewFingerprint(manufacturer, model, serial *string) Fingerprint {
	return Fingerprint{
		Manufacturer: cloneString(manufacturer),
		Model:        cloneString(model),
		Serial:       cloneString(serial),
	}
}

// Equal reports whether both fingerprints have the same fields. An absent
// field only equals another absent field.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return equalOptional(f.Manufacturer, other.Manufacturer) &&
		equalOptional(f.Model, other.Model) &&
		equalOptional(f.Serial, other.Serial)
}

// Complete reports whether all three identity fields are present.
func (f Fingerprint) Complete() bool {
	return f.Manufacturer != nil && f.Model != nil && f.Serial != nil
}

// Clone returns a deep copy.
func (f Fingerprint) Clone() Fingerprint {
	return NewFingerprint(f.Manufacturer, f.Model, f.Serial)
}

func (f Fingerprint) String() string {
	return strings.Join([]string{
		OptionalString(f.Manufacturer),
		OptionalString(f.Model),
		OptionalString(f.Serial),
	}, " / ")
}

// OptionalString renders an optional field, using "None" for absent values.
func OptionalString(s *string) string {
	if s == nil {
		return "None"
	}
	return *s
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// PresentDevice is a USB TTY currently connected to the host.
type PresentDevice struct {
	Fingerprint Fingerprint

	// Path is the device node, e.g. /dev/ttyUSB0.
	Path string

	// SysPath, BusNum and DevNum describe where the device sits on the
	// host. They never take part in identity matching.
	SysPath string
	BusNum  string
	DevNum  string
}
