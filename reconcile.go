package ttynamed

import (
	"fmt"
	"sort"
)

// KnownPresent pairs an alias with a connected device it matches.
type KnownPresent struct {
	Name   string
	Device PresentDevice
}

// Listing classifies every present device and every alias. A device shows
// up once per alias it matches, or in UnknownPresent if it matches none.
// An alias matching no device is in KnownMissing.
type Listing struct {
	KnownPresent   []KnownPresent
	UnknownPresent []PresentDevice
	KnownMissing   []Alias
}

// AddResult describes what Add changed.
type AddResult struct {
	Name   string
	Device PresentDevice

	// Created is true when name was not an alias before.
	Created bool

	// Previous is the fingerprint name was bound to before, if any.
	Previous *Fingerprint

	// Replaced lists other aliases that pointed at the same device and
	// were removed.
	Replaced []string
}

// Resolve returns the path of the one present device matching alias name.
func Resolve(store *Store, devices []PresentDevice, name string) (string, error) {
	fp, ok := store.Get(name)
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrUnknownAlias)
	}

	matches := matching(devices, fp)
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s: %w", name, ErrDeviceNotPresent)
	case 1:
		return matches[0].Path, nil
	default:
		return "", fmt.Errorf("found %d devices that could be %s: %w", len(matches), name, ErrAmbiguousMatch)
	}
}

// Add binds name to the device currently at path. Every alias already
// pointing at that device is removed first so a physical device never
// carries two aliases.
func Add(store *Store, devices []PresentDevice, path, name string) (AddResult, error) {
	if err := ValidateName(name); err != nil {
		return AddResult{}, err
	}

	var found []PresentDevice
	for _, dev := range devices {
		if dev.Path == path {
			found = append(found, dev)
		}
	}
	switch len(found) {
	case 0:
		return AddResult{}, fmt.Errorf("%s: %w", path, ErrDeviceNotPresent)
	case 1:
	default:
		return AddResult{}, fmt.Errorf("%d USB TTYs use %s: %w", len(found), path, ErrAmbiguousMatch)
	}
	dev := found[0]

	result := AddResult{Name: name, Device: dev}
	if prev, ok := store.Get(name); ok {
		prev = prev.Clone()
		result.Previous = &prev
	} else {
		result.Created = true
	}

	for _, alias := range store.Aliases() {
		if !alias.Fingerprint.Equal(dev.Fingerprint) {
			continue
		}
		store.Remove(alias.Name)
		if alias.Name != name {
			result.Replaced = append(result.Replaced, alias.Name)
		}
	}

	store.Set(name, dev.Fingerprint)
	return result, nil
}

// Delete removes alias name and returns the fingerprint it was bound to.
func Delete(store *Store, name string) (Fingerprint, error) {
	fp, ok := store.Get(name)
	if !ok {
		return Fingerprint{}, fmt.Errorf("%s: %w", name, ErrUnknownAlias)
	}
	store.Remove(name)
	return fp, nil
}

// Classify cross-references present devices with the store.
func Classify(store *Store, devices []PresentDevice) Listing {
	var listing Listing
	aliases := store.Aliases()
	seen := make(map[string]bool, len(aliases))

	for _, dev := range devices {
		matched := false
		for _, alias := range aliases {
			if alias.Fingerprint.Equal(dev.Fingerprint) {
				matched = true
				seen[alias.Name] = true
				listing.KnownPresent = append(listing.KnownPresent, KnownPresent{Name: alias.Name, Device: dev})
			}
		}
		if !matched {
			listing.UnknownPresent = append(listing.UnknownPresent, dev)
		}
	}

	for _, alias := range aliases {
		if !seen[alias.Name] {
			listing.KnownMissing = append(listing.KnownMissing, alias)
		}
	}

	sort.SliceStable(listing.KnownPresent, func(i, j int) bool {
		a, b := listing.KnownPresent[i], listing.KnownPresent[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Device.Path < b.Device.Path
	})
	sort.SliceStable(listing.UnknownPresent, func(i, j int) bool {
		return listing.UnknownPresent[i].Path < listing.UnknownPresent[j].Path
	})

	return listing
}

// Ambiguous returns the aliases that currently match more than one device.
func (l Listing) Ambiguous() map[string]bool {
	counts := make(map[string]int)
	for _, kp := range l.KnownPresent {
		counts[kp.Name]++
	}
	ambiguous := make(map[string]bool)
	for name, n := range counts {
		if n > 1 {
			ambiguous[name] = true
		}
	}
	return ambiguous
}

func matching(devices []PresentDevice, fp Fingerprint) []PresentDevice {
	var matches []PresentDevice
	for _, dev := range devices {
		if dev.Fingerprint.Equal(fp) {
			matches = append(matches, dev)
		}
	}
	return matches
}
