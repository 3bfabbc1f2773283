package ttynamed

import (
	"fmt"
	"regexp"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ReservedNames are command keywords that can never be used as aliases,
// since `ttynamed <name>` must not be mistaken for a subcommand.
var ReservedNames = map[string]struct{}{
	"add":        {},
	"completion": {},
	"delete":     {},
	"help":       {},
	"list":       {},
	"reset":      {},
	"resolve":    {},
	"version":    {},
}

// ValidateName checks an alias name independently of any store state.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q may only contain letters, digits, '_' and '-'", ErrInvalidName, name)
	}
	if name[0] == '-' {
		return fmt.Errorf("%w: %q looks like a flag", ErrInvalidName, name)
	}
	if _, ok := ReservedNames[name]; ok {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	return nil
}
