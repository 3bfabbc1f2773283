// Package ttynamed finds USB serial (TTY) devices by friendly name instead of
// by their volatile /dev path.
//
// A device is identified by its Fingerprint: the manufacturer, model and
// serial number udev reports for it. Aliases map a name to a fingerprint and
// are kept in a small TOML file, so /dev/ttyUSB0 today and /dev/ttyUSB3
// tomorrow both resolve from the same name.
//
// # Basic Usage
//
// Resolve an alias to the device node it currently occupies:
//
//	devices, err := ttynamed.NewEnumerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session := &ttynamed.Session{
//	    StorePath: ttynamed.DefaultStorePath(),
//	    Devices:   devices,
//	}
//	path, err := session.Resolve(ctx, "arduino")
//
// # Discovery
//
// The Enumerator looks for driver-bound ttys under /sys/class/tty and asks
// udevadm for each one's properties. Only devices with ID_BUS=usb and a
// DEVNAME are kept. The property source is a PropertyQuerier, so tests and
// other platforms can substitute their own:
//
//	devices, err := ttynamed.NewEnumerator(
//	    ttynamed.WithSysRoot("/tmp/fake-sys"),
//	    ttynamed.WithQuerier(myQuerier),
//	    ttynamed.WithQueryTimeout(2*time.Second),
//	)
//
// A device whose query fails is skipped and reported in
// Enumeration.Failures; Session.Strict turns those into fatal errors.
//
// # Reconciliation
//
// Resolve, Add, Delete and Classify operate on an in-memory Store and a
// list of present devices. Add removes every alias already bound to the
// same fingerprint before inserting the new one, so a device never carries
// two names. Resolve never guesses: two matching devices is
// ErrAmbiguousMatch.
//
// # Error Handling
//
// Use errors.Is and errors.As:
//
//	var (
//	    ErrUnknownAlias     // name not in the store
//	    ErrDeviceNotPresent // no connected device matches
//	    ErrAmbiguousMatch   // more than one device matches
//	    ErrInvalidName      // name fails validation (ErrReservedName wraps it)
//	    ErrEnumeration      // a device property query failed
//	)
//
// Store failures are *LoadError and *SaveError. A failed save never
// overwrites the previous file.
package ttynamed
