package ttynamed

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// udev property names
const (
	propBus          = "ID_BUS"
	propDevName      = "DEVNAME"
	propManufacturer = "ID_VENDOR_ENC"
	propModel        = "ID_MODEL_ENC"
	propSerial       = "ID_SERIAL_SHORT"
	propBusNum       = "BUSNUM"
	propDevNum       = "DEVNUM"
)

// DeviceLister produces the USB TTYs currently present on the host
type DeviceLister interface {
	Enumerate(ctx context.Context) (*Enumeration, error)
}

// Enumeration is the result of a single discovery pass.
type Enumeration struct {
	Devices []PresentDevice

	// Failures holds one entry per device whose properties could not be
	// read. Those devices are absent from Devices.
	Failures []*EnumerationError
}

// Err joins all per-device failures, or returns nil when there were none.
func (e *Enumeration) Err() error {
	if e == nil || len(e.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Enumerator discovers USB TTYs through sysfs and a PropertyQuerier
type Enumerator struct {
	config  Config
	querier PropertyQuerier
}

// NewEnumerator applies the options on top of DefaultConfig
func NewEnumerator(opts ...Option) (*Enumerator, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	querier := config.Querier
	if querier == nil {
		querier = &UdevadmQuerier{Command: "udevadm", Timeout: config.QueryTimeout}
	}

	return &Enumerator{config: config, querier: querier}, nil
}

// Candidates returns the sysfs directories of every driver-bound tty,
// e.g. /sys/class/tty/ttyUSB0. See https://stackoverflow.com/a/9914339
func (e *Enumerator) Candidates() ([]string, error) {
	pattern := filepath.Join(e.config.SysRoot, "class", "tty", "*", "device", "driver")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnumeration, err)
	}

	devs := make([]string, 0, len(matches))
	for _, match := range matches {
		// .../tty/ttyUSB0/device/driver -> .../tty/ttyUSB0
		devs = append(devs, filepath.Dir(filepath.Dir(match)))
	}
	sort.Strings(devs)

	return devs, nil
}

// Enumerate queries every candidate in turn. A device whose query fails is
// recorded in Failures and does not stop the others.
func (e *Enumerator) Enumerate(ctx context.Context) (*Enumeration, error) {
	candidates, err := e.Candidates()
	if err != nil {
		return nil, err
	}

	log := e.config.Logger
	result := &Enumeration{}

	for _, sysPath := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dev, ok, err := e.readDevice(ctx, sysPath)
		if err != nil {
			log.Warn().Err(err).Str("syspath", sysPath).Msg("skipping unreadable device")
			result.Failures = append(result.Failures, &EnumerationError{SysPath: sysPath, Err: err})
			continue
		}
		if !ok {
			log.Debug().Str("syspath", sysPath).Msg("ignoring non-USB tty")
			continue
		}

		log.Debug().Str("syspath", sysPath).Str("path", dev.Path).Msg("found USB tty")
		result.Devices = append(result.Devices, dev)
	}

	// TODO: collapse multiple tty nodes that belong to one physical device
	sort.SliceStable(result.Devices, func(i, j int) bool {
		return result.Devices[i].Path < result.Devices[j].Path
	})

	return result, nil
}

func (e *Enumerator) readDevice(ctx context.Context, sysPath string) (PresentDevice, bool, error) {
	r, err := e.querier.Query(ctx, sysPath)
	if err != nil {
		return PresentDevice{}, false, err
	}

	props, err := ParseProperties(r)
	if err != nil {
		return PresentDevice{}, false, fmt.Errorf("reading properties: %w", err)
	}

	dev, ok := DeviceFromProperties(props)
	if !ok {
		return PresentDevice{}, false, nil
	}

	dev.SysPath = sysPath
	if dev.BusNum == "" || dev.DevNum == "" {
		dev.BusNum, dev.DevNum = usbAddress(sysPath)
	}
	return dev, true, nil
}

// DeviceFromProperties builds a PresentDevice from udev properties. It
// returns false for anything that is not a USB device with a device node.
func DeviceFromProperties(props map[string]string) (PresentDevice, bool) {
	// Ignore anything except USB things
	if props[propBus] != "usb" {
		return PresentDevice{}, false
	}

	devName, ok := props[propDevName]
	if !ok {
		return PresentDevice{}, false
	}

	field := func(key string) *string {
		raw, ok := props[key]
		if !ok {
			return nil
		}
		decoded := DecodeProperty(raw)
		return &decoded
	}

	return PresentDevice{
		Fingerprint: Fingerprint{
			Manufacturer: field(propManufacturer),
			Model:        field(propModel),
			Serial:       field(propSerial),
		},
		Path:   devName,
		BusNum: props[propBusNum],
		DevNum: props[propDevNum],
	}, true
}
