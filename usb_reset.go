package ttynamed

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ResetDevice performs a USB-level reset of the device.
// This can recover hardware that is in a hung/unresponsive state
//
// Requirements:
// - usbreset utility must be installed (from usbutils package)
// - Requires appropriate permissions (typically root/sudo)
//
// Returns:
// - nil if reset successful
// - ErrUSBResetNotAvailable if usbreset utility not found
// - ErrUSBInfoNotAvailable if the bus/device numbers are unknown
// - error if reset fails
func ResetDevice(ctx context.Context, dev PresentDevice) error {
	usbPath, err := formatUSBPath(dev.BusNum, dev.DevNum)
	if err != nil {
		return err
	}

	if !IsUSBResetAvailable() {
		return ErrUSBResetNotAvailable
	}

	cmd := exec.CommandContext(ctx, "usbreset", usbPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("usbreset failed: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}

	// USB devices typically take 1-2 seconds to re-enumerate
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Second):
	}

	return nil
}

// IsUSBResetAvailable checks if usbreset utility is available in PATH
func IsUSBResetAvailable() bool {
	_, err := exec.LookPath("usbreset")
	return err == nil
}

// formatUSBPath builds the zero-padded BBB/DDD form usbreset expects.
func formatUSBPath(bus, dev string) (string, error) {
	busNum, err := strconv.Atoi(strings.TrimSpace(bus))
	if err != nil || busNum <= 0 {
		return "", ErrUSBInfoNotAvailable
	}
	devNum, err := strconv.Atoi(strings.TrimSpace(dev))
	if err != nil || devNum <= 0 {
		return "", ErrUSBInfoNotAvailable
	}
	return fmt.Sprintf("%03d/%03d", busNum, devNum), nil
}

// usbAddress walks up from a tty's sysfs directory to the USB device that
// owns it and returns its bus and device numbers.
func usbAddress(sysPath string) (bus, dev string) {
	resolved, err := filepath.EvalSymlinks(filepath.Join(sysPath, "device"))
	if err != nil {
		return "", ""
	}

	// tty -> interface -> usb device, but some drivers nest deeper
	for dir := resolved; dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		bus = readSysfsFile(filepath.Join(dir, "busnum"))
		if bus == "" {
			continue
		}
		return bus, readSysfsFile(filepath.Join(dir, "devnum"))
	}
	return "", ""
}

// readSysfsFile reads a sysfs attribute, returning "" if it cannot be read
func readSysfsFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
