package ttynamed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestReadSysfsFile tests the sysfs file reading helper
func TestReadSysfsFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		expected string
		setup    func(string) error
	}{
		{
			name:     "normal file",
			expected: "1234",
			setup: func(path string) error {
				return os.WriteFile(path, []byte("1234\n"), 0644)
			},
		},
		{
			name:     "file with spaces",
			expected: "test value",
			setup: func(path string) error {
				return os.WriteFile(path, []byte("  test value  \n"), 0644)
			},
		},
		{
			name:     "nonexistent file",
			expected: "",
			setup:    func(path string) error { return nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(tmpDir, tt.name)
			if err := tt.setup(testFile); err != nil {
				t.Fatalf("Setup failed: %v", err)
			}

			result := readSysfsFile(testFile)
			if result != tt.expected {
				t.Errorf("readSysfsFile() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

// TestUSBAddress tests bus/device lookup with a mock sysfs structure
func TestUSBAddress(t *testing.T) {
	tmpDir := t.TempDir()

	// tmpDir/class/tty/ttyUSB0/device -> tmpDir/devices/usb5/5-2.3.1/5-2.3.1:1.0/ttyUSB0
	devicePath := filepath.Join(tmpDir, "devices", "usb5", "5-2.3.1")
	interfacePath := filepath.Join(devicePath, "5-2.3.1:1.0")
	ttyPath := filepath.Join(interfacePath, "ttyUSB0")
	classTtyPath := filepath.Join(tmpDir, "class", "tty", "ttyUSB0")

	if err := os.MkdirAll(ttyPath, 0755); err != nil {
		t.Fatalf("Failed to create directory structure: %v", err)
	}
	if err := os.MkdirAll(classTtyPath, 0755); err != nil {
		t.Fatalf("Failed to create class/tty directory: %v", err)
	}

	for filename, content := range map[string]string{"busnum": "5", "devnum": "7"} {
		if err := os.WriteFile(filepath.Join(devicePath, filename), []byte(content+"\n"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", filename, err)
		}
	}

	if err := os.Symlink(ttyPath, filepath.Join(classTtyPath, "device")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	bus, dev := usbAddress(classTtyPath)
	if bus != "5" || dev != "7" {
		t.Errorf("usbAddress() = %q/%q, expected 5/7", bus, dev)
	}

	// Missing device link leaves both empty
	bus, dev = usbAddress(filepath.Join(tmpDir, "class", "tty", "ttyUSB9"))
	if bus != "" || dev != "" {
		t.Errorf("usbAddress() = %q/%q for missing device, expected empty", bus, dev)
	}
}

// TestFormatUSBPath tests the BBB/DDD formatting usbreset expects
func TestFormatUSBPath(t *testing.T) {
	tests := []struct {
		bus      string
		device   string
		expected string
		wantErr  bool
	}{
		{"5", "7", "005/007", false},
		{"001", "004", "001/004", false},
		{"123", "456", "123/456", false},
		{"1", "10", "001/010", false},
		{"", "7", "", true},
		{"5", "", "", true},
		{"x", "1", "", true},
	}

	for _, tt := range tests {
		formatted, err := formatUSBPath(tt.bus, tt.device)
		if (err != nil) != tt.wantErr {
			t.Errorf("formatUSBPath(%q, %q) error = %v, wantErr %v", tt.bus, tt.device, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUSBInfoNotAvailable) {
			t.Errorf("Expected ErrUSBInfoNotAvailable, got %v", err)
		}
		if formatted != tt.expected {
			t.Errorf("formatUSBPath(%q, %q) = %q, expected %q",
				tt.bus, tt.device, formatted, tt.expected)
		}
	}
}

// TestResetDeviceWithoutUSBInfo tests that a device without bus/device numbers is refused
func TestResetDeviceWithoutUSBInfo(t *testing.T) {
	err := ResetDevice(context.Background(), PresentDevice{Path: "/dev/ttyUSB0"})
	if !errors.Is(err, ErrUSBInfoNotAvailable) {
		t.Errorf("Expected ErrUSBInfoNotAvailable, got %v", err)
	}
}

// TestIsUSBResetAvailable tests the availability check
func TestIsUSBResetAvailable(t *testing.T) {
	t.Logf("usbreset available: %v", IsUSBResetAvailable())
}
