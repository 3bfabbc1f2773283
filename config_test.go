package ttynamed

import (
	"errors"
	"testing"
	"time"
)

func TestWithQueryTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{"100ms (valid)", 100 * time.Millisecond, false},
		{"5s (valid)", 5 * time.Second, false},
		{"0 (invalid)", 0, true},
		{"-1s (negative)", -time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			opt := WithQueryTimeout(tt.timeout)
			err := opt(&config)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithQueryTimeout(%v) error = %v, wantErr %v", tt.timeout, err, tt.wantErr)
			}
			if err == nil && config.QueryTimeout != tt.timeout {
				t.Errorf("QueryTimeout = %v, want %v", config.QueryTimeout, tt.timeout)
			}
		})
	}
}

func TestNewEnumeratorRejectsInvalidOptions(t *testing.T) {
	if _, err := NewEnumerator(WithSysRoot("")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for empty sysroot, got %v", err)
	}
	if _, err := NewEnumerator(WithQuerier(nil)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil querier, got %v", err)
	}
}

func TestNewEnumeratorDefaultsToUdevadm(t *testing.T) {
	enumerator, err := NewEnumerator(WithQueryTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewEnumerator failed: %v", err)
	}

	q, ok := enumerator.querier.(*UdevadmQuerier)
	if !ok {
		t.Fatalf("Expected *UdevadmQuerier, got %T", enumerator.querier)
	}
	if q.Timeout != time.Second {
		t.Errorf("Timeout = %v, want 1s", q.Timeout)
	}
	if enumerator.config.SysRoot != "/sys" {
		t.Errorf("SysRoot = %q, want /sys", enumerator.config.SysRoot)
	}
}
