package ttynamed

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// DefaultQueryTimeout bounds a single udevadm invocation.
const DefaultQueryTimeout = 5 * time.Second

// PropertyQuerier returns the device properties of a sysfs device as a
// stream of KEY='value' lines.
type PropertyQuerier interface {
	Query(ctx context.Context, sysPath string) (io.Reader, error)
}

// PropertyQuerierFunc adapts a function to PropertyQuerier.
type PropertyQuerierFunc func(ctx context.Context, sysPath string) (io.Reader, error)

func (f PropertyQuerierFunc) Query(ctx context.Context, sysPath string) (io.Reader, error) {
	return f(ctx, sysPath)
}

// UdevadmQuerier queries properties with `udevadm info -q property --export`.
type UdevadmQuerier struct {
	// Command defaults to "udevadm".
	Command string
	Timeout time.Duration
}

// NewUdevadmQuerier creates a querier with the default timeout
func NewUdevadmQuerier() *UdevadmQuerier {
	return &UdevadmQuerier{
		Command: "udevadm",
		Timeout: DefaultQueryTimeout,
	}
}

// Query runs udevadm for a single device, killing it after Timeout.
func (q *UdevadmQuerier) Query(ctx context.Context, sysPath string) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	command := q.Command
	if command == "" {
		command = "udevadm"
	}
	timeout := q.Timeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Resolve the full path to avoid depending on the shell
	cmdPath, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("command not found %s: %w", command, err)
	}

	args := []string{"info", "-q", "property", "--export", "-p", sysPath}
	cmd := exec.CommandContext(execCtx, cmdPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%s timed out after %s", command, timeout)
	}

	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return nil, fmt.Errorf("%s failed with exit code %d: %s",
				command, exitError.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%s failed: %w", command, err)
	}

	return &stdout, nil
}

// ParseProperties reads KEY='value' lines into a map. Lines without '='
// are ignored, and so are properties with an empty value.
func ParseProperties(r io.Reader) (map[string]string, error) {
	props := make(map[string]string)

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" || strings.ContainsAny(key, " \t") {
			continue
		}
		value = unquote(value)
		if value == "" {
			continue
		}
		props[key] = value
	}

	return props, scanner.Err()
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' || first == '"') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}
