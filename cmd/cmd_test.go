package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/allbin/ttynamed"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureLister struct {
	devices []ttynamed.PresentDevice
}

func (l *fixtureLister) Enumerate(ctx context.Context) (*ttynamed.Enumeration, error) {
	return &ttynamed.Enumeration{Devices: l.devices}, nil
}

func strPtr(s string) *string { return &s }

var ftdi = ttynamed.NewFingerprint(strPtr("FTDI"), strPtr("FT232R USB UART"), strPtr("A50285BI"))

// run executes the root command against fixture devices and a temporary
// alias file, returning stdout, stderr and the error Execute would print
func run(t *testing.T, lister *fixtureLister, storePath string, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	original := newDeviceLister
	newDeviceLister = func(zerolog.Logger) (ttynamed.DeviceLister, error) { return lister, nil }
	t.Cleanup(func() { newDeviceLister = original })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", storePath}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestAddResolveDelete(t *testing.T) {
	lister := &fixtureLister{devices: []ttynamed.PresentDevice{{Path: "/dev/ttyUSB0", Fingerprint: ftdi}}}
	store := filepath.Join(t.TempDir(), "ttys")

	out, _, err := run(t, lister, store, "add", "/dev/ttyUSB0", "ftdi")
	require.NoError(t, err)
	assert.Contains(t, out, "Added ftdi for /dev/ttyUSB0")

	out, _, err = run(t, lister, store, "ftdi")
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0\n", out)

	// Device moved to another node
	lister.devices[0].Path = "/dev/ttyUSB3"
	out, _, err = run(t, lister, store, "resolve", "ftdi")
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB3\n", out)

	out, _, err = run(t, lister, store, "delete", "ftdi")
	require.NoError(t, err)
	assert.Equal(t, "ftdi was removed successfully!\n", out)

	_, _, err = run(t, lister, store, "ftdi")
	assert.ErrorIs(t, err, ttynamed.ErrUnknownAlias)
}

func TestAddReportsReplacedAlias(t *testing.T) {
	lister := &fixtureLister{devices: []ttynamed.PresentDevice{{Path: "/dev/ttyUSB0", Fingerprint: ftdi}}}
	store := filepath.Join(t.TempDir(), "ttys")

	_, _, err := run(t, lister, store, "add", "/dev/ttyUSB0", "old")
	require.NoError(t, err)

	out, _, err := run(t, lister, store, "add", "/dev/ttyUSB0", "new")
	require.NoError(t, err)
	assert.Contains(t, out, "Replaced previous alias(es) for this device: old")

	_, _, err = run(t, lister, store, "old")
	assert.ErrorIs(t, err, ttynamed.ErrUnknownAlias)
}

func TestAddRejectsReservedName(t *testing.T) {
	lister := &fixtureLister{devices: []ttynamed.PresentDevice{{Path: "/dev/ttyUSB0", Fingerprint: ftdi}}}
	store := filepath.Join(t.TempDir(), "ttys")

	_, _, err := run(t, lister, store, "add", "/dev/ttyUSB0", "list")
	assert.ErrorIs(t, err, ttynamed.ErrReservedName)

	_, statErr := os.Stat(store)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "nothing should be written")
}

func TestAddArgs(t *testing.T) {
	store := filepath.Join(t.TempDir(), "ttys")

	_, _, err := run(t, &fixtureLister{}, store, "add", "/dev/ttyUSB0")
	assert.Error(t, err)

	_, _, err = run(t, &fixtureLister{}, store, "add", "--interactive", "/dev/ttyUSB0", "x")
	assert.Error(t, err)
}

func TestDeleteUnknown(t *testing.T) {
	_, _, err := run(t, &fixtureLister{}, filepath.Join(t.TempDir(), "ttys"), "delete", "ghost")
	assert.ErrorIs(t, err, ttynamed.ErrUnknownAlias)
	assert.Contains(t, err.Error(), "was not deleted")
}

func TestList(t *testing.T) {
	clone := ttynamed.NewFingerprint(strPtr("QinHeng"), strPtr("CH340"), nil)
	lister := &fixtureLister{devices: []ttynamed.PresentDevice{
		{Path: "/dev/ttyUSB0", Fingerprint: ftdi},
		{Path: "/dev/ttyUSB1", Fingerprint: clone},
	}}
	store := filepath.Join(t.TempDir(), "ttys")

	_, _, err := run(t, lister, store, "add", "/dev/ttyUSB0", "ftdi")
	require.NoError(t, err)

	lister.devices = lister.devices[1:]
	out, _, err := run(t, lister, store, "list")
	require.NoError(t, err)

	// Unaliased rows start with an empty alias cell, so only the final newline is trimmed
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "\t/dev/ttyUSB1\tQinHeng\tCH340\tNone", lines[0])
	assert.Equal(t, "ftdi\t(Not present)\tFTDI\tFT232R USB UART\tA50285BI", lines[1])

	out, _, err = run(t, lister, store, "list", "--table")
	require.NoError(t, err)
	assert.Contains(t, out, "1 USB TTY(s), 1 alias(es) missing")
}

func TestListCorruptStore(t *testing.T) {
	lister := &fixtureLister{devices: []ttynamed.PresentDevice{{Path: "/dev/ttyUSB0", Fingerprint: ftdi}}}
	store := filepath.Join(t.TempDir(), "ttys")
	require.NoError(t, os.WriteFile(store, []byte("not = [valid"), 0o644))

	out, stderr, err := run(t, lister, store, "list")
	assert.ErrorIs(t, err, ttynamed.ErrSilent)
	assert.Contains(t, stderr, "error loading alias store")
	assert.Contains(t, out, "/dev/ttyUSB0\tFTDI\tFT232R USB UART\tA50285BI")
}

func TestRootWithoutArgsPrintsHelp(t *testing.T) {
	out, _, err := run(t, &fixtureLister{}, filepath.Join(t.TempDir(), "ttys"))
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestSubcommandsAreReservedNames(t *testing.T) {
	for _, sub := range rootCmd.Commands() {
		_, reserved := ttynamed.ReservedNames[sub.Name()]
		assert.True(t, reserved, "subcommand %q must not be usable as an alias", sub.Name())
	}
}
