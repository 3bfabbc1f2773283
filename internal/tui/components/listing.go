package components

import (
	"fmt"
	"io"
	"strings"

	"github.com/allbin/ttynamed"
	"github.com/allbin/ttynamed/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const notPresent = "(Not present)"

// ListingRow is one printable line of a listing
type ListingRow struct {
	Status       styles.Status
	Name         string
	Path         string
	Manufacturer string
	Model        string
	Serial       string
}

func (r ListingRow) cells() []string {
	return []string{r.Name, r.Path, r.Manufacturer, r.Model, r.Serial}
}

// ListingRows flattens a listing into rows: aliased devices first, then
// unaliased devices, then aliases whose device is not connected.
func ListingRows(listing ttynamed.Listing) []ListingRow {
	ambiguous := listing.Ambiguous()
	rows := make([]ListingRow, 0,
		len(listing.KnownPresent)+len(listing.UnknownPresent)+len(listing.KnownMissing))

	for _, kp := range listing.KnownPresent {
		status := styles.StatusKnownPresent
		if ambiguous[kp.Name] {
			status = styles.StatusKnownAmbiguous
		}
		rows = append(rows, newRow(status, kp.Name, kp.Device.Path, kp.Device.Fingerprint))
	}

	for _, dev := range listing.UnknownPresent {
		status := styles.StatusUnknownPresent
		if !dev.Fingerprint.Complete() {
			status = styles.StatusUnknownIncomplete
		}
		rows = append(rows, newRow(status, "", dev.Path, dev.Fingerprint))
	}

	for _, alias := range listing.KnownMissing {
		rows = append(rows, newRow(styles.StatusKnownMissing, alias.Name, notPresent, alias.Fingerprint))
	}

	return rows
}

func newRow(status styles.Status, name, path string, fp ttynamed.Fingerprint) ListingRow {
	return ListingRow{
		Status:       status,
		Name:         name,
		Path:         path,
		Manufacturer: ttynamed.OptionalString(fp.Manufacturer),
		Model:        ttynamed.OptionalString(fp.Model),
		Serial:       ttynamed.OptionalString(fp.Serial),
	}
}

// ListingRenderer prints listings to a single output
type ListingRenderer struct {
	out   io.Writer
	theme styles.Theme
}

// NewListingRenderer creates a renderer whose colors follow the
// capabilities of out
func NewListingRenderer(out io.Writer) *ListingRenderer {
	return &ListingRenderer{
		out:   out,
		theme: styles.NewTheme(lipgloss.NewRenderer(out)),
	}
}

// RenderPlain prints one tab separated line per row
func (lr *ListingRenderer) RenderPlain(listing ttynamed.Listing) error {
	for _, row := range ListingRows(listing) {
		// Styles expand tabs, so only the cells are styled
		style := lr.theme.StatusStyle(row.Status)
		cells := row.cells()
		for i, cell := range cells {
			cells[i] = style.Render(cell)
		}
		if _, err := fmt.Fprintln(lr.out, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// RenderDevices prints present devices without alias information, for
// when the alias store could not be read
func (lr *ListingRenderer) RenderDevices(devices []ttynamed.PresentDevice) error {
	for _, dev := range devices {
		row := newRow(styles.StatusUnknownPresent, "", dev.Path, dev.Fingerprint)
		if _, err := fmt.Fprintln(lr.out, strings.Join(row.cells()[1:], "\t")); err != nil {
			return err
		}
	}
	return nil
}

// RenderTable prints the listing as a bordered table
func (lr *ListingRenderer) RenderTable(listing ttynamed.Listing) error {
	rows := ListingRows(listing)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(lr.out, "No USB TTYs or aliases found")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lr.theme.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lr.theme.Header
			}
			return lr.theme.Cell
		}).
		Headers("Alias", "Device", "Manufacturer", "Model", "Serial")

	for _, row := range rows {
		style := lr.theme.StatusStyle(row.Status)
		cells := row.cells()
		for i, cell := range cells {
			cells[i] = style.Render(cell)
		}
		t.Row(cells...)
	}

	title := fmt.Sprintf("%d USB TTY(s), %d alias(es) missing", presentCount(listing), len(listing.KnownMissing))
	if _, err := fmt.Fprintln(lr.out, lr.theme.Title.Render(title)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(lr.out, t.Render())
	return err
}

// presentCount counts distinct devices; a device matching two aliases
// appears twice in KnownPresent
func presentCount(listing ttynamed.Listing) int {
	paths := make(map[string]struct{})
	for _, kp := range listing.KnownPresent {
		paths[kp.Device.Path] = struct{}{}
	}
	for _, dev := range listing.UnknownPresent {
		paths[dev.Path] = struct{}{}
	}
	return len(paths)
}
