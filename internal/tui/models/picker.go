package models

import (
	"sort"
	"strings"

	"github.com/allbin/ttynamed"
	"github.com/allbin/ttynamed/internal/tui/components"
	"github.com/allbin/ttynamed/internal/tui/keys"
	"github.com/allbin/ttynamed/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

// PickerStep is the current stage of the picker
type PickerStep int

const (
	StepDevice PickerStep = iota
	StepName
	StepDone
	StepCancelled
)

const (
	columnPath         = "path"
	columnAlias        = "alias"
	columnManufacturer = "manufacturer"
	columnModel        = "model"
	columnSerial       = "serial"
)

// PickerModel lets the user choose a connected device and type an alias
// for it
type PickerModel struct {
	devices []ttynamed.PresentDevice
	table   table.Model
	input   *components.NameInput
	help    help.Model
	keys    keys.PickerKeys
	theme   styles.Theme

	step     PickerStep
	selected ttynamed.PresentDevice
	name     string
	err      error
}

// NewPickerModel builds a picker over every present device in listing.
// Colors follow r, which should be the renderer of the program's output.
func NewPickerModel(listing ttynamed.Listing, r *lipgloss.Renderer) *PickerModel {
	aliases := make(map[string][]string)
	var devices []ttynamed.PresentDevice
	for _, kp := range listing.KnownPresent {
		if _, seen := aliases[kp.Device.Path]; !seen {
			devices = append(devices, kp.Device)
		}
		aliases[kp.Device.Path] = append(aliases[kp.Device.Path], kp.Name)
	}
	devices = append(devices, listing.UnknownPresent...)
	sort.SliceStable(devices, func(i, j int) bool {
		return devices[i].Path < devices[j].Path
	})

	rows := make([]table.Row, 0, len(devices))
	for _, dev := range devices {
		rows = append(rows, table.NewRow(table.RowData{
			columnPath:         dev.Path,
			columnAlias:        strings.Join(aliases[dev.Path], ","),
			columnManufacturer: ttynamed.OptionalString(dev.Fingerprint.Manufacturer),
			columnModel:        ttynamed.OptionalString(dev.Fingerprint.Model),
			columnSerial:       ttynamed.OptionalString(dev.Fingerprint.Serial),
		}))
	}

	theme := styles.NewTheme(r)

	t := table.New([]table.Column{
		table.NewColumn(columnPath, "Device", 16),
		table.NewColumn(columnAlias, "Alias", 14),
		table.NewColumn(columnManufacturer, "Manufacturer", 24),
		table.NewColumn(columnModel, "Model", 24),
		table.NewColumn(columnSerial, "Serial", 22),
	}).
		WithRows(rows).
		WithPageSize(10).
		HeaderStyle(theme.Header).
		Focused(true)

	return &PickerModel{
		devices: devices,
		table:   t,
		input:   components.NewNameInput(theme),
		help:    help.New(),
		keys:    keys.NewPickerKeys(),
		theme:   theme,
		step:    StepDevice,
	}
}

// Result returns the chosen device and name once the picker finished
func (m *PickerModel) Result() (ttynamed.PresentDevice, string, bool) {
	if m.step != StepDone {
		return ttynamed.PresentDevice{}, "", false
	}
	return m.selected, m.name, true
}

// Step reports the current stage
func (m *PickerModel) Step() PickerStep {
	return m.step
}

func (m *PickerModel) Init() tea.Cmd {
	if len(m.devices) == 0 {
		m.step = StepCancelled
		return tea.Quit
	}
	return nil
}

func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.input.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.step = StepCancelled
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help) && m.step == StepDevice:
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		switch m.step {
		case StepDevice:
			return m.updateDevice(msg)
		case StepName:
			return m.updateName(msg)
		}
	}

	return m, nil
}

func (m *PickerModel) updateDevice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.step = StepCancelled
		return m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		path, _ := m.table.HighlightedRow().Data[columnPath].(string)
		for _, dev := range m.devices {
			if dev.Path == path {
				m.selected = dev
				m.step = StepName
				m.err = nil
				alias, _ := m.table.HighlightedRow().Data[columnAlias].(string)
				m.input.SetValue(strings.Split(alias, ",")[0])
				return m, m.input.Focus()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *PickerModel) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.input.Blur()
		m.step = StepDevice
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if err := m.input.Err(); err != nil {
			m.err = err
			return m, nil
		}
		m.name = m.input.Value()
		m.step = StepDone
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *PickerModel) View() string {
	switch m.step {
	case StepDone, StepCancelled:
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Select a USB TTY to name"))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.step == StepName {
		b.WriteString("\nAlias for " + m.selected.Path + ":\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(m.theme.Error.Render(m.err.Error()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}
