package components

import (
	"strings"

	"github.com/allbin/ttynamed"
	"github.com/allbin/ttynamed/internal/tui/colors"
	"github.com/allbin/ttynamed/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NameInput is a single line field for typing an alias name. It validates
// as the user types.
type NameInput struct {
	textInput textinput.Model
	theme     styles.Theme
	width     int
}

func NewNameInput(theme styles.Theme) *NameInput {
	ti := textinput.New()
	ti.Placeholder = "alias name"
	ti.CharLimit = 64
	ti.Prompt = "" // We handle prompt styling separately

	return &NameInput{
		textInput: ti,
		theme:     theme,
		width:     40,
	}
}

func (i *NameInput) SetWidth(width int) {
	// Account for: border(2) + padding(2) + prompt(2)
	usable := width - 6
	if usable < 20 {
		usable = 20
	}
	i.width = width
	i.textInput.Width = usable
}

func (i *NameInput) Focus() tea.Cmd {
	return i.textInput.Focus()
}

func (i *NameInput) Blur() {
	i.textInput.Blur()
}

func (i *NameInput) Value() string {
	return strings.TrimSpace(i.textInput.Value())
}

func (i *NameInput) SetValue(value string) {
	i.textInput.SetValue(value)
	i.textInput.CursorEnd()
}

// Err validates the current value
func (i *NameInput) Err() error {
	return ttynamed.ValidateName(i.Value())
}

func (i *NameInput) Update(msg tea.Msg) (*NameInput, tea.Cmd) {
	var cmd tea.Cmd
	i.textInput, cmd = i.textInput.Update(msg)
	return i, cmd
}

func (i *NameInput) View() string {
	// Green prompt and border while the name is acceptable
	promptColor := colors.Green
	if i.Value() != "" && i.Err() != nil {
		promptColor = colors.Red
	}

	prompt := lipgloss.NewStyle().
		Foreground(promptColor).
		Bold(true).
		Render(">")

	content := lipgloss.JoinHorizontal(lipgloss.Left, prompt, " ", i.textInput.View())

	return i.theme.Input.
		BorderForeground(promptColor).
		Width(i.width - 4).
		Render(content)
}
