package form

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/colonyops/signup/internal/core/styles"
)

// TextField is a single-line text input form field.
type TextField struct {
	input   textinput.Model
	label   string
	focused bool
	check   fieldCheck
}

// NewTextField creates a new single-line text input field.
func NewTextField(label, placeholder, defaultVal string, opts ...Option) *TextField {
	o := collectOptions(opts)

	ti := newInput(placeholder, o)
	if o.password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	if defaultVal != "" {
		ti.SetValue(defaultVal)
	}

	return &TextField{
		input: ti,
		label: label,
		check: fieldCheck{rule: o.rule},
	}
}

func newInput(placeholder string, o fieldOptions) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = o.charLimit
	ti.SetWidth(o.width)

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	ti.SetStyles(inputStyles)
	return ti
}

func (f *TextField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	prev := f.input.Value()

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)

	if v := f.input.Value(); v != prev {
		f.check.changed(v)
	}
	return f, cmd
}

func (f *TextField) View() string {
	return renderInput(f.label, f.input.View(), f.check.message, f.focused)
}

// renderInput draws the title, body and error line shared by the input fields.
func renderInput(label, body, message string, focused bool) string {
	titleStyle := styles.TextMutedStyle
	if focused {
		titleStyle = styles.FormTitleStyle
	}

	parts := []string{titleStyle.Render(label), body}
	if message != "" {
		parts = append(parts, styles.FormErrorStyle.Render(message))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	borderStyle := styles.FormFieldStyle
	if focused {
		borderStyle = styles.FormFieldFocusedStyle
	}

	return borderStyle.Render(content)
}

func (f *TextField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

// Blur unfocuses the field and validates it.
func (f *TextField) Blur() {
	f.focused = false
	f.input.Blur()
	f.check.validate(f.input.Value())
}

func (f *TextField) Focused() bool        { return f.focused }
func (f *TextField) Value() any           { return f.input.Value() }
func (f *TextField) Label() string        { return f.label }
func (f *TextField) ErrorMessage() string { return f.check.message }

func (f *TextField) Validate() string {
	return f.check.validate(f.input.Value())
}

// String returns the current value.
func (f *TextField) String() string { return f.input.Value() }

// SetValue replaces the current value.
func (f *TextField) SetValue(v string) {
	f.input.SetValue(v)
	f.check.changed(v)
}
