package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/colonyops/signup/internal/core/styles"
)

// CheckboxField is a boolean toggle. space or x flips it.
type CheckboxField struct {
	label    string
	required string
	checked  bool
	focused  bool
	touched  bool
	message  string
}

// NewCheckboxField creates a checkbox. A non-empty required message makes
// the field invalid until it is checked.
func NewCheckboxField(label, required string) *CheckboxField {
	return &CheckboxField{label: label, required: required}
}

func (f *CheckboxField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "space", "x":
			f.SetChecked(!f.checked)
		}
	}
	return f, nil
}

func (f *CheckboxField) View() string {
	box := "[ ]"
	boxStyle := styles.TextMutedStyle
	if f.checked {
		box = "[x]"
		boxStyle = styles.TextSuccessStyle
	}

	labelStyle := styles.TextForegroundStyle
	if f.focused {
		labelStyle = styles.FormTitleStyle
	}

	parts := []string{boxStyle.Render(box) + " " + labelStyle.Render(f.label)}
	if f.message != "" {
		parts = append(parts, styles.FormErrorStyle.Render(f.message))
	}

	borderStyle := styles.FormFieldStyle
	if f.focused {
		borderStyle = styles.FormFieldFocusedStyle
	}
	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (f *CheckboxField) Focus() tea.Cmd {
	f.focused = true
	return nil
}

// Blur unfocuses the field and validates it.
func (f *CheckboxField) Blur() {
	f.focused = false
	f.Validate()
}

func (f *CheckboxField) Focused() bool        { return f.focused }
func (f *CheckboxField) Value() any           { return f.checked }
func (f *CheckboxField) Label() string        { return f.label }
func (f *CheckboxField) ErrorMessage() string { return f.message }

// Checked reports the toggle state.
func (f *CheckboxField) Checked() bool { return f.checked }

// SetChecked sets the toggle state.
func (f *CheckboxField) SetChecked(v bool) {
	f.checked = v
	if f.touched {
		f.run()
	}
}

func (f *CheckboxField) Validate() string {
	f.touched = true
	return f.run()
}

func (f *CheckboxField) run() string {
	f.message = ""
	if !f.checked && f.required != "" {
		f.message = f.required
	}
	return f.message
}
