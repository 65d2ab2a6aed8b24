package form

import tea "charm.land/bubbletea/v2"

// Field is the interface implemented by all form field types.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() any    // string for text/date/select, bool for checkbox
	Label() string // Display label for the field

	// Validate runs the field's rule, marks the field as touched and returns
	// the resulting message ("" when valid).
	Validate() string
	// ErrorMessage returns the message from the last validation, if any.
	ErrorMessage() string
}
