package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/colonyops/signup/internal/core/styles"
)

// DefaultHelp is the key hint rendered under the fields.
const DefaultHelp = "tab: next  shift+tab: prev  enter: submit  esc: cancel"

// filterer is an optional interface for fields that support list filtering.
type filterer interface {
	IsFiltering() bool
}

// Dialog is a form container that manages focus cycling, submission, and
// cancellation across a set of form fields. Submission is refused while any
// field is invalid; the first invalid field receives focus instead.
type Dialog struct {
	fields       []Field
	variables    []string // parallel slice: variable name for each field
	focusedField int
	submitted    bool
	cancelled    bool
	attempts     int
	failed       []string
	Title        string
	Help         string
}

// NewDialog creates a form dialog with the given fields and variable names.
// The first field is focused automatically.
func NewDialog(title string, fields []Field, variables []string) *Dialog {
	d := &Dialog{
		fields:    fields,
		variables: variables,
		Title:     title,
		Help:      DefaultHelp,
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return d
}

// Update handles key input for the dialog, managing focus cycling and submit/cancel.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d.broadcast(msg)
	}

	switch keyMsg.String() {
	case "tab":
		return d.advanceFocus()
	case "shift+tab":
		return d.retreatFocus()
	case "enter":
		if d.isFocusedFieldFiltering() {
			// enter accepts the filter
			return d.updateFocusedField(msg)
		}
		return d.advanceFocus()
	case "esc":
		if d.isFocusedFieldFiltering() {
			// Let the field handle esc to exit filter mode
			return d.updateFocusedField(msg)
		}
		d.cancelled = true
		return d, nil
	}

	return d.updateFocusedField(msg)
}

// View renders all fields vertically with spacing and help text.
func (d *Dialog) View() string {
	var parts []string
	for i, field := range d.fields {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, field.View())
	}

	if d.Help != "" {
		parts = append(parts, "", styles.TextMutedStyle.Render(d.Help))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// FormValues returns a map of variable names to field values.
func (d *Dialog) FormValues() map[string]any {
	result := make(map[string]any, len(d.fields))
	for i, field := range d.fields {
		result[d.variables[i]] = field.Value()
	}
	return result
}

// Field returns the field registered under variable name.
func (d *Dialog) Field(name string) (Field, bool) {
	for i, v := range d.variables {
		if v == name {
			return d.fields[i], true
		}
	}
	return nil, false
}

// FocusedName returns the variable name of the focused field.
func (d *Dialog) FocusedName() string {
	if len(d.fields) == 0 {
		return ""
	}
	return d.variables[d.focusedField]
}

// Submitted returns whether the form was submitted.
func (d *Dialog) Submitted() bool { return d.submitted }

// Cancelled returns whether the form was cancelled.
func (d *Dialog) Cancelled() bool { return d.cancelled }

// Attempts counts how often submission was tried, successful or not.
func (d *Dialog) Attempts() int { return d.attempts }

// Failed returns the variable names that blocked the last submission attempt.
func (d *Dialog) Failed() []string { return d.failed }

// Reopen clears the submitted and cancelled flags so the dialog can be
// edited again, e.g. after a failed submission or when navigating back.
func (d *Dialog) Reopen() tea.Cmd {
	d.submitted = false
	d.cancelled = false
	if len(d.fields) == 0 {
		return nil
	}
	return d.fields[d.focusedField].Focus()
}

// Invalid validates every field and returns the variable names of the
// invalid ones in field order.
func (d *Dialog) Invalid() []string {
	var names []string
	for i, field := range d.fields {
		if field.Validate() != "" {
			names = append(names, d.variables[i])
		}
	}
	return names
}

func (d *Dialog) advanceFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	next := d.focusedField + 1
	if next >= len(d.fields) {
		return d.trySubmit()
	}

	return d, d.focus(next)
}

func (d *Dialog) trySubmit() (*Dialog, tea.Cmd) {
	d.attempts++
	d.failed = nil

	first := -1
	for i, field := range d.fields {
		if field.Validate() == "" {
			continue
		}
		d.failed = append(d.failed, d.variables[i])
		if first < 0 {
			first = i
		}
	}

	if first >= 0 {
		return d, d.focus(first)
	}

	d.submitted = true
	return d, nil
}

func (d *Dialog) retreatFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 || d.focusedField == 0 {
		return d, nil
	}
	return d, d.focus(d.focusedField - 1)
}

func (d *Dialog) focus(i int) tea.Cmd {
	if i == d.focusedField && d.fields[i].Focused() {
		return nil
	}
	d.fields[d.focusedField].Blur()
	d.focusedField = i
	return d.fields[i].Focus()
}

func (d *Dialog) updateFocusedField(msg tea.Msg) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	var cmd tea.Cmd
	d.fields[d.focusedField], cmd = d.fields[d.focusedField].Update(msg)
	return d, cmd
}

// broadcast forwards non-key messages to every field. Fields ignore what is
// not theirs; deferred caret fix-ups must reach a field even after focus
// moved so it can discard them.
func (d *Dialog) broadcast(msg tea.Msg) (*Dialog, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(d.fields))
	for i := range d.fields {
		var cmd tea.Cmd
		d.fields[i], cmd = d.fields[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return d, tea.Batch(cmds...)
}

func (d *Dialog) isFocusedFieldFiltering() bool {
	if len(d.fields) == 0 {
		return false
	}
	if f, ok := d.fields[d.focusedField].(filterer); ok {
		return f.IsFiltering()
	}
	return false
}
