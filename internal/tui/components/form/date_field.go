package form

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/colonyops/signup/internal/core/datemask"
)

// caretMsg restores the caret of a DateField after the input has processed
// the edit that produced it.
type caretMsg struct {
	field *DateField
	seq   int
	value string
	pos   int
}

// DateField is a DD/MM/YY masked date input. Every edit is normalized with
// datemask.Format and the caret is put back on the following update cycle.
type DateField struct {
	input   textinput.Model
	label   string
	focused bool
	check   fieldCheck
	seq     int
}

// NewDateField creates a masked date field. Without a WithRule option the
// value is checked with datemask.Validate.
func NewDateField(label, defaultVal string, opts ...Option) *DateField {
	o := collectOptions(opts)
	if o.rule == nil {
		o.rule = datemask.Validate
	}

	ti := newInput(datemask.Layout, o)
	if defaultVal != "" {
		ti.SetValue(datemask.Mask(defaultVal))
	}

	return &DateField{
		input: ti,
		label: label,
		check: fieldCheck{rule: o.rule},
	}
}

func (f *DateField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if m, ok := msg.(caretMsg); ok {
		f.restoreCaret(m)
		return f, nil
	}

	if !f.focused {
		return f, nil
	}

	prev := f.input.Value()

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)

	raw := f.input.Value()
	if raw == prev {
		return f, cmd
	}

	return f, tea.Batch(cmd, f.edit(raw, f.input.Position(), prev))
}

// edit applies the mask to raw and returns the command that restores the
// caret once the input has re-rendered.
func (f *DateField) edit(raw string, caret int, prev string) tea.Cmd {
	value, pos := datemask.Format(raw, caret, prev)

	f.input.SetValue(value)
	f.input.SetCursor(pos)
	f.check.changed(value)

	f.seq++
	m := caretMsg{field: f, seq: f.seq, value: value, pos: pos}
	return func() tea.Msg { return m }
}

// restoreCaret is a no-op when the field lost focus or was edited again
// after the fix-up was scheduled.
func (f *DateField) restoreCaret(m caretMsg) {
	if m.field != f || !f.focused || m.seq != f.seq || f.input.Value() != m.value {
		return
	}
	f.input.SetCursor(m.pos)
}

func (f *DateField) View() string {
	return renderInput(f.label, f.input.View(), f.check.message, f.focused)
}

func (f *DateField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

// Blur unfocuses the field and validates it.
func (f *DateField) Blur() {
	f.focused = false
	f.input.Blur()
	f.check.validate(f.input.Value())
}

func (f *DateField) Focused() bool        { return f.focused }
func (f *DateField) Value() any           { return f.input.Value() }
func (f *DateField) Label() string        { return f.label }
func (f *DateField) ErrorMessage() string { return f.check.message }

func (f *DateField) Validate() string {
	return f.check.validate(f.input.Value())
}

// String returns the normalized value.
func (f *DateField) String() string { return f.input.Value() }

// Caret returns the caret offset within the normalized value.
func (f *DateField) Caret() int { return f.input.Position() }
