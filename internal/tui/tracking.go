package tui

import (
	"fmt"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/signup/internal/core/activity"
	"github.com/colonyops/signup/internal/tui/components/form"
)

// dialogState is the focused field and its value before an update.
type dialogState struct {
	field string
	value string
}

func snapshotDialog(d *form.Dialog) dialogState {
	name := d.FocusedName()
	f, ok := d.Field(name)
	if !ok {
		return dialogState{}
	}
	return dialogState{field: name, value: fmt.Sprint(f.Value())}
}

// trackDialog records input on the field that was focused before the update
// and any focus move. Free text is logged by length only.
func (m *Model) trackDialog(d *form.Dialog, before dialogState) {
	if before.field == "" {
		return
	}

	if f, ok := d.Field(before.field); ok {
		if v := fmt.Sprint(f.Value()); v != before.value {
			switch f.(type) {
			case *form.SelectFormField, *form.CheckboxField:
				m.log.Record(activity.FieldChange, map[string]any{"field": before.field, "value": f.Value()})
			default:
				m.log.Record(activity.FieldInput, map[string]any{"field": before.field, "length": utf8.RuneCountInString(v)})
			}
		}
	}

	if now := d.FocusedName(); now != before.field {
		m.log.Record(activity.FieldBlur, map[string]any{"field": before.field})
		m.log.Record(activity.ElementFocus, map[string]any{"element": now})
	}
}

func buttonName(b tea.MouseButton) string {
	switch b {
	case tea.MouseLeft:
		return "left"
	case tea.MouseMiddle:
		return "middle"
	case tea.MouseRight:
		return "right"
	case tea.MouseWheelUp:
		return "up"
	case tea.MouseWheelDown:
		return "down"
	case tea.MouseWheelLeft:
		return "left"
	case tea.MouseWheelRight:
		return "right"
	default:
		return "other"
	}
}
