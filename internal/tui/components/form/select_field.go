package form

import (
	"io"

	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/colonyops/signup/internal/core/styles"
)

const maxVisible = 8

// SelectFormField is a single-select form field wrapping list.Model.
type SelectFormField struct {
	list        list.Model
	options     []string
	placeholder string
	label_      string
	focused     bool
	check       fieldCheck
}

// selectDelegate renders items in a single-select list.
type selectDelegate struct{}

func (d selectDelegate) Height() int                             { return 1 }
func (d selectDelegate) Spacing() int                            { return 0 }
func (d selectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d selectDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(selectItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	style := styles.TextForegroundStyle
	if item.placeholder() {
		style = styles.TextMutedStyle
	}
	cursor := "  "
	if isSelected {
		style = styles.SelectFieldItemSelectedStyle
		cursor = "> "
	}

	_, _ = io.WriteString(w, cursor)
	_, _ = io.WriteString(w, style.Render(item.label))
}

// NewSelectFormField creates a single-select field from static options.
// defaultVal pre-selects the matching option if found. With WithPlaceholder
// the list starts with an entry whose value is "".
func NewSelectFormField(label string, options []string, defaultVal string, opts ...Option) *SelectFormField {
	o := collectOptions(opts)

	l := list.New(nil, selectDelegate{}, o.width, 1)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.Styles.TitleBar = lipgloss.NewStyle()

	l.FilterInput.Prompt = "/ "
	filterStyles := textinput.DefaultStyles(true)
	filterStyles.Focused.Prompt = styles.TextPrimaryStyle
	filterStyles.Cursor.Color = styles.ColorPrimary
	l.FilterInput.SetStyles(filterStyles)

	f := &SelectFormField{
		list:        l,
		placeholder: o.placeholder,
		label_:      label,
		check:       fieldCheck{rule: o.rule},
	}
	f.setOptions(options, defaultVal)
	return f
}

// SetOptions replaces the options and selects defaultVal, or the first entry
// when it is absent. Validation messages are cleared.
func (f *SelectFormField) SetOptions(options []string, defaultVal string) tea.Cmd {
	cmd := f.setOptions(options, defaultVal)
	f.check = fieldCheck{rule: f.check.rule}
	return cmd
}

func (f *SelectFormField) setOptions(options []string, defaultVal string) tea.Cmd {
	f.options = options

	items := make([]list.Item, 0, len(options)+1)
	if f.placeholder != "" {
		items = append(items, selectItem{label: f.placeholder, index: -1})
	}

	selected := 0
	for i, opt := range options {
		if opt == defaultVal && defaultVal != "" {
			selected = len(items)
		}
		items = append(items, selectItem{label: opt, index: i})
	}

	f.list.ResetFilter()
	f.list.SetHeight(max(min(len(items), maxVisible), 1))
	f.list.SetShowPagination(len(items) > maxVisible)
	cmd := f.list.SetItems(items)
	f.list.Select(selected)
	return cmd
}

func (f *SelectFormField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	prev := f.String()

	var cmd tea.Cmd
	f.list, cmd = f.list.Update(msg)

	if v := f.String(); v != prev {
		f.check.changed(v)
	}
	return f, cmd
}

func (f *SelectFormField) View() string {
	titleStyle := styles.TextMutedStyle
	if f.focused {
		titleStyle = styles.FormTitleStyle
	}
	parts := []string{titleStyle.Render(f.label_)}

	if f.list.SettingFilter() {
		parts = append(parts, f.list.FilterInput.View())
	}
	switch {
	case f.focused:
		parts = append(parts, f.list.View())
	case len(f.list.Items()) == 0:
		parts = append(parts, styles.TextMutedStyle.Render("  (none)"))
	default:
		// collapsed to the current choice while another field has focus
		parts = append(parts, "  "+styles.TextForegroundStyle.Render(f.selectedLabel()))
	}
	if f.check.message != "" {
		parts = append(parts, styles.FormErrorStyle.Render(f.check.message))
	}

	borderStyle := styles.FormFieldStyle
	if f.focused {
		borderStyle = styles.FormFieldFocusedStyle
	}

	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (f *SelectFormField) Focus() tea.Cmd {
	f.focused = true
	return nil
}

// Blur unfocuses the field and validates it.
func (f *SelectFormField) Blur() {
	f.focused = false
	f.check.validate(f.String())
}

func (f *SelectFormField) Focused() bool        { return f.focused }
func (f *SelectFormField) Value() any           { return f.String() }
func (f *SelectFormField) Label() string        { return f.label_ }
func (f *SelectFormField) ErrorMessage() string { return f.check.message }

func (f *SelectFormField) Validate() string {
	return f.check.validate(f.String())
}

// String returns the selected option, or "" for the placeholder or an empty
// list.
func (f *SelectFormField) String() string {
	item := f.list.SelectedItem()
	if item == nil {
		return ""
	}
	if si, ok := item.(selectItem); ok && si.index >= 0 && si.index < len(f.options) {
		return f.options[si.index]
	}
	return ""
}

// Options returns the selectable options, excluding the placeholder.
func (f *SelectFormField) Options() []string { return f.options }

func (f *SelectFormField) selectedLabel() string {
	if si, ok := f.list.SelectedItem().(selectItem); ok {
		return si.label
	}
	return ""
}

// IsFiltering returns whether the list is currently filtering.
func (f *SelectFormField) IsFiltering() bool {
	return f.list.SettingFilter()
}
