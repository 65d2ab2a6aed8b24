package form

// selectItem is the list item used by the select field. The placeholder entry
// carries index -1.
type selectItem struct {
	label string
	index int
}

func (i selectItem) FilterValue() string { return i.label }

func (i selectItem) placeholder() bool { return i.index < 0 }
