package form

// Option configures a field at construction time.
type Option interface {
	apply(*fieldOptions)
}

type fieldOptions struct {
	rule        Rule
	password    bool
	charLimit   int
	placeholder string
	width       int
}

type optionFunc func(*fieldOptions)

func (f optionFunc) apply(o *fieldOptions) { f(o) }

func (v FieldValidation) apply(o *fieldOptions) { o.rule = v.Rule() }

// WithRule validates the field with fn.
func WithRule(fn Rule) Option {
	return optionFunc(func(o *fieldOptions) { o.rule = fn })
}

// WithPassword masks the input.
func WithPassword() Option {
	return optionFunc(func(o *fieldOptions) { o.password = true })
}

// WithCharLimit caps the number of characters accepted by a text input.
func WithCharLimit(n int) Option {
	return optionFunc(func(o *fieldOptions) { o.charLimit = n })
}

// WithPlaceholder sets the entry shown when a select field has no choice.
func WithPlaceholder(text string) Option {
	return optionFunc(func(o *fieldOptions) { o.placeholder = text })
}

// WithWidth sets the rendered width of the field's input.
func WithWidth(w int) Option {
	return optionFunc(func(o *fieldOptions) { o.width = w })
}

func collectOptions(opts []Option) fieldOptions {
	o := fieldOptions{width: 40}
	for _, opt := range opts {
		opt.apply(&o)
	}
	return o
}
