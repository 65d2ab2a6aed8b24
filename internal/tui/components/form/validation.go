package form

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Rule validates a field value. A nil error means the value is valid.
type Rule func(value string) error

// FieldValidation holds declarative validation rules for a text field.
type FieldValidation struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
}

// ValidateText checks a text value against the validation rules.
func (v FieldValidation) ValidateText(value string) string {
	if v.Required && value == "" {
		return "required"
	}
	if value == "" {
		return ""
	}
	n := utf8.RuneCountInString(value)
	if v.MinLength > 0 && n < v.MinLength {
		return fmt.Sprintf("minimum %d characters", v.MinLength)
	}
	if v.MaxLength > 0 && n > v.MaxLength {
		return fmt.Sprintf("maximum %d characters", v.MaxLength)
	}
	if v.Pattern != nil && !v.Pattern.MatchString(value) {
		return fmt.Sprintf("must match pattern: %s", v.Pattern.String())
	}
	return ""
}

// Rule adapts the declarative rules to a Rule.
func (v FieldValidation) Rule() Rule {
	return func(value string) error {
		if msg := v.ValidateText(value); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

// fieldCheck is the validation state shared by the input fields. A field is
// quiet until it is blurred or validated for the first time; after that it
// re-validates on every change.
type fieldCheck struct {
	rule    Rule
	message string
	touched bool
}

func (c *fieldCheck) run(value string) string {
	c.message = ""
	if c.rule != nil {
		if err := c.rule(value); err != nil {
			c.message = err.Error()
		}
	}
	return c.message
}

// validate marks the field touched and runs the rule.
func (c *fieldCheck) validate(value string) string {
	c.touched = true
	return c.run(value)
}

// changed re-runs the rule only once the field has been touched.
func (c *fieldCheck) changed(value string) {
	if c.touched {
		c.run(value)
	}
}
