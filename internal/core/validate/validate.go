// Package validate provides the per-field rules for registration input.
// Each rule returns nil or an error whose text is shown next to the field.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/colonyops/signup/internal/core/datemask"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	minNameLength     = 2
	minUsernameLength = 3
	minPasswordLength = 8
)

func length(s string) int { return utf8.RuneCountInString(s) }

func name(kind, value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New(kind + " is required")
	}
	if length(v) < minNameLength {
		return errors.New("Must be at least 2 characters")
	}
	return nil
}

// FirstName requires at least two characters after trimming.
func FirstName(value string) error { return name("First name", value) }

// LastName requires at least two characters after trimming.
func LastName(value string) error { return name("Last name", value) }

// DateOfBirth checks a normalized DD/MM/YY value.
func DateOfBirth(value string) error { return datemask.Validate(value) }

// Username requires three or more letters, digits or underscores.
func Username(value string) error {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return errors.New("Username is required")
	case length(v) < minUsernameLength:
		return errors.New("Must be at least 3 characters")
	case !usernamePattern.MatchString(v):
		return errors.New("Only letters, numbers, underscores")
	}
	return nil
}

// Email checks for a local part, an @ and a dotted domain.
func Email(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New("Email is required")
	}
	if !emailPattern.MatchString(v) {
		return errors.New("Enter a valid email address")
	}
	return nil
}

// Password requires eight characters including an uppercase letter and a
// digit. The value is not trimmed.
func Password(value string) error {
	switch {
	case value == "":
		return errors.New("Password is required")
	case length(value) < minPasswordLength:
		return errors.New("Minimum 8 characters")
	case !strings.ContainsFunc(value, isASCIIUpper):
		return errors.New("Include at least one uppercase letter")
	case !strings.ContainsFunc(value, isASCIIDigit):
		return errors.New("Include at least one number")
	}
	return nil
}

func isASCIIUpper(r rune) bool { return r < unicode.MaxASCII && unicode.IsUpper(r) }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// ConfirmPassword returns a rule that checks a confirmation against the
// password returned by password at validation time.
func ConfirmPassword(password func() string) func(string) error {
	return func(value string) error {
		if value == "" {
			return errors.New("Please confirm your password")
		}
		if value != password() {
			return errors.New("Passwords do not match")
		}
		return nil
	}
}

// Country requires a selection.
func Country(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("Country of residence is required")
	}
	return nil
}

// Timezone requires a selection.
func Timezone(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("Time zone is required")
	}
	return nil
}

// Captcha requires the human check to be confirmed.
func Captcha(checked bool) error {
	if !checked {
		return errors.New("Please complete the verification")
	}
	return nil
}
