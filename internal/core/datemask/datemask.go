// Package datemask formats keystroke-level input into a DD/MM/YY masked date
// and classifies the result.
package datemask

import (
	"errors"
	"strconv"
	"strings"
)

const (
	// Layout is the display shape of a complete date.
	Layout = "DD/MM/YY"

	// MaxDigits bounds the field to DDMMYY.
	MaxDigits = 6

	separator = '/'
)

// Reason classifies why a date is invalid.
type Reason string

const (
	ReasonRequired   Reason = "required"
	ReasonMalformed  Reason = "malformed"
	ReasonOutOfRange Reason = "out_of_range"
)

// Message returns the user-facing text for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonRequired:
		return "Date of birth is required"
	case ReasonMalformed:
		return "Enter date as " + Layout
	case ReasonOutOfRange:
		return "Invalid date"
	default:
		return string(r)
	}
}

// InvalidError is returned by Validate for any input that is not a valid date.
type InvalidError struct {
	Reason Reason
	Value  string
}

func (e *InvalidError) Error() string { return e.Reason.Message() }

// Is reports whether target is an InvalidError with the same reason. A target
// with an empty reason matches any InvalidError.
func (e *InvalidError) Is(target error) bool {
	t, ok := target.(*InvalidError)
	if !ok {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Sentinels usable with errors.Is.
var (
	ErrRequired   = &InvalidError{Reason: ReasonRequired}
	ErrMalformed  = &InvalidError{Reason: ReasonMalformed}
	ErrOutOfRange = &InvalidError{Reason: ReasonOutOfRange}
)

// ReasonOf extracts the reason from an error returned by Validate.
func ReasonOf(err error) (Reason, bool) {
	var invalid *InvalidError
	if errors.As(err, &invalid) {
		return invalid.Reason, true
	}
	return "", false
}

// Digits returns the decimal digits of s in order.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Mask rebuilds the DD/MM/YY mask from the first MaxDigits digits of raw.
func Mask(raw string) string {
	digits := Digits(raw)
	if len(digits) > MaxDigits {
		digits = digits[:MaxDigits]
	}

	switch {
	case len(digits) >= 5:
		return digits[:2] + "/" + digits[2:4] + "/" + digits[4:]
	case len(digits) >= 3:
		return digits[:2] + "/" + digits[2:]
	default:
		return digits
	}
}

// Format normalizes raw and computes where the caret belongs afterwards.
//
// caret is the caret offset reported by the input immediately after the edit,
// measured in raw. prev is the normalized value held before the edit. When
// the value grew and the caret lands right after a separator, the caret is
// moved past it. The returned caret is always within [0, len(value)].
func Format(raw string, caret int, prev string) (string, int) {
	value := Mask(raw)

	pos := caret
	if len(value) > len(prev) && pos > 0 && pos <= len(value) && value[pos-1] == separator {
		pos++
	}

	return value, clamp(pos, 0, len(value))
}

// Validate checks a normalized date. It returns nil for a valid date or an
// *InvalidError describing the failure.
//
// Day and month are range-checked independently; day-of-month against the
// actual month and the century of the year are not checked.
func Validate(s string) error {
	_, err := Parse(s)
	return err
}

// Date is a validated DD/MM/YY value. Year is the two-digit year as entered.
type Date struct {
	Day   int
	Month int
	Year  int
}

// String renders the date in Layout.
func (d Date) String() string {
	return pad2(d.Day) + "/" + pad2(d.Month) + "/" + pad2(d.Year)
}

// Parse validates s and returns its parts.
func Parse(s string) (Date, error) {
	if strings.TrimSpace(s) == "" {
		return Date{}, &InvalidError{Reason: ReasonRequired, Value: s}
	}

	parts := strings.Split(s, string(separator))
	if len(parts) != 3 {
		return Date{}, &InvalidError{Reason: ReasonMalformed, Value: s}
	}
	for _, p := range parts {
		if len(p) != 2 || Digits(p) != p {
			return Date{}, &InvalidError{Reason: ReasonMalformed, Value: s}
		}
	}

	day, dayErr := strconv.Atoi(parts[0])
	month, monthErr := strconv.Atoi(parts[1])
	year, yearErr := strconv.Atoi(parts[2])
	if dayErr != nil || monthErr != nil || yearErr != nil {
		return Date{}, &InvalidError{Reason: ReasonMalformed, Value: s}
	}

	if day < 1 || day > 31 || month < 1 || month > 12 {
		return Date{}, &InvalidError{Reason: ReasonOutOfRange, Value: s}
	}

	return Date{Day: day, Month: month, Year: year}, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
