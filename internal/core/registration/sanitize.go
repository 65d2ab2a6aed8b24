package registration

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicy     *bluemonday.Policy
	textPolicyOnce sync.Once
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// cleanText trims s and strips any markup. bluemonday escapes the text it
// keeps, so entities are decoded back to plain characters.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(textSanitizer().Sanitize(s)))
}

// Sanitize trims every field and removes markup from the free-text fields.
// Passwords are left exactly as typed.
func Sanitize(r Record) Record {
	r.Email = strings.TrimSpace(r.Email)

	r.Account.FirstName = cleanText(r.Account.FirstName)
	r.Account.LastName = cleanText(r.Account.LastName)
	r.Account.Username = strings.TrimSpace(r.Account.Username)
	r.Account.DateOfBirth = strings.TrimSpace(r.Account.DateOfBirth)

	r.Locale.Country = strings.TrimSpace(r.Locale.Country)
	r.Locale.Region = strings.TrimSpace(r.Locale.Region)
	r.Locale.Timezone = strings.TrimSpace(r.Locale.Timezone)
	return r
}
