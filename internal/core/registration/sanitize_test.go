package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	r := validRecord()
	r.Email = "  ada@example.com "
	r.Account.FirstName = " <b>Ada</b> "
	r.Account.LastName = "<i>Love</i>lace"
	r.Account.Password = " Secret123 "
	r.Locale.Country = "United Kingdom  "

	got := Sanitize(r)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "Ada", got.Account.FirstName)
	assert.Equal(t, "Lovelace", got.Account.LastName)
	assert.Equal(t, " Secret123 ", got.Account.Password, "passwords are not altered")
	assert.Equal(t, "United Kingdom", got.Locale.Country)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"O'Brien", "O'Brien"},
		{"Tom & Jerry", "Tom & Jerry"},
		{"<a href=\"x\">Zoë</a>", "Zoë"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanText(tt.in))
		})
	}
}
