package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/signup/internal/core/registration"
	"github.com/colonyops/signup/internal/core/validate"
	"github.com/colonyops/signup/internal/tui/components/form"
)

// Step identifies a page of the wizard.
type Step int

const (
	StepEmail Step = iota
	StepConfirmed
	StepAccount
	StepLocale
	StepDashboard
)

var (
	stepPages  = [...]string{"email", "email_confirmation_success", "account_information", "address", "dashboard"}
	stepTitles = [...]string{"Email", "Confirm", "Account", "Address", "Done"}
)

// String returns the page name used in activity logs.
func (s Step) String() string { return stepPages[s] }

// Title returns the label shown in the progress header.
func (s Step) Title() string { return stepTitles[s] }

type emailStep struct {
	dialog  *form.Dialog
	email   *form.TextField
	captcha *form.CheckboxField
}

func newEmailStep() *emailStep {
	s := &emailStep{
		email:   form.NewTextField("Email address", "you@example.com", "", form.WithRule(validate.Email)),
		captcha: form.NewCheckboxField("I'm not a robot", validate.Captcha(false).Error()),
	}
	s.dialog = form.NewDialog("Create your account",
		[]form.Field{s.email, s.captcha},
		[]string{"email", "captcha"},
	)
	s.dialog.Help = "tab: next  space: check  enter: continue  esc: quit"
	return s
}

type accountStep struct {
	dialog    *form.Dialog
	firstName *form.TextField
	lastName  *form.TextField
	birth     *form.DateField
	username  *form.TextField
	email     *form.TextField
	password  *form.TextField
	confirm   *form.TextField
}

func newAccountStep() *accountStep {
	s := &accountStep{
		firstName: form.NewTextField("First name", "Your Name", "", form.WithRule(validate.FirstName)),
		lastName:  form.NewTextField("Last name", "Your Surname", "", form.WithRule(validate.LastName)),
		birth:     form.NewDateField("Date of birth", ""),
		username:  form.NewTextField("Username", "letters, numbers, underscores", "", form.WithRule(validate.Username)),
		email:     form.NewTextField("Email", "you@example.com", "", form.WithRule(validate.Email)),
		password:  form.NewTextField("Password", "Min. 8 characters", "", form.WithPassword(), form.WithRule(validate.Password)),
	}
	s.confirm = form.NewTextField("Confirm password", "Repeat password", "",
		form.WithPassword(),
		form.WithRule(validate.ConfirmPassword(s.password.String)),
	)

	s.dialog = form.NewDialog("Account information",
		[]form.Field{s.firstName, s.lastName, s.birth, s.username, s.email, s.password, s.confirm},
		[]string{"first_name", "last_name", "date_of_birth", "username", "email", "password", "confirm_password"},
	)
	s.dialog.Help = "tab: next  shift+tab: prev  enter: create account  esc: quit"
	return s
}

// prefill copies the address from the first step unless one was typed here.
func (s *accountStep) prefill(email string) {
	if s.email.String() == "" {
		s.email.SetValue(email)
	}
}

func (s *accountStep) account() registration.Account {
	return registration.Account{
		FirstName:       s.firstName.String(),
		LastName:        s.lastName.String(),
		DateOfBirth:     s.birth.String(),
		Username:        s.username.String(),
		Password:        s.password.String(),
		ConfirmPassword: s.confirm.String(),
	}
}

type localeStep struct {
	dialog   *form.Dialog
	country  *form.SelectFormField
	region   *form.SelectFormField
	timezone *form.SelectFormField
	catalog  *registration.Catalog
	shown    string // country whose regions the region field lists
}

func newLocaleStep(catalog *registration.Catalog, timezone string) *localeStep {
	s := &localeStep{
		catalog: catalog,
		country: form.NewSelectFormField("Country of residence", catalog.Countries, "",
			form.WithPlaceholder("Select country"),
			form.WithRule(validate.Country),
		),
		region: form.NewSelectFormField("Region", nil, "",
			form.WithPlaceholder("Select region (optional)"),
		),
		timezone: form.NewSelectFormField("Time zone", catalog.Timezones, timezone,
			form.WithPlaceholder("Select time zone"),
			form.WithRule(validate.Timezone),
		),
	}

	s.dialog = form.NewDialog("Address",
		[]form.Field{s.country, s.region, s.timezone},
		[]string{"country", "region", "timezone"},
	)
	s.dialog.Help = "↑/↓: choose  /: filter  tab: next  enter: submit  esc: back"
	return s
}

// syncRegions resets the region list when the selected country changed.
// It reports whether a reset happened.
func (s *localeStep) syncRegions() (bool, tea.Cmd) {
	country := s.country.String()
	if country == s.shown {
		return false, nil
	}
	s.shown = country
	return true, s.region.SetOptions(s.catalog.RegionsFor(country), "")
}

func (s *localeStep) locale() registration.Locale {
	return registration.Locale{
		Country:  s.country.String(),
		Region:   s.region.String(),
		Timezone: s.timezone.String(),
	}
}
