// Package registration holds the account record collected by the signup
// flow, the locale catalog it is checked against and the simulated submit
// handler.
package registration

import (
	"errors"

	"github.com/colonyops/signup/internal/core/datemask"
	"github.com/colonyops/signup/internal/core/validate"
	"github.com/hay-kot/criterio"
)

// Account is the account-information step.
type Account struct {
	FirstName       string `json:"first_name"       validate:"required,min=2"`
	LastName        string `json:"last_name"        validate:"required,min=2"`
	DateOfBirth     string `json:"date_of_birth"    validate:"required,len=8"`
	Username        string `json:"username"         validate:"required,min=3"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Locale is the address step.
type Locale struct {
	Country  string `json:"country"          validate:"required"`
	Region   string `json:"region,omitempty"`
	Timezone string `json:"timezone"         validate:"required"`
}

// Record is everything the flow collects.
type Record struct {
	Email   string  `json:"email"   validate:"required,email"`
	Account Account `json:"account"`
	Locale  Locale  `json:"locale"`
}

// Normalize returns a copy with the date of birth passed through the mask,
// so records typed by hand ("150699") match what the date field produces.
func (r Record) Normalize() Record {
	r.Account.DateOfBirth = datemask.Mask(r.Account.DateOfBirth)
	return r
}

// Validate applies the field rules. Failures are criterio.FieldErrors keyed
// by the JSON field name.
func (a Account) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("first_name", a.FirstName, validate.FirstName),
		criterio.Run("last_name", a.LastName, validate.LastName),
		criterio.Run("date_of_birth", a.DateOfBirth, validate.DateOfBirth),
		criterio.Run("username", a.Username, validate.Username),
		criterio.Run("password", a.Password, validate.Password),
		criterio.Run("confirm_password", a.ConfirmPassword, validate.ConfirmPassword(func() string { return a.Password })),
	)
}

// Validate applies the field rules. Region is optional.
func (l Locale) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("country", l.Country, validate.Country),
		criterio.Run("timezone", l.Timezone, validate.Timezone),
	)
}

// Validate applies the field rules of every step. Nested keys are prefixed,
// e.g. "account.first_name".
func (r Record) Validate() error {
	var errs criterio.FieldErrorsBuilder
	if err := validate.Email(r.Email); err != nil {
		errs = errs.Append("email", err)
	}
	errs = appendPrefixed(errs, "account", r.Account.Validate())
	errs = appendPrefixed(errs, "locale", r.Locale.Validate())
	return errs.ToError()
}

func appendPrefixed(b criterio.FieldErrorsBuilder, prefix string, err error) criterio.FieldErrorsBuilder {
	if err == nil {
		return b
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return b.Append(prefix, err)
	}
	for _, fe := range fieldErrs {
		b = b.Append(prefix+"."+fe.Field, fe.Err)
	}
	return b
}

// Check validates r and, when catalog is non-nil, that its locale values come
// from the catalog. Catalog lookups only run once the field rules pass.
func Check(r Record, catalog *Catalog) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if catalog == nil {
		return nil
	}

	var errs criterio.FieldErrorsBuilder
	return appendPrefixed(errs, "locale", catalog.CheckLocale(r.Locale)).ToError()
}
