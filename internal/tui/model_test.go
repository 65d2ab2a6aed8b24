package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/signup/internal/core/activity"
	"github.com/colonyops/signup/internal/core/config"
	"github.com/colonyops/signup/internal/core/registration"
	"github.com/colonyops/signup/pkg/tuitest"
)

var testNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

type fakeSubmitter struct {
	err   error
	calls int
	got   registration.Record
}

func (f *fakeSubmitter) Submit(_ context.Context, r registration.Record) (registration.Receipt, error) {
	f.calls++
	f.got = r
	if f.err != nil {
		return registration.Receipt{}, f.err
	}
	return registration.Receipt{
		ID:        uuid.New(),
		Username:  r.Account.Username,
		Email:     r.Email,
		CreatedAt: testNow,
	}, nil
}

func newTestModel(t *testing.T, sub registration.Submitter) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SubmitDelay = 0
	cfg.ConfirmRedirect = 0
	return New(Deps{
		Config:    &cfg,
		Submitter: sub,
		Now:       func() time.Time { return testNow },
	})
}

// collect runs cmd and returns the messages it produces. Commands that do
// not return promptly (cursor blinks, long ticks) are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(20 * time.Millisecond):
		return nil
	}
}

// send delivers msgs one by one, feeding follow-up messages back into the
// model. Spinner frames are skipped.
func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = next.(Model)
		for _, follow := range collect(cmd) {
			if _, ok := follow.(spinner.TickMsg); ok {
				continue
			}
			m = send(m, follow)
		}
	}
	return m
}

func typeText(m Model, s string) Model {
	return send(m, tuitest.Type(s)...)
}

func actions(log *activity.Log) []activity.Action {
	var out []activity.Action
	for _, e := range log.Entries() {
		out = append(out, e.Action)
	}
	return out
}

func toAccount(t *testing.T, m Model) Model {
	t.Helper()
	m = typeText(m, "ada@example.com")
	m = send(m, tuitest.KeyTab(), tuitest.KeySpace(), tuitest.KeyEnter())
	require.Equal(t, StepConfirmed, m.Step())
	m = send(m, tuitest.KeyEnter())
	require.Equal(t, StepAccount, m.Step())
	return m
}

func fillAccount(m Model) Model {
	m = typeText(m, "Ada")
	m = send(m, tuitest.KeyTab())
	m = typeText(m, "Lovelace")
	m = send(m, tuitest.KeyTab())
	m = typeText(m, "101215")
	m = send(m, tuitest.KeyTab())
	m = typeText(m, "ada_l")
	m = send(m, tuitest.KeyTab(), tuitest.KeyTab())
	m = typeText(m, "Secret123")
	m = send(m, tuitest.KeyTab())
	m = typeText(m, "Secret123")
	return m
}

func toLocale(t *testing.T, m Model) Model {
	t.Helper()
	m = fillAccount(toAccount(t, m))
	m = send(m, tuitest.KeyEnter())
	require.Equal(t, StepLocale, m.Step())
	return m
}

func TestWizard_HappyPath(t *testing.T) {
	sub := &fakeSubmitter{}
	m := toLocale(t, newTestModel(t, sub))

	assert.Equal(t, "ada@example.com", m.account.email.String(), "email carried over from the first step")
	assert.Equal(t, "10/12/15", m.account.birth.String())

	m = send(m, tuitest.KeyDown(), tuitest.KeyTab(), tuitest.KeyTab(), tuitest.KeyEnter())
	require.Equal(t, StepDashboard, m.Step())

	require.Equal(t, 1, sub.calls)
	assert.Equal(t, registration.Record{
		Email: "ada@example.com",
		Account: registration.Account{
			FirstName:       "Ada",
			LastName:        "Lovelace",
			DateOfBirth:     "10/12/15",
			Username:        "ada_l",
			Password:        "Secret123",
			ConfirmPassword: "Secret123",
		},
		Locale: registration.Locale{
			Country:  "Afghanistan",
			Timezone: "(GMT+05:30) Chennai",
		},
	}, sub.got)

	view := tuitest.StripANSI(m.render())
	assert.Contains(t, view, "Welcome, Ada!")
	assert.Contains(t, view, "ada_l")

	m = send(m, tuitest.KeyPress('q'))
	res := m.Result()
	assert.False(t, res.Cancelled)
	require.NotNil(t, res.Receipt)
	assert.Equal(t, "ada_l", res.Receipt.Username)

	pages := make([]string, 0, len(res.Summaries))
	for _, s := range res.Summaries {
		pages = append(pages, s.Page)
	}
	assert.Equal(t, []string{"email", "email_confirmation_success", "account_information", "address", "dashboard"}, pages)
}

func TestWizard_EmailStepBlocksInvalidSubmit(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	m = send(m, tuitest.KeyTab(), tuitest.KeyEnter())
	assert.Equal(t, StepEmail, m.Step())
	assert.Equal(t, "email", m.email.dialog.FocusedName(), "first invalid field is focused")
	assert.Equal(t, "Email is required", m.email.email.ErrorMessage())
	assert.Equal(t, "Please complete the verification", m.email.captcha.ErrorMessage())

	got := actions(m.Activity())
	assert.Contains(t, got, activity.FormSubmitAttempt)
	assert.Contains(t, got, activity.FormValidationFailed)

	m = typeText(m, "not-an-email")
	m = send(m, tuitest.KeyTab(), tuitest.KeySpace(), tuitest.KeyEnter())
	assert.Equal(t, StepEmail, m.Step())
	assert.Equal(t, "Enter a valid email address", m.email.email.ErrorMessage())
}

func TestWizard_ValidationFailuresKeepTheirFields(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	m = send(m, tuitest.KeyTab(), tuitest.KeyEnter())
	m = typeText(m, "ada@example.com")
	m = send(m, tuitest.KeyTab(), tuitest.KeyEnter())
	require.Equal(t, StepEmail, m.Step())

	var failed []any
	for _, e := range m.Activity().Entries() {
		if e.Action == activity.FormValidationFailed {
			failed = append(failed, e.Fields["fields"])
		}
	}
	require.Len(t, failed, 2)
	assert.Equal(t, []string{"email", "captcha"}, failed[0])
	assert.Equal(t, []string{"captcha"}, failed[1])
}

func TestWizard_DateFieldMasksWhileTyping(t *testing.T) {
	m := toAccount(t, newTestModel(t, &fakeSubmitter{}))
	m = send(m, tuitest.KeyTab(), tuitest.KeyTab())
	require.Equal(t, "date_of_birth", m.account.dialog.FocusedName())

	m = typeText(m, "15")
	assert.Equal(t, "15", m.account.birth.String())

	m = typeText(m, "6")
	assert.Equal(t, "15/6", m.account.birth.String())
	assert.Equal(t, 4, m.account.birth.Caret())

}

func TestWizard_DateFieldCapsDigits(t *testing.T) {
	m := toAccount(t, newTestModel(t, &fakeSubmitter{}))
	m = send(m, tuitest.KeyTab(), tuitest.KeyTab())

	m = typeText(m, "1506991")
	assert.Equal(t, "15/06/99", m.account.birth.String(), "digits past six are dropped")

	m = send(m, tuitest.KeyTab())
	assert.Empty(t, m.account.birth.ErrorMessage())
}

func TestWizard_AccountStepValidation(t *testing.T) {
	m := toAccount(t, newTestModel(t, &fakeSubmitter{}))
	m = fillAccount(m)
	m.account.confirm.SetValue("Secret124")

	m = send(m, tuitest.KeyEnter())
	assert.Equal(t, StepAccount, m.Step())
	assert.Equal(t, "confirm_password", m.account.dialog.FocusedName())
	assert.Equal(t, "Passwords do not match", m.account.confirm.ErrorMessage())
}

func TestWizard_PendingAccountSaveCanBeCancelled(t *testing.T) {
	m := toAccount(t, newTestModel(t, &fakeSubmitter{}))
	m.deps.Config.SubmitDelay = time.Hour
	m = fillAccount(m)

	m = send(m, tuitest.KeyEnter())
	require.Equal(t, StepAccount, m.Step())
	require.NotEmpty(t, m.pending)
	seq := m.pendingSeq

	m = send(m, tuitest.KeyEsc())
	assert.Empty(t, m.pending)
	assert.False(t, m.account.dialog.Submitted())

	m = send(m, accountSavedMsg{seq: seq})
	assert.Equal(t, StepAccount, m.Step(), "stale completion is ignored")
}

func TestWizard_LocaleBackKeepsValues(t *testing.T) {
	m := toLocale(t, newTestModel(t, &fakeSubmitter{}))
	m = send(m, tuitest.KeyDown())
	localeLog := m.Activity()

	m = send(m, tuitest.KeyEsc())
	require.Equal(t, StepAccount, m.Step())
	assert.Contains(t, actions(localeLog), activity.BackClicked)
	assert.Equal(t, "Ada", m.account.firstName.String())
	assert.Equal(t, "10/12/15", m.account.birth.String())

	require.Equal(t, "confirm_password", m.account.dialog.FocusedName())
	m = send(m, tuitest.KeyEnter())
	require.Equal(t, StepLocale, m.Step())
	assert.Equal(t, "Afghanistan", m.locale.country.String())
}

func TestWizard_RegionResetsWhenCountryChanges(t *testing.T) {
	m := toLocale(t, newTestModel(t, &fakeSubmitter{}))
	catalog := registration.DefaultCatalog()

	m.locale.country.SetOptions(catalog.Countries, "India")
	m = send(m, tuitest.KeyTab())
	require.Equal(t, "region", m.locale.dialog.FocusedName())
	assert.Equal(t, catalog.RegionsFor("India"), m.locale.region.Options())

	m = send(m, tuitest.KeyDown())
	assert.Equal(t, "Andhra Pradesh", m.locale.region.String())

	m = send(m, tuitest.KeyShiftTab())
	m.locale.country.SetOptions(catalog.Countries, "Canada")
	m = send(m, tuitest.KeyTab())

	assert.Empty(t, m.locale.region.String())
	assert.Equal(t, catalog.RegionsFor("Canada"), m.locale.region.Options())
}

func TestWizard_SubmitErrorStaysOnLocale(t *testing.T) {
	var errs criterio.FieldErrorsBuilder
	errs = errs.Append("locale.country", errors.New("unknown country"))
	sub := &fakeSubmitter{err: errs.ToError()}
	m := toLocale(t, newTestModel(t, sub))

	m = send(m, tuitest.KeyDown(), tuitest.KeyEnter(), tuitest.KeyEnter(), tuitest.KeyEnter())
	require.Equal(t, 1, sub.calls)
	assert.Equal(t, StepLocale, m.Step())
	assert.Contains(t, m.submitErr, "locale.country: unknown country")
	assert.Contains(t, actions(m.Activity()), activity.FormError)
	assert.Contains(t, tuitest.StripANSI(m.render()), "unknown country")
}

func TestWizard_ConfirmRedirect(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	m.deps.Config.ConfirmRedirect = time.Hour

	m = typeText(m, "ada@example.com")
	m = send(m, tuitest.KeyTab(), tuitest.KeySpace(), tuitest.KeyEnter())
	require.Equal(t, StepConfirmed, m.Step())

	m = send(m, redirectMsg{seq: m.confirmSeq - 1})
	assert.Equal(t, StepConfirmed, m.Step())

	m = send(m, redirectMsg{seq: m.confirmSeq})
	assert.Equal(t, StepAccount, m.Step())
}

func TestWizard_RecordsTerminalActivity(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	m = send(m,
		tuitest.WindowSize(100, 40),
		tea.FocusMsg{},
		tea.BlurMsg{},
		tea.MouseClickMsg{X: 3, Y: 4, Button: tea.MouseLeft},
		tea.MouseWheelMsg{X: 3, Y: 4, Button: tea.MouseWheelDown},
		tea.MouseMotionMsg{X: 1, Y: 1},
		tea.MouseMotionMsg{X: 7, Y: 9},
	)

	m = send(m, cursorIdleMsg{seq: m.cursorSeq - 1, x: 1, y: 1})
	m = send(m, cursorIdleMsg{seq: m.cursorSeq, x: 7, y: 9})

	log := m.Activity()
	assert.Equal(t, []activity.Action{
		activity.PageLoad,
		activity.AutoFocus,
		activity.Resize,
		activity.VisibilityChange,
		activity.VisibilityChange,
		activity.Click,
		activity.Scroll,
		activity.CursorPosition,
	}, actions(log))

	entries := log.Entries()
	assert.Equal(t, map[string]any{"x": 7, "y": 9}, entries[len(entries)-1].Fields)
	assert.Equal(t, "down", entries[6].Fields["direction"])
}

func TestWizard_RecordsFieldActivity(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	m = typeText(m, "ab")
	m = send(m, tuitest.KeyTab(), tuitest.KeySpace())

	var input, change, blur, focus int
	for _, e := range m.Activity().Entries() {
		switch e.Action {
		case activity.FieldInput:
			input++
			assert.Equal(t, "email", e.Fields["field"])
		case activity.FieldChange:
			change++
			assert.Equal(t, true, e.Fields["value"])
		case activity.FieldBlur:
			blur++
			assert.Equal(t, "email", e.Fields["field"])
		case activity.ElementFocus:
			focus++
			assert.Equal(t, "captcha", e.Fields["element"])
		}
	}
	assert.Equal(t, 2, input)
	assert.Equal(t, 1, change)
	assert.Equal(t, 1, blur)
	assert.Equal(t, 1, focus)
}

func TestWizard_LeaveModal(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	m = send(m, tuitest.KeyEsc())
	require.NotNil(t, m.modal)
	assert.Contains(t, tuitest.StripANSI(m.render()), "Leave signup?")

	m = send(m, tuitest.KeyEsc())
	assert.Nil(t, m.modal)
	assert.False(t, m.email.dialog.Cancelled())

	m = send(m, tuitest.KeyEsc(), tuitest.KeyEnter())
	res := m.Result()
	assert.True(t, res.Cancelled)
	assert.Len(t, res.Summaries, 1)
	assert.Nil(t, res.Receipt)
}

func TestWizard_LogoutStartsOver(t *testing.T) {
	m := toLocale(t, newTestModel(t, &fakeSubmitter{}))
	m = send(m, tuitest.KeyDown(), tuitest.KeyEnter(), tuitest.KeyEnter(), tuitest.KeyEnter())
	require.Equal(t, StepDashboard, m.Step())

	m = send(m, tuitest.KeyPress('l'))
	assert.Equal(t, StepEmail, m.Step())
	assert.Empty(t, m.email.email.String())
	assert.Nil(t, m.receipt)
}

func TestWizard_View(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	v := m.View()
	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeAllMotion, v.MouseMode)
	assert.True(t, v.ReportFocus)

	assert.Equal(t, "signup · Email", v.WindowTitle)

	content := tuitest.StripANSI(m.render())
	for _, s := range []Step{StepEmail, StepConfirmed, StepAccount, StepLocale, StepDashboard} {
		assert.Contains(t, content, s.Title())
	}
	assert.Contains(t, content, "I'm not a robot")
}
