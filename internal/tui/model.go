// Package tui implements the Bubble Tea signup wizard.
package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/signup/internal/core/activity"
	"github.com/colonyops/signup/internal/core/config"
	"github.com/colonyops/signup/internal/core/registration"
	"github.com/colonyops/signup/internal/core/styles"
	"github.com/colonyops/signup/internal/tui/components/form"
)

// Deps are the collaborators of the wizard. Zero values are replaced with
// defaults by New.
type Deps struct {
	Context   context.Context
	Config    *config.Config
	Catalog   *registration.Catalog
	Submitter registration.Submitter
	Logger    zerolog.Logger
	Now       func() time.Time
}

// Result contains the wizard outputs.
type Result struct {
	Receipt   *registration.Receipt
	Record    registration.Record
	Summaries []activity.Summary
	Cancelled bool
}

type (
	// cursorIdleMsg fires cursor_idle after a mouse motion. Only the latest
	// motion is recorded.
	cursorIdleMsg struct {
		seq  int
		x, y int
	}

	// redirectMsg advances past the confirmation page.
	redirectMsg struct{ seq int }

	// accountSavedMsg ends the simulated account round trip.
	accountSavedMsg struct{ seq int }

	// submitResultMsg carries the outcome of the registration submit.
	submitResultMsg struct {
		seq     int
		receipt registration.Receipt
		err     error
	}
)

// Model is the Bubble Tea model for the signup wizard.
type Model struct {
	deps          Deps
	width, height int

	step Step
	log  *activity.Log

	email   *emailStep
	account *accountStep
	locale  *localeStep

	spinner    spinner.Model
	pending    string // loading message; empty when idle
	pendingSeq int
	cancel     context.CancelFunc
	submitErr  string

	cursorSeq  int
	confirmSeq int

	receipt   *registration.Receipt
	record    registration.Record
	summaries []activity.Summary
	dashboard string

	modal    *Modal
	quitting bool
	result   Result
}

// New creates the wizard positioned on the email step.
func New(deps Deps) Model {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Config == nil {
		cfg := config.DefaultConfig()
		deps.Config = &cfg
	}
	if deps.Catalog == nil {
		deps.Catalog = registration.DefaultCatalog()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Submitter == nil {
		deps.Submitter = registration.NewSimulatedSubmitter(deps.Config.SubmitDelay, deps.Logger)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.TextPrimaryStyle

	m := Model{deps: deps, spinner: s}
	m.reset()
	return m
}

// reset discards every step and starts over on the email step.
func (m *Model) reset() tea.Cmd {
	m.email = newEmailStep()
	m.account = newAccountStep()
	m.locale = newLocaleStep(m.deps.Catalog, m.deps.Config.DefaultTimezone)
	m.receipt = nil
	m.record = registration.Record{}
	m.submitErr = ""
	m.dashboard = ""
	return m.enter(StepEmail)
}

func (m Model) Init() tea.Cmd {
	if d := m.dialog(); d != nil {
		return d.Reopen()
	}
	return nil
}

// Step returns the current step.
func (m Model) Step() Step { return m.step }

// Activity returns the activity log of the current step.
func (m Model) Activity() *activity.Log { return m.log }

// Result returns the wizard result. Call after the program exits.
func (m Model) Result() Result { return m.result }

// dialog returns the form of the current step, if it has one.
func (m Model) dialog() *form.Dialog {
	switch m.step {
	case StepEmail:
		return m.email.dialog
	case StepAccount:
		return m.account.dialog
	case StepLocale:
		return m.locale.dialog
	default:
		return nil
	}
}

func (m *Model) activityLogger() zerolog.Logger {
	if !m.deps.Config.Activity.Enabled {
		return zerolog.Nop()
	}
	return m.deps.Logger.With().Str("cmp", "activity").Logger()
}

// enter closes the current step's activity log and opens s.
func (m *Model) enter(s Step) tea.Cmd {
	if m.log != nil {
		m.summaries = append(m.summaries, m.log.Close())
	}

	m.step = s
	m.cursorSeq++
	m.modal = nil
	m.log = activity.New(s.String(), m.activityLogger(), m.deps.Now)

	var cmds []tea.Cmd
	switch s {
	case StepConfirmed:
		if d := m.deps.Config.ConfirmRedirect; d > 0 {
			m.confirmSeq++
			seq := m.confirmSeq
			cmds = append(cmds, tea.Tick(d, func(time.Time) tea.Msg { return redirectMsg{seq: seq} }))
		}
	case StepAccount:
		m.account.prefill(m.email.email.String())
	case StepDashboard:
		m.dashboard = m.renderDashboard()
	}

	if d := m.dialog(); d != nil {
		cmds = append(cmds, d.Reopen())
		m.log.Record(activity.AutoFocus, map[string]any{"element": d.FocusedName()})
	}

	return tea.Batch(cmds...)
}

// quit closes the activity log and ends the program.
func (m Model) quit(cancelled bool) (tea.Model, tea.Cmd) {
	m.stopPending()
	if m.log != nil {
		m.summaries = append(m.summaries, m.log.Close())
	}

	m.quitting = true
	m.result = Result{
		Receipt:   m.receipt,
		Record:    m.record,
		Summaries: m.summaries,
		Cancelled: cancelled,
	}
	return m, tea.Quit
}

// stopPending abandons any in-flight round trip. Its result message is
// ignored once it arrives.
func (m *Model) stopPending() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.pending = ""
	m.pendingSeq++
}
