package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/signup/internal/core/activity"
	"github.com/colonyops/signup/internal/core/logging"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.log.Record(activity.Resize, map[string]any{"width": msg.Width, "height": msg.Height})
		if m.step == StepDashboard {
			m.dashboard = m.renderDashboard()
		}
		return m, nil

	case tea.FocusMsg:
		m.log.Record(activity.VisibilityChange, map[string]any{"hidden": false})
		return m, nil

	case tea.BlurMsg:
		m.log.Record(activity.VisibilityChange, map[string]any{"hidden": true})
		return m, nil

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		m.log.Record(activity.Click, map[string]any{
			"target": m.step.String(),
			"button": buttonName(mouse.Button),
			"x":      mouse.X,
			"y":      mouse.Y,
		})
		return m, nil

	case tea.MouseWheelMsg:
		mouse := msg.Mouse()
		m.log.Record(activity.Scroll, map[string]any{
			"direction": buttonName(mouse.Button),
			"x":         mouse.X,
			"y":         mouse.Y,
		})
		return m, nil

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		m.cursorSeq++
		seq := m.cursorSeq
		return m, tea.Tick(m.deps.Config.CursorIdle, func(time.Time) tea.Msg {
			return cursorIdleMsg{seq: seq, x: mouse.X, y: mouse.Y}
		})

	case cursorIdleMsg:
		if msg.seq == m.cursorSeq {
			m.log.Record(activity.CursorPosition, map[string]any{"x": msg.x, "y": msg.y})
		}
		return m, nil

	case redirectMsg:
		if m.step != StepConfirmed || msg.seq != m.confirmSeq {
			return m, nil
		}
		m.log.Record(activity.AutoRedirect, nil)
		return m, m.enter(StepAccount)

	case spinner.TickMsg:
		if m.pending == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case accountSavedMsg:
		if msg.seq != m.pendingSeq || m.pending == "" {
			return m, nil
		}
		m.pending = ""
		m.log.Record(activity.FormSuccess, nil)
		return m, m.enter(StepLocale)

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m.updateDialog(msg)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m.quit(true)
	}

	if msg.Text == "" {
		m.log.Record(activity.KeyboardAction, map[string]any{"key": key})
	}

	if m.modal != nil {
		return m.handleModalKey(key)
	}

	if m.pending != "" {
		if key == "esc" {
			m.stopPending()
			m.log.Record(activity.FormError, map[string]any{"error": "cancelled"})
			return m, m.dialog().Reopen()
		}
		return m, nil
	}

	switch m.step {
	case StepConfirmed:
		switch key {
		case "enter", "space":
			m.log.Record(activity.ContinueClicked, nil)
			return m, m.enter(StepAccount)
		case "esc", "q":
			m.modal = leaveModal()
		}
		return m, nil

	case StepDashboard:
		switch key {
		case "l":
			m.log.Record(activity.Logout, nil)
			return m, m.reset()
		case "q", "esc", "enter":
			return m.quit(false)
		}
		return m, nil
	}

	return m.updateDialog(msg)
}

func (m Model) handleModalKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "left", "right", "tab", "shift+tab", "h", "l":
		m.modal.Toggle()
	case "enter":
		if m.modal.ConfirmSelected() {
			return m.quit(true)
		}
		return m.closeModal()
	case "esc":
		return m.closeModal()
	}
	return m, nil
}

func (m Model) closeModal() (tea.Model, tea.Cmd) {
	m.modal = nil
	if d := m.dialog(); d != nil {
		return m, d.Reopen()
	}
	return m, nil
}

func leaveModal() *Modal {
	return NewModal("Leave signup?", "Nothing has been submitted yet.\nYour answers will be discarded.")
}

// updateDialog forwards msg to the current step's form and records what
// changed.
func (m Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	d := m.dialog()
	if d == nil {
		return m, nil
	}

	before := snapshotDialog(d)
	attempts := d.Attempts()

	_, cmd := d.Update(msg)
	cmds := []tea.Cmd{cmd}

	m.trackDialog(d, before)

	if m.step == StepLocale {
		if reset, regionCmd := m.locale.syncRegions(); reset {
			m.log.Record(activity.FieldChange, map[string]any{"field": "region", "value": ""})
			cmds = append(cmds, regionCmd)
		}
	}

	if d.Attempts() > attempts {
		m.log.Record(activity.FormSubmitAttempt, nil)
		if !d.Submitted() {
			m.log.Record(activity.FormValidationFailed, map[string]any{"fields": d.Failed()})
		}
	}

	switch {
	case d.Submitted():
		cmds = append(cmds, m.submitStep())
	case d.Cancelled():
		cmds = append(cmds, m.cancelStep())
	}

	return m, tea.Batch(cmds...)
}

// submitStep runs once the current form passed validation.
func (m *Model) submitStep() tea.Cmd {
	m.submitErr = ""

	switch m.step {
	case StepEmail:
		m.record.Email = strings.TrimSpace(m.email.email.String())
		m.log.Record(activity.FormSubmitted, map[string]any{"email": m.record.Email})
		return m.enter(StepConfirmed)

	case StepAccount:
		m.record.Email = strings.TrimSpace(m.account.email.String())
		m.record.Account = m.account.account()
		m.log.Record(activity.FormSubmitted, map[string]any{
			"username": m.record.Account.Username,
			"email":    m.record.Email,
		})

		m.pending = "Creating account..."
		m.pendingSeq++
		seq := m.pendingSeq
		return tea.Batch(m.spinner.Tick, tea.Tick(m.deps.Config.SubmitDelay, func(time.Time) tea.Msg {
			return accountSavedMsg{seq: seq}
		}))

	case StepLocale:
		m.record.Locale = m.locale.locale()
		m.log.Record(activity.FormSubmitted, map[string]any{
			"country":  m.record.Locale.Country,
			"region":   m.record.Locale.Region,
			"timezone": m.record.Locale.Timezone,
		})

		ctx := logging.WithSessionID(m.deps.Context, m.log.SessionID().String())
		ctx = logging.WithStep(ctx, m.step.String())
		ctx, cancel := context.WithCancel(ctx)
		m.cancel = cancel
		m.pending = "Submitting registration..."
		m.pendingSeq++

		var (
			seq       = m.pendingSeq
			record    = m.record
			submitter = m.deps.Submitter
		)
		return tea.Batch(m.spinner.Tick, func() tea.Msg {
			receipt, err := submitter.Submit(ctx, record)
			return submitResultMsg{seq: seq, receipt: receipt, err: err}
		})
	}

	return nil
}

// cancelStep handles esc on a form: back on the address step, a leave
// confirmation elsewhere.
func (m *Model) cancelStep() tea.Cmd {
	if m.step == StepLocale {
		m.log.Record(activity.BackClicked, nil)
		return m.enter(StepAccount)
	}
	m.modal = leaveModal()
	return nil
}

func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.pendingSeq || m.pending == "" {
		return m, nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.pending = ""

	if msg.err != nil {
		m.submitErr = describeError(msg.err)
		m.log.Record(activity.FormError, map[string]any{"error": msg.err.Error()})
		return m, m.dialog().Reopen()
	}

	m.receipt = &msg.receipt
	m.log.Record(activity.FormSuccess, map[string]any{"id": msg.receipt.ID.String()})
	return m, m.enter(StepDashboard)
}

// describeError flattens field errors into one line per field.
func describeError(err error) string {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		lines = append(lines, fmt.Sprintf("%s: %v", fe.Field, fe.Err))
	}
	return strings.Join(lines, "\n")
}
