// Package activity records user interactions on one wizard step.
//
// Each step owns its own Log: it is created when the step is entered and
// closed when the step is left, at which point a summary is emitted.
package activity

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Action names an interaction.
type Action string

const (
	PageLoad             Action = "page_load"
	AutoFocus            Action = "auto_focus"
	ElementFocus         Action = "element_focus"
	FieldInput           Action = "field_input"
	FieldBlur            Action = "field_blur"
	FieldChange          Action = "field_change"
	Click                Action = "click"
	CursorPosition       Action = "cursor_position"
	Scroll               Action = "scroll"
	Resize               Action = "resize"
	VisibilityChange     Action = "visibility_change"
	KeyboardAction       Action = "keyboard_action"
	FormSubmitAttempt    Action = "form_submit_attempt"
	FormValidationFailed Action = "form_validation_failed"
	FormSubmitted        Action = "form_submitted"
	FormSuccess          Action = "form_success"
	FormError            Action = "form_error"
	BackClicked          Action = "back_clicked"
	ContinueClicked      Action = "continue_clicked"
	AutoRedirect         Action = "auto_redirect"
	Logout               Action = "logout"
)

// Entry is one recorded interaction.
type Entry struct {
	Time   time.Time
	Action Action
	Fields map[string]any
}

// Summary describes a closed log.
type Summary struct {
	SessionID    uuid.UUID
	Page         string
	TimeOnPage   time.Duration
	Interactions int
	Counts       map[Action]int
}

// Log is safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	id      uuid.UUID
	page    string
	logger  zerolog.Logger
	now     func() time.Time
	started time.Time
	entries []Entry
	closed  *Summary
}

// New starts a log for page and records PageLoad. A nil now uses time.Now.
func New(page string, logger zerolog.Logger, now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}

	id := uuid.New()
	l := &Log{
		id:   id,
		page: page,
		logger: logger.With().
			Str("session_id", id.String()).
			Str("page", page).
			Logger(),
		now:     now,
		started: now(),
	}
	l.Record(PageLoad, nil)
	return l
}

// SessionID identifies this log in emitted events.
func (l *Log) SessionID() uuid.UUID { return l.id }

// Page returns the page the log belongs to.
func (l *Log) Page() string { return l.page }

// Record appends an entry and writes it to the logger. Records after Close
// are dropped.
func (l *Log) Record(action Action, fields map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed != nil {
		return
	}

	e := Entry{Time: l.now(), Action: action, Fields: maps.Clone(fields)}
	l.entries = append(l.entries, e)

	l.logger.Debug().
		Str("action", string(action)).
		Fields(e.Fields).
		Msg("activity")
}

// Entries returns a copy of the recorded entries.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Count returns how often action was recorded.
func (l *Log) Count(action Action) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, e := range l.entries {
		if e.Action == action {
			n++
		}
	}
	return n
}

// Close ends the log and emits the session summary. Subsequent calls return
// the same summary.
func (l *Log) Close() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed != nil {
		return *l.closed
	}

	s := Summary{
		SessionID:    l.id,
		Page:         l.page,
		TimeOnPage:   l.now().Sub(l.started),
		Interactions: len(l.entries),
		Counts:       make(map[Action]int),
	}
	for _, e := range l.entries {
		s.Counts[e.Action]++
	}
	l.closed = &s

	l.logger.Info().
		Dur("time_on_page", s.TimeOnPage).
		Int("interactions", s.Interactions).
		Msg("session summary")

	return s
}
