package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies session_id and step from the event context onto the event.
type ContextHook struct{}

func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if id := SessionID(ctx); id != "" {
		e.Str("session_id", id)
	}
	if step := Step(ctx); step != "" {
		e.Str("step", step)
	}
}
