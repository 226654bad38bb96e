package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger at Debug level.
// Useful during development to see events on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter that writes to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("component", event.Component.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Tick != 0 {
		attrs = append(attrs, slog.Uint64("tick", event.Tick))
	}

	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
			slog.Int("voltage_mv", int(event.StateChange.VoltageMV)),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Diag != nil:
		attrs = append(attrs,
			slog.String("diag_type", event.Diag.Type.String()),
			slog.Int("sid", int(event.Diag.ServiceID)),
			slog.Int("did", int(event.Diag.DID)),
			slog.Int("length", int(event.Diag.Length)),
		)
		if event.Diag.NRC != nil {
			attrs = append(attrs, slog.Int("nrc", int(*event.Diag.NRC)))
		}
		if len(event.Diag.Data) > 0 {
			attrs = append(attrs, slog.Int("data_size", len(event.Diag.Data)))
		}
		if event.Diag.ProcessingTime != nil {
			attrs = append(attrs, slog.Duration("processing_time", *event.Diag.ProcessingTime))
		}
	case event.Sample != nil:
		attrs = append(attrs,
			slog.Int("voltage_mv", int(event.Sample.VoltageMV)),
			slog.Int("elapsed_ms", int(event.Sample.ElapsedMs)),
			slog.String("state", event.Sample.State),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", *event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
