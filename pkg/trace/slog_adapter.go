package trace

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see discovery events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("pass_id", event.PassID),
		slog.String("category", event.Category.String()),
	}

	if event.Network != "" {
		attrs = append(attrs, slog.String("network", event.Network))
	}

	// Add type-specific attributes
	switch {
	case event.Pass != nil:
		attrs = append(attrs, slog.String("phase", event.Pass.Phase.String()))
		if len(event.Pass.Relays) > 0 {
			attrs = append(attrs, slog.Any("relays", event.Pass.Relays))
		}
		if event.Pass.Phase == PhaseEnd {
			attrs = append(attrs,
				slog.Int("events_fetched", event.Pass.EventsFetched),
				slog.Int("cashu_mints", event.Pass.CashuMints),
				slog.Int("federations", event.Pass.Federations),
			)
		}
	case event.Fetch != nil:
		attrs = append(attrs,
			slog.String("event_id", event.Fetch.EventID),
			slog.Int("kind", event.Fetch.Kind),
		)
	case event.Drop != nil:
		attrs = append(attrs,
			slog.String("event_id", event.Drop.EventID),
			slog.Int("kind", event.Drop.Kind),
			slog.String("reason", event.Drop.Reason.String()),
		)
		if event.Drop.Entries > 0 {
			attrs = append(attrs, slog.Int("entries", event.Drop.Entries))
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "discovery", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
