// Package trace provides diagnostic event capture for discovery passes.
//
// Parsing is deliberately lenient: malformed announcements from untrusted
// relays are dropped silently, never escalated. Trace capture is the
// observability channel that makes those drops visible without changing the
// lenient contract - each pass, fetched event, drop, and error can be
// recorded as a typed Event.
//
// Applications enable capture by providing a Logger implementation:
//
//	// For development: see events in console via slog
//	cfg.Trace = trace.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to a CBOR capture file
//	cfg.Trace, _ = trace.NewFileLogger("discover.trace")
//
//	// Both: use MultiLogger
//	cfg.Trace = trace.NewMultiLogger(
//	    trace.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// Capture files hold a CBOR stream of Events; ReadFile reads them back,
// optionally filtered.
package trace
