package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/tvolk131/harbor/pkg/trace"
)

// dumpTrace prints a trace capture file, one line per event.
func dumpTrace(w io.Writer, path string) error {
	reader, err := trace.NewReader(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(w, formatTraceEvent(event))
	}
}

func formatTraceEvent(event trace.Event) string {
	prefix := fmt.Sprintf("%s %s pass=%s",
		event.Timestamp.Format("2006-01-02 15:04:05.000"),
		event.Category, shortPassID(event.PassID))

	switch {
	case event.Pass != nil:
		return fmt.Sprintf("%s %s network=%s", prefix, event.Pass.Phase, event.Network)
	case event.Fetch != nil:
		return fmt.Sprintf("%s kind=%d id=%s", prefix, event.Fetch.Kind, event.Fetch.EventID)
	case event.Drop != nil:
		if event.Drop.Reason == trace.DropReasonEntries {
			return fmt.Sprintf("%s %s kind=%d id=%s entries=%d",
				prefix, event.Drop.Reason, event.Drop.Kind, event.Drop.EventID, event.Drop.Entries)
		}
		return fmt.Sprintf("%s %s kind=%d id=%s",
			prefix, event.Drop.Reason, event.Drop.Kind, event.Drop.EventID)
	case event.Error != nil:
		if event.Error.Context != "" {
			return fmt.Sprintf("%s %s: %s", prefix, event.Error.Context, event.Error.Message)
		}
		return fmt.Sprintf("%s %s", prefix, event.Error.Message)
	default:
		return prefix
	}
}

// shortPassID keeps dump lines readable; the full UUID is in the file.
func shortPassID(passID string) string {
	if len(passID) > 8 {
		return passID[:8]
	}
	return passID
}
