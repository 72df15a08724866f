package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nbd-wtf/go-nostr"

	"github.com/tvolk131/harbor/pkg/nip87"
	"github.com/tvolk131/harbor/pkg/trace"
)

// Result is the outcome of one discovery pass: two read-only mappings, one
// per mint kind, each holding exactly one aggregated record per identity.
// An empty result is valid and means no mints were announced for the
// requested network on the queried relays.
type Result struct {
	// Cashu maps mint pubkey to the aggregated Cashu announcement.
	Cashu map[string]nip87.CashuAnnouncement

	// Fedimint maps federation ID to the aggregated Fedimint announcement.
	Fedimint map[nip87.FederationID]nip87.FedimintAnnouncement

	// Stats reports what the pass saw and silently dropped.
	Stats Stats
}

// Stats counts what one discovery pass fetched and dropped. Drops are part
// of the lenient parsing contract and never surface as errors; these counts
// exist for observability.
type Stats struct {
	// PassID is the pass correlation ID (UUID).
	PassID string

	// EventsFetched is the total number of events returned by the fetcher.
	EventsFetched int

	// CashuAnnouncements is the number of raw Cashu announcements parsed.
	CashuAnnouncements int

	// FedimintAnnouncements is the number of raw Fedimint announcements parsed.
	FedimintAnnouncements int

	// DroppedEvents is the number of events discarded as malformed.
	DroppedEvents int

	// DroppedEntries is the number of entries discarded inside multi-value
	// fields (NUT numbers, invite codes) of events that were kept.
	DroppedEntries int
}

// DiscovererConfig configures a Discoverer.
type DiscovererConfig struct {
	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Trace is the optional diagnostic event capture.
	// If nil, capture is disabled.
	Trace trace.Logger

	// Relays lists the relay URLs behind the fetcher, recorded in the
	// pass-start trace event. Informational only; the fetcher owns the
	// actual relay set.
	Relays []string
}

// Discoverer runs discovery passes against an event fetcher. Passes are
// stateless and independent; a Discoverer is safe for concurrent use as
// long as its fetcher is.
type Discoverer struct {
	fetcher EventFetcher
	logger  *slog.Logger
	tracer  trace.Logger
	relays  []string
}

// NewDiscoverer creates a Discoverer over the given fetcher.
func NewDiscoverer(fetcher EventFetcher, config DiscovererConfig) *Discoverer {
	tracer := config.Trace
	if tracer == nil {
		tracer = trace.NoopLogger{}
	}
	return &Discoverer{
		fetcher: fetcher,
		logger:  config.Logger,
		tracer:  tracer,
		relays:  config.Relays,
	}
}

// Discover runs one discovery pass for the given network.
//
// The pass fails only on an unsupported network selector or a fetcher
// error; malformed announcements are dropped silently and counted in
// Result.Stats. The caller receives the complete result or an error,
// never partial streams.
func (d *Discoverer) Discover(ctx context.Context, network Network) (*Result, error) {
	passID := uuid.NewString()
	started := time.Now()

	scopeTags, err := ScopeTags(network)
	if err != nil {
		return nil, err
	}

	d.tracer.Log(trace.Event{
		Timestamp: started,
		PassID:    passID,
		Category:  trace.CategoryPass,
		Network:   network.String(),
		Pass:      &trace.PassEvent{Phase: trace.PhaseStart, Relays: d.relays},
	})

	events, err := d.fetcher.FetchEvents(ctx, AnnouncementFilter(scopeTags))
	if err != nil {
		d.tracer.Log(trace.Event{
			Timestamp: time.Now(),
			PassID:    passID,
			Category:  trace.CategoryError,
			Network:   network.String(),
			Error:     &trace.ErrorEventData{Message: err.Error(), Context: "fetch"},
		})
		return nil, fmt.Errorf("failed to fetch announcements: %w", err)
	}

	stats := Stats{PassID: passID, EventsFetched: len(events)}

	var cashu []nip87.CashuAnnouncement
	var fedimint []nip87.FedimintAnnouncement
	for _, ev := range events {
		d.tracer.Log(trace.Event{
			Timestamp: time.Now(),
			PassID:    passID,
			Category:  trace.CategoryFetch,
			Network:   network.String(),
			Fetch:     &trace.FetchEvent{EventID: ev.ID, Kind: ev.Kind},
		})

		switch ev.Kind {
		case nip87.KindCashuMintAnnouncement:
			ann, dropped := nip87.ParseCashuAnnouncement(ev)
			d.recordDrops(passID, network, ev, ann == nil, dropped, &stats)
			if ann != nil {
				cashu = append(cashu, *ann)
				stats.CashuAnnouncements++
			}
		case nip87.KindFedimintAnnouncement:
			ann, dropped := nip87.ParseFedimintAnnouncement(ev)
			d.recordDrops(passID, network, ev, ann == nil, dropped, &stats)
			if ann != nil {
				fedimint = append(fedimint, *ann)
				stats.FedimintAnnouncements++
			}
		default:
			// The filter requests only announcement kinds, but relays are
			// not trusted to honor it.
			stats.DroppedEvents++
		}
	}

	result := &Result{
		Cashu:    nip87.AggregateCashu(cashu),
		Fedimint: nip87.AggregateFedimint(fedimint),
		Stats:    stats,
	}

	if d.logger != nil {
		d.logger.Info("discovery pass complete",
			"pass_id", passID,
			"network", network.String(),
			"duration", time.Since(started),
			"events", stats.EventsFetched,
			"cashu_mints", len(result.Cashu),
			"federations", len(result.Fedimint),
			"dropped_events", stats.DroppedEvents,
			"dropped_entries", stats.DroppedEntries,
		)
	}
	d.tracer.Log(trace.Event{
		Timestamp: time.Now(),
		PassID:    passID,
		Category:  trace.CategoryPass,
		Network:   network.String(),
		Pass: &trace.PassEvent{
			Phase:         trace.PhaseEnd,
			EventsFetched: stats.EventsFetched,
			CashuMints:    len(result.Cashu),
			Federations:   len(result.Fedimint),
		},
	})

	return result, nil
}

// recordDrops updates stats and emits trace events for one parsed event.
func (d *Discoverer) recordDrops(passID string, network Network, ev *nostr.Event, discarded bool, droppedEntries int, stats *Stats) {
	if discarded {
		stats.DroppedEvents++
		d.tracer.Log(trace.Event{
			Timestamp: time.Now(),
			PassID:    passID,
			Category:  trace.CategoryDrop,
			Network:   network.String(),
			Drop: &trace.DropEvent{
				EventID: ev.ID,
				Kind:    ev.Kind,
				Reason:  trace.DropReasonMalformed,
			},
		})
		return
	}
	if droppedEntries > 0 {
		stats.DroppedEntries += droppedEntries
		d.tracer.Log(trace.Event{
			Timestamp: time.Now(),
			PassID:    passID,
			Category:  trace.CategoryDrop,
			Network:   network.String(),
			Drop: &trace.DropEvent{
				EventID: ev.ID,
				Kind:    ev.Kind,
				Reason:  trace.DropReasonEntries,
				Entries: droppedEntries,
			},
		})
	}
}
