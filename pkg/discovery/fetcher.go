package discovery

import (
	"context"

	"github.com/nbd-wtf/go-nostr"
)

// EventFetcher is the capability the discovery pipeline requires from a
// relay connection provider: return the events matching a filter that were
// observed across the connected relays within the fetcher's time bound.
//
// Implementations must tolerate partial relay failure. Ordering of the
// returned events is not assumed, and duplicates across relays may or may
// not be collapsed; aggregation handles both. A nil error with an empty
// slice is a valid outcome and means no matching announcements were seen.
type EventFetcher interface {
	// FetchEvents returns all events matching filter observed before the
	// fetch bound elapses or ctx is cancelled.
	FetchEvents(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error)
}
