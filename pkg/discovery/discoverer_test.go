package discovery_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvolk131/harbor/pkg/discovery"
	"github.com/tvolk131/harbor/pkg/nip87"
	"github.com/tvolk131/harbor/pkg/trace"
)

// fakeFetcher returns canned events and records the filter it was queried
// with.
type fakeFetcher struct {
	events []*nostr.Event
	err    error

	lastFilter nostr.Filter
}

func (f *fakeFetcher) FetchEvents(_ context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

// capturingTracer collects trace events for assertions.
type capturingTracer struct {
	mu     sync.Mutex
	events []trace.Event
}

func (c *capturingTracer) Log(event trace.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *capturingTracer) byCategory(category trace.Category) []trace.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []trace.Event
	for _, ev := range c.events {
		if ev.Category == category {
			out = append(out, ev)
		}
	}
	return out
}

func testInviteCode(t *testing.T, payload string) string {
	t.Helper()
	converted, err := bech32.ConvertBits([]byte(payload), 8, 5, true)
	require.NoError(t, err)
	code, err := bech32.EncodeM("fed1", converted)
	require.NoError(t, err)
	return code
}

func cashuAnnouncementEvent(id, pubkey, url, nuts string) *nostr.Event {
	return &nostr.Event{
		ID:   id,
		Kind: nip87.KindCashuMintAnnouncement,
		Tags: nostr.Tags{
			{"d", pubkey},
			{"u", url},
			{"nuts", nuts},
			{"n", "mainnet"},
		},
	}
}

func TestDiscover(t *testing.T) {
	federationHex := strings.Repeat("cd", 32)
	fetcher := &fakeFetcher{events: []*nostr.Event{
		cashuAnnouncementEvent("ev1", "mint-a", "https://a.example.com", "0,4"),
		cashuAnnouncementEvent("ev2", "mint-a", "https://a.example.com", "7"),
		cashuAnnouncementEvent("ev3", "mint-b", "https://b.example.com", "0"),
		{
			ID:   "ev4",
			Kind: nip87.KindFedimintAnnouncement,
			Tags: nostr.Tags{
				{"d", federationHex},
				{"u", testInviteCode(t, "guardian")},
				{"modules", "mint,ln"},
			},
		},
	}}

	d := discovery.NewDiscoverer(fetcher, discovery.DiscovererConfig{})
	result, err := d.Discover(context.Background(), discovery.Mainnet)
	require.NoError(t, err)

	require.Len(t, result.Cashu, 2)
	assert.Equal(t, []uint16{0, 4, 7}, result.Cashu["mint-a"].Nuts)
	assert.Equal(t, "https://a.example.com", result.Cashu["mint-a"].URL)

	require.Len(t, result.Fedimint, 1)
	id, err := nip87.ParseFederationID(federationHex)
	require.NoError(t, err)
	assert.Equal(t, []string{"ln", "mint"}, result.Fedimint[id].Modules)

	assert.Equal(t, 4, result.Stats.EventsFetched)
	assert.Equal(t, 3, result.Stats.CashuAnnouncements)
	assert.Equal(t, 1, result.Stats.FedimintAnnouncements)
	assert.Zero(t, result.Stats.DroppedEvents)
	assert.NotEmpty(t, result.Stats.PassID)

	// The fetcher must have been queried with the mainnet scope.
	assert.Equal(t, []string{"mainnet", "bitcoin"}, fetcher.lastFilter.Tags["n"])
	assert.ElementsMatch(t, []int{38172, 38173}, fetcher.lastFilter.Kinds)
}

func TestDiscover_UnsupportedNetwork(t *testing.T) {
	fetcher := &fakeFetcher{}
	d := discovery.NewDiscoverer(fetcher, discovery.DiscovererConfig{})

	// An unsupported selector must be distinguishable from "zero mints
	// found": a typed error, not an empty result.
	_, err := d.Discover(context.Background(), discovery.Network(42))
	var unsupported *discovery.UnsupportedNetworkError
	require.ErrorAs(t, err, &unsupported)
}

func TestDiscover_FetchError(t *testing.T) {
	fetchErr := errors.New("all relays unreachable")
	d := discovery.NewDiscoverer(&fakeFetcher{err: fetchErr}, discovery.DiscovererConfig{})

	_, err := d.Discover(context.Background(), discovery.Mainnet)
	require.ErrorIs(t, err, fetchErr)
}

func TestDiscover_EmptyFetch(t *testing.T) {
	d := discovery.NewDiscoverer(&fakeFetcher{}, discovery.DiscovererConfig{})

	result, err := d.Discover(context.Background(), discovery.Mainnet)
	require.NoError(t, err)
	assert.Empty(t, result.Cashu)
	assert.Empty(t, result.Fedimint)
	assert.NotNil(t, result.Cashu)
	assert.NotNil(t, result.Fedimint)
}

func TestDiscover_DropsMalformedEvents(t *testing.T) {
	fetcher := &fakeFetcher{events: []*nostr.Event{
		cashuAnnouncementEvent("ev1", "mint-a", "https://a.example.com", "0"),
		{
			// Missing the required nuts tag.
			ID:   "ev2",
			Kind: nip87.KindCashuMintAnnouncement,
			Tags: nostr.Tags{{"d", "mint-b"}, {"u", "https://b.example.com"}},
		},
		{
			// Filter kinds are not trusted to be honored by relays.
			ID:   "ev3",
			Kind: 1,
			Tags: nostr.Tags{},
		},
	}}

	d := discovery.NewDiscoverer(fetcher, discovery.DiscovererConfig{})
	result, err := d.Discover(context.Background(), discovery.Mainnet)
	require.NoError(t, err)

	assert.Len(t, result.Cashu, 1)
	assert.Equal(t, 2, result.Stats.DroppedEvents)
}

func TestDiscover_CountsDroppedEntries(t *testing.T) {
	fetcher := &fakeFetcher{events: []*nostr.Event{
		cashuAnnouncementEvent("ev1", "mint-a", "https://a.example.com", "1,x,3"),
	}}

	d := discovery.NewDiscoverer(fetcher, discovery.DiscovererConfig{})
	result, err := d.Discover(context.Background(), discovery.Mainnet)
	require.NoError(t, err)

	require.Contains(t, result.Cashu, "mint-a")
	assert.Equal(t, []uint16{1, 3}, result.Cashu["mint-a"].Nuts)
	assert.Equal(t, 1, result.Stats.DroppedEntries)
	assert.Zero(t, result.Stats.DroppedEvents)
}

func TestDiscover_EmitsTraceEvents(t *testing.T) {
	tracer := &capturingTracer{}
	fetcher := &fakeFetcher{events: []*nostr.Event{
		cashuAnnouncementEvent("ev1", "mint-a", "https://a.example.com", "0"),
		{
			ID:   "ev2",
			Kind: nip87.KindCashuMintAnnouncement,
			Tags: nostr.Tags{{"d", "mint-b"}},
		},
	}}

	d := discovery.NewDiscoverer(fetcher, discovery.DiscovererConfig{
		Trace:  tracer,
		Relays: []string{"wss://relay.example.com"},
	})
	result, err := d.Discover(context.Background(), discovery.Mainnet)
	require.NoError(t, err)

	passes := tracer.byCategory(trace.CategoryPass)
	require.Len(t, passes, 2)
	assert.Equal(t, trace.PhaseStart, passes[0].Pass.Phase)
	assert.Equal(t, []string{"wss://relay.example.com"}, passes[0].Pass.Relays)
	assert.Equal(t, trace.PhaseEnd, passes[1].Pass.Phase)
	assert.Empty(t, passes[1].Pass.Relays)
	assert.Equal(t, result.Stats.PassID, passes[0].PassID)

	fetches := tracer.byCategory(trace.CategoryFetch)
	assert.Len(t, fetches, 2)

	drops := tracer.byCategory(trace.CategoryDrop)
	require.Len(t, drops, 1)
	assert.Equal(t, "ev2", drops[0].Drop.EventID)
	assert.Equal(t, trace.DropReasonMalformed, drops[0].Drop.Reason)
}

func TestDiscover_TraceErrorOnFetchFailure(t *testing.T) {
	tracer := &capturingTracer{}
	d := discovery.NewDiscoverer(
		&fakeFetcher{err: errors.New("connection refused")},
		discovery.DiscovererConfig{Trace: tracer},
	)

	_, err := d.Discover(context.Background(), discovery.Mainnet)
	require.Error(t, err)

	errorEvents := tracer.byCategory(trace.CategoryError)
	require.Len(t, errorEvents, 1)
	assert.Equal(t, "fetch", errorEvents[0].Error.Context)
}
