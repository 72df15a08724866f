// Package discovery finds payment mints announced on nostr relays.
//
// A discovery pass maps the target bitcoin network to its NIP-87 scope tag
// values, builds a filter for the two announcement kinds, fetches matching
// events from the configured relays, parses each event into a typed
// announcement, and aggregates announcements sharing an identity into one
// canonical record per mint. The caller receives two mappings: Cashu mints
// keyed by mint pubkey and Fedimint federations keyed by federation ID.
//
// # Fetch Boundary
//
// Relay access goes through the EventFetcher interface. The production
// implementation is RelayPool, built on go-nostr's SimplePool; tests inject
// fakes. The pass suspends at two points only: a bounded wait for relay
// connections (elapsing does not fail the pass - fetching proceeds with
// whatever relays connected) and a bounded wait for fetched events.
//
// # Leniency
//
// Events from relays are untrusted. Malformed announcements and malformed
// entries inside multi-value fields are silently dropped, never escalated;
// the Result's Stats expose drop counts for observability. The only errors
// a caller sees are an unsupported network selector and fetch-boundary
// failures. An empty result is a valid result, distinct from either.
//
// # Basic Usage
//
//	pool, err := discovery.NewRelayPool(discovery.DefaultConfig())
//	if err != nil { ... }
//	defer pool.Close()
//	d := discovery.NewDiscoverer(pool, discovery.DiscovererConfig{})
//	result, err := d.Discover(ctx, discovery.Mainnet)
//	if err != nil { ... }
//	for _, pubkey := range nip87.SortedMintPubkeys(result.Cashu) { ... }
package discovery
