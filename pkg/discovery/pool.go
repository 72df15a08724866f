package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nbd-wtf/go-nostr"
)

// RelayPool is the production EventFetcher, maintaining websocket
// connections to a configured set of relays via go-nostr's SimplePool.
//
// Connections are established lazily on the first fetch and reused across
// fetches. The pool waits at most ConnectTimeout for connections; relays
// that fail to connect in time are skipped for that fetch rather than
// failing it.
type RelayPool struct {
	config Config
	pool   *nostr.SimplePool
	pubkey string
	cancel context.CancelFunc

	mu        sync.Mutex
	connected bool
}

// NewRelayPool creates a relay pool from config. The pool's nostr identity
// is drawn from config.Identity, or freshly generated when nil; it is never
// used to sign events, since discovery only reads.
func NewRelayPool(config Config) (*RelayPool, error) {
	identity := config.Identity
	if identity == nil {
		identity = EphemeralIdentity{}
	}
	privkey, err := identity.PrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain identity: %w", err)
	}
	pubkey, err := nostr.GetPublicKey(privkey)
	if err != nil {
		return nil, fmt.Errorf("invalid identity key: %w", err)
	}

	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = ConnectTimeout
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = FetchTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &RelayPool{
		config: config,
		pool:   nostr.NewSimplePool(ctx),
		pubkey: pubkey,
		cancel: cancel,
	}, nil
}

// PublicKey returns the pool identity's public key (hex).
func (r *RelayPool) PublicKey() string {
	return r.pubkey
}

// FetchEvents collects all events matching filter seen on the connected
// relays until every relay reports end-of-stored-events or the fetch
// timeout elapses, whichever comes first.
func (r *RelayPool) FetchEvents(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	r.connect(ctx)

	fetchCtx, cancel := context.WithTimeout(ctx, r.config.FetchTimeout)
	defer cancel()

	events := make([]*nostr.Event, 0)
	for ev := range r.pool.SubManyEose(fetchCtx, r.config.Relays, nostr.Filters{filter}) {
		events = append(events, ev.Event)
	}

	// A cancelled parent context is a caller decision, not an empty relay.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("fetch complete", "events", len(events))
	}
	return events, nil
}

// connect establishes relay connections, waiting at most ConnectTimeout.
// Relays that fail or are slow to connect are left to connect in the
// background; the fetch proceeds with whatever is available.
func (r *RelayPool) connect(ctx context.Context) {
	r.mu.Lock()
	if r.connected {
		r.mu.Unlock()
		return
	}
	r.connected = true
	r.mu.Unlock()

	var wg sync.WaitGroup
	for _, url := range r.config.Relays {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			if _, err := r.pool.EnsureRelay(url); err != nil && r.config.Logger != nil {
				r.config.Logger.Warn("relay connection failed", "relay", url, "err", err)
			}
		}(url)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(r.config.ConnectTimeout):
		if r.config.Logger != nil {
			r.config.Logger.Debug("connect timeout elapsed, proceeding with connected relays")
		}
	case <-ctx.Done():
	}
}

// Close shuts down the pool and its relay connections.
func (r *RelayPool) Close() {
	r.cancel()
}

// Compile-time interface satisfaction check.
var _ EventFetcher = (*RelayPool)(nil)
