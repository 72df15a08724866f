package discovery

import "github.com/nbd-wtf/go-nostr"

// IdentityProvider supplies the nostr keypair a relay pool identifies
// itself with. Discovery only reads from relays, so the key is never used
// to sign announcements; it exists so relays that require an identity see a
// consistent one, and so tests can supply deterministic keys.
type IdentityProvider interface {
	// PrivateKey returns a 32-byte hex-encoded nostr secret key.
	PrivateKey() (string, error)
}

// EphemeralIdentity generates a fresh keypair for every pool. This is the
// default: discovery passes are stateless and leave no linkable identity
// across invocations.
type EphemeralIdentity struct{}

// PrivateKey returns a newly generated secret key.
func (EphemeralIdentity) PrivateKey() (string, error) {
	return nostr.GeneratePrivateKey(), nil
}

// StaticIdentity always returns the same secret key. Intended for tests and
// for hosts that manage their own key material.
type StaticIdentity struct {
	// Key is the 32-byte hex-encoded secret key to return.
	Key string
}

// PrivateKey returns the configured key.
func (s StaticIdentity) PrivateKey() (string, error) {
	return s.Key, nil
}

// Compile-time interface satisfaction checks.
var (
	_ IdentityProvider = EphemeralIdentity{}
	_ IdentityProvider = StaticIdentity{}
)
