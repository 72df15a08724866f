package nip87

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// FederationIDLength is the length of a federation ID in bytes.
// The ID is the SHA-256 hash of the federation's initial config.
const FederationIDLength = 32

// inviteCodeHRP is the bech32 human-readable part of Fedimint invite codes.
const inviteCodeHRP = "fed1"

// FederationID is a Fedimint federation identifier. It is a comparable
// value type usable as a map key, ordered by byte value.
type FederationID [FederationIDLength]byte

// ParseFederationID parses a federation ID from its 64-character hex form.
func ParseFederationID(s string) (FederationID, error) {
	var id FederationID
	if len(s) != FederationIDLength*2 {
		return id, fmt.Errorf("%w: got %d chars, want %d", ErrInvalidFederationID, len(s), FederationIDLength*2)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("%w: %v", ErrInvalidFederationID, err)
	}
	copy(id[:], raw)
	return id, nil
}

// String returns the lowercase hex form of the ID.
func (id FederationID) String() string {
	return hex.EncodeToString(id[:])
}

// Compare orders federation IDs by byte value.
// Returns -1, 0, or 1, like bytes.Compare.
func (id FederationID) Compare(other FederationID) int {
	return bytes.Compare(id[:], other[:])
}

// InviteCode is a validated Fedimint invite code. The zero value is invalid;
// use ParseInviteCode.
type InviteCode struct {
	s string
}

// ParseInviteCode parses and validates a Fedimint invite code. Invite codes
// are bech32m strings with the "fed1" human-readable part, carrying the
// federation ID and one or more guardian endpoints. The payload is checksum
// validated but not decoded further; the code is carried opaquely to the
// wallet that will join the federation.
func ParseInviteCode(s string) (InviteCode, error) {
	// Invite codes routinely exceed the 90-character BIP-173 limit, so the
	// no-limit decoder is required.
	hrp, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return InviteCode{}, fmt.Errorf("%w: %v", ErrInvalidInviteCode, err)
	}
	if hrp != inviteCodeHRP {
		return InviteCode{}, fmt.Errorf("%w: unexpected prefix %q", ErrInvalidInviteCode, hrp)
	}
	if len(data) == 0 {
		return InviteCode{}, fmt.Errorf("%w: empty payload", ErrInvalidInviteCode)
	}
	// bech32 strings are case-insensitive; normalize for set semantics.
	return InviteCode{s: strings.ToLower(s)}, nil
}

// String returns the invite code in its normalized (lowercase) string form.
func (c InviteCode) String() string {
	return c.s
}

// Compare orders invite codes by their string form.
func (c InviteCode) Compare(other InviteCode) int {
	return strings.Compare(c.s, other.s)
}
