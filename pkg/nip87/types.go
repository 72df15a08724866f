package nip87

import "errors"

// Event kind constants from NIP-87.
const (
	// KindMintRecommendation is a user recommendation of a mint.
	// Defined for completeness; the discovery pipeline does not query it.
	KindMintRecommendation = 38000

	// KindCashuMintAnnouncement announces a Cashu mint.
	KindCashuMintAnnouncement = 38172

	// KindFedimintAnnouncement announces a Fedimint federation.
	KindFedimintAnnouncement = 38173
)

// Tag key constants.
const (
	// TagIdentity holds the mint pubkey (Cashu) or federation ID (Fedimint).
	TagIdentity = "d"

	// TagURL holds the mint URL (Cashu) or an invite code (Fedimint).
	TagURL = "u"

	// TagNuts holds comma-separated NUT numbers supported by a Cashu mint.
	TagNuts = "nuts"

	// TagModules holds comma-separated module names run by a federation.
	TagModules = "modules"

	// TagNetwork scopes an announcement to a bitcoin network.
	TagNetwork = "n"
)

// Parse errors.
var (
	ErrInvalidFederationID = errors.New("invalid federation ID")
	ErrInvalidInviteCode   = errors.New("invalid invite code")
)

// CashuAnnouncement is one announcement of a Cashu mint, either raw (as
// parsed from a single event) or aggregated across events.
type CashuAnnouncement struct {
	// MintPubkey identifies the mint. The format is not validated; it is
	// treated as an opaque identity string.
	MintPubkey string

	// URL is the mint's service endpoint.
	URL string

	// Nuts lists the NUT numbers the mint supports, sorted ascending,
	// without duplicates.
	Nuts []uint16
}

// FedimintAnnouncement is one announcement of a Fedimint federation, either
// raw or aggregated.
type FedimintAnnouncement struct {
	// FederationID identifies the federation.
	FederationID FederationID

	// InviteCodes lists known invite codes for joining the federation,
	// sorted by string form, without duplicates.
	InviteCodes []InviteCode

	// Modules lists the federation's module names, sorted, without
	// duplicates.
	Modules []string
}
