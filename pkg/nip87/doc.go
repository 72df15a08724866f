// Package nip87 implements the NIP-87 mint announcement schema.
//
// NIP-87 defines addressable events that advertise payment mints on nostr
// relays. Two announcement kinds are consumed here:
//
// # Cashu Mint Announcement (kind 38172)
//
// Announces a Cashu mint. Tags: d (mint pubkey), u (mint URL), nuts
// (comma-separated list of supported NUT numbers), n (network).
//
// # Fedimint Announcement (kind 38173)
//
// Announces a Fedimint federation. Tags: d (federation ID, 64 hex chars),
// u (invite code, repeatable), modules (comma-separated module names),
// n (network).
//
// A third kind, 38000 (mint recommendation), is defined by NIP-87 but not
// parsed by this package.
//
// # Parsing
//
// ParseCashuAnnouncement and ParseFedimintAnnouncement are pure functions
// from a raw event to an announcement record. Events from relays are
// untrusted: an event missing a required tag is dropped (nil result), and
// malformed entries inside multi-value fields (nuts, invite codes) are
// dropped individually without discarding the rest of the event.
//
// # Aggregation
//
// The same mint is typically announced by several people, with slightly
// different metadata. AggregateCashu and AggregateFedimint collapse all
// announcements sharing an identity into one canonical record: set fields
// are unioned, and the Cashu URL is resolved by majority vote.
package nip87
