package nip87

import (
	"slices"
	"strconv"
	"strings"

	"github.com/nbd-wtf/go-nostr"
)

// ParseCashuAnnouncement extracts a Cashu mint announcement from an event's
// tags. It requires a "d" tag (mint pubkey), a "u" tag (mint URL), and a
// "nuts" tag (comma-separated NUT numbers); the first occurrence of each
// wins. If any required tag is missing the event is not an announcement and
// nil is returned. Entries in the nuts list that fail integer parsing are
// dropped individually; dropped reports how many.
//
// The function is pure and never fails: relays serve untrusted input, and a
// single malformed event must not disturb the rest of a discovery pass.
func ParseCashuAnnouncement(ev *nostr.Event) (ann *CashuAnnouncement, dropped int) {
	identity, ok := tagValue(ev.Tags, TagIdentity)
	if !ok {
		return nil, 0
	}

	url, ok := tagValue(ev.Tags, TagURL)
	if !ok {
		return nil, 0
	}

	nutsList, ok := tagValue(ev.Tags, TagNuts)
	if !ok {
		return nil, 0
	}

	nuts, dropped := parseNuts(nutsList)

	return &CashuAnnouncement{
		MintPubkey: identity,
		URL:        url,
		Nuts:       nuts,
	}, dropped
}

// ParseFedimintAnnouncement extracts a Fedimint federation announcement from
// an event's tags. It requires a "d" tag holding a parseable federation ID
// and a "modules" tag (comma-separated module names, taken verbatim); if
// either is missing or the ID fails to parse, nil is returned. "u" tags are
// each interpreted independently as an invite code; codes that fail to parse
// are dropped individually, reported via dropped.
func ParseFedimintAnnouncement(ev *nostr.Event) (ann *FedimintAnnouncement, dropped int) {
	identity, ok := tagValue(ev.Tags, TagIdentity)
	if !ok {
		return nil, 0
	}
	federationID, err := ParseFederationID(identity)
	if err != nil {
		return nil, 0
	}

	moduleList, ok := tagValue(ev.Tags, TagModules)
	if !ok {
		return nil, 0
	}

	codes := make(map[InviteCode]struct{})
	for _, value := range tagValues(ev.Tags, TagURL) {
		code, err := ParseInviteCode(value)
		if err != nil {
			dropped++
			continue
		}
		codes[code] = struct{}{}
	}

	return &FedimintAnnouncement{
		FederationID: federationID,
		InviteCodes:  sortedInviteCodes(codes),
		Modules:      parseModules(moduleList),
	}, dropped
}

// tagValue returns the value of the first tag whose key is exactly key.
// Tags with no value are skipped. Exact matching matters: go-nostr's tag
// lookups match key prefixes, which would let a "delegation" tag satisfy a
// "d" lookup.
func tagValue(tags nostr.Tags, key string) (string, bool) {
	for _, tag := range tags {
		if len(tag) >= 2 && tag[0] == key {
			return tag[1], true
		}
	}
	return "", false
}

// tagValues returns the values of all tags whose key is exactly key, in
// event order, skipping tags with no value.
func tagValues(tags nostr.Tags, key string) []string {
	var values []string
	for _, tag := range tags {
		if len(tag) >= 2 && tag[0] == key {
			values = append(values, tag[1])
		}
	}
	return values
}

// parseNuts parses a comma-separated NUT number list. Entries that fail
// integer parsing are counted and skipped; duplicates collapse silently.
func parseNuts(s string) (nuts []uint16, dropped int) {
	set := make(map[uint16]struct{})
	for _, entry := range strings.Split(s, ",") {
		n, err := strconv.ParseUint(entry, 10, 16)
		if err != nil {
			dropped++
			continue
		}
		set[uint16(n)] = struct{}{}
	}

	nuts = make([]uint16, 0, len(set))
	for n := range set {
		nuts = append(nuts, n)
	}
	slices.Sort(nuts)
	return nuts, dropped
}

// parseModules splits a comma-separated module name list. Names are taken
// verbatim, without validation or trimming.
func parseModules(s string) []string {
	set := make(map[string]struct{})
	for _, name := range strings.Split(s, ",") {
		set[name] = struct{}{}
	}

	modules := make([]string, 0, len(set))
	for name := range set {
		modules = append(modules, name)
	}
	slices.Sort(modules)
	return modules
}

func sortedInviteCodes(set map[InviteCode]struct{}) []InviteCode {
	codes := make([]InviteCode, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	slices.SortFunc(codes, InviteCode.Compare)
	return codes
}
