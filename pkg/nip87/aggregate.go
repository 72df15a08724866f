package nip87

import "slices"

// AggregateCashu merges raw Cashu announcements so that the result holds
// exactly one record per mint pubkey. The merged record's URL is the most
// commonly seen URL among that mint's announcements, and its Nuts are the
// union of all NUTs seen in any announcement for the mint.
//
// Aggregation is total: it never fails, and an empty input yields an empty
// (non-nil) map. Use SortedMintPubkeys to iterate the result in order.
func AggregateCashu(announcements []CashuAnnouncement) map[string]CashuAnnouncement {
	byPubkey := make(map[string][]CashuAnnouncement)
	for _, ann := range announcements {
		byPubkey[ann.MintPubkey] = append(byPubkey[ann.MintPubkey], ann)
	}

	merged := make(map[string]CashuAnnouncement, len(byPubkey))
	for pubkey, group := range byPubkey {
		urls := make([]string, len(group))
		nuts := make(map[uint16]struct{})
		for i, ann := range group {
			urls[i] = ann.URL
			for _, n := range ann.Nuts {
				nuts[n] = struct{}{}
			}
		}

		allNuts := make([]uint16, 0, len(nuts))
		for n := range nuts {
			allNuts = append(allNuts, n)
		}
		slices.Sort(allNuts)

		merged[pubkey] = CashuAnnouncement{
			MintPubkey: pubkey,
			URL:        mostCommonString(urls),
			Nuts:       allNuts,
		}
	}
	return merged
}

// AggregateFedimint merges raw Fedimint announcements so that the result
// holds exactly one record per federation ID, with the union of all invite
// codes and modules seen in any announcement for that federation.
//
// Aggregation is total: it never fails, and an empty input yields an empty
// (non-nil) map. Use SortedFederationIDs to iterate the result in order.
func AggregateFedimint(announcements []FedimintAnnouncement) map[FederationID]FedimintAnnouncement {
	byID := make(map[FederationID][]FedimintAnnouncement)
	for _, ann := range announcements {
		byID[ann.FederationID] = append(byID[ann.FederationID], ann)
	}

	merged := make(map[FederationID]FedimintAnnouncement, len(byID))
	for id, group := range byID {
		codes := make(map[InviteCode]struct{})
		modules := make(map[string]struct{})
		for _, ann := range group {
			for _, code := range ann.InviteCodes {
				codes[code] = struct{}{}
			}
			for _, name := range ann.Modules {
				modules[name] = struct{}{}
			}
		}

		allModules := make([]string, 0, len(modules))
		for name := range modules {
			allModules = append(allModules, name)
		}
		slices.Sort(allModules)

		merged[id] = FedimintAnnouncement{
			FederationID: id,
			InviteCodes:  sortedInviteCodes(codes),
			Modules:      allModules,
		}
	}
	return merged
}

// SortedMintPubkeys returns the keys of an aggregated Cashu map in ascending
// order.
func SortedMintPubkeys(merged map[string]CashuAnnouncement) []string {
	pubkeys := make([]string, 0, len(merged))
	for pubkey := range merged {
		pubkeys = append(pubkeys, pubkey)
	}
	slices.Sort(pubkeys)
	return pubkeys
}

// SortedFederationIDs returns the keys of an aggregated Fedimint map in
// ascending byte order.
func SortedFederationIDs(merged map[FederationID]FedimintAnnouncement) []FederationID {
	ids := make([]FederationID, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, FederationID.Compare)
	return ids
}

// mostCommonString returns the most frequently occurring string. Ties break
// in favor of whichever string reached the winning count first in scan
// order: a later string must strictly exceed the current maximum to take
// over. Wallets depend on this when divergent announcement URLs reflect
// proxy or mirror drift.
func mostCommonString(strs []string) string {
	counts := make(map[string]int)
	maxCount := 0
	var mostCommon string

	for _, s := range strs {
		counts[s]++
		if counts[s] > maxCount {
			maxCount = counts[s]
			mostCommon = s
		}
	}
	return mostCommon
}
