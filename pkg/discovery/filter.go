package discovery

import (
	"github.com/nbd-wtf/go-nostr"

	"github.com/tvolk131/harbor/pkg/nip87"
)

// AnnouncementFilter builds the relay query for mint announcements on the
// given network scope tags. It selects exactly the two announcement kinds,
// restricted by the "n" tag; no time range, author, or limit is applied -
// the fetch timeout is the only bound on result volume.
func AnnouncementFilter(scopeTags []string) nostr.Filter {
	return nostr.Filter{
		Kinds: []int{
			nip87.KindCashuMintAnnouncement,
			nip87.KindFedimintAnnouncement,
		},
		Tags: nostr.TagMap{
			nip87.TagNetwork: scopeTags,
		},
	}
}
