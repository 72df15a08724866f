package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tvolk131/harbor/pkg/discovery"
	"github.com/tvolk131/harbor/pkg/nip87"
)

// Output is the serializable result of a discovery pass. Listings are
// ordered so the same set of announcements always renders the same way.
type Output struct {
	Network     string             `json:"network" yaml:"network"`
	CashuMints  []CashuMintOutput  `json:"cashuMints" yaml:"cashuMints"`
	Federations []FederationOutput `json:"federations" yaml:"federations"`
	Stats       StatsOutput        `json:"stats" yaml:"stats"`
}

type CashuMintOutput struct {
	Pubkey string   `json:"pubkey" yaml:"pubkey"`
	URL    string   `json:"url" yaml:"url"`
	Nuts   []uint16 `json:"nuts,omitempty" yaml:"nuts,omitempty"`
}

type FederationOutput struct {
	FederationID string   `json:"federationId" yaml:"federationId"`
	InviteCodes  []string `json:"inviteCodes" yaml:"inviteCodes"`
	Modules      []string `json:"modules,omitempty" yaml:"modules,omitempty"`
}

type StatsOutput struct {
	PassID         string `json:"passId" yaml:"passId"`
	EventsFetched  int    `json:"eventsFetched" yaml:"eventsFetched"`
	DroppedEvents  int    `json:"droppedEvents" yaml:"droppedEvents"`
	DroppedEntries int    `json:"droppedEntries" yaml:"droppedEntries"`
}

func buildOutput(network discovery.Network, result *discovery.Result) Output {
	out := Output{
		Network:     network.String(),
		CashuMints:  []CashuMintOutput{},
		Federations: []FederationOutput{},
		Stats: StatsOutput{
			PassID:         result.Stats.PassID,
			EventsFetched:  result.Stats.EventsFetched,
			DroppedEvents:  result.Stats.DroppedEvents,
			DroppedEntries: result.Stats.DroppedEntries,
		},
	}

	for _, pubkey := range nip87.SortedMintPubkeys(result.Cashu) {
		ann := result.Cashu[pubkey]
		out.CashuMints = append(out.CashuMints, CashuMintOutput{
			Pubkey: pubkey,
			URL:    ann.URL,
			Nuts:   ann.Nuts,
		})
	}

	for _, id := range nip87.SortedFederationIDs(result.Fedimint) {
		ann := result.Fedimint[id]
		fed := FederationOutput{
			FederationID: id.String(),
			InviteCodes:  []string{},
			Modules:      ann.Modules,
		}
		for _, code := range ann.InviteCodes {
			fed.InviteCodes = append(fed.InviteCodes, code.String())
		}
		out.Federations = append(out.Federations, fed)
	}

	return out
}

func render(w io.Writer, format string, out Output) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(out)
	case "text":
		renderText(w, out)
		return nil
	default:
		return fmt.Errorf("unknown output format '%s'", format)
	}
}

func renderText(w io.Writer, out Output) {
	fmt.Fprintf(w, "Network: %s\n", out.Network)

	fmt.Fprintf(w, "\nCashu mints (%d):\n", len(out.CashuMints))
	for _, mint := range out.CashuMints {
		fmt.Fprintf(w, "  %s\n", mint.Pubkey)
		fmt.Fprintf(w, "    url:  %s\n", mint.URL)
		if len(mint.Nuts) > 0 {
			fmt.Fprintf(w, "    nuts: %s\n", joinNuts(mint.Nuts))
		}
	}

	fmt.Fprintf(w, "\nFederations (%d):\n", len(out.Federations))
	for _, fed := range out.Federations {
		fmt.Fprintf(w, "  %s\n", fed.FederationID)
		if len(fed.Modules) > 0 {
			fmt.Fprintf(w, "    modules: %s\n", strings.Join(fed.Modules, ","))
		}
		fmt.Fprintf(w, "    invite codes:\n")
		for _, code := range fed.InviteCodes {
			fmt.Fprintf(w, "      %s\n", code)
		}
	}

	fmt.Fprintf(w, "\nFetched %d events (dropped %d events, %d entries)\n",
		out.Stats.EventsFetched, out.Stats.DroppedEvents, out.Stats.DroppedEntries)
}

func joinNuts(nuts []uint16) string {
	parts := make([]string, 0, len(nuts))
	for _, nut := range nuts {
		parts = append(parts, strconv.FormatUint(uint64(nut), 10))
	}
	return strings.Join(parts, ",")
}
