package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tvolk131/harbor/pkg/discovery"
	"github.com/tvolk131/harbor/pkg/nip87"
)

func testResult(t *testing.T) *discovery.Result {
	t.Helper()

	fedID, err := nip87.ParseFederationID(strings.Repeat("ab", 32))
	require.NoError(t, err)

	return &discovery.Result{
		Cashu: map[string]nip87.CashuAnnouncement{
			"bbb": {MintPubkey: "bbb", URL: "https://mint-b.example.com"},
			"aaa": {MintPubkey: "aaa", URL: "https://mint-a.example.com", Nuts: []uint16{0, 4, 7}},
		},
		Fedimint: map[nip87.FederationID]nip87.FedimintAnnouncement{
			fedID: {FederationID: fedID, Modules: []string{"ln", "mint"}},
		},
		Stats: discovery.Stats{
			PassID:         "test-pass",
			EventsFetched:  3,
			DroppedEntries: 1,
		},
	}
}

func TestBuildOutput_Ordering(t *testing.T) {
	out := buildOutput(discovery.Mainnet, testResult(t))

	assert.Equal(t, "mainnet", out.Network)
	require.Len(t, out.CashuMints, 2)
	assert.Equal(t, "aaa", out.CashuMints[0].Pubkey)
	assert.Equal(t, "bbb", out.CashuMints[1].Pubkey)
	require.Len(t, out.Federations, 1)
	assert.Equal(t, strings.Repeat("ab", 32), out.Federations[0].FederationID)
	assert.Equal(t, 3, out.Stats.EventsFetched)
	assert.Equal(t, 1, out.Stats.DroppedEntries)
}

func TestBuildOutput_EmptyResult(t *testing.T) {
	result := &discovery.Result{
		Cashu:    map[string]nip87.CashuAnnouncement{},
		Fedimint: map[nip87.FederationID]nip87.FedimintAnnouncement{},
	}

	out := buildOutput(discovery.Signet, result)

	// Empty slices, not nil, so json/yaml render arrays instead of null.
	assert.NotNil(t, out.CashuMints)
	assert.NotNil(t, out.Federations)
	assert.Empty(t, out.CashuMints)
	assert.Empty(t, out.Federations)
}

func TestRender_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	err := render(buf, "text", buildOutput(discovery.Mainnet, testResult(t)))
	require.NoError(t, err)

	text := buf.String()
	assert.Contains(t, text, "Network: mainnet")
	assert.Contains(t, text, "Cashu mints (2):")
	assert.Contains(t, text, "https://mint-a.example.com")
	assert.Contains(t, text, "nuts: 0,4,7")
	assert.Contains(t, text, "Federations (1):")
	assert.Contains(t, text, "modules: ln,mint")
	assert.Contains(t, text, "Fetched 3 events (dropped 0 events, 1 entries)")
}

func TestRender_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	err := render(buf, "json", buildOutput(discovery.Mainnet, testResult(t)))
	require.NoError(t, err)

	var decoded Output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "mainnet", decoded.Network)
	require.Len(t, decoded.CashuMints, 2)
	assert.Equal(t, "aaa", decoded.CashuMints[0].Pubkey)
}

func TestRender_YAML(t *testing.T) {
	buf := &bytes.Buffer{}
	err := render(buf, "yaml", buildOutput(discovery.Mainnet, testResult(t)))
	require.NoError(t, err)

	var decoded Output
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "mainnet", decoded.Network)
	require.Len(t, decoded.Federations, 1)
	assert.Equal(t, []string{"ln", "mint"}, decoded.Federations[0].Modules)
}

func TestRender_UnknownFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	err := render(buf, "xml", Output{})
	assert.Error(t, err)
}
