package nip87_test

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvolk131/harbor/pkg/nip87"
)

// encodeInviteCode builds a checksum-valid invite code from raw payload
// bytes, using the given human-readable part.
func encodeInviteCode(t *testing.T, hrp string, payload []byte) string {
	t.Helper()
	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	require.NoError(t, err)
	code, err := bech32.EncodeM(hrp, converted)
	require.NoError(t, err)
	return code
}

func TestParseFederationID(t *testing.T) {
	hexID := strings.Repeat("ab", 32)

	id, err := nip87.ParseFederationID(hexID)
	require.NoError(t, err)
	assert.Equal(t, hexID, id.String())
}

func TestParseFederationID_Uppercase(t *testing.T) {
	id, err := nip87.ParseFederationID(strings.Repeat("AB", 32))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ab", 32), id.String())
}

func TestParseFederationID_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "abcdef"},
		{"too long", strings.Repeat("ab", 33)},
		{"non-hex", strings.Repeat("zz", 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nip87.ParseFederationID(tt.input)
			assert.ErrorIs(t, err, nip87.ErrInvalidFederationID)
		})
	}
}

func TestFederationID_Compare(t *testing.T) {
	low, err := nip87.ParseFederationID(strings.Repeat("00", 32))
	require.NoError(t, err)
	high, err := nip87.ParseFederationID(strings.Repeat("ff", 32))
	require.NoError(t, err)

	assert.Equal(t, -1, low.Compare(high))
	assert.Equal(t, 1, high.Compare(low))
	assert.Equal(t, 0, low.Compare(low))
}

func TestParseInviteCode(t *testing.T) {
	raw := encodeInviteCode(t, "fed1", []byte("test federation invite"))

	code, err := nip87.ParseInviteCode(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, code.String())
}

func TestParseInviteCode_NormalizesCase(t *testing.T) {
	raw := encodeInviteCode(t, "fed1", []byte("test federation invite"))

	upper, err := nip87.ParseInviteCode(strings.ToUpper(raw))
	require.NoError(t, err)
	lower, err := nip87.ParseInviteCode(raw)
	require.NoError(t, err)
	assert.Equal(t, lower, upper)
}

func TestParseInviteCode_Invalid(t *testing.T) {
	valid := encodeInviteCode(t, "fed1", []byte("payload"))
	// bech32 detects any single-character substitution, so flipping the
	// final character always invalidates the checksum.
	flipped := "q"
	if strings.HasSuffix(valid, "q") {
		flipped = "p"
	}
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not bech32", "definitely not an invite code"},
		{"wrong prefix", encodeInviteCode(t, "bc", []byte("payload"))},
		{"corrupted checksum", valid[:len(valid)-1] + flipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nip87.ParseInviteCode(tt.input)
			assert.ErrorIs(t, err, nip87.ErrInvalidInviteCode)
		})
	}
}

func TestInviteCode_Compare(t *testing.T) {
	a, err := nip87.ParseInviteCode(encodeInviteCode(t, "fed1", []byte("aaaa")))
	require.NoError(t, err)
	b, err := nip87.ParseInviteCode(encodeInviteCode(t, "fed1", []byte("zzzz")))
	require.NoError(t, err)

	assert.Equal(t, 0, a.Compare(a))
	assert.NotEqual(t, 0, a.Compare(b))
	assert.Equal(t, -b.Compare(a), a.Compare(b))
}
