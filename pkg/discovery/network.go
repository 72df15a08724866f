package discovery

import (
	"fmt"
	"strings"
)

// Network selects which bitcoin network's announcements to discover.
type Network uint8

const (
	// Mainnet is the production bitcoin network.
	Mainnet Network = iota

	// Testnet is the testnet3 test network.
	Testnet

	// Testnet4 is the testnet4 test network.
	Testnet4

	// Signet is the signet test network.
	Signet

	// Regtest is a local regression-test network.
	Regtest
)

// String returns the network name.
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	case Testnet4:
		return "testnet4"
	case Signet:
		return "signet"
	case Regtest:
		return "regtest"
	default:
		return fmt.Sprintf("network(%d)", uint8(n))
	}
}

// ParseNetwork parses a network name as accepted by String.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(s) {
	case "mainnet", "bitcoin":
		return Mainnet, nil
	case "testnet", "testnet3":
		return Testnet, nil
	case "testnet4":
		return Testnet4, nil
	case "signet":
		return Signet, nil
	case "regtest":
		return Regtest, nil
	default:
		return 0, &UnsupportedNetworkError{Network: s}
	}
}

// UnsupportedNetworkError reports a network selector outside the closed set
// of supported networks. It is recoverable: callers can prompt for
// reconfiguration rather than abort.
type UnsupportedNetworkError struct {
	// Network is the rejected selector, in string form.
	Network string
}

// Error implements the error interface.
func (e *UnsupportedNetworkError) Error() string {
	return fmt.Sprintf("unsupported network: %s", e.Network)
}

// ScopeTags maps a network to the "n" tag values that announcements for it
// carry. Mainnet maps to two values: NIP-87 specifies "mainnet", but most
// announcements on existing relays use the older "bitcoin" convention, and
// filtering for only the specified value would silently miss them.
func ScopeTags(network Network) ([]string, error) {
	switch network {
	case Mainnet:
		return []string{"mainnet", "bitcoin"}, nil
	case Testnet, Testnet4:
		return []string{"testnet"}, nil
	case Signet:
		return []string{"signet"}, nil
	case Regtest:
		return []string{"regtest"}, nil
	default:
		return nil, &UnsupportedNetworkError{Network: network.String()}
	}
}
