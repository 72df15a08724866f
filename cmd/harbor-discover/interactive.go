package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tvolk131/harbor/pkg/discovery"
)

// session is the interactive shell around a Discoverer. It keeps the result
// of the most recent pass so listings can be inspected without re-querying
// the relays.
type session struct {
	rl         *readline.Instance
	discoverer *discovery.Discoverer
	format     string

	lastNetwork discovery.Network
	lastResult  *discovery.Result
}

func newSession(discoverer *discovery.Discoverer, format string) (*session, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "harbor> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &session{
		rl:         rl,
		discoverer: discoverer,
		format:     format,
	}, nil
}

func (s *session) Run(ctx context.Context) {
	defer s.rl.Close()

	fmt.Println("Interactive mint discovery. Type 'help' for available commands.")

	for {
		input, err := s.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err != nil {
			fmt.Println("Exiting...")
			return
		}

		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "discover":
			s.cmdDiscover(ctx, args)
		case "mints":
			s.cmdMints()
		case "federations":
			s.cmdFederations()
		case "stats":
			s.cmdStats()
		case "format":
			s.cmdFormat(args)
		case "help":
			s.printHelp()
		case "quit", "exit":
			fmt.Println("Exiting...")
			return
		default:
			fmt.Printf("Unknown command '%s'. Type 'help' for available commands.\n", cmd)
		}
	}
}

func (s *session) cmdDiscover(ctx context.Context, args []string) {
	networkName := "mainnet"
	if len(args) > 0 {
		networkName = args[0]
	}

	network, err := discovery.ParseNetwork(networkName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Discovering mints for %s...\n", network)
	result, err := s.discoverer.Discover(ctx, network)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	s.lastNetwork = network
	s.lastResult = result

	if err := render(s.rl.Stdout(), s.format, buildOutput(network, result)); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func (s *session) cmdMints() {
	if s.lastResult == nil {
		fmt.Println("No discovery pass yet. Run 'discover <network>' first.")
		return
	}

	out := buildOutput(s.lastNetwork, s.lastResult)
	fmt.Printf("Cashu mints (%d):\n", len(out.CashuMints))
	for _, mint := range out.CashuMints {
		fmt.Printf("  %s  %s\n", mint.Pubkey, mint.URL)
	}
}

func (s *session) cmdFederations() {
	if s.lastResult == nil {
		fmt.Println("No discovery pass yet. Run 'discover <network>' first.")
		return
	}

	out := buildOutput(s.lastNetwork, s.lastResult)
	fmt.Printf("Federations (%d):\n", len(out.Federations))
	for _, fed := range out.Federations {
		fmt.Printf("  %s  (%d invite codes)\n", fed.FederationID, len(fed.InviteCodes))
	}
}

func (s *session) cmdStats() {
	if s.lastResult == nil {
		fmt.Println("No discovery pass yet. Run 'discover <network>' first.")
		return
	}

	stats := s.lastResult.Stats
	fmt.Printf("Pass %s on %s:\n", stats.PassID, s.lastNetwork)
	fmt.Printf("  events fetched:          %d\n", stats.EventsFetched)
	fmt.Printf("  cashu announcements:     %d\n", stats.CashuAnnouncements)
	fmt.Printf("  fedimint announcements:  %d\n", stats.FedimintAnnouncements)
	fmt.Printf("  dropped events:          %d\n", stats.DroppedEvents)
	fmt.Printf("  dropped entries:         %d\n", stats.DroppedEntries)
}

func (s *session) cmdFormat(args []string) {
	if len(args) == 0 {
		fmt.Printf("Current format: %s\n", s.format)
		return
	}
	switch args[0] {
	case "text", "json", "yaml":
		s.format = args[0]
	default:
		fmt.Printf("Unknown format '%s'. Use text, json or yaml.\n", args[0])
	}
}

func (s *session) printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  discover [network]  - run a discovery pass (default mainnet)")
	fmt.Println("  mints               - list cashu mints from the last pass")
	fmt.Println("  federations         - list federations from the last pass")
	fmt.Println("  stats               - show statistics of the last pass")
	fmt.Println("  format [text|json|yaml] - show or change the output format")
	fmt.Println("  help                - show this help")
	fmt.Println("  quit / exit         - exit the shell")
}
