// harbor-discover runs NIP-87 payment mint discovery against nostr relays
// and prints the aggregated announcements for a bitcoin network.
//
// Usage:
//
//	harbor-discover -network mainnet
//	harbor-discover -network signet -format json
//	harbor-discover -relays wss://relay.damus.io -trace pass.cbor
//	harbor-discover -interactive
//	harbor-discover -dump-trace pass.cbor
//
// Flags:
//
//	-network string     bitcoin network to discover for (default "mainnet")
//	-relays string      comma-separated relay URLs (overrides config file)
//	-config string      path to a YAML config file
//	-connect-timeout    relay connection wait (default 10s)
//	-fetch-timeout      event fetch wait (default 10s)
//	-format string      output format: text, json or yaml (default "text")
//	-log-level string   log level: debug, info, warn or error (default "warn")
//	-trace string       write a CBOR trace capture of the pass to this file
//	-interactive        start an interactive shell instead of a single pass
//	-dump-trace string  print a previously captured trace file and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tvolk131/harbor/pkg/discovery"
	"github.com/tvolk131/harbor/pkg/trace"
)

var (
	networkFlag        string
	relaysFlag         string
	configFlag         string
	connectTimeoutFlag time.Duration
	fetchTimeoutFlag   time.Duration
	formatFlag         string
	logLevelFlag       string
	traceFlag          string
	interactiveFlag    bool
	dumpTraceFlag      string
)

func init() {
	flag.StringVar(&networkFlag, "network", "mainnet", "bitcoin network to discover for")
	flag.StringVar(&relaysFlag, "relays", "", "comma-separated relay URLs (overrides config file)")
	flag.StringVar(&configFlag, "config", "", "path to a YAML config file")
	flag.DurationVar(&connectTimeoutFlag, "connect-timeout", discovery.ConnectTimeout, "relay connection wait")
	flag.DurationVar(&fetchTimeoutFlag, "fetch-timeout", discovery.FetchTimeout, "event fetch wait")
	flag.StringVar(&formatFlag, "format", "text", "output format: text, json or yaml")
	flag.StringVar(&logLevelFlag, "log-level", "warn", "log level: debug, info, warn or error")
	flag.StringVar(&traceFlag, "trace", "", "write a CBOR trace capture of the pass to this file")
	flag.BoolVar(&interactiveFlag, "interactive", false, "start an interactive shell instead of a single pass")
	flag.StringVar(&dumpTraceFlag, "dump-trace", "", "print a previously captured trace file and exit")
}

func main() {
	flag.Parse()

	if dumpTraceFlag != "" {
		if err := dumpTrace(os.Stdout, dumpTraceFlag); err != nil {
			log.Fatalf("Failed to dump trace file: %v", err)
		}
		return
	}

	logger, err := setupLogging(logLevelFlag)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}

	config, err := buildPoolConfig(logger)
	if err != nil {
		log.Fatalf("Failed to build configuration: %v", err)
	}

	pool, err := discovery.NewRelayPool(config)
	if err != nil {
		log.Fatalf("Failed to create relay pool: %v", err)
	}
	defer pool.Close()

	tracer, closeTracer, err := setupTracing(logger)
	if err != nil {
		log.Fatalf("Failed to setup tracing: %v", err)
	}
	defer closeTracer()

	discoverer := discovery.NewDiscoverer(pool, discovery.DiscovererConfig{
		Logger: logger,
		Trace:  tracer,
		Relays: config.Relays,
	})

	if interactiveFlag {
		session, err := newSession(discoverer, formatFlag)
		if err != nil {
			log.Fatalf("Failed to start interactive session: %v", err)
		}
		session.Run(context.Background())
		return
	}

	network, err := discovery.ParseNetwork(networkFlag)
	if err != nil {
		log.Fatalf("Invalid network: %v", err)
	}

	result, err := discoverer.Discover(context.Background(), network)
	if err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}

	if err := render(os.Stdout, formatFlag, buildOutput(network, result)); err != nil {
		log.Fatalf("Failed to render output: %v", err)
	}
}

func setupLogging(level string) (*slog.Logger, error) {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level '%s'", level)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	return slog.New(handler), nil
}

func buildPoolConfig(logger *slog.Logger) (discovery.Config, error) {
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	return mergePoolConfig(logger, setFlags)
}

// mergePoolConfig layers the configuration sources: defaults, then the
// config file, then only the flags the user actually passed.
func mergePoolConfig(logger *slog.Logger, setFlags map[string]bool) (discovery.Config, error) {
	config := discovery.DefaultConfig()

	if configFlag != "" {
		loaded, err := discovery.LoadConfig(configFlag)
		if err != nil {
			return discovery.Config{}, err
		}
		config = loaded
	}

	if relaysFlag != "" {
		var relays []string
		for _, relay := range strings.Split(relaysFlag, ",") {
			relay = strings.TrimSpace(relay)
			if relay != "" {
				relays = append(relays, relay)
			}
		}
		config.Relays = relays
	}

	if setFlags["connect-timeout"] {
		config.ConnectTimeout = connectTimeoutFlag
	}
	if setFlags["fetch-timeout"] {
		config.FetchTimeout = fetchTimeoutFlag
	}
	config.Logger = logger

	return config, nil
}

// setupTracing wires the trace sinks selected by flags. Debug level logging
// always gets a slog sink so traces show up without a capture file.
func setupTracing(logger *slog.Logger) (trace.Logger, func(), error) {
	loggers := []trace.Logger{trace.NewSlogAdapter(logger)}
	closeTracer := func() {}

	if traceFlag != "" {
		fileLogger, err := trace.NewFileLogger(traceFlag)
		if err != nil {
			return nil, nil, err
		}
		loggers = append(loggers, fileLogger)
		closeTracer = func() {
			if err := fileLogger.Close(); err != nil {
				logger.Warn("failed to close trace file", "error", err)
			}
		}
	}

	return trace.NewMultiLogger(loggers...), closeTracer, nil
}
