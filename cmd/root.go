// Package cmd wires up the CLI flags and runs the pipeline.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"dumpsock/config"
	"dumpsock/internal/core"
	"dumpsock/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X dumpsock/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs dumpsock, writing the received bytes to
// os.Stdout.  The returned error is the run's single failure message.
func Execute(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, done, err := parseArgs(args)
	if err != nil || done {
		return err
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := util.NewLogger(cfg.Verbose)

	if cfg.DryRun {
		logger.Info("configuration valid: listen on %s, backlog %d",
			cfg.ListenAddr(), cfg.Backlog)
		return nil
	}

	// ── run ──────────────────────────────────────────────────────
	p, err := core.Build(cfg, logger)
	if err != nil {
		return err
	}
	p.Stdout = stdout
	return p.Run(ctx)
}

// parseArgs layers flags over the environment over the defaults.  done
// is set when --help or --version has already been answered.
func parseArgs(args []string) (cfg *config.Config, done bool, err error) {
	cfg = config.Default()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("dumpsock", flag.ContinueOnError)
	// Parse errors are reported once, by the caller.
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	// ── listener ─────────────────────────────────────────────────
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Local TCP port to listen on")

	// ── diagnostics ──────────────────────────────────────────────
	fs.StringVar(&cfg.Checksum, "checksum", cfg.Checksum, "Log a checksum of the payload (xxh64, blake2s)")
	// CountVarP zeroes its target on registration.
	envVerbose := cfg.Verbose
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity on stderr (repeatable)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Validate configuration and exit")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	if !fs.Changed("verbose") {
		cfg.Verbose = envVerbose
	}

	if showHelp {
		printUsage(fs)
		return cfg, true, nil
	}
	if showVersion {
		fmt.Fprintf(os.Stderr, "dumpsock %s\n", version)
		return cfg, true, nil
	}
	if fs.NArg() > 0 {
		return nil, false, fmt.Errorf("unexpected argument %q (use --help for usage)", fs.Arg(0))
	}
	return cfg, false, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `dumpsock v%s

Accept a single TCP connection, read it until the peer closes, and
write the received bytes to stdout.  Nothing is written unless the
whole transfer succeeds.

Usage:
  dumpsock [options] > output

Options:
`, version)
	fs.SetOutput(os.Stderr)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  DUMPSOCK_PORT, DUMPSOCK_CHECKSUM, DUMPSOCK_VERBOSE

Examples:
  dumpsock > capture.bin                      Listen on %d
  dumpsock -p 7000 -v --checksum xxh64 > out  Report size, rate, checksum
`, config.DefaultPort)
}
