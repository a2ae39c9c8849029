// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdStatus
	CmdConfig
	CmdSession
	CmdCache
	CmdDoctor
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool

	// Command-specific
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args remaining after the command name
	Raw []string
}

const usageText = `deerbank - terminal dashboard for your DeerBank accounts

Deerbank is a TUI client for the DeerBank retail banking backend.

It provides:
  - Account balance and transaction history at a glance
  - Transfers, deposits, payees, and bill payment
  - Loan applications and loan payments
  - Session persistence with an expiry countdown

Usage:
  deerbank                   Start the dashboard (default)
  deerbank status, s         Show backend and session status
  deerbank config [show|set] Configuration
  deerbank session [subcommand] Saved session management
  deerbank cache [stats|clear]  Local transaction cache
  deerbank doctor            Diagnose common problems
  deerbank version           Print version
  deerbank help              Show this help

Session Commands:
  deerbank session show      Show the saved session (identity, expiry)
  deerbank session clear     Forget the saved session (forces re-login)

Cache Commands:
  deerbank cache stats       Show cached transaction counts
  deerbank cache clear       Drop all cached transactions

Config Commands:
  deerbank config show               Show effective configuration
  deerbank config set <key> <value>  Set a configuration value
  deerbank config path               Print the config file location

  Common keys: api.base_url, ui.theme, ui.locale,
               ui.mask_account_number, session.restore_on_start

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --json          Machine-readable output where supported

Examples:
  deerbank                                   Open the dashboard
  deerbank status                            Is the backend up? Am I logged in?
  deerbank config set api.base_url http://bank.local:8080
  deerbank session clear                     Log out without opening the TUI
  deerbank doctor                            Check data dir, config, session

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("deerbank version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseFrom(os.Args[1:])
}

// ParseFrom parses the given arguments. Split out for tests.
func ParseFrom(args []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui", "dashboard":
		return CmdTUI, parsed

	case "status", "s":
		return CmdStatus, parsed

	case "config":
		parseConfigArgs(&parsed, remaining)
		return CmdConfig, parsed

	case "session", "sessions":
		if len(remaining) > 0 {
			parsed.Subcommand = remaining[0]
		}
		return CmdSession, parsed

	case "cache":
		if len(remaining) > 0 {
			parsed.Subcommand = remaining[0]
		}
		return CmdCache, parsed

	case "doctor":
		return CmdDoctor, parsed

	case "version", "--version", "-V":
		return CmdVersion, parsed

	case "help", "--help", "-h":
		return CmdHelp, parsed

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsed
	}
}

// parseGlobalFlags strips global flags and returns the rest.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	remaining := make([]string, 0, len(args))

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			parsed.Quiet = true
		case "-v", "--verbose":
			parsed.Verbose = true
		case "--json":
			parsed.JSON = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, parsed
}

func parseConfigArgs(parsed *Args, remaining []string) {
	if len(remaining) == 0 {
		parsed.Subcommand = "show"
		return
	}
	parsed.Subcommand = remaining[0]
	if parsed.Subcommand == "set" {
		if len(remaining) > 1 {
			parsed.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			parsed.ConfigVal = strings.Join(remaining[2:], " ")
		}
	}
}
