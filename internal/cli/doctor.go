// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/deerbank-tui/internal/api"
	"github.com/jeranaias/deerbank-tui/internal/auth"
	"github.com/jeranaias/deerbank-tui/internal/config"
	"github.com/jeranaias/deerbank-tui/internal/storage"
)

// checkResult is one doctor check line.
type checkResult struct {
	name string
	ok   bool
	note string
}

// HandleDoctor implements `deerbank doctor`: a handful of checks over
// config, data directory, saved session, and backend reachability.
func HandleDoctor(args Args) int {
	var results []checkResult
	failures := 0

	cfg, err := config.Load()
	if err != nil {
		results = append(results, checkResult{"config", false, err.Error()})
		// Everything downstream needs config; report what we have
		printDoctorResults(results)
		return 1
	}
	results = append(results, checkResult{"config", true, "loaded and valid"})

	// Data directory must exist and be writable
	dataDir, err := cfg.DataDir()
	if err != nil {
		results = append(results, checkResult{"data dir", false, err.Error()})
		failures++
	} else if err := checkWritable(dataDir); err != nil {
		results = append(results, checkResult{"data dir", false, err.Error()})
		failures++
	} else {
		results = append(results, checkResult{"data dir", true, dataDir})
	}

	// Saved session, if any, must decode
	store, err := storage.NewSessionStore()
	switch {
	case err != nil:
		results = append(results, checkResult{"session store", false, err.Error()})
		failures++
	case !store.Exists():
		results = append(results, checkResult{"session", true, "none saved"})
	default:
		rec, loadErr := store.Load()
		if loadErr != nil || rec == nil {
			results = append(results, checkResult{"session", false, "saved record unreadable; cleared"})
			failures++
		} else if auth.NewCodec().IsExpired(rec.Token) {
			results = append(results, checkResult{"session", true,
				fmt.Sprintf("saved for %q but expired; login required", rec.Username)})
		} else {
			results = append(results, checkResult{"session", true,
				fmt.Sprintf("saved for %q, token valid", rec.Username)})
		}
	}

	// Backend reachability
	client := api.NewClient(cfg.API.BaseURL, noTokens{})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	latency, pingErr := client.Ping(ctx)
	cancel()
	if pingErr != nil {
		results = append(results, checkResult{"backend", false,
			fmt.Sprintf("%s: %v", cfg.API.BaseURL, pingErr)})
		failures++
	} else {
		results = append(results, checkResult{"backend", true,
			fmt.Sprintf("%s (%dms)", cfg.API.BaseURL, latency.Milliseconds())})
	}

	printDoctorResults(results)
	if failures > 0 {
		fmt.Printf("\n%d check(s) failed.\n", failures)
		return 1
	}
	fmt.Println("\nAll checks passed.")
	return 0
}

func printDoctorResults(results []checkResult) {
	fmt.Println("deerbank doctor")
	fmt.Println()
	for _, r := range results {
		mark := "[OK]"
		if !r.ok {
			mark = "[X] "
		}
		fmt.Printf("  %s %-14s %s\n", mark, r.name, r.note)
	}
}

// checkWritable verifies the directory exists and accepts writes.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("cannot create: %w", err)
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return fmt.Errorf("not writable: %w", err)
	}
	return os.Remove(probe)
}
