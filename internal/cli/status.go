// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/deerbank-tui/internal/api"
	"github.com/jeranaias/deerbank-tui/internal/auth"
	"github.com/jeranaias/deerbank-tui/internal/config"
	"github.com/jeranaias/deerbank-tui/internal/storage"
)

const pingTimeout = 5 * time.Second

// statusReport is the machine-readable form of `deerbank status`.
type statusReport struct {
	Version        string `json:"version"`
	BackendURL     string `json:"backend_url"`
	BackendUp      bool   `json:"backend_up"`
	LatencyMS      int64  `json:"latency_ms,omitempty"`
	SessionSaved   bool   `json:"session_saved"`
	SessionUser    string `json:"session_user,omitempty"`
	SessionExpires int64  `json:"session_expires_in_secs,omitempty"`
	CacheEnabled   bool   `json:"cache_enabled"`
}

// HandleStatus implements `deerbank status`. Returns an exit code.
func HandleStatus(args Args) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return 1
	}

	report := statusReport{
		Version:      Version,
		BackendURL:   cfg.API.BaseURL,
		CacheEnabled: cfg.Storage.CacheEnabled,
	}

	// Backend reachability
	client := api.NewClient(cfg.API.BaseURL, noTokens{})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	latency, pingErr := client.Ping(ctx)
	cancel()
	if pingErr == nil {
		report.BackendUp = true
		report.LatencyMS = latency.Milliseconds()
	}

	// Saved session
	store, storeErr := storage.NewSessionStore()
	if storeErr == nil && store.Exists() {
		if rec, loadErr := store.Load(); loadErr == nil && rec != nil {
			report.SessionSaved = true
			report.SessionUser = rec.Username
			report.SessionExpires = auth.NewCodec().SecondsUntilExpiry(rec.Token)
		}
	}

	if args.JSON {
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(data))
		if !report.BackendUp {
			return 1
		}
		return 0
	}

	fmt.Println("deerbank status")
	fmt.Println()
	fmt.Printf("  Backend:  %s\n", report.BackendURL)
	if report.BackendUp {
		fmt.Printf("  Status:   up (%dms)\n", report.LatencyMS)
	} else {
		fmt.Printf("  Status:   unreachable (%v)\n", pingErr)
	}
	fmt.Println()
	if report.SessionSaved {
		fmt.Printf("  Session:  saved for %q\n", report.SessionUser)
		if report.SessionExpires > 0 {
			fmt.Printf("  Expires:  in %s\n", formatDuration(report.SessionExpires))
		} else {
			fmt.Println("  Expires:  already expired; will be discarded on next start")
		}
	} else {
		fmt.Println("  Session:  none saved; the dashboard will ask you to log in")
	}
	fmt.Println()
	fmt.Printf("  Cache:    enabled=%v\n", report.CacheEnabled)

	if !report.BackendUp {
		return 1
	}
	return 0
}

// noTokens is the anonymous token source for pre-login requests.
type noTokens struct{}

func (noTokens) Get() string { return "" }

// formatDuration renders seconds as "2m30s" style text.
func formatDuration(secs int64) string {
	d := time.Duration(secs) * time.Second
	if d >= time.Hour {
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%ds", secs)
}
