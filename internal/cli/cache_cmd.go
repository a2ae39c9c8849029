// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"github.com/jeranaias/deerbank-tui/internal/config"
	"github.com/jeranaias/deerbank-tui/internal/storage"
)

// HandleCache implements `deerbank cache [stats|clear]`.
func HandleCache(args Args) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return 1
	}
	dataDir, err := cfg.DataDir()
	if err != nil {
		fmt.Printf("Failed to resolve data directory: %v\n", err)
		return 1
	}

	cache, err := storage.OpenTxCache(dataDir, cfg.Storage.CacheMaxRows)
	if err != nil {
		fmt.Printf("Failed to open cache: %v\n", err)
		return 1
	}
	defer cache.Close()

	switch args.Subcommand {
	case "", "stats":
		return cacheStats(cache)
	case "clear":
		return cacheClear(cache)
	default:
		fmt.Printf("Unknown cache subcommand: %s\n", args.Subcommand)
		fmt.Println("Usage: deerbank cache [stats|clear]")
		return 1
	}
}

func cacheStats(cache *storage.TxCache) int {
	stats, err := cache.Stats()
	if err != nil {
		fmt.Printf("Failed to read cache stats: %v\n", err)
		return 1
	}

	fmt.Println("Transaction cache")
	fmt.Printf("  Accounts: %d\n", stats.Accounts)
	fmt.Printf("  Rows:     %d\n", stats.Rows)
	if stats.OldestAt > 0 {
		fmt.Printf("  Oldest:   %s\n", time.Unix(stats.OldestAt, 0).Format(time.RFC1123))
	}
	return 0
}

func cacheClear(cache *storage.TxCache) int {
	if err := cache.Clear(); err != nil {
		fmt.Printf("Failed to clear cache: %v\n", err)
		return 1
	}
	fmt.Println("Transaction cache cleared.")
	return 0
}
