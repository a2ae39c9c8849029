// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"github.com/jeranaias/deerbank-tui/internal/auth"
	"github.com/jeranaias/deerbank-tui/internal/storage"
)

// HandleSession implements `deerbank session [show|clear]`.
func HandleSession(args Args) int {
	store, err := storage.NewSessionStore()
	if err != nil {
		fmt.Printf("Failed to open session store: %v\n", err)
		return 1
	}

	switch args.Subcommand {
	case "", "show":
		return sessionShow(store)
	case "clear", "logout":
		return sessionClear(store)
	default:
		fmt.Printf("Unknown session subcommand: %s\n", args.Subcommand)
		fmt.Println("Usage: deerbank session [show|clear]")
		return 1
	}
}

func sessionShow(store *storage.SessionStore) int {
	if !store.Exists() {
		fmt.Println("No saved session.")
		return 0
	}

	rec, err := store.Load()
	if err != nil {
		fmt.Printf("Saved session is unreadable: %v\n", err)
		return 1
	}
	if rec == nil {
		fmt.Println("No saved session.")
		return 0
	}

	fmt.Printf("Saved session for %q (%s)\n", rec.Username, rec.UserType)
	if rec.AccountNo != nil {
		fmt.Printf("  Account: %s\n", *rec.AccountNo)
	}

	codec := auth.NewCodec()
	if claims, err := codec.Decode(rec.Token); err == nil && claims.ExpiresAt > 0 {
		expiry := time.Unix(claims.ExpiresAt, 0)
		remaining := codec.SecondsUntilExpiry(rec.Token)
		if remaining > 0 {
			fmt.Printf("  Token:   expires %s (in %s)\n",
				expiry.Format(time.RFC1123), formatDuration(remaining))
		} else {
			fmt.Printf("  Token:   expired %s\n", expiry.Format(time.RFC1123))
		}
	} else {
		fmt.Println("  Token:   undecodable; treated as expired")
	}
	return 0
}

func sessionClear(store *storage.SessionStore) int {
	if !store.Exists() {
		fmt.Println("No saved session to clear.")
		return 0
	}
	if err := store.Clear(); err != nil {
		fmt.Printf("Failed to clear session: %v\n", err)
		return 1
	}
	fmt.Println("Saved session cleared. The dashboard will ask you to log in.")
	return 0
}
