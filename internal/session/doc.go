// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the client-side session lifecycle.
//
// Four pieces cooperate:
//
//   - CredentialStore: the process-wide slot the request layer reads the
//     bearer token from.
//   - State: the authenticated identity plus balance snapshot, persisted
//     across restarts. A present State is the single authoritative
//     "logged in" signal; its absence means logged out.
//   - ExpiryMonitor: a state machine (Idle, Armed, Warning, Expired) fed
//     by one-second Bubble Tea ticks. Each authoritative tick re-derives
//     the remaining lifetime from the token itself; a separate countdown
//     tick drives the visible timer during the warning window. Ticks
//     carry a generation tag so timers orphaned by teardown are ignored.
//   - Controller: login, logout, forced expiry, and balance updates, with
//     idempotent teardown and an at-most-once expiry notice.
//
// The token decoder never verifies signatures; expiry handling here is a
// UX convenience. The backend rejects stale tokens regardless.
package session
