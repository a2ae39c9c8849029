// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the data types exchanged with the deerbank backend.
//
// Every response body arrives wrapped in an Envelope carrying a success flag
// and a human-readable message; the typed payload sits under "data". Nullable
// backend fields (admin logins have no account attached) map to pointers so
// absence survives the JSON round trip.
package model
