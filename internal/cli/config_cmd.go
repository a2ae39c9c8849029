// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/jeranaias/deerbank-tui/internal/config"
)

// HandleConfig implements `deerbank config [show|set|path]`.
func HandleConfig(args Args) int {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "set":
		return configSet(args)
	case "path":
		return configPath()
	case "keys":
		for _, key := range config.GetAllKeys() {
			fmt.Println(key)
		}
		return 0
	default:
		fmt.Printf("Unknown config subcommand: %s\n", args.Subcommand)
		fmt.Println("Usage: deerbank config [show|set <key> <value>|path|keys]")
		return 1
	}
}

func configShow(args Args) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return 1
	}

	if args.JSON {
		fmt.Println(cfg.String())
		return 0
	}

	fmt.Println("deerbank configuration")
	fmt.Println()
	for _, key := range config.GetAllKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("  %-32s = %v\n", key, value)
	}
	return 0
}

func configSet(args Args) int {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		fmt.Println("Usage: deerbank config set <key> <value>")
		fmt.Println("Run `deerbank config keys` to list available keys.")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return 1
	}

	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		fmt.Printf("Failed to set %s: %v\n", args.ConfigKey, err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		return 1
	}
	if err := config.Save(cfg); err != nil {
		fmt.Printf("Failed to save config: %v\n", err)
		return 1
	}

	value, _ := cfg.Get(args.ConfigKey)
	fmt.Printf("Set %s = %v\n", args.ConfigKey, value)
	return 0
}

func configPath() int {
	path, err := config.ConfigPathTOML()
	if err != nil {
		fmt.Printf("Failed to resolve config path: %v\n", err)
		return 1
	}
	fmt.Println(path)
	return 0
}
