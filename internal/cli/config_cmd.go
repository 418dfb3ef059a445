// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration inspection.
//
// Command: config
// Short:   Show the resolved configuration
//
// Examples:
//
//	entropy config          Show resolved config as TOML
//	entropy config path     Print the config file location

package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/entropy-tui/internal/config"
)

// HandleConfig handles the config command.
func HandleConfig(args []string) {
	if err := runConfig(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runConfig(args []string) error {
	parser := NewArgParser(args)

	switch parser.Subcommand() {
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	case "", "show":
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// Env overrides are already applied, so this is the effective
		// configuration, not necessarily the file contents.
		return toml.NewEncoder(os.Stdout).Encode(cfg)

	default:
		return fmt.Errorf("unknown config subcommand %q (want show or path)", parser.Subcommand())
	}
}
