// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates estatechat settings.
//
// # Configuration Precedence
//
// Values are resolved from (highest first):
//   - Environment variables (ESTATECHAT_*), including those set by a .env file
//   - ~/.estatechat/config.toml
//   - ~/.estatechat/config.json
//   - Built-in defaults
//
// The directory can be moved with ESTATECHAT_HOME.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := api.NewClient(cfg.Backend.BaseURL)
//
// A running TUI picks up edits to the file through Watcher.
package config
