// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the replica-keeper client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables (a .env file is loaded into the environment first)
//  3. Command-line flags
//  4. Config file (JSON, YAML or TOML, chosen by file extension)
//
// The main entry point is [GetClientConfig], which returns a validated
// [ClientConfig] ready to be handed to the client application.
package config
