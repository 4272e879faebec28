// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates missing application id or partition.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid replica storage settings
	// (for example, empty base directory or a backup suffix with a path
	// separator).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSessionConfigs indicates an unknown reset mode or a zero
	// poll interval.
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrUnsupportedConfigFile is returned for config files that are not
	// JSON, YAML or TOML.
	ErrUnsupportedConfigFile = errors.New("unsupported config file")
)
