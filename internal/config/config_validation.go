// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

func (cfg *ClientConfig) validate() error {
	if cfg.App.ID == "" || cfg.App.Partition == "" {
		return fmt.Errorf("%w: app id and partition are required", ErrInvalidAppConfigs)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.BaseDir == "" || cfg.Storage.BackupSuffix == "" {
		return ErrInvalidStorageConfigs
	}
	if strings.ContainsAny(cfg.Storage.BackupSuffix, `/\`) {
		return fmt.Errorf("%w: backup suffix %q contains a path separator", ErrInvalidStorageConfigs, cfg.Storage.BackupSuffix)
	}

	if !cfg.Session.ResetMode.Valid() {
		return fmt.Errorf("%w: unknown reset mode %q", ErrInvalidSessionConfigs, cfg.Session.ResetMode)
	}
	if cfg.Session.PollInterval <= 0 || cfg.Session.DownloadTimeout <= 0 || cfg.Session.DeleteGrace < 0 {
		return ErrInvalidSessionConfigs
	}

	return nil
}
