// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/MKhiriev/replica-keeper/models"
	"github.com/stretchr/testify/assert"
)

func validClientConfig() *ClientConfig {
	return &ClientConfig{
		App:     ClientApp{ID: "app", Partition: "p"},
		Adapter: ClientAdapter{HTTPAddress: "localhost:8080", RequestTimeout: time.Second},
		Storage: ClientStorage{BaseDir: "replicas", BackupSuffix: "~"},
		Session: ClientSession{
			ResetMode:       models.ResetModeManual,
			PollInterval:    time.Second,
			DownloadTimeout: time.Second,
			DeleteGrace:     time.Second,
		},
	}
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ClientConfig)
		wantErr error
	}{
		{"valid", func(*ClientConfig) {}, nil},
		{"missing app id", func(c *ClientConfig) { c.App.ID = "" }, ErrInvalidAppConfigs},
		{"missing address", func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, ErrInvalidAdapterConfigs},
		{"zero timeout", func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, ErrInvalidAdapterConfigs},
		{"empty suffix", func(c *ClientConfig) { c.Storage.BackupSuffix = "" }, ErrInvalidStorageConfigs},
		{"suffix with separator", func(c *ClientConfig) { c.Storage.BackupSuffix = "/bak" }, ErrInvalidStorageConfigs},
		{"unknown reset mode", func(c *ClientConfig) { c.Session.ResetMode = "recover" }, ErrInvalidSessionConfigs},
		{"zero poll interval", func(c *ClientConfig) { c.Session.PollInterval = 0 }, ErrInvalidSessionConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
