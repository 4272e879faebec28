// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/replica-keeper/models"
)

// ClientApp holds the application identity and login credentials.
type ClientApp struct {
	// ID is the sync application identifier.
	ID string
	// Partition is the synchronization scope value.
	Partition string
	// Credentials is the login material picked from the configured values.
	Credentials models.Credentials
	// SeedCount is how many random records the seed action inserts.
	SeedCount int
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups replica storage settings.
type ClientStorage struct {
	BaseDir          string
	BackupSuffix     string
	CleanOnStart     bool
	CompactThreshold int64
}

// ClientSession contains session and client reset settings.
type ClientSession struct {
	ResetMode       models.ResetMode
	PollInterval    time.Duration
	DownloadTimeout time.Duration
	DeleteGrace     time.Duration
}

// ClientLog contains client log file settings.
type ClientLog struct {
	Dir   string
	Level string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Session ClientSession
	Log     ClientLog
}

// GetClientConfig builds and validates the client config from defaults,
// the .env file, the environment, flags (may be nil) and the config file.
func GetClientConfig(flags *Flags) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withDotEnv(flags).
		withEnv().
		withFlags(flags).
		withFile().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.client()

	return clientCfg, clientCfg.validate()
}

func (cfg *StructuredConfig) client() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			ID:          cfg.App.ID,
			Partition:   cfg.App.Partition,
			Credentials: cfg.App.credentials(),
			SeedCount:   cfg.App.SeedCount,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			BaseDir:          cfg.Storage.BaseDir,
			BackupSuffix:     cfg.Storage.BackupSuffix,
			CleanOnStart:     cfg.Storage.CleanOnStart,
			CompactThreshold: cfg.Storage.CompactThreshold,
		},
		Session: ClientSession{
			ResetMode:       models.ResetMode(cfg.Session.ResetMode),
			PollInterval:    cfg.Session.PollInterval,
			DownloadTimeout: cfg.Session.DownloadTimeout,
			DeleteGrace:     cfg.Session.DeleteGrace,
		},
		Log: ClientLog{
			Dir:   cfg.Log.Dir,
			Level: cfg.Log.Level,
		},
	}
}

// credentials picks the login method: email/password first, then API key,
// then custom JWT, and anonymous when nothing is configured.
func (a App) credentials() models.Credentials {
	switch {
	case a.Email != "" && a.Password != "":
		return models.Credentials{Kind: models.CredentialsEmailPassword, Email: a.Email, Password: a.Password}
	case a.APIKey != "":
		return models.Credentials{Kind: models.CredentialsAPIKey, APIKey: a.APIKey}
	case a.JWT != "":
		return models.Credentials{Kind: models.CredentialsJWT, Token: a.JWT}
	default:
		return models.Credentials{Kind: models.CredentialsAnonymous}
	}
}
