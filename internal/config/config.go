// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the raw configuration container. Every source (env,
// flags, file) produces one of these and the builder merges them.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the application identity, the partition to sync and the
	// login credentials.
	App App `envPrefix:"APP_"`

	// Adapter holds the sync service address and request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds replica file placement and maintenance settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Session holds session and client reset behaviour.
	Session Session `envPrefix:"SESSION_"`

	// Log holds client log file settings.
	Log Log `envPrefix:"LOG_"`

	// ConfigFilePath is the optional path to a JSON, YAML or TOML file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	ConfigFilePath string `env:"CONFIG"`

	// DotEnvPath is the .env file loaded before reading the environment.
	DotEnvPath string `env:"DOTENV"`
}

// App identifies the application and the account used to log in.
type App struct {
	// ID is the sync application identifier. It is part of every replica path.
	ID string `env:"ID"`

	// Partition is the synchronization scope value.
	Partition string `env:"PARTITION"`

	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`
	APIKey   string `env:"API_KEY"`
	JWT      string `env:"JWT"`

	// SeedCount is how many random records the seed action inserts.
	SeedCount int `env:"SEED_COUNT"`
}

// Adapter configures the HTTP sync adapter.
type Adapter struct {
	HTTPAddress    string        `env:"ADDRESS"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage configures where replica files live and how they are maintained.
type Storage struct {
	// BaseDir is the root directory for <app id>/<user id>/<partition>.db.
	BaseDir string `env:"BASE_DIR"`

	// BackupSuffix is appended to a replica path to name its backup.
	BackupSuffix string `env:"BACKUP_SUFFIX"`

	// CleanOnStart deletes the replica before it is opened.
	CleanOnStart bool `env:"CLEAN_ON_START"`

	// CompactThreshold is the file size in bytes above which a sparse
	// replica is compacted on open.
	CompactThreshold int64 `env:"COMPACT_THRESHOLD"`
}

// Session configures session polling and client reset handling.
type Session struct {
	// ResetMode is "manual" or "discard_local".
	ResetMode string `env:"RESET_MODE"`

	PollInterval    time.Duration `env:"POLL_INTERVAL"`
	DownloadTimeout time.Duration `env:"DOWNLOAD_TIMEOUT"`

	// DeleteGrace is how long Close waits before deleting replica files.
	DeleteGrace time.Duration `env:"DELETE_GRACE"`
}

// Log configures the client log file.
type Log struct {
	Dir   string `env:"DIR"`
	Level string `env:"LEVEL"`
}

// defaultConfig returns the built-in defaults that every other source is
// merged on top of.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SeedCount: 500,
		},
		Adapter: Adapter{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Storage: Storage{
			BaseDir:          "replicas",
			BackupSuffix:     "~",
			CompactThreshold: 10 * 1024 * 1024,
		},
		Session: Session{
			ResetMode:       "manual",
			PollInterval:    2 * time.Second,
			DownloadTimeout: 30 * time.Second,
			DeleteGrace:     time.Second,
		},
		Log: Log{
			Dir:   "logs",
			Level: "debug",
		},
		DotEnvPath: ".env",
	}
}
