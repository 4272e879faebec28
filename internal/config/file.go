// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk layout shared by the JSON, YAML and TOML
// formats. Durations are written as strings such as "30s".
type fileConfig struct {
	App struct {
		ID        string `json:"id" yaml:"id" toml:"id"`
		Partition string `json:"partition" yaml:"partition" toml:"partition"`
		Email     string `json:"email" yaml:"email" toml:"email"`
		Password  string `json:"password" yaml:"password" toml:"password"`
		APIKey    string `json:"api_key" yaml:"api_key" toml:"api_key"`
		JWT       string `json:"jwt" yaml:"jwt" toml:"jwt"`
		SeedCount int    `json:"seed_count" yaml:"seed_count" toml:"seed_count"`
	} `json:"app" yaml:"app" toml:"app"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address" toml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout" toml:"request_timeout"`
	} `json:"adapter" yaml:"adapter" toml:"adapter"`

	Storage struct {
		BaseDir          string `json:"base_dir" yaml:"base_dir" toml:"base_dir"`
		BackupSuffix     string `json:"backup_suffix" yaml:"backup_suffix" toml:"backup_suffix"`
		CleanOnStart     bool   `json:"clean_on_start" yaml:"clean_on_start" toml:"clean_on_start"`
		CompactThreshold int64  `json:"compact_threshold" yaml:"compact_threshold" toml:"compact_threshold"`
	} `json:"storage" yaml:"storage" toml:"storage"`

	Session struct {
		ResetMode       string   `json:"reset_mode" yaml:"reset_mode" toml:"reset_mode"`
		PollInterval    Duration `json:"poll_interval" yaml:"poll_interval" toml:"poll_interval"`
		DownloadTimeout Duration `json:"download_timeout" yaml:"download_timeout" toml:"download_timeout"`
		DeleteGrace     Duration `json:"delete_grace" yaml:"delete_grace" toml:"delete_grace"`
	} `json:"session" yaml:"session" toml:"session"`

	Log struct {
		Dir   string `json:"dir" yaml:"dir" toml:"dir"`
		Level string `json:"level" yaml:"level" toml:"level"`
	} `json:"log" yaml:"log" toml:"log"`
}

// parseFile reads a config file and decodes it according to its extension:
// .json, .yaml/.yml or .toml.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	default:
		return nil, fmt.Errorf("%w: unsupported config file extension %q", ErrUnsupportedConfigFile, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	return fc.structured(), nil
}

func (fc *fileConfig) structured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			ID:        fc.App.ID,
			Partition: fc.App.Partition,
			Email:     fc.App.Email,
			Password:  fc.App.Password,
			APIKey:    fc.App.APIKey,
			JWT:       fc.App.JWT,
			SeedCount: fc.App.SeedCount,
		},
		Adapter: Adapter{
			HTTPAddress:    fc.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
		},
		Storage: Storage{
			BaseDir:          fc.Storage.BaseDir,
			BackupSuffix:     fc.Storage.BackupSuffix,
			CleanOnStart:     fc.Storage.CleanOnStart,
			CompactThreshold: fc.Storage.CompactThreshold,
		},
		Session: Session{
			ResetMode:       fc.Session.ResetMode,
			PollInterval:    time.Duration(fc.Session.PollInterval),
			DownloadTimeout: time.Duration(fc.Session.DownloadTimeout),
			DeleteGrace:     time.Duration(fc.Session.DeleteGrace),
		},
		Log: Log{
			Dir:   fc.Log.Dir,
			Level: fc.Log.Level,
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" in every supported file format. Bare JSON numbers are read
// as nanoseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler (YAML and TOML).
func (d *Duration) UnmarshalText(b []byte) error {
	tmp, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
