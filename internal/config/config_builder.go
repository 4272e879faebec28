// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 5),
	}
}

// build merges the collected configs in order; non-zero fields of later
// configs override earlier ones.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, nil
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

// withDotEnv loads a .env file into the process environment. The path comes
// from the --dotenv flag, the DOTENV variable or the defaults, in that order.
// A missing file is not an error.
func (b *configBuilder) withDotEnv(flags *Flags) *configBuilder {
	path := b.lastNonEmpty(func(c *StructuredConfig) string { return c.DotEnvPath })
	if v := os.Getenv("DOTENV"); v != "" {
		path = v
	}
	if flags != nil && flags.dotEnvPath != "" {
		path = flags.dotEnvPath
	}

	if err := loadDotEnv(path); err != nil {
		b.err = errors.Join(b.err, err)
	}
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(flags *Flags) *configBuilder {
	if flags == nil {
		return b
	}

	b.configs = append(b.configs, flags.config())
	return b
}

func (b *configBuilder) withFile() *configBuilder {
	path := b.lastNonEmpty(func(c *StructuredConfig) string { return c.ConfigFilePath })
	if path == "" {
		return b
	}

	fileCfg, err := parseFile(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, fileCfg)

	return b
}

func (b *configBuilder) lastNonEmpty(field func(*StructuredConfig) string) string {
	var value string
	for _, cfg := range b.configs {
		if v := field(cfg); v != "" {
			value = v
		}
	}
	return value
}
