// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// Flags holds the values of the client command-line flags bound to a
// pflag.FlagSet (usually a cobra command's persistent flags).
type Flags struct {
	address          NetAddress
	requestTimeout   time.Duration
	appID            string
	partition        string
	email            string
	password         string
	apiKey           string
	jwt              string
	baseDir          string
	backupSuffix     string
	cleanOnStart     bool
	resetMode        string
	pollInterval     time.Duration
	downloadTimeout  time.Duration
	logDir           string
	logLevel         string
	configFilePath   string
	dotEnvPath       string
	compactThreshold int64
}

// BindFlags registers all configuration flags on fs.
//
// Flags:
//
//	-a/--address sync service address in format [host]:[port]
//	--request-timeout request timeout (e.g., "30s", "1m")
//	--app-id sync application id
//	-p/--partition partition value
//	--email, --password email/password credentials
//	--api-key API key credentials
//	--jwt custom JWT credentials
//	-d/--base-dir replica base directory
//	--backup-suffix suffix of backup files
//	--clean start from an empty replica
//	--reset-mode manual or discard_local
//	--poll-interval session poll interval
//	--download-timeout timeout for download-before-open
//	--compact-threshold size in bytes above which replicas are compacted
//	--log-dir, --log-level client log settings
//	-c/--config config file path (json, yaml or toml)
//	--dotenv .env file path
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.VarP(&f.address, "address", "a", "Sync service address host:port")
	fs.DurationVar(&f.requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&f.appID, "app-id", "", "Sync application id")
	fs.StringVarP(&f.partition, "partition", "p", "", "Partition value")
	fs.StringVar(&f.email, "email", "", "Login email")
	fs.StringVar(&f.password, "password", "", "Login password")
	fs.StringVar(&f.apiKey, "api-key", "", "Login API key")
	fs.StringVar(&f.jwt, "jwt", "", "Login custom JWT")
	fs.StringVarP(&f.baseDir, "base-dir", "d", "", "Replica base directory")
	fs.StringVar(&f.backupSuffix, "backup-suffix", "", "Backup file suffix")
	fs.BoolVar(&f.cleanOnStart, "clean", false, "Delete the replica before opening it")
	fs.StringVar(&f.resetMode, "reset-mode", "", "Client reset mode: manual or discard_local")
	fs.DurationVar(&f.pollInterval, "poll-interval", 0, "Session poll interval")
	fs.DurationVar(&f.downloadTimeout, "download-timeout", 0, "Download-before-open timeout")
	fs.Int64Var(&f.compactThreshold, "compact-threshold", 0, "Compact replicas larger than this many bytes")
	fs.StringVar(&f.logDir, "log-dir", "", "Client log directory")
	fs.StringVar(&f.logLevel, "log-level", "", "Client log level")
	fs.StringVarP(&f.configFilePath, "config", "c", "", "Config file path (json, yaml or toml)")
	fs.StringVar(&f.dotEnvPath, "dotenv", "", ".env file path")

	return f
}

func (f *Flags) config() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			ID:        f.appID,
			Partition: f.partition,
			Email:     f.email,
			Password:  f.password,
			APIKey:    f.apiKey,
			JWT:       f.jwt,
		},
		Adapter: Adapter{
			HTTPAddress:    f.address.String(),
			RequestTimeout: f.requestTimeout,
		},
		Storage: Storage{
			BaseDir:          f.baseDir,
			BackupSuffix:     f.backupSuffix,
			CleanOnStart:     f.cleanOnStart,
			CompactThreshold: f.compactThreshold,
		},
		Session: Session{
			ResetMode:       f.resetMode,
			PollInterval:    f.pollInterval,
			DownloadTimeout: f.downloadTimeout,
		},
		Log: Log{
			Dir:   f.logDir,
			Level: f.logLevel,
		},
		ConfigFilePath: f.configFilePath,
		DotEnvPath:     f.dotEnvPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
