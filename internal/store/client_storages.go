// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/spf13/afero"

	"github.com/MKhiriev/replica-keeper/internal/config"
	"github.com/MKhiriev/replica-keeper/internal/logger"
)

// ClientStorages groups the storage collaborators of the client: the
// replica opener and the backup manager, both working on the same
// filesystem so that a backup is always a rename.
type ClientStorages struct {
	// Fs is the filesystem replica files live on.
	Fs afero.Fs

	// Opener opens writable and read-only replica files.
	Opener ReplicaOpener

	// Backups moves diverged replicas aside and tracks pending backups.
	Backups BackupManager

	baseDir string
}

// NewClientStorages initialises the client storage layer on fs using the
// supplied configuration and logger.
func NewClientStorages(fs afero.Fs, cfg config.ClientStorage, logger *logger.Logger) *ClientStorages {
	logger.Info().Str("base_dir", cfg.BaseDir).Msg("creating new storages...")

	return &ClientStorages{
		Fs:      fs,
		Opener:  NewSQLiteReplicaOpener(fs, cfg.CompactThreshold, logger),
		Backups: NewFileBackupManager(fs, cfg.BackupSuffix, logger),
		baseDir: cfg.BaseDir,
	}
}

// ReplicaPath returns the canonical replica path under the configured base
// directory.
func (s *ClientStorages) ReplicaPath(appID, userID, partition string) string {
	return ReplicaPath(s.baseDir, appID, userID, partition)
}
