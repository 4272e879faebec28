// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/models"
)

// DefaultBackupSuffix is appended to a replica path to name its backup.
const DefaultBackupSuffix = "~"

// sidecarSuffixes are the SQLite files that belong to a replica file.
var sidecarSuffixes = []string{"-journal", "-wal", "-shm"}

// fileBackupManager moves replica files aside with a rename on the same
// filesystem, so a backup never costs a copy.
type fileBackupManager struct {
	fs     afero.Fs
	suffix string
	logger *logger.Logger
}

// NewFileBackupManager returns a [BackupManager] working on fs. An empty
// suffix selects [DefaultBackupSuffix].
func NewFileBackupManager(fs afero.Fs, suffix string, log *logger.Logger) BackupManager {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}

	return &fileBackupManager{
		fs:     fs,
		suffix: suffix,
		logger: log,
	}
}

func (m *fileBackupManager) BackupPath(path string) string {
	return path + m.suffix
}

func (m *fileBackupManager) Backup(_ context.Context, sourcePath string) (models.BackupRef, error) {
	log := m.logger
	backupPath := m.BackupPath(sourcePath)

	if _, err := m.fs.Stat(sourcePath); err != nil {
		log.Err(err).
			Str("func", "fileBackupManager.Backup").
			Str("path", sourcePath).
			Msg("replica file to back up is not accessible")
		return models.BackupRef{}, fmt.Errorf("%w: stat %s: %w", ErrBackupIO, sourcePath, err)
	}

	// last divergence wins
	if err := m.removeWithSidecars(backupPath); err != nil {
		log.Err(err).
			Str("func", "fileBackupManager.Backup").
			Str("path", backupPath).
			Msg("failed to remove previous backup")
		return models.BackupRef{}, fmt.Errorf("%w: remove previous backup: %w", ErrBackupIO, err)
	}

	if err := m.fs.Rename(sourcePath, backupPath); err != nil {
		log.Err(err).
			Str("func", "fileBackupManager.Backup").
			Str("path", sourcePath).
			Str("backup_path", backupPath).
			Msg("failed to move replica aside")
		return models.BackupRef{}, fmt.Errorf("%w: rename %s: %w", ErrBackupIO, sourcePath, err)
	}

	for _, sfx := range sidecarSuffixes {
		if err := m.fs.Rename(sourcePath+sfx, backupPath+sfx); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).
				Str("func", "fileBackupManager.Backup").
				Str("path", sourcePath+sfx).
				Msg("failed to move sidecar file")
		}
	}

	ref := models.BackupRef{
		SourcePath: sourcePath,
		Path:       backupPath,
		CreatedAt:  time.Now().UTC(),
	}

	log.Info().
		Str("func", "fileBackupManager.Backup").
		Str("path", sourcePath).
		Str("backup_path", backupPath).
		Msg("replica moved to backup")

	return ref, nil
}

func (m *fileBackupManager) Exists(path string) (bool, error) {
	_, err := m.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("%w: stat %s: %w", ErrBackupIO, path, err)
}

func (m *fileBackupManager) Pending(path string) (models.BackupRef, bool, error) {
	backupPath := m.BackupPath(path)

	info, err := m.fs.Stat(backupPath)
	if errors.Is(err, fs.ErrNotExist) {
		return models.BackupRef{}, false, nil
	}
	if err != nil {
		return models.BackupRef{}, false, fmt.Errorf("%w: stat %s: %w", ErrBackupIO, backupPath, err)
	}

	return models.BackupRef{
		SourcePath: path,
		Path:       backupPath,
		CreatedAt:  info.ModTime().UTC(),
	}, true, nil
}

func (m *fileBackupManager) Discard(ref models.BackupRef) error {
	if err := m.removeWithSidecars(ref.Path); err != nil {
		return fmt.Errorf("%w: discard %s: %w", ErrBackupIO, ref.Path, err)
	}
	return nil
}

func (m *fileBackupManager) RemoveReplica(path string) error {
	if err := m.removeWithSidecars(path); err != nil {
		return fmt.Errorf("%w: remove replica %s: %w", ErrBackupIO, path, err)
	}
	return nil
}

// removeWithSidecars deletes path and its sidecar files. Missing files are
// not an error.
func (m *fileBackupManager) removeWithSidecars(path string) error {
	var errs []error
	for _, p := range append([]string{path}, withSuffixes(path, sidecarSuffixes)...) {
		if err := m.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func withSuffixes(path string, suffixes []string) []string {
	out := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		out = append(out, path+s)
	}
	return out
}
