// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/MKhiriev/replica-keeper/internal/logger"
)

// compactUsedRatio is the share of used pages below which an oversized
// replica is compacted on open.
const compactUsedRatio = 0.75

// SQLiteReplicaOpener opens replica files backed by SQLite.
type SQLiteReplicaOpener struct {
	fs               afero.Fs
	compactThreshold int64
	logger           *logger.Logger
}

// NewSQLiteReplicaOpener returns an opener that compacts writable replicas
// larger than compactThreshold bytes when less than 75% of their pages are
// in use. A threshold of zero disables compaction.
func NewSQLiteReplicaOpener(fs afero.Fs, compactThreshold int64, log *logger.Logger) *SQLiteReplicaOpener {
	return &SQLiteReplicaOpener{
		fs:               fs,
		compactThreshold: compactThreshold,
		logger:           log,
	}
}

// Open opens (creating if needed) the writable replica at path and applies
// the schema.
func (o *SQLiteReplicaOpener) Open(ctx context.Context, path string) (ReplicaStore, error) {
	if err := o.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create replica dir: %w", ErrOpeningReplica, err)
	}

	db, err := NewConnectSQLite(ctx, path, false, o.logger)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		db.Close()
		o.logger.Err(err).Str("func", "SQLiteReplicaOpener.Open").Str("path", path).Msg("migration failed")
		return nil, fmt.Errorf("%w: migration failed: %w", ErrOpeningReplica, err)
	}

	o.compactIfNeeded(ctx, db, path)

	return newSQLiteReplicaStore(db, path, false, o.logger), nil
}

// OpenReadOnly opens an existing replica without applying migrations or
// compaction. A missing file is reported as fs.ErrNotExist.
func (o *SQLiteReplicaOpener) OpenReadOnly(ctx context.Context, path string) (ReplicaStore, error) {
	exists, err := afero.Exists(o.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpeningReplica, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpeningReplica, path, fs.ErrNotExist)
	}

	db, err := NewConnectSQLite(ctx, path, true, o.logger)
	if err != nil {
		return nil, err
	}

	return newSQLiteReplicaStore(db, path, true, o.logger), nil
}

// compactIfNeeded runs VACUUM on an oversized, sparse replica. Failures are
// logged and never block opening.
func (o *SQLiteReplicaOpener) compactIfNeeded(ctx context.Context, db *DB, path string) {
	if o.compactThreshold <= 0 {
		return
	}

	info, err := o.fs.Stat(path)
	if err != nil || info.Size() <= o.compactThreshold {
		return
	}

	var pages, free int64
	if err = db.QueryRowContext(ctx, pageCountQuery).Scan(&pages); err != nil || pages == 0 {
		return
	}
	if err = db.QueryRowContext(ctx, freelistCountQuery).Scan(&free); err != nil {
		return
	}

	used := float64(pages-free) / float64(pages)
	if !shouldCompact(info.Size(), o.compactThreshold, used) {
		return
	}

	if _, err = db.ExecContext(ctx, vacuumQuery); err != nil {
		o.logger.Warn().Err(err).
			Str("func", "SQLiteReplicaOpener.compactIfNeeded").
			Str("path", path).
			Msg("compaction failed")
		return
	}

	o.logger.Info().
		Str("func", "SQLiteReplicaOpener.compactIfNeeded").
		Str("path", path).
		Int64("size", info.Size()).
		Float64("used_ratio", used).
		Msg("compacted replica on open")
}

func shouldCompact(size, threshold int64, usedRatio float64) bool {
	return threshold > 0 && size > threshold && usedRatio < compactUsedRatio
}
