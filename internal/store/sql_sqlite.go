// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/replica-keeper/internal/logger"
)

const busyTimeoutMillis = 5000

// NewConnectSQLite opens the replica file at path. With readOnly the file
// must exist and is opened with mode=ro; otherwise it is created if missing.
func NewConnectSQLite(ctx context.Context, path string, readOnly bool, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", sqliteDSN(path, readOnly))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", path).Msg("error connecting database")
		return nil, fmt.Errorf("%w: %w", ErrOpeningReplica, err)
	}

	// one connection keeps transactions and VACUUM on the same handle
	conn.SetMaxOpenConns(1)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", path).Msg("error connecting database (ping)")
		return nil, fmt.Errorf("%w: %w", ErrOpeningReplica, err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("path", path).Bool("read_only", readOnly).Msg("connected to replica successfully")

	return &DB{
		DB:                 conn,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
	}, nil
}

func sqliteDSN(path string, readOnly bool) string {
	if readOnly {
		return fmt.Sprintf("file:%s?mode=ro&_busy_timeout=%d", path, busyTimeoutMillis)
	}
	return fmt.Sprintf("file:%s?mode=rwc&_busy_timeout=%d", path, busyTimeoutMillis)
}
