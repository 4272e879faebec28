// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/replica-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ReplicaStore is the local object store of one replica file.
//
// Writes outside a transaction are committed immediately. Every committed
// write is published as a [models.ChangeSet] to the active subscriptions.
type ReplicaStore interface {
	// Path returns the replica file location.
	Path() string

	// Create writes records. With [models.CreateInsert] an existing id is an
	// error ([ErrRecordExists]); with [models.CreateUpsert] all fields of an
	// existing record are replaced.
	Create(ctx context.Context, mode models.CreateMode, records ...models.Record) (models.ChangeSet, error)

	// Get returns one record or [ErrRecordNotFound].
	Get(ctx context.Context, id string) (models.Record, error)

	// Objects returns all records ordered by id.
	Objects(ctx context.Context) ([]models.Record, error)

	// Count returns the number of records.
	Count(ctx context.Context) (int, error)

	// Delete removes records by id and returns how many existed.
	Delete(ctx context.Context, ids ...string) (int, error)

	// BeginTx starts a write transaction.
	BeginTx(ctx context.Context) (ReplicaTx, error)

	// Observe subscribes to change notifications. The first delivered
	// change set is the initial one.
	Observe() *Subscription

	// Close invalidates all subscriptions and releases the file.
	Close() error
}

// ReplicaTx is a write transaction on a [ReplicaStore]. Changes become
// visible and are published only on Commit.
type ReplicaTx interface {
	Create(ctx context.Context, mode models.CreateMode, records ...models.Record) (models.ChangeSet, error)
	Delete(ctx context.Context, ids ...string) (int, error)
	Commit() error
	Rollback() error
}

// ReplicaOpener opens replica files.
type ReplicaOpener interface {
	// Open opens (creating if needed) a writable replica and applies the
	// schema.
	Open(ctx context.Context, path string) (ReplicaStore, error)

	// OpenReadOnly opens an existing replica file without modifying it.
	OpenReadOnly(ctx context.Context, path string) (ReplicaStore, error)
}

// BackupManager moves diverged replica files aside and tracks them.
type BackupManager interface {
	// Backup renames sourcePath to its backup path, replacing any older
	// backup.
	Backup(ctx context.Context, sourcePath string) (models.BackupRef, error)

	// Exists reports whether path exists without opening it.
	Exists(path string) (bool, error)

	// BackupPath returns the backup location for a replica path.
	BackupPath(path string) string

	// Pending returns the backup left for path, if any.
	Pending(path string) (models.BackupRef, bool, error)

	// Discard deletes a consumed backup.
	Discard(ref models.BackupRef) error

	// RemoveReplica deletes a replica file and its sidecar files.
	RemoveReplica(path string) error
}
