// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/models"
)

// ErrorSink receives the errors of a session. It is called from the
// session's control goroutine.
type ErrorSink func(err models.SessionError)

// ProgressSink receives transfer progress samples of a session.
type ProgressSink func(sample models.ProgressSample)

// Session is a live synchronization session bound to one replica file.
type Session interface {
	// State returns the current lifecycle state.
	State() models.SessionState

	// Path returns the replica file the session works on.
	Path() string

	// Config returns the configuration the session was opened with.
	Config() models.ReplicaConfig

	// Store returns the object store of the replica.
	Store() store.ReplicaStore

	// SetErrorSink registers the error sink, replacing the previous one.
	// A nil sink deregisters.
	SetErrorSink(sink ErrorSink)

	// SetProgressSink registers the progress sink, replacing the previous
	// one. A nil sink deregisters.
	SetProgressSink(sink ProgressSink)

	// Close stops synchronization and releases the replica file. It does
	// not wait for the control goroutine, so it can be called from a sink.
	Close() error
}

// SessionProvider opens sessions against the sync service.
type SessionProvider interface {
	// OpenSync opens an existing replica file immediately, without waiting
	// for the network.
	OpenSync(ctx context.Context, cfg models.ReplicaConfig) (Session, error)

	// OpenAsync downloads the partition into a new replica file and opens
	// it once the download is complete. Download progress goes to progress.
	OpenAsync(ctx context.Context, cfg models.ReplicaConfig, progress ProgressSink) (Session, error)

	// AcknowledgeReset tells the service that the diverged state of the
	// session's replica was abandoned.
	AcknowledgeReset(ctx context.Context, session Session, token string) error
}

// ClientAuthService authenticates the configured credentials.
type ClientAuthService interface {
	// Login returns the user the configured credentials belong to.
	Login(ctx context.Context) (models.User, error)
}

// ClientMergeService restores local records from a backup.
type ClientMergeService interface {
	// Merge upserts every record of the backup into live in one
	// transaction and deletes the backup on success. On failure live is
	// left unchanged and the backup is kept.
	Merge(ctx context.Context, ref models.BackupRef, live store.ReplicaStore) (models.MergeReport, error)
}

// SessionErrorHandler reacts to errors delivered by a replica's session.
type SessionErrorHandler interface {
	HandleSessionError(ctx context.Context, replica *Replica, sessionErr models.SessionError)
}

// ClientResetService drives the recovery of a diverged replica.
type ClientResetService interface {
	SessionErrorHandler

	// State returns the current reset state.
	State() ResetState
}

// ReplicaLifecycle owns the current replica of one user and partition.
type ReplicaLifecycle interface {
	// Open opens the replica, downloading it first when no local file
	// exists, and restores a pending backup.
	Open(ctx context.Context, user models.User, partition string) (*Replica, error)

	// OpenFresh always downloads a new replica file. The returned replica
	// is not current until Resume.
	OpenFresh(ctx context.Context, user models.User, partition string) (*Replica, error)

	// Resume makes replica current and restarts change notification. It
	// returns ErrNoActiveReplica and closes replica when the host closed
	// the lifecycle in the meantime.
	Resume(ctx context.Context, replica *Replica) error

	// Close closes the current replica. With deleteFiles the replica file
	// is removed after the configured grace delay. Outside of session error
	// handling it also stops a running reset from resuming its replica
	// until the next Open.
	Close(ctx context.Context, deleteFiles bool) error

	// Current returns the current replica or nil.
	Current() *Replica

	// SetErrorHandler registers the handler every opened session reports
	// its errors to.
	SetErrorHandler(handler SessionErrorHandler)
}

// ProgressReporter publishes progress events produced by a ProgressTracker.
type ProgressReporter interface {
	Report(event models.ProgressEvent)
}

// ChangeObserver consumes the change notifications of a replica until the
// subscription is invalidated.
type ChangeObserver interface {
	Observe(ctx context.Context, partition string, sub *store.Subscription)
}

// ClientRecordService works with the records of the current replica.
type ClientRecordService interface {
	// Seed inserts count random records in one transaction.
	Seed(ctx context.Context, count int) (models.ChangeSet, error)

	// Objects returns all records of the current replica.
	Objects(ctx context.Context) ([]models.Record, error)
}
