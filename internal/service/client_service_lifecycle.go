// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/models"
)

// ReplicaPathFunc returns the canonical replica path of a user and
// partition.
type ReplicaPathFunc func(userID, partition string) string

// LifecycleOptions tunes a [ReplicaLifecycle].
type LifecycleOptions struct {
	// CleanOnStart deletes the local replica before the first Open.
	CleanOnStart bool

	// DeleteGrace is how long Close waits before deleting replica files.
	DeleteGrace time.Duration
}

type replicaLifecycle struct {
	provider SessionProvider
	backups  store.BackupManager
	merger   ClientMergeService
	tracker  *ProgressTracker
	observer ChangeObserver
	pathOf   ReplicaPathFunc
	opts     LifecycleOptions

	mu         sync.Mutex
	handler    SessionErrorHandler
	current    *Replica
	generation int

	// closed is set by a Close from outside error handling and cleared by
	// Open. A reset that finishes afterwards must not resume its replica.
	closed bool

	// baseCtx outlives single calls: sessions and error handling run
	// under it.
	baseCtx context.Context

	logger *logger.Logger
}

func NewReplicaLifecycle(
	provider SessionProvider,
	backups store.BackupManager,
	merger ClientMergeService,
	tracker *ProgressTracker,
	observer ChangeObserver,
	pathOf ReplicaPathFunc,
	opts LifecycleOptions,
	logger *logger.Logger,
) ReplicaLifecycle {
	return &replicaLifecycle{
		provider: provider,
		backups:  backups,
		merger:   merger,
		tracker:  tracker,
		observer: observer,
		pathOf:   pathOf,
		opts:     opts,
		baseCtx:  context.Background(),
		logger:   logger,
	}
}

func (l *replicaLifecycle) SetErrorHandler(handler SessionErrorHandler) {
	l.mu.Lock()
	l.handler = handler
	l.mu.Unlock()
}

func (l *replicaLifecycle) Open(ctx context.Context, user models.User, partition string) (*Replica, error) {
	path := l.pathOf(user.ID, partition)
	log := l.logger.With().
		Str("func", "replicaLifecycle.Open").
		Str("partition", partition).
		Str("path", path).
		Logger()

	l.mu.Lock()
	l.baseCtx = ctx
	l.generation = 0
	l.closed = false
	l.mu.Unlock()

	if l.opts.CleanOnStart {
		log.Info().Msg("deleting local replica before open")
		if err := l.backups.RemoveReplica(path); err != nil {
			log.Err(err).Msg("failed to delete local replica")
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	exists, err := l.backups.Exists(path)
	if err != nil {
		log.Err(err).Msg("failed to check local replica")
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	cfg := models.ReplicaConfig{User: user, Partition: partition, Path: path}
	l.arm()

	var session Session
	if exists {
		session, err = l.provider.OpenSync(ctx, cfg)
		if err != nil {
			log.Err(err).Msg("failed to open local replica, deleting it")
			if rmErr := l.backups.RemoveReplica(path); rmErr != nil {
				log.Warn().Err(rmErr).Msg("failed to delete broken replica")
			}
			return nil, err
		}
	} else {
		log.Info().Msg("no local replica, downloading before open")
		session, err = l.provider.OpenAsync(ctx, cfg, l.onProgress)
		if err != nil {
			log.Err(err).Msg("failed to download replica")
			return nil, err
		}
	}

	replica := newReplica(session)
	l.attach(replica)
	l.restore(ctx, replica)

	if err = l.Resume(ctx, replica); err != nil {
		return nil, err
	}

	log.Info().Int("generation", replica.Generation).Msg("replica opened")
	return replica, nil
}

func (l *replicaLifecycle) OpenFresh(ctx context.Context, user models.User, partition string) (*Replica, error) {
	path := l.pathOf(user.ID, partition)

	l.mu.Lock()
	l.generation++
	generation := l.generation
	l.mu.Unlock()

	cfg := models.ReplicaConfig{User: user, Partition: partition, Path: path, Generation: generation}
	l.arm()

	session, err := l.provider.OpenAsync(ctx, cfg, l.onProgress)
	if err != nil {
		l.logger.Err(err).
			Str("func", "replicaLifecycle.OpenFresh").
			Str("partition", partition).
			Str("path", path).
			Msg("failed to download fresh replica")
		return nil, err
	}

	replica := newReplica(session)
	l.attach(replica)

	return replica, nil
}

// Resume makes replica current. It is refused, and the replica closed, when
// the lifecycle was closed while the replica was being prepared.
func (l *replicaLifecycle) Resume(ctx context.Context, replica *Replica) error {
	if replica == nil {
		return ErrNoActiveReplica
	}

	if l.isClosed() {
		l.discard(replica)
		return ErrNoActiveReplica
	}

	sub := replica.Store().Observe()
	replica.setSubscription(sub)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.discard(replica)
		return ErrNoActiveReplica
	}
	l.current = replica
	l.mu.Unlock()

	if l.observer != nil {
		l.observer.Observe(ctx, replica.Partition, sub)
	}

	return nil
}

func (l *replicaLifecycle) Close(ctx context.Context, deleteFiles bool) error {
	l.mu.Lock()
	if !inResetScope(ctx) {
		l.closed = true
	}
	replica := l.current
	l.current = nil
	l.mu.Unlock()

	if replica == nil {
		return nil
	}

	session := replica.Session()
	session.SetErrorSink(nil)
	session.SetProgressSink(nil)
	replica.invalidateSubscription()

	log := l.logger.With().
		Str("func", "replicaLifecycle.Close").
		Str("partition", replica.Partition).
		Str("path", replica.Path).
		Logger()

	if err := session.Close(); err != nil {
		log.Err(err).Msg("failed to close session")
		return err
	}

	if !deleteFiles {
		log.Debug().Msg("replica closed")
		return nil
	}

	if l.opts.DeleteGrace > 0 {
		t := time.NewTimer(l.opts.DeleteGrace)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}

	if err := l.backups.RemoveReplica(replica.Path); err != nil {
		log.Err(err).Msg("failed to delete replica files")
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	log.Info().Msg("replica closed and deleted")
	return nil
}

func (l *replicaLifecycle) Current() *Replica {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// attach registers the lifecycle's sinks on the replica's session. The
// error sink is bound to the replica it was registered for.
func (l *replicaLifecycle) attach(replica *Replica) {
	session := replica.Session()
	session.SetProgressSink(l.onProgress)
	session.SetErrorSink(func(sessionErr models.SessionError) {
		l.mu.Lock()
		handler := l.handler
		ctx := l.baseCtx
		l.mu.Unlock()

		if handler == nil {
			l.logger.Warn().Err(sessionErr).
				Str("func", "replicaLifecycle.attach").
				Str("partition", replica.Partition).
				Str("path", replica.Path).
				Msg("session error without handler")
			return
		}
		handler.HandleSessionError(withResetScope(ctx), replica, sessionErr)
	})
}

// restore merges a backup left by an earlier run. A failed merge keeps the
// backup for the next start.
func (l *replicaLifecycle) restore(ctx context.Context, replica *Replica) {
	log := l.logger.With().
		Str("func", "replicaLifecycle.restore").
		Str("partition", replica.Partition).
		Str("path", replica.Path).
		Logger()

	ref, ok, err := l.backups.Pending(replica.Path)
	if err != nil {
		log.Warn().Err(err).Msg("failed to look up pending backup")
		return
	}
	if !ok {
		return
	}

	log.Info().Str("backup", ref.Path).Msg("restoring records from pending backup")
	report, err := l.merger.Merge(ctx, ref, replica.Store())
	if err != nil {
		log.Warn().Err(err).Str("backup", ref.Path).Msg("restore failed, backup kept")
		return
	}

	log.Info().Int("records", report.RecordsMerged).Msg("pending backup restored")
}

func (l *replicaLifecycle) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// discard releases a replica that never became current.
func (l *replicaLifecycle) discard(replica *Replica) {
	session := replica.Session()
	session.SetErrorSink(nil)
	session.SetProgressSink(nil)
	replica.invalidateSubscription()

	if err := session.Close(); err != nil {
		l.logger.Warn().Err(err).
			Str("func", "replicaLifecycle.discard").
			Str("partition", replica.Partition).
			Str("path", replica.Path).
			Msg("failed to close replica after lifecycle was closed")
		return
	}
	l.logger.Info().
		Str("func", "replicaLifecycle.discard").
		Str("partition", replica.Partition).
		Str("path", replica.Path).
		Msg("lifecycle closed during reset, fresh replica not resumed")
}

// resetScopeKey marks contexts handed to the session error handler. Close
// calls carrying it come from the reset itself, not from the host.
type resetScopeKey struct{}

func withResetScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, resetScopeKey{}, true)
}

func inResetScope(ctx context.Context) bool {
	v, _ := ctx.Value(resetScopeKey{}).(bool)
	return v
}

func (l *replicaLifecycle) arm() {
	if l.tracker != nil {
		l.tracker.Arm()
	}
}

func (l *replicaLifecycle) onProgress(sample models.ProgressSample) {
	if l.tracker != nil {
		l.tracker.OnProgress(sample)
	}
}
