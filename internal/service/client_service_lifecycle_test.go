// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/models"
)

// stubSessionProvider opens fake sessions over real replica files. The
// async path writes the download records before returning.
type stubSessionProvider struct {
	storages *store.ClientStorages
	download []models.Record
	syncErr  error

	mu         sync.Mutex
	syncCalls  int
	asyncCalls int
	sessions   []*fakeSession
}

func (p *stubSessionProvider) OpenSync(ctx context.Context, cfg models.ReplicaConfig) (Session, error) {
	p.mu.Lock()
	p.syncCalls++
	p.mu.Unlock()
	if p.syncErr != nil {
		return nil, p.syncErr
	}
	return p.open(ctx, cfg)
}

func (p *stubSessionProvider) OpenAsync(ctx context.Context, cfg models.ReplicaConfig, progress ProgressSink) (Session, error) {
	p.mu.Lock()
	p.asyncCalls++
	p.mu.Unlock()

	session, err := p.open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if len(p.download) > 0 {
		if _, err = session.Store().Create(ctx, models.CreateUpsert, p.download...); err != nil {
			return nil, err
		}
	}
	n := uint64(len(p.download))
	progress(models.ProgressSample{Transferred: n, Total: n, Complete: true})
	return session, nil
}

func (p *stubSessionProvider) AcknowledgeReset(context.Context, Session, string) error {
	return nil
}

func (p *stubSessionProvider) open(ctx context.Context, cfg models.ReplicaConfig) (*fakeSession, error) {
	s, err := p.storages.Opener.Open(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}
	session := newFakeSession(cfg, s)
	p.mu.Lock()
	p.sessions = append(p.sessions, session)
	p.mu.Unlock()
	return session, nil
}

// recordingHandler collects delivered session errors.
type recordingHandler struct {
	mu       sync.Mutex
	replicas []*Replica
	errs     []models.SessionError
}

func (h *recordingHandler) HandleSessionError(_ context.Context, replica *Replica, sessionErr models.SessionError) {
	h.mu.Lock()
	h.replicas = append(h.replicas, replica)
	h.errs = append(h.errs, sessionErr)
	h.mu.Unlock()
}

type handlerFunc func(ctx context.Context, replica *Replica, sessionErr models.SessionError)

func (f handlerFunc) HandleSessionError(ctx context.Context, replica *Replica, sessionErr models.SessionError) {
	f(ctx, replica, sessionErr)
}

type lifecycleFixture struct {
	storages *store.ClientStorages
	provider *stubSessionProvider
	observer *recordingObserver
	reporter *recordingReporter
	path     string
	lc       *replicaLifecycle
}

func newTestLifecycle(t *testing.T, opts LifecycleOptions) *lifecycleFixture {
	t.Helper()
	storages := newTestStorages(t)
	provider := &stubSessionProvider{storages: storages}
	observer := &recordingObserver{}
	reporter := &recordingReporter{}
	merger := NewClientMergeService(storages.Opener, storages.Backups, logger.Nop())

	pathOf := func(userID, partition string) string {
		return storages.ReplicaPath("app", userID, partition)
	}

	lc := NewReplicaLifecycle(provider, storages.Backups, merger, NewProgressTracker(reporter), observer, pathOf, opts, logger.Nop()).(*replicaLifecycle)
	t.Cleanup(func() { _ = lc.Close(context.Background(), false) })

	return &lifecycleFixture{
		storages: storages,
		provider: provider,
		observer: observer,
		reporter: reporter,
		path:     pathOf("user-1", "p1"),
		lc:       lc,
	}
}

var testUser = models.User{ID: "user-1", AccessToken: "token"}

// ── Open ─────────────────────────────────────────────────────────────────────

func TestReplicaLifecycle_Open_MissingFileDownloads(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	f.provider.download = []models.Record{rec("1", 5)}

	replica, err := f.lc.Open(context.Background(), testUser, "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, f.provider.asyncCalls)
	assert.Equal(t, 0, f.provider.syncCalls)
	assert.Equal(t, f.path, replica.Path)
	assert.Equal(t, 0, replica.Generation)
	assert.Same(t, replica, f.lc.Current())
	assert.Equal(t, 1, f.observer.count())
	assert.Equal(t, map[string]int64{"1": 5}, values(t, replica.Store()))

	require.Len(t, f.reporter.events, 1)
	assert.True(t, f.reporter.events[0].Finished)

	errSink, progressSink := f.provider.sessions[0].sinks()
	assert.NotNil(t, errSink)
	assert.NotNil(t, progressSink)
}

func TestReplicaLifecycle_Open_ExistingFileOpensSyncAndRestoresBackup(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	ctx := context.Background()

	// a backup left behind by an earlier run
	writeReplica(t, f.storages, f.path, rec("1", 9), rec("2", 1))
	_, err := f.storages.Backups.Backup(ctx, f.path)
	require.NoError(t, err)
	writeReplica(t, f.storages, f.path, rec("1", 5))

	replica, err := f.lc.Open(ctx, testUser, "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, f.provider.syncCalls)
	assert.Equal(t, 0, f.provider.asyncCalls)
	assert.Equal(t, map[string]int64{"1": 9, "2": 1}, values(t, replica.Store()))

	_, pending, err := f.storages.Backups.Pending(f.path)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestReplicaLifecycle_Open_MissingFileDownloadsAndRestoresBackup(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	ctx := context.Background()

	// interrupted after Backup and before the reopen: only the backup is left
	writeReplica(t, f.storages, f.path, rec("1", 9), rec("2", 1))
	_, err := f.storages.Backups.Backup(ctx, f.path)
	require.NoError(t, err)
	f.provider.download = []models.Record{rec("1", 5), rec("3", 3)}

	replica, err := f.lc.Open(ctx, testUser, "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, f.provider.asyncCalls)
	assert.Equal(t, 0, f.provider.syncCalls)
	assert.Equal(t, map[string]int64{"1": 9, "2": 1, "3": 3}, values(t, replica.Store()))

	_, pending, err := f.storages.Backups.Pending(f.path)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestReplicaLifecycle_Open_SyncFailureDeletesFile(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	writeReplica(t, f.storages, f.path, rec("1", 1))
	f.provider.syncErr = ErrIO

	_, err := f.lc.Open(context.Background(), testUser, "p1")
	require.ErrorIs(t, err, ErrIO)

	exists, err := f.storages.Backups.Exists(f.path)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Nil(t, f.lc.Current())
}

func TestReplicaLifecycle_Open_CleanOnStart(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{CleanOnStart: true})
	writeReplica(t, f.storages, f.path, rec("old", 1))
	f.provider.download = []models.Record{rec("new", 2)}

	replica, err := f.lc.Open(context.Background(), testUser, "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, f.provider.asyncCalls)
	assert.Equal(t, map[string]int64{"new": 2}, values(t, replica.Store()))
}

// ── sinks ────────────────────────────────────────────────────────────────────

func TestReplicaLifecycle_ErrorSinkRoutesToHandler(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	handler := &recordingHandler{}
	f.lc.SetErrorHandler(handler)

	replica, err := f.lc.Open(context.Background(), testUser, "p1")
	require.NoError(t, err)

	sessionErr := models.SessionError{Kind: models.SyncErrorClientReset, Token: "tok"}
	f.provider.sessions[0].fireError(sessionErr)

	require.Len(t, handler.errs, 1)
	assert.Same(t, replica, handler.replicas[0])
	assert.Equal(t, "tok", handler.errs[0].Token)
}

func TestReplicaLifecycle_ErrorWithoutHandlerIsIgnored(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})

	_, err := f.lc.Open(context.Background(), testUser, "p1")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		f.provider.sessions[0].fireError(models.SessionError{Kind: models.SyncErrorTransient})
	})
}

// ── OpenFresh / Resume ───────────────────────────────────────────────────────

func TestReplicaLifecycle_OpenFresh_IncrementsGenerationWithoutResuming(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	ctx := context.Background()

	first, err := f.lc.Open(ctx, testUser, "p1")
	require.NoError(t, err)
	// closed by the reset itself, as the coordinator does
	require.NoError(t, f.lc.Close(withResetScope(ctx), true))

	fresh, err := f.lc.OpenFresh(ctx, testUser, "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, fresh.Generation)
	assert.Equal(t, first.Path, fresh.Path)
	assert.Nil(t, f.lc.Current())
	assert.Equal(t, 1, f.observer.count())

	require.NoError(t, f.lc.Resume(ctx, fresh))
	assert.Same(t, fresh, f.lc.Current())
	assert.Equal(t, 2, f.observer.count())

	again, err := f.lc.OpenFresh(ctx, testUser, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Generation)
	_ = again.Session().Close()
}

func TestReplicaLifecycle_Resume_RefusedAfterHostClose(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	ctx := context.Background()
	resetCtx := withResetScope(ctx)

	_, err := f.lc.Open(ctx, testUser, "p1")
	require.NoError(t, err)

	// the reset closes the diverged replica and downloads a fresh one
	require.NoError(t, f.lc.Close(resetCtx, false))
	fresh, err := f.lc.OpenFresh(resetCtx, testUser, "p1")
	require.NoError(t, err)

	// the host shuts down while the reset is still running
	require.NoError(t, f.lc.Close(ctx, false))

	err = f.lc.Resume(resetCtx, fresh)
	assert.ErrorIs(t, err, ErrNoActiveReplica)
	assert.Nil(t, f.lc.Current())
	assert.Equal(t, models.SessionClosed, fresh.Session().State())
	assert.Equal(t, 1, f.observer.count())

	errSink, progressSink := f.provider.sessions[1].sinks()
	assert.Nil(t, errSink)
	assert.Nil(t, progressSink)
}

func TestReplicaLifecycle_Open_ClearsHostClose(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	ctx := context.Background()

	_, err := f.lc.Open(ctx, testUser, "p1")
	require.NoError(t, err)
	require.NoError(t, f.lc.Close(ctx, false))

	replica, err := f.lc.Open(ctx, testUser, "p1")
	require.NoError(t, err)
	assert.Same(t, replica, f.lc.Current())
}

func TestReplicaLifecycle_ErrorHandlerGetsResetScope(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	var scoped bool
	f.lc.SetErrorHandler(handlerFunc(func(ctx context.Context, _ *Replica, _ models.SessionError) {
		scoped = inResetScope(ctx)
	}))

	_, err := f.lc.Open(context.Background(), testUser, "p1")
	require.NoError(t, err)
	f.provider.sessions[0].fireError(models.SessionError{Kind: models.SyncErrorClientReset})

	assert.True(t, scoped)
	assert.False(t, inResetScope(context.Background()))
}

func TestReplicaLifecycle_Resume_Nil(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	assert.ErrorIs(t, f.lc.Resume(context.Background(), nil), ErrNoActiveReplica)
}

// ── Close ────────────────────────────────────────────────────────────────────

func TestReplicaLifecycle_Close_DeregistersAndInvalidates(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	ctx := context.Background()

	_, err := f.lc.Open(ctx, testUser, "p1")
	require.NoError(t, err)
	sub := f.observer.subs[0]

	require.NoError(t, f.lc.Close(ctx, false))

	session := f.provider.sessions[0]
	errSink, progressSink := session.sinks()
	assert.Nil(t, errSink)
	assert.Nil(t, progressSink)
	assert.Equal(t, models.SessionClosed, session.State())
	assert.Nil(t, f.lc.Current())

	// initial change set, then the channel is closed
	<-sub.C
	_, open := <-sub.C
	assert.False(t, open)

	exists, err := f.storages.Backups.Exists(f.path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReplicaLifecycle_Close_DeleteAfterGrace(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{DeleteGrace: 20 * time.Millisecond})
	ctx := context.Background()

	_, err := f.lc.Open(ctx, testUser, "p1")
	require.NoError(t, err)

	started := time.Now()
	require.NoError(t, f.lc.Close(ctx, true))
	assert.GreaterOrEqual(t, time.Since(started), 20*time.Millisecond)

	exists, err := f.storages.Backups.Exists(f.path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReplicaLifecycle_Close_DeleteCancelled(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{DeleteGrace: time.Hour})

	_, err := f.lc.Open(context.Background(), testUser, "p1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = f.lc.Close(ctx, true)
	assert.True(t, errors.Is(err, context.Canceled))

	exists, err := f.storages.Backups.Exists(f.path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReplicaLifecycle_Close_NoReplica(t *testing.T) {
	f := newTestLifecycle(t, LifecycleOptions{})
	assert.NoError(t, f.lc.Close(context.Background(), true))
}
