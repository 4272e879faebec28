// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/replica-keeper/internal/config"
	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/models"
)

func i64(v int64) *int64 { return &v }

// rec builds a record whose LongInt carries the value under test.
func rec(id string, v int64) models.Record {
	return models.Record{ID: id, Partition: "p1", LongInt: i64(v)}
}

func newTestStorages(t *testing.T) *store.ClientStorages {
	t.Helper()
	return store.NewClientStorages(afero.NewOsFs(), config.ClientStorage{
		BaseDir:      t.TempDir(),
		BackupSuffix: "~",
	}, logger.Nop())
}

// writeReplica creates a replica file at path holding records.
func writeReplica(t *testing.T, storages *store.ClientStorages, path string, records ...models.Record) {
	t.Helper()
	s, err := storages.Opener.Open(context.Background(), path)
	require.NoError(t, err)
	if len(records) > 0 {
		_, err = s.Create(context.Background(), models.CreateUpsert, records...)
		require.NoError(t, err)
	}
	require.NoError(t, s.Close())
}

// values returns id -> LongInt of every record in s.
func values(t *testing.T, s store.ReplicaStore) map[string]int64 {
	t.Helper()
	objects, err := s.Objects(context.Background())
	require.NoError(t, err)

	out := make(map[string]int64, len(objects))
	for _, r := range objects {
		require.NotNil(t, r.LongInt)
		out[r.ID] = *r.LongInt
	}
	return out
}

func fileValues(t *testing.T, storages *store.ClientStorages, path string) map[string]int64 {
	t.Helper()
	s, err := storages.Opener.OpenReadOnly(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()
	return values(t, s)
}

func replicaPath(t *testing.T, storages *store.ClientStorages) string {
	t.Helper()
	return storages.ReplicaPath("app", "user-1", "p1")
}

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// fakeSession is a Session over a given store. It records sink
// registrations so tests can fire errors and progress by hand.
type fakeSession struct {
	cfg   models.ReplicaConfig
	store store.ReplicaStore

	mu           sync.Mutex
	state        models.SessionState
	errorSink    ErrorSink
	progressSink ProgressSink
	closed       int
}

func newFakeSession(cfg models.ReplicaConfig, s store.ReplicaStore) *fakeSession {
	return &fakeSession{cfg: cfg, store: s, state: models.SessionActive}
}

func (f *fakeSession) State() models.SessionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSession) Path() string { return f.cfg.Path }
func (f *fakeSession) Config() models.ReplicaConfig { return f.cfg }
func (f *fakeSession) Store() store.ReplicaStore { return f.store }

func (f *fakeSession) SetErrorSink(sink ErrorSink) {
	f.mu.Lock()
	f.errorSink = sink
	f.mu.Unlock()
}

func (f *fakeSession) SetProgressSink(sink ProgressSink) {
	f.mu.Lock()
	f.progressSink = sink
	f.mu.Unlock()
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	f.closed++
	f.state = models.SessionClosed
	f.mu.Unlock()
	if f.store != nil {
		return f.store.Close()
	}
	return nil
}

func (f *fakeSession) fireError(sessionErr models.SessionError) {
	f.mu.Lock()
	sink := f.errorSink
	f.mu.Unlock()
	if sink != nil {
		sink(sessionErr)
	}
}

func (f *fakeSession) fireProgress(sample models.ProgressSample) {
	f.mu.Lock()
	sink := f.progressSink
	f.mu.Unlock()
	if sink != nil {
		sink(sample)
	}
}

func (f *fakeSession) sinks() (ErrorSink, ProgressSink) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorSink, f.progressSink
}

// recordingObserver remembers the partitions it was asked to observe.
type recordingObserver struct {
	mu         sync.Mutex
	partitions []string
	subs       []*store.Subscription
}

func (o *recordingObserver) Observe(_ context.Context, partition string, sub *store.Subscription) {
	o.mu.Lock()
	o.partitions = append(o.partitions, partition)
	o.subs = append(o.subs, sub)
	o.mu.Unlock()
}

func (o *recordingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}
