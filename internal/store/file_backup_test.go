// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

const replicaFile = "/replicas/app/user/p1.db"

func newMemBackupManager(t *testing.T) (BackupManager, afero.Fs) {
	t.Helper()
	memFs := afero.NewMemMapFs()
	require.NoError(t, memFs.MkdirAll("/replicas/app/user", 0o755))
	return NewFileBackupManager(memFs, "", logger.Nop()), memFs
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(b)
}

// ── Backup ────────────────────────────────────────────────────────────────────

// TestBackup_MovesFileAside verifies that after Backup the source no longer
// exists and the backup holds the original content.
func TestBackup_MovesFileAside(t *testing.T) {
	m, memFs := newMemBackupManager(t)
	require.NoError(t, afero.WriteFile(memFs, replicaFile, []byte("v1"), 0o644))

	ref, err := m.Backup(context.Background(), replicaFile)

	require.NoError(t, err)
	assert.Equal(t, replicaFile, ref.SourcePath)
	assert.Equal(t, replicaFile+"~", ref.Path)
	assert.False(t, ref.CreatedAt.IsZero())

	exists, err := m.Exists(replicaFile)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = m.Exists(ref.Path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "v1", readFile(t, memFs, ref.Path))
}

// TestBackup_SecondBackupReplacesFirst verifies that the last divergence
// wins: two backups of the same path keep only the second content.
func TestBackup_SecondBackupReplacesFirst(t *testing.T) {
	m, memFs := newMemBackupManager(t)
	ctx := context.Background()

	require.NoError(t, afero.WriteFile(memFs, replicaFile, []byte("first"), 0o644))
	_, err := m.Backup(ctx, replicaFile)
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(memFs, replicaFile, []byte("second"), 0o644))
	ref, err := m.Backup(ctx, replicaFile)
	require.NoError(t, err)

	assert.Equal(t, "second", readFile(t, memFs, ref.Path))
}

// TestBackup_MovesSidecars verifies that SQLite sidecar files follow the
// main file.
func TestBackup_MovesSidecars(t *testing.T) {
	m, memFs := newMemBackupManager(t)
	require.NoError(t, afero.WriteFile(memFs, replicaFile, []byte("db"), 0o644))
	require.NoError(t, afero.WriteFile(memFs, replicaFile+"-wal", []byte("wal"), 0o644))

	ref, err := m.Backup(context.Background(), replicaFile)
	require.NoError(t, err)

	assert.Equal(t, "wal", readFile(t, memFs, ref.Path+"-wal"))
	exists, err := afero.Exists(memFs, replicaFile+"-wal")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestBackup_MissingSource verifies the error kinds for a missing replica.
func TestBackup_MissingSource(t *testing.T) {
	m, _ := newMemBackupManager(t)

	_, err := m.Backup(context.Background(), replicaFile)

	assert.ErrorIs(t, err, ErrBackupIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

// TestBackup_ReadOnlyFilesystem verifies that a rename failure is reported
// as ErrBackupIO and leaves the source in place.
func TestBackup_ReadOnlyFilesystem(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, replicaFile, []byte("v1"), 0o644))
	m := NewFileBackupManager(afero.NewReadOnlyFs(base), "~", logger.Nop())

	_, err := m.Backup(context.Background(), replicaFile)

	assert.ErrorIs(t, err, ErrBackupIO)
	exists, err := afero.Exists(base, replicaFile)
	require.NoError(t, err)
	assert.True(t, exists)
}

// ── Exists / Pending / Discard ────────────────────────────────────────────────

func TestBackup_LogsThroughInjectedLogger(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, replicaFile, []byte("v1"), 0o644))
	sink := logger.NewRingSink(10)
	m := NewFileBackupManager(memFs, "~", logger.NewSinkLogger("test", sink))

	_, err := m.Backup(context.Background(), replicaFile)
	require.NoError(t, err)
	_, err = m.Backup(context.Background(), "/replicas/missing.db")
	require.Error(t, err)

	lines := strings.Join(sink.Lines(), "\n")
	assert.Contains(t, lines, "replica moved to backup")
	assert.Contains(t, lines, "replica file to back up is not accessible")
}

func TestExists_NotFoundIsNotAnError(t *testing.T) {
	m, _ := newMemBackupManager(t)

	exists, err := m.Exists("/nowhere/p.db")

	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestPending(t *testing.T) {
	m, memFs := newMemBackupManager(t)

	_, ok, err := m.Pending(replicaFile)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, afero.WriteFile(memFs, replicaFile+"~", []byte("old"), 0o644))

	ref, ok, err := m.Pending(replicaFile)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.BackupRef{SourcePath: replicaFile, Path: replicaFile + "~", CreatedAt: ref.CreatedAt}, ref)
}

func TestDiscard_RemovesBackupAndSidecars(t *testing.T) {
	m, memFs := newMemBackupManager(t)
	require.NoError(t, afero.WriteFile(memFs, replicaFile+"~", []byte("old"), 0o644))
	require.NoError(t, afero.WriteFile(memFs, replicaFile+"~-journal", []byte("j"), 0o644))

	require.NoError(t, m.Discard(models.BackupRef{Path: replicaFile + "~"}))

	for _, p := range []string{replicaFile + "~", replicaFile + "~-journal"} {
		exists, err := afero.Exists(memFs, p)
		require.NoError(t, err)
		assert.False(t, exists, p)
	}

	// discarding twice is fine
	assert.NoError(t, m.Discard(models.BackupRef{Path: replicaFile + "~"}))
}

func TestRemoveReplica(t *testing.T) {
	m, memFs := newMemBackupManager(t)
	require.NoError(t, afero.WriteFile(memFs, replicaFile, []byte("db"), 0o644))

	require.NoError(t, m.RemoveReplica(replicaFile))

	exists, err := m.Exists(replicaFile)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBackupPath_CustomSuffix(t *testing.T) {
	m := NewFileBackupManager(afero.NewMemMapFs(), ".bak", logger.Nop())
	assert.Equal(t, "/a/p.db.bak", m.BackupPath("/a/p.db"))
}
