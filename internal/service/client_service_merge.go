// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/models"
)

type clientMergeService struct {
	opener  store.ReplicaOpener
	backups store.BackupManager

	logger *logger.Logger
}

func NewClientMergeService(opener store.ReplicaOpener, backups store.BackupManager, logger *logger.Logger) ClientMergeService {
	return &clientMergeService{
		opener:  opener,
		backups: backups,
		logger:  logger,
	}
}

// Merge implements ClientMergeService. Each backup record replaces every
// field of the live record with the same id; records missing from live are
// inserted. Records only present in live are kept.
func (m *clientMergeService) Merge(ctx context.Context, ref models.BackupRef, live store.ReplicaStore) (models.MergeReport, error) {
	records, err := m.readBackup(ctx, ref)
	if err != nil {
		return models.MergeReport{}, err
	}

	tx, err := live.BeginTx(ctx)
	if err != nil {
		m.logger.Err(err).
			Str("func", "clientMergeService.Merge").
			Str("path", live.Path()).
			Msg("failed to begin merge transaction")
		return models.MergeReport{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer tx.Rollback()

	var changes models.ChangeSet
	if len(records) > 0 {
		changes, err = tx.Create(ctx, models.CreateUpsert, records...)
		if err != nil {
			m.logger.Err(err).
				Str("func", "clientMergeService.Merge").
				Str("path", live.Path()).
				Str("backup", ref.Path).
				Msg("failed to write backup records")
			return models.MergeReport{}, fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	if err = tx.Commit(); err != nil {
		m.logger.Err(err).
			Str("func", "clientMergeService.Merge").
			Str("path", live.Path()).
			Msg("failed to commit merge transaction")
		return models.MergeReport{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	report := models.MergeReport{
		RecordsMerged: len(records),
		Inserted:      len(changes.Insertions),
		Updated:       len(changes.Modifications),
		BackupPath:    ref.Path,
	}

	if err = m.backups.Discard(ref); err != nil {
		// the merged records are committed, a leftover backup is merged
		// again on the next start without changing the result
		m.logger.Warn().Err(err).
			Str("func", "clientMergeService.Merge").
			Str("backup", ref.Path).
			Msg("failed to delete merged backup")
	}

	m.logger.Info().
		Str("func", "clientMergeService.Merge").
		Str("path", live.Path()).
		Int("records", report.RecordsMerged).
		Int("inserted", report.Inserted).
		Int("updated", report.Updated).
		Msg("backup merged")

	return report, nil
}

// readBackup returns the backup's records, one per id, ordered by id.
func (m *clientMergeService) readBackup(ctx context.Context, ref models.BackupRef) ([]models.Record, error) {
	backup, err := m.opener.OpenReadOnly(ctx, ref.Path)
	if err != nil {
		m.logger.Err(err).
			Str("func", "clientMergeService.readBackup").
			Str("backup", ref.Path).
			Msg("failed to open backup")
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer backup.Close()

	objects, err := backup.Objects(ctx)
	if err != nil {
		m.logger.Err(err).
			Str("func", "clientMergeService.readBackup").
			Str("backup", ref.Path).
			Msg("failed to read backup records")
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	byID := make(map[string]models.Record, len(objects))
	for _, r := range objects {
		byID[r.ID] = r
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	records := make([]models.Record, 0, len(ids))
	for _, id := range ids {
		records = append(records, byID[id])
	}

	return records, nil
}
