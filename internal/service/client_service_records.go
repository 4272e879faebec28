// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/utils"
	"github.com/MKhiriev/replica-keeper/models"
)

type clientRecordService struct {
	lifecycle ReplicaLifecycle
	ids       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewClientRecordService(lifecycle ReplicaLifecycle, ids *utils.UUIDGenerator, logger *logger.Logger) ClientRecordService {
	return &clientRecordService{
		lifecycle: lifecycle,
		ids:       ids,
		logger:    logger,
	}
}

func (s *clientRecordService) Seed(ctx context.Context, count int) (models.ChangeSet, error) {
	if count <= 0 {
		return models.ChangeSet{}, ErrInvalidSeedCount
	}

	replica := s.lifecycle.Current()
	if replica == nil {
		return models.ChangeSet{}, ErrNoActiveReplica
	}

	records := make([]models.Record, 0, count)
	for range count {
		records = append(records, s.randomRecord(replica.Partition))
	}

	tx, err := replica.Store().BeginTx(ctx)
	if err != nil {
		return models.ChangeSet{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer tx.Rollback()

	changes, err := tx.Create(ctx, models.CreateUpsert, records...)
	if err != nil {
		s.logger.Err(err).
			Str("func", "clientRecordService.Seed").
			Str("partition", replica.Partition).
			Str("path", replica.Path).
			Msg("failed to insert seed records")
		return models.ChangeSet{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err = tx.Commit(); err != nil {
		return models.ChangeSet{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	s.logger.Info().
		Str("func", "clientRecordService.Seed").
		Str("partition", replica.Partition).
		Int("count", count).
		Msg("seed records added")

	return changes, nil
}

func (s *clientRecordService) Objects(ctx context.Context) ([]models.Record, error) {
	replica := s.lifecycle.Current()
	if replica == nil {
		return nil, ErrNoActiveReplica
	}

	records, err := replica.Store().Objects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return records, nil
}

func (s *clientRecordService) randomRecord(partition string) models.Record {
	double := rand.Float64() * 1000
	long := rand.Int64()
	medium := int64(rand.Int32N(1 << 23))

	return models.Record{
		ID:          s.ids.Generate(),
		Partition:   partition,
		DoubleValue: &double,
		LongInt:     &long,
		MediumInt:   &medium,
	}
}
