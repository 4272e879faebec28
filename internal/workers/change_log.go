// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/models"
)

const changeLogQueueSize = 16

type observation struct {
	ctx       context.Context
	partition string
	sub       *store.Subscription
}

// ChangeLogWorker writes a log line for every change notification of the
// observed replicas.
type ChangeLogWorker struct {
	queue chan observation

	logger *logger.Logger
}

func NewChangeLogWorker(logger *logger.Logger) *ChangeLogWorker {
	return &ChangeLogWorker{
		queue:  make(chan observation, changeLogQueueSize),
		logger: logger,
	}
}

// Observe hands sub over to the worker. The subscription is consumed until
// it is invalidated, ctx is cancelled or the worker stops.
func (w *ChangeLogWorker) Observe(ctx context.Context, partition string, sub *store.Subscription) {
	select {
	case w.queue <- observation{ctx: ctx, partition: partition, sub: sub}:
	default:
		w.logger.Warn().
			Str("func", "ChangeLogWorker.Observe").
			Str("partition", partition).
			Msg("change log queue is full, subscription not observed")
		sub.Invalidate()
	}
}

func (w *ChangeLogWorker) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case o := <-w.queue:
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.consume(ctx, o)
			}()
		}
	}
}

func (w *ChangeLogWorker) consume(ctx context.Context, o observation) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-o.ctx.Done():
			return
		case cs, ok := <-o.sub.C:
			if !ok {
				return
			}
			w.logChange(o.partition, cs)
		}
	}
}

func (w *ChangeLogWorker) logChange(partition string, cs models.ChangeSet) {
	log := w.logger.With().Str("func", "ChangeLogWorker.logChange").Str("partition", partition).Logger()

	if cs.Initial {
		log.Info().Msg("Initial load change")
	} else {
		log.Info().Msgf("Received %d deleted, %d inserted, %d updates",
			len(cs.Deletions), len(cs.Insertions), len(cs.Modifications))
	}
	log.Info().Msgf("Number of objects obtained: %d", cs.Count)
}
