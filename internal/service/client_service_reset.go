// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/models"
)

// ResetState is the position of a [ClientResetService] in the recovery
// sequence.
type ResetState int

const (
	ResetIdle ResetState = iota
	ResetBackingUp
	ResetAwaitingServerReset
	ResetReopening
	ResetMerging
)

func (s ResetState) String() string {
	switch s {
	case ResetIdle:
		return "idle"
	case ResetBackingUp:
		return "backing_up"
	case ResetAwaitingServerReset:
		return "awaiting_server_reset"
	case ResetReopening:
		return "reopening"
	case ResetMerging:
		return "merging"
	default:
		return "unknown"
	}
}

type clientResetService struct {
	lifecycle ReplicaLifecycle
	provider  SessionProvider
	backups   store.BackupManager
	merger    ClientMergeService
	mode      models.ResetMode

	mu    sync.Mutex
	state ResetState

	logger *logger.Logger
}

// NewClientResetService returns the [ClientResetService] recovering the
// replicas of lifecycle. An invalid mode falls back to
// [models.ResetModeManual].
func NewClientResetService(
	lifecycle ReplicaLifecycle,
	provider SessionProvider,
	backups store.BackupManager,
	merger ClientMergeService,
	mode models.ResetMode,
	logger *logger.Logger,
) ClientResetService {
	if !mode.Valid() {
		mode = models.ResetModeManual
	}

	return &clientResetService{
		lifecycle: lifecycle,
		provider:  provider,
		backups:   backups,
		merger:    merger,
		mode:      mode,
		logger:    logger,
	}
}

func (r *clientResetService) State() ResetState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// HandleSessionError implements SessionErrorHandler. A client reset runs the
// whole recovery before returning; every other kind is only logged.
func (r *clientResetService) HandleSessionError(ctx context.Context, replica *Replica, sessionErr models.SessionError) {
	log := r.logger.With().
		Str("func", "clientResetService.HandleSessionError").
		Str("partition", replica.Partition).
		Str("path", replica.Path).
		Str("kind", sessionErr.Kind.String()).
		Logger()

	switch sessionErr.Kind {
	case models.SyncErrorClientReset:
	case models.SyncErrorTransient:
		log.Warn().Err(sessionErr).Msg("transient sync error, session keeps retrying")
		return
	default:
		log.Error().Err(sessionErr).Msg("sync error")
		return
	}

	if !r.begin(log) {
		log.Warn().Str("state", r.State().String()).Msg("client reset already in progress, event dropped")
		return
	}
	defer r.transition(log, ResetIdle)

	if r.mode == models.ResetModeDiscardLocal {
		r.discardLocal(ctx, log, replica, sessionErr)
		return
	}

	if err := r.lifecycle.Close(ctx, false); err != nil {
		log.Warn().Err(err).Msg("failed to close diverged replica")
	}

	ref, err := r.backups.Backup(ctx, replica.Path)
	if err != nil {
		log.Error().Err(err).Msg("backup of diverged replica failed, local copy is presumed lost")
		return
	}

	r.transition(log, ResetAwaitingServerReset)
	if err = r.provider.AcknowledgeReset(ctx, replica.Session(), sessionErr.Token); err != nil {
		log.Warn().Err(err).Msg("client reset was not acknowledged, reopening anyway")
	}

	r.transition(log, ResetReopening)
	fresh, err := r.lifecycle.OpenFresh(ctx, replica.User, replica.Partition)
	if err != nil {
		log.Error().Err(err).Str("backup", ref.Path).Msg("failed to reopen replica, backup kept for next start")
		return
	}

	r.transition(log, ResetMerging)
	report, err := r.merger.Merge(ctx, ref, fresh.Store())
	if err != nil {
		log.Warn().Err(err).Str("backup", ref.Path).Msg("merge failed, backup kept for next start")
	} else {
		log.Info().Int("records", report.RecordsMerged).Msg("local records merged into fresh replica")
	}

	if err = r.lifecycle.Resume(ctx, fresh); err != nil {
		log.Err(err).Msg("failed to resume fresh replica")
	}
}

// discardLocal drops the diverged replica and keeps only the server state.
func (r *clientResetService) discardLocal(ctx context.Context, log zerolog.Logger, replica *Replica, sessionErr models.SessionError) {
	log.Info().Msg("Executing discard local reset: before")

	if err := r.lifecycle.Close(ctx, false); err != nil {
		log.Warn().Err(err).Msg("failed to close diverged replica")
	}
	if err := r.backups.RemoveReplica(replica.Path); err != nil {
		log.Error().Err(err).Msg("failed to delete diverged replica")
	}

	r.transition(log, ResetAwaitingServerReset)
	if err := r.provider.AcknowledgeReset(ctx, replica.Session(), sessionErr.Token); err != nil {
		log.Warn().Err(err).Msg("client reset was not acknowledged, reopening anyway")
	}

	r.transition(log, ResetReopening)
	fresh, err := r.lifecycle.OpenFresh(ctx, replica.User, replica.Partition)
	if err != nil {
		log.Error().Err(err).Msg("failed to reopen replica")
		return
	}

	if err = r.lifecycle.Resume(ctx, fresh); err != nil {
		log.Err(err).Msg("failed to resume fresh replica")
		return
	}

	log.Info().Msg("Executing discard local reset: after")
}

// begin moves an idle coordinator to BackingUp. It returns false when a
// reset is already running.
func (r *clientResetService) begin(log zerolog.Logger) bool {
	r.mu.Lock()
	if r.state != ResetIdle {
		r.mu.Unlock()
		return false
	}
	r.state = ResetBackingUp
	r.mu.Unlock()

	log.Info().Str("from", ResetIdle.String()).Str("state", ResetBackingUp.String()).Msg("client reset state changed")
	return true
}

func (r *clientResetService) transition(log zerolog.Logger, to ResetState) {
	r.mu.Lock()
	from := r.state
	r.state = to
	r.mu.Unlock()

	log.Info().Str("from", from.String()).Str("state", to.String()).Msg("client reset state changed")
}
