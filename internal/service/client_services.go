// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/replica-keeper/internal/adapter"
	"github.com/MKhiriev/replica-keeper/internal/config"
	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/internal/utils"
)

type ClientServices struct {
	AuthService     ClientAuthService
	SessionProvider SessionProvider
	MergeService    ClientMergeService
	Lifecycle       ReplicaLifecycle
	ResetService    ClientResetService
	RecordService   ClientRecordService
	Progress        *ProgressTracker
}

// NewClientServices wires the client services together. The reset service
// is registered as the error handler of every session the lifecycle opens.
func NewClientServices(
	cfg *config.ClientConfig,
	storages *store.ClientStorages,
	syncAdapter adapter.SyncAdapter,
	observer ChangeObserver,
	reporter ProgressReporter,
	logger *logger.Logger,
) *ClientServices {
	provider := NewSyncSessionProvider(syncAdapter, storages, cfg.Session, logger)
	merger := NewClientMergeService(storages.Opener, storages.Backups, logger)
	tracker := NewProgressTracker(reporter)

	pathOf := func(userID, partition string) string {
		return storages.ReplicaPath(cfg.App.ID, userID, partition)
	}

	lifecycle := NewReplicaLifecycle(provider, storages.Backups, merger, tracker, observer, pathOf, LifecycleOptions{
		CleanOnStart: cfg.Storage.CleanOnStart,
		DeleteGrace:  cfg.Session.DeleteGrace,
	}, logger)

	resetSvc := NewClientResetService(lifecycle, provider, storages.Backups, merger, cfg.Session.ResetMode, logger)
	lifecycle.SetErrorHandler(resetSvc)

	return &ClientServices{
		AuthService:     NewClientAuthService(syncAdapter, cfg.App.ID, cfg.App.Credentials, logger),
		SessionProvider: provider,
		MergeService:    merger,
		Lifecycle:       lifecycle,
		ResetService:    resetSvc,
		RecordService:   NewClientRecordService(lifecycle, utils.NewUUIDGenerator(), logger),
		Progress:        tracker,
	}
}
