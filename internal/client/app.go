// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/replica-keeper/internal/config"
	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/service"
	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/internal/tui"
	"github.com/MKhiriev/replica-keeper/internal/workers"
	"github.com/MKhiriev/replica-keeper/models"
)

type App struct {
	cfg      *config.ClientConfig
	services *service.ClientServices
	storages *store.ClientStorages
	workers  *workers.Workers
	console  Console
	logger   *logger.Logger
}

func NewApp(
	cfg *config.ClientConfig,
	services *service.ClientServices,
	storages *store.ClientStorages,
	ws *workers.Workers,
	console Console,
	logger *logger.Logger,
) (*App, error) {
	if cfg == nil || services == nil || storages == nil || ws == nil {
		return nil, errors.New("client app: missing dependency")
	}
	return &App{
		cfg:      cfg,
		services: services,
		storages: storages,
		workers:  ws,
		console:  console,
		logger:   logger,
	}, nil
}

// Run opens the configured partition and keeps it synchronised until ctx is
// cancelled or the console is closed. The replica is closed, not deleted, on
// the way out.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	replica, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	a.logger.Info().
		Str("func", "App.Run").
		Str("partition", replica.Partition).
		Str("path", replica.Path).
		Msg("replica opened")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.workers.Run(gctx)
	})
	if a.console != nil {
		g.Go(func() error {
			err := a.console.Run(gctx)
			cancel()
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return err
		})
	}

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Restore opens the replica, which merges a backup left behind by an
// interrupted reset, and closes it again.
func (a *App) Restore(ctx context.Context) error {
	path, _, pending, err := a.pending(ctx)
	if err != nil {
		return err
	}
	if !pending {
		a.logger.Info().Str("func", "App.Restore").Str("path", path).Msg("no pending backup")
	}

	if _, err = a.open(ctx); err != nil {
		return err
	}
	a.close()

	if _, stillPending, err := a.storages.Backups.Pending(path); err != nil {
		return fmt.Errorf("check pending backup: %w", err)
	} else if stillPending {
		return fmt.Errorf("backup of %s could not be merged: %w", path, service.ErrIO)
	}
	return nil
}

// Clean deletes the local replica of the configured partition together with
// any pending backup.
func (a *App) Clean(ctx context.Context) error {
	path, ref, pending, err := a.pending(ctx)
	if err != nil {
		return err
	}

	if pending {
		if err = a.storages.Backups.Discard(ref); err != nil {
			return fmt.Errorf("discard backup: %w", err)
		}
	}
	if err = a.storages.Backups.RemoveReplica(path); err != nil {
		return fmt.Errorf("remove replica: %w", err)
	}

	a.logger.Info().Str("func", "App.Clean").Str("path", path).Bool("had_backup", pending).Msg("replica removed")
	return nil
}

// Seed inserts count random records into the replica and closes it.
func (a *App) Seed(ctx context.Context, count int) (models.ChangeSet, error) {
	if _, err := a.open(ctx); err != nil {
		return models.ChangeSet{}, err
	}
	defer a.close()

	return a.services.RecordService.Seed(ctx, count)
}

func (a *App) open(ctx context.Context) (*service.Replica, error) {
	user, err := a.services.AuthService.Login(ctx)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	replica, err := a.services.Lifecycle.Open(ctx, user, a.cfg.App.Partition)
	if err != nil {
		return nil, fmt.Errorf("open replica: %w", err)
	}
	return replica, nil
}

func (a *App) close() {
	if err := a.services.Lifecycle.Close(context.Background(), false); err != nil {
		a.logger.Err(err).Str("func", "App.close").Msg("error closing replica")
	}
}

// pending logs in to resolve the replica path and reports whether a backup
// is waiting there.
func (a *App) pending(ctx context.Context) (string, models.BackupRef, bool, error) {
	user, err := a.services.AuthService.Login(ctx)
	if err != nil {
		return "", models.BackupRef{}, false, fmt.Errorf("login: %w", err)
	}

	path := a.storages.ReplicaPath(a.cfg.App.ID, user.ID, a.cfg.App.Partition)
	ref, pending, err := a.storages.Backups.Pending(path)
	if err != nil {
		return "", models.BackupRef{}, false, fmt.Errorf("check pending backup: %w", err)
	}
	return path, ref, pending, nil
}
