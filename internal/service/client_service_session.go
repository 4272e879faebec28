// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"

	"github.com/MKhiriev/replica-keeper/internal/adapter"
	"github.com/MKhiriev/replica-keeper/internal/config"
	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/models"
)

const (
	defaultPollInterval    = 2 * time.Second
	defaultDownloadTimeout = 30 * time.Second

	// downloadSuffix names the temporary file a download is written to
	// before it is moved to the canonical path.
	downloadSuffix = ".download"

	downloadRetries = 5
	downloadBackoff = 100 * time.Millisecond
)

type syncSessionProvider struct {
	adapter adapter.SyncAdapter
	opener  store.ReplicaOpener
	backups store.BackupManager
	fs      afero.Fs

	pollInterval    time.Duration
	downloadTimeout time.Duration

	logger *logger.Logger
}

// NewSyncSessionProvider returns a [SessionProvider] that keeps replicas in
// sync by polling the sync service through syncAdapter.
func NewSyncSessionProvider(syncAdapter adapter.SyncAdapter, storages *store.ClientStorages, cfg config.ClientSession, logger *logger.Logger) SessionProvider {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	downloadTimeout := cfg.DownloadTimeout
	if downloadTimeout <= 0 {
		downloadTimeout = defaultDownloadTimeout
	}

	return &syncSessionProvider{
		adapter:         syncAdapter,
		opener:          storages.Opener,
		backups:         storages.Backups,
		fs:              storages.Fs,
		pollInterval:    pollInterval,
		downloadTimeout: downloadTimeout,
		logger:          logger,
	}
}

func (p *syncSessionProvider) OpenSync(ctx context.Context, cfg models.ReplicaConfig) (Session, error) {
	replicaStore, err := p.opener.Open(ctx, cfg.Path)
	if err != nil {
		p.logger.Err(err).
			Str("func", "syncSessionProvider.OpenSync").
			Str("partition", cfg.Partition).
			Str("path", cfg.Path).
			Msg("failed to open local replica")
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	session := p.newSession(cfg, replicaStore, "")
	session.start(ctx)

	p.logger.Debug().
		Str("func", "syncSessionProvider.OpenSync").
		Str("partition", cfg.Partition).
		Str("path", cfg.Path).
		Int("generation", cfg.Generation).
		Msg("session opened from local file")

	return session, nil
}

func (p *syncSessionProvider) OpenAsync(ctx context.Context, cfg models.ReplicaConfig, progress ProgressSink) (Session, error) {
	cursor, err := p.download(ctx, cfg, progress)
	if err != nil {
		return nil, err
	}

	replicaStore, err := p.opener.Open(ctx, cfg.Path)
	if err != nil {
		p.logger.Err(err).
			Str("func", "syncSessionProvider.OpenAsync").
			Str("partition", cfg.Partition).
			Str("path", cfg.Path).
			Msg("failed to open downloaded replica")
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	session := p.newSession(cfg, replicaStore, cursor)
	session.start(ctx)

	p.logger.Debug().
		Str("func", "syncSessionProvider.OpenAsync").
		Str("partition", cfg.Partition).
		Str("path", cfg.Path).
		Int("generation", cfg.Generation).
		Msg("session opened after download")

	return session, nil
}

func (p *syncSessionProvider) AcknowledgeReset(ctx context.Context, session Session, token string) error {
	cfg := session.Config()
	ack := models.ResetAcknowledgement{Token: token, Generation: cfg.Generation}

	if err := p.adapter.AcknowledgeReset(ctx, cfg.User, cfg.Partition, ack); err != nil {
		p.logger.Err(err).
			Str("func", "syncSessionProvider.AcknowledgeReset").
			Str("partition", cfg.Partition).
			Str("path", cfg.Path).
			Msg("failed to acknowledge client reset")
		return mapAdapterError(err)
	}

	return nil
}

func (p *syncSessionProvider) newSession(cfg models.ReplicaConfig, replicaStore store.ReplicaStore, cursor string) *syncSession {
	return &syncSession{
		cfg:          cfg,
		store:        replicaStore,
		adapter:      p.adapter,
		pollInterval: p.pollInterval,
		cursor:       cursor,
		state:        models.SessionOpening,
		logger:       p.logger,
	}
}

// download fetches every page of the partition into a temporary file and
// moves it to the canonical path once the last page is stored. It returns
// the cursor to pull changes from.
func (p *syncSessionProvider) download(ctx context.Context, cfg models.ReplicaConfig, progress ProgressSink) (string, error) {
	tmpPath := cfg.Path + downloadSuffix
	if err := p.backups.RemoveReplica(tmpPath); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}

	downloadCtx, cancel := context.WithTimeout(ctx, p.downloadTimeout)
	defer cancel()

	replicaStore, err := p.opener.Open(downloadCtx, tmpPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}

	cursor, err := p.fill(downloadCtx, cfg, replicaStore, progress)
	if closeErr := replicaStore.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%w: %w", ErrIO, closeErr)
	}
	if err != nil {
		p.logger.Err(err).
			Str("func", "syncSessionProvider.download").
			Str("partition", cfg.Partition).
			Str("path", cfg.Path).
			Msg("download before open failed")
		if rmErr := p.backups.RemoveReplica(tmpPath); rmErr != nil {
			p.logger.Warn().Err(rmErr).
				Str("func", "syncSessionProvider.download").
				Str("path", tmpPath).
				Msg("failed to remove partial download")
		}
		return "", err
	}

	if err = p.fs.Rename(tmpPath, cfg.Path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}

	return cursor, nil
}

func (p *syncSessionProvider) fill(ctx context.Context, cfg models.ReplicaConfig, replicaStore store.ReplicaStore, progress ProgressSink) (string, error) {
	var (
		cursor      string
		transferred uint64
	)

	for {
		page, err := p.downloadPage(ctx, cfg, cursor)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrDownloadFailed, mapAdapterError(err))
		}

		if len(page.Records) > 0 {
			if _, err = replicaStore.Create(ctx, models.CreateUpsert, page.Records...); err != nil {
				return "", fmt.Errorf("%w: %w", ErrIO, err)
			}
		}

		// an empty page that keeps the cursor would be requested forever
		if page.HasMore && len(page.Records) == 0 && page.Cursor == cursor {
			return "", fmt.Errorf("%w: empty page did not advance cursor %q", ErrDownloadFailed, cursor)
		}

		transferred += uint64(len(page.Records))
		cursor = page.Cursor

		if progress != nil {
			progress(models.ProgressSample{
				Transferred: transferred,
				Total:       max(page.Total, transferred),
				Complete:    !page.HasMore,
			})
		}

		if !page.HasMore {
			return cursor, nil
		}
	}
}

func (p *syncSessionProvider) downloadPage(ctx context.Context, cfg models.ReplicaConfig, cursor string) (models.RecordsPage, error) {
	var page models.RecordsPage
	backoff := retry.WithMaxRetries(downloadRetries, retry.NewExponential(downloadBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		page, err = p.adapter.DownloadPage(ctx, cfg.User, cfg.Partition, cursor)
		if err != nil && isTransient(err) {
			p.logger.Debug().Err(err).
				Str("func", "syncSessionProvider.downloadPage").
				Str("partition", cfg.Partition).
				Msg("retrying page download")
			return retry.RetryableError(err)
		}
		return err
	})

	return page, err
}

// syncSession polls the sync service on a ticker and applies pulled changes
// to its replica. Errors and progress are delivered from the poll goroutine.
type syncSession struct {
	cfg          models.ReplicaConfig
	store        store.ReplicaStore
	adapter      adapter.SyncAdapter
	pollInterval time.Duration

	mu           sync.Mutex
	state        models.SessionState
	released     bool
	cursor       string
	errorSink    ErrorSink
	progressSink ProgressSink
	cancel       context.CancelFunc

	// applyMu serializes applying pulled changes with Close.
	applyMu sync.Mutex
	wg      sync.WaitGroup

	logger *logger.Logger
}

func (s *syncSession) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *syncSession) Path() string {
	return s.cfg.Path
}

func (s *syncSession) Config() models.ReplicaConfig {
	return s.cfg
}

func (s *syncSession) Store() store.ReplicaStore {
	return s.store
}

func (s *syncSession) SetErrorSink(sink ErrorSink) {
	s.mu.Lock()
	s.errorSink = sink
	s.mu.Unlock()
}

func (s *syncSession) SetProgressSink(sink ProgressSink) {
	s.mu.Lock()
	s.progressSink = sink
	s.mu.Unlock()
}

// Close implements Session. An errored session stays errored.
func (s *syncSession) Close() error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return nil
	}
	s.released = true
	if s.state != models.SessionErrored {
		s.state = models.SessionClosed
	}
	s.errorSink = nil
	s.progressSink = nil
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if err := s.store.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// start launches the poll goroutine. The goroutine exits when ctx is
// cancelled, the session is closed or a terminal error was delivered.
func (s *syncSession) start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	s.state = models.SessionActive
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTicker(s.pollInterval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				if !s.poll(loopCtx) {
					return
				}
			}
		}
	}()
}

// wait blocks until the poll goroutine has exited.
func (s *syncSession) wait() {
	s.wg.Wait()
}

func (s *syncSession) poll(ctx context.Context) bool {
	resp, err := s.adapter.Pull(ctx, s.cfg.User, s.cfg.Partition, s.currentCursor())
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		return s.fail(err)
	}

	applied, err := s.apply(ctx, resp)
	if err != nil {
		if errors.Is(err, ErrSessionClosed) || ctx.Err() != nil {
			return false
		}
		return s.fail(err)
	}

	if applied > 0 {
		s.reportProgress(models.ProgressSample{Transferred: applied, Total: applied, Complete: true})
	}
	return true
}

// apply writes one pulled batch in a single transaction and advances the
// cursor after commit.
func (s *syncSession) apply(ctx context.Context, resp models.PullResponse) (uint64, error) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	if s.isReleased() {
		return 0, ErrSessionClosed
	}

	if len(resp.Upserts) == 0 && len(resp.Deletions) == 0 {
		s.setCursor(resp.Cursor)
		return 0, nil
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer tx.Rollback()

	if len(resp.Upserts) > 0 {
		if _, err = tx.Create(ctx, models.CreateUpsert, resp.Upserts...); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	if len(resp.Deletions) > 0 {
		if _, err = tx.Delete(ctx, resp.Deletions...); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	s.setCursor(resp.Cursor)
	return uint64(len(resp.Upserts) + len(resp.Deletions)), nil
}

// fail delivers err to the error sink and reports whether polling goes on.
// Client resets and configuration errors are terminal.
func (s *syncSession) fail(err error) bool {
	sessionErr := toSessionError(s.cfg.Path, err)
	terminal := sessionErr.Kind == models.SyncErrorClientReset || sessionErr.Kind == models.SyncErrorConfiguration

	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return false
	}
	if terminal {
		s.state = models.SessionErrored
	}
	sink := s.errorSink
	s.mu.Unlock()

	s.logger.Debug().Err(err).
		Str("func", "syncSession.fail").
		Str("partition", s.cfg.Partition).
		Str("path", s.cfg.Path).
		Str("kind", sessionErr.Kind.String()).
		Msg("session error")

	if sink != nil {
		sink(sessionErr)
	}

	return !terminal
}

func (s *syncSession) reportProgress(sample models.ProgressSample) {
	s.mu.Lock()
	sink := s.progressSink
	s.mu.Unlock()

	if sink != nil {
		sink(sample)
	}
}

func (s *syncSession) currentCursor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *syncSession) setCursor(cursor string) {
	s.mu.Lock()
	s.cursor = cursor
	s.mu.Unlock()
}

func (s *syncSession) isReleased() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}
