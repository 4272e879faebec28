// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the interactive replica console: a live log view, the
// download progress bar and a couple of hot keys for driving the replica.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/service"
	"github.com/MKhiriev/replica-keeper/models"
)

// ErrUserQuit is returned by [TUI.Run] when the user leaves the console.
var ErrUserQuit = errors.New("user quit the console")

type TUI struct {
	services  *service.ClientServices
	sink      *logger.RingSink
	feed      *ProgressFeed
	info      models.AppBuildInfo
	seedCount int
	logger    *logger.Logger
}

func New(services *service.ClientServices, sink *logger.RingSink, feed *ProgressFeed,
	info models.AppBuildInfo, seedCount int, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.RecordService == nil || services.Lifecycle == nil || services.ResetService == nil {
		return nil, errors.New("tui: services are not initialized")
	}
	if sink == nil {
		return nil, errors.New("tui: log sink is nil")
	}

	return &TUI{
		services:  services,
		sink:      sink,
		feed:      feed,
		info:      info,
		seedCount: seedCount,
		logger:    logger,
	}, nil
}

// Run blocks until the user quits or ctx is cancelled. Cancellation is not
// an error.
func (t *TUI) Run(ctx context.Context) error {
	model := newConsoleModel(ctx, t.services.RecordService, t.services.Lifecycle, t.services.ResetService,
		t.sink, t.feed, t.info, t.seedCount)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		t.logger.Err(err).Str("func", "TUI.Run").Msg("console stopped with error")
		return err
	}
	return ErrUserQuit
}
