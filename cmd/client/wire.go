// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/MKhiriev/replica-keeper/internal/adapter"
	"github.com/MKhiriev/replica-keeper/internal/client"
	"github.com/MKhiriev/replica-keeper/internal/config"
	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/service"
	"github.com/MKhiriev/replica-keeper/internal/store"
	"github.com/MKhiriev/replica-keeper/internal/tui"
	"github.com/MKhiriev/replica-keeper/internal/workers"
	"github.com/MKhiriev/replica-keeper/models"
)

const consoleLogLines = 1000

type deps struct {
	cfg *config.ClientConfig
	app *client.App
}

// build wires the client from configuration. The console is only created
// when wanted and stdout is a terminal; its log lines go to the console
// instead of the log file.
func build(flags *config.Flags, wantConsole bool) (*deps, error) {
	cfg, err := config.GetClientConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error getting configs: %w", err)
	}

	withConsole := wantConsole && isTerminal(os.Stdout.Fd())

	var (
		log  *logger.Logger
		sink *logger.RingSink
	)
	if withConsole {
		sink = logger.NewRingSink(consoleLogLines)
		log = logger.NewSinkLogger(appRole, sink)
	} else {
		log = logger.NewClientLogger(appRole, cfg.Log.Dir, cfg.Log.Level)
	}

	syncAdapter, err := adapter.NewHTTPSyncAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create sync adapter: %w", err)
	}

	storages := store.NewClientStorages(afero.NewOsFs(), cfg.Storage, log)
	changeLog := workers.NewChangeLogWorker(log)

	reporters := service.ProgressReporters{service.NewLogProgressReporter(log)}
	var feed *tui.ProgressFeed
	if withConsole {
		feed = tui.NewProgressFeed()
		reporters = append(reporters, feed)
	}

	services := service.NewClientServices(cfg, storages, syncAdapter, changeLog, reporters, log)

	var console client.Console
	if withConsole {
		info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
		ui, err := tui.New(services, sink, feed, info, cfg.App.SeedCount, log)
		if err != nil {
			return nil, fmt.Errorf("error creating console: %w", err)
		}
		console = ui
	}

	app, err := client.NewApp(cfg, services, storages, workers.NewWorkers(changeLog), console, log)
	if err != nil {
		return nil, fmt.Errorf("init client app error: %w", err)
	}

	return &deps{cfg: cfg, app: app}, nil
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
