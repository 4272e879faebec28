// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/service"
	"github.com/MKhiriev/replica-keeper/models"
)

const (
	defaultLogWidth  = 80
	defaultLogHeight = 12
	maxBarWidth      = 60
	statusTTL        = 3 * time.Second
)

type recordSeeder interface {
	Seed(ctx context.Context, count int) (models.ChangeSet, error)
}

type replicaSource interface {
	Current() *service.Replica
}

type resetStateSource interface {
	State() service.ResetState
}

type consoleModel struct {
	ctx       context.Context
	seeder    recordSeeder
	replicas  replicaSource
	resets    resetStateSource
	sink      *logger.RingSink
	feed      *ProgressFeed
	info      models.AppBuildInfo
	seedCount int

	bar     progress.Model
	logView viewport.Model

	event    models.ProgressEvent
	seeding  bool
	showInfo bool
	status   string
	errMsg   string
}

func newConsoleModel(ctx context.Context, seeder recordSeeder, replicas replicaSource, resets resetStateSource,
	sink *logger.RingSink, feed *ProgressFeed, info models.AppBuildInfo, seedCount int) consoleModel {
	return consoleModel{
		ctx:       ctx,
		seeder:    seeder,
		replicas:  replicas,
		resets:    resets,
		sink:      sink,
		feed:      feed,
		info:      info,
		seedCount: seedCount,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
		logView:   viewport.New(defaultLogWidth, defaultLogHeight),
	}
}

func (m consoleModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return logUpdatedMsg{} },
		m.waitForProgress(),
	)
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.logView.Width = max(msg.Width-8, 20)
		m.logView.Height = max(msg.Height-16, 3)
		m.bar.Width = min(max(msg.Width-8, 10), maxBarWidth)
		return m, nil
	case logUpdatedMsg:
		m.refreshLog()
		return m, m.waitForLog()
	case progressMsg:
		m.event = msg.event
		return m, m.waitForProgress()
	case seedDoneMsg:
		m.seeding = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("Added %d objects", len(msg.changes.Insertions))
		return m, clearStatusAfter(statusTTL)
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Copy failed: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("Copied %d log lines", msg.lines)
		return m, clearStatusAfter(statusTTL)
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m consoleModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) {
		return m, tea.Quit
	}

	if m.showInfo {
		if key.Matches(msg, keys.esc) {
			m.showInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.seed):
		if m.seeding {
			return m, nil
		}
		m.seeding = true
		m.status = fmt.Sprintf("Adding %d objects...", m.seedCount)
		m.errMsg = ""
		return m, m.cmdSeed()
	case key.Matches(msg, keys.copyLog):
		return m, m.cmdCopyLog()
	case key.Matches(msg, keys.info):
		m.showInfo = true
	case key.Matches(msg, keys.up):
		m.logView.LineUp(1)
	case key.Matches(msg, keys.down):
		m.logView.LineDown(1)
	case key.Matches(msg, keys.pageUp):
		m.logView.HalfViewUp()
	case key.Matches(msg, keys.pageDown):
		m.logView.HalfViewDown()
	}
	return m, nil
}

func (m consoleModel) View() string {
	if m.showInfo {
		return appStyle.Render(renderBuildInfoWindow(m.info))
	}

	var b strings.Builder
	b.WriteString(m.replicaLine())
	b.WriteString("\n")
	b.WriteString("Reset: ")
	b.WriteString(m.resets.State().String())
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(progressPercent(m.event)))
	b.WriteString("\n")
	b.WriteString(progressText(m.event))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(logBoxStyle.Render(m.logView.View()))

	hotKeys := fmt.Sprintf("a: add %d objects  c: copy log  i: about  q: quit", m.seedCount)
	return appStyle.Render(renderPage("REPLICA KEEPER", b.String(), hotKeys))
}

func (m consoleModel) replicaLine() string {
	replica := m.replicas.Current()
	if replica == nil {
		return "Replica: -"
	}
	return fmt.Sprintf("Replica: %s (generation %d)\n  %s",
		replica.Partition, replica.Generation, fitText(replica.Path, m.logView.Width))
}

func (m *consoleModel) refreshLog() {
	atBottom := m.logView.AtBottom()
	m.logView.SetContent(strings.Join(m.sink.Lines(), "\n"))
	if atBottom {
		m.logView.GotoBottom()
	}
}

func (m consoleModel) waitForLog() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.sink.Updated():
			return logUpdatedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m consoleModel) waitForProgress() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-m.feed.Updated():
			return progressMsg{event: m.feed.Latest()}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m consoleModel) cmdSeed() tea.Cmd {
	count := m.seedCount
	return func() tea.Msg {
		changes, err := m.seeder.Seed(m.ctx, count)
		return seedDoneMsg{changes: changes, err: err}
	}
}

func (m consoleModel) cmdCopyLog() tea.Cmd {
	return func() tea.Msg {
		lines := m.sink.Lines()
		err := clipboard.WriteAll(strings.Join(lines, "\n"))
		return copiedMsg{lines: len(lines), err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func progressPercent(event models.ProgressEvent) float64 {
	s := event.Sample
	if event.Finished || s.IsComplete() {
		return 1
	}
	if s.Total == 0 {
		return 0
	}
	return min(float64(s.Transferred)/float64(s.Total), 1)
}

func progressText(event models.ProgressEvent) string {
	s := event.Sample
	switch {
	case event.Finished:
		return fmt.Sprintf("Download complete, %s objects", humanize.Comma(int64(s.Transferred)))
	case s.Total == 0 && s.Transferred == 0:
		return "Waiting for download"
	default:
		return fmt.Sprintf("Downloaded %s of %s", humanize.Comma(int64(s.Transferred)), humanize.Comma(int64(s.Total)))
	}
}
