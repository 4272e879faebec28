// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/internal/service"
	"github.com/MKhiriev/replica-keeper/models"
)

type stubSeeder struct {
	counts []int
	err    error
}

func (s *stubSeeder) Seed(_ context.Context, count int) (models.ChangeSet, error) {
	s.counts = append(s.counts, count)
	if s.err != nil {
		return models.ChangeSet{}, s.err
	}
	ids := make([]string, count)
	for i := range ids {
		ids[i] = "id"
	}
	return models.ChangeSet{Insertions: ids}, nil
}

type stubReplicas struct{ replica *service.Replica }

func (s stubReplicas) Current() *service.Replica { return s.replica }

type stubResets struct{ state service.ResetState }

func (s stubResets) State() service.ResetState { return s.state }

func newTestConsole(t *testing.T, seeder *stubSeeder) (consoleModel, *logger.RingSink, *ProgressFeed) {
	t.Helper()
	sink := logger.NewRingSink(10)
	feed := NewProgressFeed()
	replica := &service.Replica{Partition: "p1", Path: "/tmp/app/user-1/p1.realm", Generation: 2}

	m := newConsoleModel(context.Background(), seeder, stubReplicas{replica}, stubResets{service.ResetIdle},
		sink, feed, models.NewAppBuildInfo("1.0.0", "2026-01-01", "abc123"), 500)
	return m, sink, feed
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func update(t *testing.T, m consoleModel, msg tea.Msg) (consoleModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(consoleModel)
	require.True(t, ok)
	return out, cmd
}

// ── view ─────────────────────────────────────────────────────────────────────

func TestConsole_View_ShowsReplicaAndResetState(t *testing.T) {
	m, _, _ := newTestConsole(t, &stubSeeder{})

	view := m.View()

	assert.Contains(t, view, "REPLICA KEEPER")
	assert.Contains(t, view, "Replica: p1 (generation 2)")
	assert.Contains(t, view, "Reset: idle")
	assert.Contains(t, view, "Waiting for download")
	assert.Contains(t, view, "a: add 500 objects")
}

func TestConsole_View_NoReplica(t *testing.T) {
	m := newConsoleModel(context.Background(), &stubSeeder{}, stubReplicas{}, stubResets{service.ResetReopening},
		logger.NewRingSink(1), nil, models.AppBuildInfo{}, 10)

	view := m.View()
	assert.Contains(t, view, "Replica: -")
	assert.Contains(t, view, "Reset: reopening")
}

func TestConsole_LogUpdate_RendersSinkLines(t *testing.T) {
	m, sink, _ := newTestConsole(t, &stubSeeder{})
	sink.Write("Number of objects obtained: 42")

	m, cmd := update(t, m, logUpdatedMsg{})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Number of objects obtained: 42")
}

func TestConsole_WaitForLog_FiresOnWrite(t *testing.T) {
	m, sink, _ := newTestConsole(t, &stubSeeder{})
	sink.Write("line")

	msg := m.waitForLog()()
	assert.IsType(t, logUpdatedMsg{}, msg)
}

func TestConsole_WaitForLog_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := newConsoleModel(ctx, &stubSeeder{}, stubReplicas{}, stubResets{}, logger.NewRingSink(1), nil, models.AppBuildInfo{}, 1)

	assert.Nil(t, m.waitForLog()())
	assert.Nil(t, m.waitForProgress())
}

// ── progress ─────────────────────────────────────────────────────────────────

func TestConsole_Progress(t *testing.T) {
	m, _, feed := newTestConsole(t, &stubSeeder{})

	feed.Report(models.ProgressEvent{Sample: models.ProgressSample{Transferred: 1234, Total: 5000}})
	msg := m.waitForProgress()()
	require.IsType(t, progressMsg{}, msg)

	m, cmd := update(t, m, msg)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Downloaded 1,234 of 5,000")

	m, _ = update(t, m, progressMsg{event: models.ProgressEvent{
		Sample:   models.ProgressSample{Transferred: 5000, Total: 5000, Complete: true},
		Finished: true,
	}})
	assert.Contains(t, m.View(), "Download complete, 5,000 objects")
}

func TestProgressFeed_CoalescesToLatest(t *testing.T) {
	feed := NewProgressFeed()
	feed.Report(models.ProgressEvent{Sample: models.ProgressSample{Transferred: 1, Total: 10}})
	feed.Report(models.ProgressEvent{Sample: models.ProgressSample{Transferred: 7, Total: 10}})

	<-feed.Updated()
	assert.Equal(t, uint64(7), feed.Latest().Sample.Transferred)

	select {
	case <-feed.Updated():
		t.Fatal("notifications must be coalesced")
	default:
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name  string
		event models.ProgressEvent
		want  float64
	}{
		{name: "nothing yet", event: models.ProgressEvent{}, want: 0},
		{name: "half", event: models.ProgressEvent{Sample: models.ProgressSample{Transferred: 5, Total: 10}}, want: 0.5},
		{name: "explicit complete", event: models.ProgressEvent{Sample: models.ProgressSample{Transferred: 3, Total: 10, Complete: true}}, want: 1},
		{name: "finished", event: models.ProgressEvent{Finished: true}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, progressPercent(tt.event), 0.0001)
		})
	}
}

// ── keys ─────────────────────────────────────────────────────────────────────

func TestConsole_SeedKey(t *testing.T) {
	seeder := &stubSeeder{}
	m, _, _ := newTestConsole(t, seeder)

	m, cmd := update(t, m, runeKey("a"))
	require.NotNil(t, cmd)
	assert.True(t, m.seeding)
	assert.Contains(t, m.View(), "Adding 500 objects...")

	// a second press while seeding is ignored
	m, again := update(t, m, runeKey("a"))
	assert.Nil(t, again)

	m, _ = update(t, m, cmd())
	assert.False(t, m.seeding)
	assert.Equal(t, []int{500}, seeder.counts)
	assert.Contains(t, m.View(), "Added 500 objects")
}

func TestConsole_SeedKey_Error(t *testing.T) {
	m, _, _ := newTestConsole(t, &stubSeeder{err: service.ErrNoActiveReplica})

	m, cmd := update(t, m, runeKey("a"))
	m, _ = update(t, m, cmd())

	assert.Contains(t, m.View(), "No replica is open")
}

func TestConsole_CopyResult(t *testing.T) {
	m, _, _ := newTestConsole(t, &stubSeeder{})

	m, cmd := update(t, m, copiedMsg{lines: 3})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Copied 3 log lines")

	m, _ = update(t, m, clearStatusMsg{})
	assert.NotContains(t, m.View(), "Copied 3 log lines")

	m, _ = update(t, m, copiedMsg{err: errors.New("no clipboard")})
	assert.Contains(t, m.View(), "Copy failed: no clipboard")
}

func TestConsole_InfoScreen(t *testing.T) {
	m, _, _ := newTestConsole(t, &stubSeeder{})

	m, _ = update(t, m, runeKey("i"))
	view := m.View()
	assert.Contains(t, view, "Version: 1.0.0")
	assert.Contains(t, view, "Commit: abc123")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, m.View(), "REPLICA KEEPER")
}

func TestConsole_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}} {
		m, _, _ := newTestConsole(t, &stubSeeder{})
		_, cmd := update(t, m, msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

func TestHumanizeError(t *testing.T) {
	assert.Equal(t, "", humanizeError(nil))
	assert.Equal(t, "Network is down or the sync server is unreachable",
		humanizeError(errors.New("dial tcp 127.0.0.1:8080: connection refused")))
	assert.Equal(t, "boom", humanizeError(errors.New("boom")))
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "abc", fitText("abc", 5))
	assert.Equal(t, "ab...", fitText("abcdefgh", 5))
	assert.Equal(t, "ab", fitText("abcdefgh", 2))
}

func TestNew_RequiresServices(t *testing.T) {
	_, err := New(nil, logger.NewRingSink(1), nil, models.AppBuildInfo{}, 1, logger.Nop())
	assert.Error(t, err)
}
