// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/models"
)

// recordingReporter collects every emitted event.
type recordingReporter struct {
	mu     sync.Mutex
	events []models.ProgressEvent
}

func (r *recordingReporter) Report(event models.ProgressEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *recordingReporter) finished() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Finished {
			n++
		}
	}
	return n
}

func sample(transferred, total uint64) models.ProgressSample {
	return models.ProgressSample{Transferred: transferred, Total: total}
}

// ── OnProgress ───────────────────────────────────────────────────────────────

func TestProgressTracker_SequenceEmitsTwoEvents(t *testing.T) {
	reporter := &recordingReporter{}
	tracker := NewProgressTracker(reporter)
	tracker.Arm()

	for _, s := range []models.ProgressSample{
		sample(10, 100),
		sample(10, 100),
		sample(50, 100),
		sample(100, 100),
		sample(100, 100),
	} {
		tracker.OnProgress(s)
	}

	require.Len(t, reporter.events, 2)
	assert.Equal(t, sample(50, 100), reporter.events[0].Sample)
	assert.False(t, reporter.events[0].Finished)
	assert.True(t, reporter.events[1].Finished)
}

func TestProgressTracker_FirstSampleCompleteFinishes(t *testing.T) {
	reporter := &recordingReporter{}
	tracker := NewProgressTracker(reporter)
	tracker.Arm()

	tracker.OnProgress(sample(7, 7))
	tracker.OnProgress(sample(8, 8))

	require.Len(t, reporter.events, 1)
	assert.True(t, reporter.events[0].Finished)
}

func TestProgressTracker_NotArmedIgnoresSamples(t *testing.T) {
	reporter := &recordingReporter{}
	tracker := NewProgressTracker(reporter)

	tracker.OnProgress(sample(1, 10))
	tracker.OnProgress(sample(10, 10))

	assert.Empty(t, reporter.events)
}

func TestProgressTracker_RearmAfterFinish(t *testing.T) {
	reporter := &recordingReporter{}
	tracker := NewProgressTracker(reporter)

	tracker.Arm()
	tracker.OnProgress(sample(0, 10))
	tracker.OnProgress(sample(10, 10))
	require.Len(t, reporter.events, 1)

	tracker.OnProgress(sample(20, 20))
	require.Len(t, reporter.events, 1, "finished tracker must ignore samples until re-armed")

	tracker.Arm()
	tracker.OnProgress(sample(5, 20))
	tracker.OnProgress(sample(15, 20))
	tracker.OnProgress(sample(20, 20))

	require.Len(t, reporter.events, 3)
	assert.Equal(t, uint64(15), reporter.events[1].Sample.Transferred)
	assert.True(t, reporter.events[2].Finished)
}

func TestProgressTracker_ExplicitCompleteFlag(t *testing.T) {
	reporter := &recordingReporter{}
	tracker := NewProgressTracker(reporter)
	tracker.Arm()

	tracker.OnProgress(sample(0, 0))
	tracker.OnProgress(models.ProgressSample{Complete: true})

	require.Len(t, reporter.events, 1)
	assert.True(t, reporter.events[0].Finished)
}

func TestProgressTracker_BackwardsSampleIgnored(t *testing.T) {
	reporter := &recordingReporter{}
	tracker := NewProgressTracker(reporter)
	tracker.Arm()

	tracker.OnProgress(sample(40, 100))
	tracker.OnProgress(sample(30, 100))
	tracker.OnProgress(sample(60, 100))

	require.Len(t, reporter.events, 1)
	assert.Equal(t, uint64(60), reporter.events[0].Sample.Transferred)
}

// ── reporter ─────────────────────────────────────────────────────────────────

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "Transferred 1,234 of 5,000 (24%)", formatProgress(sample(1234, 5000)))
	assert.Equal(t, "Transferred 0 of 0", formatProgress(sample(0, 0)))
}

func TestLogProgressReporter_Lines(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}
	reporter := NewLogProgressReporter(log)

	reporter.Report(models.ProgressEvent{Sample: sample(50, 100)})
	reporter.Report(models.ProgressEvent{Sample: sample(100, 100), Finished: true})

	assert.Contains(t, buf.String(), "Transferred 50 of 100 (50%)")
	assert.Contains(t, buf.String(), "Transfer finished")
}

func TestProgressReporters_FanOut(t *testing.T) {
	a, b := &recordingReporter{}, &recordingReporter{}
	ProgressReporters{a, b}.Report(models.ProgressEvent{Finished: true})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}
