// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/models"
)

// ProgressTracker turns raw transfer samples into a short sequence of
// progress events. It has to be armed for every new session; a disarmed
// tracker ignores all samples.
type ProgressTracker struct {
	reporter ProgressReporter

	mu          sync.Mutex
	armed       bool
	baselineSet bool
	lastSeen    uint64
}

func NewProgressTracker(reporter ProgressReporter) *ProgressTracker {
	return &ProgressTracker{reporter: reporter}
}

// Arm prepares the tracker for a new session.
func (t *ProgressTracker) Arm() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.armed = true
	t.baselineSet = false
	t.lastSeen = 0
}

// OnProgress handles one sample. The first sample after Arm only sets the
// baseline unless it is already complete, so the first page of a multi-page
// download is never reported. Later samples are ignored unless
// they moved forward or carry the explicit completion flag. Completion
// emits a finished event and disarms the tracker.
func (t *ProgressTracker) OnProgress(sample models.ProgressSample) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.armed {
		return
	}

	complete := sample.IsComplete()

	if !t.baselineSet {
		t.baselineSet = true
		t.lastSeen = sample.Transferred
		if !complete {
			return
		}
	} else {
		if sample.Transferred <= t.lastSeen && !sample.Complete {
			return
		}
		t.lastSeen = sample.Transferred
	}

	if !complete {
		t.emit(models.ProgressEvent{Sample: sample})
		return
	}

	t.emit(models.ProgressEvent{Sample: sample, Finished: true})
	t.armed = false
	t.lastSeen = 0
}

func (t *ProgressTracker) emit(event models.ProgressEvent) {
	if t.reporter != nil {
		t.reporter.Report(event)
	}
}

// logProgressReporter writes progress events as log lines.
type logProgressReporter struct {
	logger *logger.Logger
}

// NewLogProgressReporter returns a [ProgressReporter] logging
// "Transferred X of Y" and "Transfer finished" lines.
func NewLogProgressReporter(logger *logger.Logger) ProgressReporter {
	return &logProgressReporter{logger: logger}
}

func (r *logProgressReporter) Report(event models.ProgressEvent) {
	if event.Finished {
		r.logger.Info().Str("func", "logProgressReporter.Report").Msg("Transfer finished")
		return
	}

	r.logger.Info().Str("func", "logProgressReporter.Report").Msg(formatProgress(event.Sample))
}

func formatProgress(sample models.ProgressSample) string {
	line := "Transferred " + humanize.Comma(int64(sample.Transferred)) + " of " + humanize.Comma(int64(sample.Total))
	if sample.Total > 0 {
		line += " (" + strconv.FormatUint(sample.Transferred*100/sample.Total, 10) + "%)"
	}
	return line
}

// ProgressReporters fans one event out to several reporters.
type ProgressReporters []ProgressReporter

func (rs ProgressReporters) Report(event models.ProgressEvent) {
	for _, r := range rs {
		r.Report(event)
	}
}
