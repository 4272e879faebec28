// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"sync"

	"github.com/MKhiriev/replica-keeper/models"
)

// ProgressFeed is a service.ProgressReporter that hands the latest progress
// event to the console. Bursts are coalesced: the console only ever renders
// the newest event.
type ProgressFeed struct {
	mu     sync.Mutex
	latest models.ProgressEvent
	notify chan struct{}
}

func NewProgressFeed() *ProgressFeed {
	return &ProgressFeed{notify: make(chan struct{}, 1)}
}

func (f *ProgressFeed) Report(event models.ProgressEvent) {
	f.mu.Lock()
	f.latest = event
	f.mu.Unlock()

	select {
	case f.notify <- struct{}{}:
	default:
	}
}

// Latest returns the most recently reported event.
func (f *ProgressFeed) Latest() models.ProgressEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest
}

func (f *ProgressFeed) Updated() <-chan struct{} {
	return f.notify
}
