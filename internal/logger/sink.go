// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"sync"
)

// Sink receives formatted, timestamped log lines. It is the only contract
// between the client core and whatever displays or stores its log.
type Sink interface {
	Write(line string)
}

// SinkFunc adapts a plain function to [Sink].
type SinkFunc func(line string)

// Write implements [Sink].
func (f SinkFunc) Write(line string) {
	f(line)
}

// sinkWriter adapts a [Sink] to io.Writer for zerolog.ConsoleWriter, which
// writes one complete entry per Write call.
type sinkWriter struct {
	sink Sink
}

func (w *sinkWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.sink.Write(string(line))
	}
	return len(p), nil
}

// RingSink keeps the last N lines in memory and optionally notifies a
// subscriber channel on every write. The console reads from it.
type RingSink struct {
	mu     sync.Mutex
	lines  []string
	size   int
	notify chan struct{}
}

// NewRingSink returns a [RingSink] retaining at most size lines.
func NewRingSink(size int) *RingSink {
	if size <= 0 {
		size = 500
	}
	return &RingSink{
		size:   size,
		lines:  make([]string, 0, size),
		notify: make(chan struct{}, 1),
	}
}

// Write implements [Sink].
func (r *RingSink) Write(line string) {
	r.mu.Lock()
	if len(r.lines) == r.size {
		copy(r.lines, r.lines[1:])
		r.lines = r.lines[:r.size-1]
	}
	r.lines = append(r.lines, line)
	r.mu.Unlock()

	select {
	case r.notify <- struct{}{}:
	default:
	}
}

// Lines returns a copy of the retained lines, oldest first.
func (r *RingSink) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Updated is signalled (coalesced) after each Write.
func (r *RingSink) Updated() <-chan struct{} {
	return r.notify
}
