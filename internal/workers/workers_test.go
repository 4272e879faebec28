// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount atomic.Int32
	err      error
}

func (m *mockWorker) Run(ctx context.Context) error {
	m.runCount.Add(1)
	if m.err != nil {
		return m.err
	}
	<-ctx.Done()
	return nil
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount.Load() != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount.Load())
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should return immediately on empty workers list
	if err := ws.Run(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	if err := ws.Run(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestWorkers_Run_FailureCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	failing := &mockWorker{err: boom}
	waiting := &mockWorker{}

	err := NewWorkers(failing, waiting).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if waiting.runCount.Load() != 1 {
		t.Errorf("expected waiting worker to run once, got %d", waiting.runCount.Load())
	}
}

func TestWorkers_Run_EachWorkerGetsContext(t *testing.T) {
	var mu sync.Mutex
	seen := 0

	w := workerFunc(func(ctx context.Context) error {
		mu.Lock()
		seen++
		mu.Unlock()
		<-ctx.Done()
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := NewWorkers(w, w).Run(ctx); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if seen != 2 {
		t.Errorf("expected 2 runs, got %d", seen)
	}
}

// workerFunc adapts a function to the Worker interface.
type workerFunc func(ctx context.Context) error

func (f workerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
