// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the replica client runtime.
//
// It logs in, opens the partition replica (restoring a pending backup when
// one was left behind), and keeps the background workers and the optional
// console running until the process is asked to stop. One-shot maintenance
// actions (restore, clean, seed) reuse the same wiring.
package client
