// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrDivergence is surfaced when the sync service reports that the local
	// replica can no longer be reconciled and has to be reset.
	ErrDivergence = errors.New("replica diverged from server")

	ErrTransientTransport = errors.New("transient transport failure")
	ErrIO                 = errors.New("replica i/o failure")

	// ErrMergeConflict is reserved. Merges overwrite every field, so no
	// conflict can currently arise.
	ErrMergeConflict = errors.New("merge conflict")

	ErrConfiguration = errors.New("invalid sync configuration")

	ErrNoActiveReplica = errors.New("no active replica")
	ErrSessionClosed   = errors.New("session is closed")
	ErrDownloadFailed  = errors.New("initial download failed")
	ErrLoginOnServer   = errors.New("error during login on server")

	ErrInvalidSeedCount = errors.New("seed count must be positive")
)
