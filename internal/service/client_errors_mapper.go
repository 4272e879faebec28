// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/replica-keeper/internal/adapter"
	"github.com/MKhiriev/replica-keeper/models"
)

// mapAdapterError translates an adapter failure into a service error that
// wraps the matching sentinel.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var syncErr *adapter.SyncError
	if !errors.As(err, &syncErr) {
		return err
	}

	switch syncErr.Kind {
	case models.SyncErrorClientReset:
		return fmt.Errorf("%w: %w", ErrDivergence, err)
	case models.SyncErrorTransient:
		return fmt.Errorf("%w: %w", ErrTransientTransport, err)
	case models.SyncErrorConfiguration:
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return err
}

// toSessionError builds the payload delivered to a session's error sink.
func toSessionError(path string, err error) models.SessionError {
	sessionErr := models.SessionError{
		Kind:    models.SyncErrorUnknown,
		Message: err.Error(),
		Path:    path,
		Err:     err,
	}

	var syncErr *adapter.SyncError
	if errors.As(err, &syncErr) {
		sessionErr.Kind = syncErr.Kind
		sessionErr.Token = syncErr.Token
		if syncErr.Message != "" {
			sessionErr.Message = syncErr.Message
		}
	}

	return sessionErr
}

// isTransient tells go-retry which download failures are worth another try.
func isTransient(err error) bool {
	var syncErr *adapter.SyncError
	return errors.As(err, &syncErr) && syncErr.Kind == models.SyncErrorTransient
}
