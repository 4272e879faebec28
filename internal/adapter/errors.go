// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/replica-keeper/models"
)

// clientResetCode is the error code the sync service uses for a diverged
// replica.
const clientResetCode = "client_reset"

var (
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("client unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrClientReset   = errors.New("client reset required")
	ErrServer        = errors.New("sync service unavailable")
	ErrTransport     = errors.New("transport failure")
	ErrUnexpected    = errors.New("unexpected response")
	ErrMissingToken  = errors.New("missing access token")
	ErrInvalidConfig = errors.New("invalid adapter configuration")
)

// SyncError is returned by every failed [SyncAdapter] call.
type SyncError struct {
	Kind models.SyncErrorKind

	// StatusCode is the HTTP status, zero for transport failures.
	StatusCode int

	// Code and Message come from the service's JSON error body.
	Code    string
	Message string

	// Token is the divergence token of a client reset.
	Token string

	// Err is one of the package sentinels, possibly wrapping the cause.
	Err error
}

// Error implements error.
func (e *SyncError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sync %s (http %d): %s: %v", e.Kind, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("sync %s: %v", e.Kind, e.Err)
}

// Unwrap returns the sentinel (and cause) behind the error.
func (e *SyncError) Unwrap() error {
	return e.Err
}
