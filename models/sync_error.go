// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// SyncErrorKind is the closed set of error kinds a session can deliver.
type SyncErrorKind int

const (
	// SyncErrorUnknown is anything the transport could not classify.
	SyncErrorUnknown SyncErrorKind = iota

	// SyncErrorClientReset means the local replica diverged irrecoverably
	// from the server and has to be reset.
	SyncErrorClientReset

	// SyncErrorTransient is a transport failure the session retries itself.
	SyncErrorTransient

	// SyncErrorConfiguration is a bad credential or partition.
	SyncErrorConfiguration
)

// String implements fmt.Stringer.
func (k SyncErrorKind) String() string {
	switch k {
	case SyncErrorClientReset:
		return "client_reset"
	case SyncErrorTransient:
		return "transient"
	case SyncErrorConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// SessionError is the payload a session hands to its registered error sink.
type SessionError struct {
	Kind SyncErrorKind

	// Message is the human readable description from the transport.
	Message string

	// Token is the divergence token required to acknowledge a client reset.
	// Empty for every other kind.
	Token string

	// Path is the replica file the error refers to.
	Path string

	// Err is the underlying error, if any.
	Err error
}

// Error implements error.
func (e SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e SessionError) Unwrap() error {
	return e.Err
}
