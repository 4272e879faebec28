// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SessionState is the lifecycle state of a synchronization session.
//
// A session moves opening → active → {errored | closed}. Errored is terminal
// for that session instance: a new session must be created to resume.
type SessionState int

const (
	SessionOpening SessionState = iota
	SessionActive
	SessionErrored
	SessionClosed
)

// String implements fmt.Stringer.
func (s SessionState) String() string {
	switch s {
	case SessionOpening:
		return "opening"
	case SessionActive:
		return "active"
	case SessionErrored:
		return "errored"
	case SessionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ProgressSample is one download progress report of a session.
// Transferred and Total are monotonically non-decreasing for one session.
type ProgressSample struct {
	Transferred uint64 `json:"transferred"`
	Total       uint64 `json:"total"`

	// Complete is set by transports that signal completion explicitly.
	Complete bool `json:"complete,omitempty"`
}

// IsComplete reports whether the sample marks the end of the transfer.
func (p ProgressSample) IsComplete() bool {
	return p.Complete || (p.Total > 0 && p.Transferred >= p.Total)
}

// ProgressEvent is what the progress tracker emits after de-duplication.
type ProgressEvent struct {
	Sample ProgressSample

	// Finished is set exactly once per armed session, on completion.
	Finished bool
}

// ChangeSet is one change notification of an observed record collection.
// Identifiers are record IDs.
type ChangeSet struct {
	// Initial marks the first notification, delivered on subscription.
	Initial bool

	// Count is the collection size after the change.
	Count int

	Deletions     []string
	Insertions    []string
	Modifications []string
}

// Empty reports whether the change set carries no changes.
func (c ChangeSet) Empty() bool {
	return !c.Initial && len(c.Deletions) == 0 && len(c.Insertions) == 0 && len(c.Modifications) == 0
}
