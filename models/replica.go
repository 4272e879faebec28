// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ReplicaConfig describes which replica a session provider has to open.
type ReplicaConfig struct {
	// User is the authenticated owner of the replica.
	User User

	// Partition is the synchronization scope value.
	Partition string

	// Path is the canonical on-disk location of the replica file.
	Path string

	// Generation counts how many times the replica was recreated after a
	// client reset. The first replica for a user+partition has generation 0.
	Generation int
}

// BackupRef points at a frozen copy of a replica file that was moved aside
// when divergence was detected.
type BackupRef struct {
	// SourcePath is the canonical replica path the backup was taken from.
	SourcePath string `json:"source_path"`

	// Path is the location of the backup file (SourcePath + suffix).
	Path string `json:"path"`

	// CreatedAt is when the backup was taken, or the file modification time
	// for a backup discovered on disk.
	CreatedAt time.Time `json:"created_at"`
}

// MergeReport summarises a successful merge of a backup into a live replica.
type MergeReport struct {
	// RecordsMerged is the number of distinct records applied.
	RecordsMerged int `json:"records_merged"`

	// Inserted counts records that did not exist in the live replica.
	Inserted int `json:"inserted"`

	// Updated counts records whose fields were overwritten.
	Updated int `json:"updated"`

	// BackupPath is the consumed (and deleted) backup file.
	BackupPath string `json:"backup_path"`
}

// ResetMode selects how a client reset treats unsynchronized local writes.
type ResetMode string

const (
	// ResetModeManual backs the diverged replica up and merges its records
	// into the freshly downloaded one.
	ResetModeManual ResetMode = "manual"

	// ResetModeDiscardLocal drops the diverged replica and keeps only what
	// the server sends.
	ResetModeDiscardLocal ResetMode = "discard_local"
)

// Valid reports whether m is a known reset mode.
func (m ResetMode) Valid() bool {
	return m == ResetModeManual || m == ResetModeDiscardLocal
}
