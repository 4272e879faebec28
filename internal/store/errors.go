// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordExists is returned by an insert-mode Create when a record with
	// the same id is already stored.
	ErrRecordExists = errors.New("record already exists")

	// ErrRecordNotFound is returned when a queried record does not exist.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrStoreClosed is returned by every operation on a closed replica.
	ErrStoreClosed = errors.New("replica store is closed")

	// ErrBackupIO is returned (wrapped) by every failed backup file
	// operation: rename, stat or removal.
	ErrBackupIO = errors.New("backup file operation failed")

	// ErrReadOnly is returned by write operations on a replica opened
	// read-only.
	ErrReadOnly = errors.New("replica is read-only")
)

// Low-level database operation errors. These are returned (or wrapped) by
// store methods when a SQL-level operation fails.
var (
	// ErrOpeningReplica is returned when the replica file cannot be opened.
	ErrOpeningReplica = errors.New("failed to open replica")

	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning record rows fails.
	ErrScanningRows = errors.New("failed to scan record rows")
)
