// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Record is the single keyed entity kept in a replica.
//
// ID is generated on the client (UUIDv7) and never reassigned: two records
// carrying the same ID in different replicas are the same logical entity,
// whatever their field values are.
type Record struct {
	// ID is the immutable primary key of the record.
	ID string `json:"_id" db:"id"`

	// Partition names the synchronization scope the record belongs to.
	Partition string `json:"_partition" db:"partition"`

	// DoubleValue is an optional floating point value.
	DoubleValue *float64 `json:"doubleValue,omitempty" db:"double_value"`

	// LongInt is an optional wide integer value.
	LongInt *int64 `json:"longInt,omitempty" db:"long_int"`

	// MediumInt is an optional small integer value.
	MediumInt *int64 `json:"mediumInt,omitempty" db:"medium_int"`
}

// TableName returns the name of the database table
// associated with the Record model.
func (r Record) TableName() string {
	return "records"
}

// CreateMode selects how a record is written into a replica store.
type CreateMode int

const (
	// CreateInsert fails when a record with the same ID already exists.
	CreateInsert CreateMode = iota

	// CreateUpsert replaces every field of an existing record with the same
	// ID, or inserts the record unchanged when it is absent.
	CreateUpsert
)

// String implements fmt.Stringer.
func (m CreateMode) String() string {
	switch m {
	case CreateInsert:
		return "insert"
	case CreateUpsert:
		return "upsert"
	default:
		return "unknown"
	}
}
