// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/replica-keeper/models"
)

const recordsTable = "records"

var recordColumns = []string{"id", "partition", "double_value", "long_int", "medium_int"}

// upsertSuffix replaces every field of an existing record.
const upsertSuffix = `ON CONFLICT(id) DO UPDATE SET
		partition    = excluded.partition,
		double_value = excluded.double_value,
		long_int     = excluded.long_int,
		medium_int   = excluded.medium_int`

const (
	pageCountQuery     = `PRAGMA page_count;`
	freelistCountQuery = `PRAGMA freelist_count;`
	vacuumQuery        = `VACUUM;`
)

func buildSelectAllRecordsQuery() (string, []any, error) {
	return sq.Select(recordColumns...).
		From(recordsTable).
		OrderBy("id").
		ToSql()
}

func buildSelectRecordQuery(id string) (string, []any, error) {
	return sq.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildCountRecordsQuery() (string, []any, error) {
	return sq.Select("COUNT(*)").
		From(recordsTable).
		ToSql()
}

func buildSelectExistingIDsQuery(ids []string) (string, []any, error) {
	return sq.Select("id").
		From(recordsTable).
		Where(sq.Eq{"id": ids}).
		ToSql()
}

func buildInsertRecordQuery(mode models.CreateMode, r models.Record) (string, []any, error) {
	q := sq.Insert(recordsTable).
		Columns(recordColumns...).
		Values(r.ID, r.Partition, r.DoubleValue, r.LongInt, r.MediumInt)
	if mode == models.CreateUpsert {
		q = q.Suffix(upsertSuffix)
	}
	return q.ToSql()
}

func buildDeleteRecordsQuery(ids []string) (string, []any, error) {
	return sq.Delete(recordsTable).
		Where(sq.Eq{"id": ids}).
		ToSql()
}
