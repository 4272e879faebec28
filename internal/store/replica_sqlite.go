// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/replica-keeper/internal/logger"
	"github.com/MKhiriev/replica-keeper/models"
)

// existingIDsChunk bounds the number of bound parameters in one IN clause.
const existingIDsChunk = 500

// ErrInvalidRecord is returned when a record without an id is written.
var ErrInvalidRecord = errors.New("record id is empty")

type sqliteReplicaStore struct {
	db       *DB
	path     string
	readOnly bool
	observer *observer
	logger   *logger.Logger

	mu     sync.RWMutex
	closed bool
}

func newSQLiteReplicaStore(db *DB, path string, readOnly bool, log *logger.Logger) *sqliteReplicaStore {
	return &sqliteReplicaStore{
		db:       db,
		path:     path,
		readOnly: readOnly,
		observer: newObserver(),
		logger:   log,
	}
}

func (s *sqliteReplicaStore) Path() string {
	return s.path
}

func (s *sqliteReplicaStore) checkOpen(write bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}
	if write && s.readOnly {
		return ErrReadOnly
	}
	return nil
}

func (s *sqliteReplicaStore) Create(ctx context.Context, mode models.CreateMode, records ...models.Record) (models.ChangeSet, error) {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return models.ChangeSet{}, err
	}
	defer tx.Rollback()

	cs, err := tx.Create(ctx, mode, records...)
	if err != nil {
		return models.ChangeSet{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.ChangeSet{}, err
	}

	return cs, nil
}

func (s *sqliteReplicaStore) Get(ctx context.Context, id string) (models.Record, error) {
	log := s.logger

	if err := s.checkOpen(false); err != nil {
		return models.Record{}, err
	}

	query, args, err := buildSelectRecordQuery(id)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var r models.Record
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&r.ID, &r.Partition, &r.DoubleValue, &r.LongInt, &r.MediumInt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqliteReplicaStore.Get").
			Str("path", s.path).
			Str("id", id).
			Msg("failed to query record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return r, nil
}

func (s *sqliteReplicaStore) Objects(ctx context.Context) ([]models.Record, error) {
	log := s.logger

	if err := s.checkOpen(false); err != nil {
		return nil, err
	}

	query, args, err := buildSelectAllRecordsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteReplicaStore.Objects").
			Str("path", s.path).
			Msg("failed to execute query for getting all records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var r models.Record
		if scanErr := rows.Scan(&r.ID, &r.Partition, &r.DoubleValue, &r.LongInt, &r.MediumInt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "sqliteReplicaStore.Objects").
				Str("path", s.path).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, r)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "sqliteReplicaStore.Objects").
			Str("path", s.path).
			Msg("error iterating over record rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

func (s *sqliteReplicaStore) Count(ctx context.Context) (int, error) {
	if err := s.checkOpen(false); err != nil {
		return 0, err
	}

	query, args, err := buildCountRecordsQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (s *sqliteReplicaStore) Delete(ctx context.Context, ids ...string) (int, error) {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	deleted, err := tx.Delete(ctx, ids...)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	return deleted, nil
}

func (s *sqliteReplicaStore) BeginTx(ctx context.Context) (ReplicaTx, error) {
	log := s.logger

	if err := s.checkOpen(true); err != nil {
		return nil, err
	}

	var tx *sql.Tx
	err := s.db.withRetry(ctx, func(ctx context.Context) error {
		var beginErr error
		tx, beginErr = s.db.BeginTx(ctx, nil)
		return beginErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "sqliteReplicaStore.BeginTx").
			Str("path", s.path).
			Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	return &sqliteReplicaTx{tx: tx, store: s}, nil
}

func (s *sqliteReplicaStore) Observe() *Subscription {
	initial := models.ChangeSet{}
	if count, err := s.Count(context.Background()); err == nil {
		initial.Count = count
	}

	sub := s.observer.subscribe(initial)

	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		sub.Invalidate()
	}

	return sub
}

func (s *sqliteReplicaStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.observer.closeAll()

	if err := s.db.Close(); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteReplicaStore.Close").
			Str("path", s.path).
			Msg("failed to close replica")
		return fmt.Errorf("close replica %s: %w", s.path, err)
	}

	return nil
}

// publish sends a committed change set to the subscriptions, stamped with
// the current record count.
func (s *sqliteReplicaStore) publish(cs models.ChangeSet) {
	if cs.Empty() {
		return
	}

	if count, err := s.Count(context.Background()); err == nil {
		cs.Count = count
	}

	if dropped := s.observer.publish(cs); dropped > 0 {
		s.logger.Debug().
			Str("func", "sqliteReplicaStore.publish").
			Str("path", s.path).
			Int("dropped", dropped).
			Msg("slow subscriptions missed a change set")
	}
}

type changeKind int

const (
	changeNone changeKind = iota
	changeInserted
	changeModified
	changeDeleted
)

type sqliteReplicaTx struct {
	tx    *sql.Tx
	store *sqliteReplicaStore
	kinds map[string]changeKind
	order []string
}

func (t *sqliteReplicaTx) Create(ctx context.Context, mode models.CreateMode, records ...models.Record) (models.ChangeSet, error) {
	log := t.store.logger

	var cs models.ChangeSet
	if len(records) == 0 {
		return cs, nil
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			return models.ChangeSet{}, ErrInvalidRecord
		}
		ids = append(ids, r.ID)
	}

	existing, err := t.existingIDs(ctx, ids)
	if err != nil {
		return models.ChangeSet{}, err
	}

	for idx, r := range records {
		query, args, buildErr := buildInsertRecordQuery(mode, r)
		if buildErr != nil {
			return models.ChangeSet{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, execErr := t.tx.ExecContext(ctx, query, args...); execErr != nil {
			if isUniqueViolation(execErr) {
				return models.ChangeSet{}, fmt.Errorf("%w: id=%s", ErrRecordExists, r.ID)
			}
			log.Err(execErr).
				Str("func", "sqliteReplicaTx.Create").
				Str("path", t.store.path).
				Int("iteration", idx+1).
				Int("total", len(records)).
				Str("id", r.ID).
				Msg("failed to write record in transaction")
			return models.ChangeSet{}, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		if _, ok := existing[r.ID]; ok {
			cs.Modifications = append(cs.Modifications, r.ID)
		} else {
			cs.Insertions = append(cs.Insertions, r.ID)
			existing[r.ID] = struct{}{}
		}
	}

	t.track(cs)

	return cs, nil
}

func (t *sqliteReplicaTx) Delete(ctx context.Context, ids ...string) (int, error) {
	log := t.store.logger

	if len(ids) == 0 {
		return 0, nil
	}

	existing, err := t.existingIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	for start := 0; start < len(ids); start += existingIDsChunk {
		chunk := ids[start:min(start+existingIDsChunk, len(ids))]

		query, args, buildErr := buildDeleteRecordsQuery(chunk)
		if buildErr != nil {
			return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, execErr := t.tx.ExecContext(ctx, query, args...); execErr != nil {
			log.Err(execErr).
				Str("func", "sqliteReplicaTx.Delete").
				Str("path", t.store.path).
				Int("ids_count", len(chunk)).
				Msg("failed to delete records in transaction")
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
	}

	var cs models.ChangeSet
	for _, id := range ids {
		if _, ok := existing[id]; ok {
			cs.Deletions = append(cs.Deletions, id)
			delete(existing, id)
		}
	}
	t.track(cs)

	return len(cs.Deletions), nil
}

func (t *sqliteReplicaTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		t.store.logger.Err(err).
			Str("func", "sqliteReplicaTx.Commit").
			Str("path", t.store.path).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	t.store.publish(t.changes())

	return nil
}

// Rollback aborts the transaction. Rolling back a committed transaction is
// a no-op so it can be deferred.
func (t *sqliteReplicaTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// track folds cs into the net effect of the transaction: a record inserted
// and deleted in the same transaction is not reported, a record deleted and
// written again is a modification.
func (t *sqliteReplicaTx) track(cs models.ChangeSet) {
	if t.kinds == nil {
		t.kinds = make(map[string]changeKind)
	}

	set := func(id string, k changeKind) {
		if _, ok := t.kinds[id]; !ok {
			t.order = append(t.order, id)
		}
		t.kinds[id] = k
	}

	for _, id := range cs.Insertions {
		if t.kinds[id] == changeDeleted {
			set(id, changeModified)
			continue
		}
		set(id, changeInserted)
	}
	for _, id := range cs.Modifications {
		if t.kinds[id] == changeInserted {
			continue
		}
		set(id, changeModified)
	}
	for _, id := range cs.Deletions {
		if t.kinds[id] == changeInserted {
			set(id, changeNone)
			continue
		}
		set(id, changeDeleted)
	}
}

// changes returns the net change set of the transaction.
func (t *sqliteReplicaTx) changes() models.ChangeSet {
	var cs models.ChangeSet
	for _, id := range t.order {
		switch t.kinds[id] {
		case changeInserted:
			cs.Insertions = append(cs.Insertions, id)
		case changeModified:
			cs.Modifications = append(cs.Modifications, id)
		case changeDeleted:
			cs.Deletions = append(cs.Deletions, id)
		}
	}
	return cs
}

func (t *sqliteReplicaTx) existingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(ids))

	for start := 0; start < len(ids); start += existingIDsChunk {
		chunk := ids[start:min(start+existingIDsChunk, len(ids))]

		query, args, err := buildSelectExistingIDsQuery(chunk)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		rows, err := t.tx.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		for rows.Next() {
			var id string
			if err = rows.Scan(&id); err != nil {
				rows.Close()
				return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			existing[id] = struct{}{}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
	}

	return existing, nil
}
