package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/slotboard/internal/strategy"
)

// Repository defines the interface for snapshot persistence. The SQLite
// implementation is the production store; tests may substitute their own.
type Repository interface {
	// Get retrieves the snapshot for one entry.
	// Returns ErrNotFound if no snapshot has been stored for it.
	Get(ctx context.Context, entryID string) (*EntrySnapshot, error)

	// GetByTitle retrieves a snapshot by entry title.
	// Returns ErrNotFound if no snapshot matches.
	GetByTitle(ctx context.Context, title string) (*EntrySnapshot, error)

	// List retrieves every stored snapshot, oldest entry ID first.
	List(ctx context.Context) ([]EntrySnapshot, error)

	// Put inserts or replaces the snapshot for an entry.
	Put(ctx context.Context, snap *EntrySnapshot) error

	// Delete removes the snapshot for an entry. Removing a missing
	// snapshot is not an error.
	Delete(ctx context.Context, entryID string) error

	// Clear removes every stored snapshot.
	Clear(ctx context.Context) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open, migrated SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const snapshotColumns = "entry_id, title, registry_json, metadata_json, locks_json, fetched_at"

// Get retrieves the snapshot for one entry.
func (r *SQLiteRepository) Get(ctx context.Context, entryID string) (*EntrySnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+snapshotColumns+" FROM entry_snapshots WHERE entry_id = ?", entryID)
	snap, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying snapshot by entry id: %w", err)
	}
	return snap, nil
}

// GetByTitle retrieves a snapshot by entry title.
func (r *SQLiteRepository) GetByTitle(ctx context.Context, title string) (*EntrySnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+snapshotColumns+" FROM entry_snapshots WHERE title = ?", title)
	snap, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying snapshot by title: %w", err)
	}
	return snap, nil
}

// List retrieves every stored snapshot.
func (r *SQLiteRepository) List(ctx context.Context) ([]EntrySnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+snapshotColumns+" FROM entry_snapshots ORDER BY entry_id")
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var snaps []EntrySnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snaps = append(snaps, *snap)
	}
	return snaps, rows.Err()
}

// Put inserts or replaces the snapshot for an entry.
func (r *SQLiteRepository) Put(ctx context.Context, snap *EntrySnapshot) error {
	registryJSON, err := json.Marshal(snap.Registry)
	if err != nil {
		return fmt.Errorf("marshalling registry: %w", err)
	}
	metadataJSON, err := json.Marshal(snap.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}
	locksJSON, err := json.Marshal(snap.Locks)
	if err != nil {
		return fmt.Errorf("marshalling locks: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO entry_snapshots (entry_id, title, registry_json, metadata_json, locks_json, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(entry_id) DO UPDATE SET
			title = excluded.title,
			registry_json = excluded.registry_json,
			metadata_json = excluded.metadata_json,
			locks_json = excluded.locks_json,
			fetched_at = excluded.fetched_at`,
		snap.EntryID, snap.Title, string(registryJSON), string(metadataJSON),
		string(locksJSON), snap.FetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot for an entry.
func (r *SQLiteRepository) Delete(ctx context.Context, entryID string) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM entry_snapshots WHERE entry_id = ?", entryID); err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

// Clear removes every stored snapshot.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM entry_snapshots"); err != nil {
		return fmt.Errorf("clearing snapshots: %w", err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanSnapshot.
type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(s scanner) (*EntrySnapshot, error) {
	var snap EntrySnapshot
	var registryJSON, metadataJSON, locksJSON string
	var fetchedAt time.Time
	if err := s.Scan(&snap.EntryID, &snap.Title, &registryJSON, &metadataJSON,
		&locksJSON, &fetchedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(registryJSON), &snap.Registry); err != nil {
		return nil, fmt.Errorf("unmarshalling registry: %w", err)
	}
	if err := json.Unmarshal([]byte(metadataJSON), &snap.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshalling metadata: %w", err)
	}
	if err := json.Unmarshal([]byte(locksJSON), &snap.Locks); err != nil {
		return nil, fmt.Errorf("unmarshalling locks: %w", err)
	}
	snap.FetchedAt = fetchedAt

	// Normalise empty collections so round-trips compare cleanly.
	if snap.Registry == nil {
		snap.Registry = []strategy.RawEntity{}
	}
	if snap.Locks == nil {
		snap.Locks = []strategy.LockRef{}
	}
	return &snap, nil
}
