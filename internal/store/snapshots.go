package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/peakr/internal/tracker"
)

// SaveState writes the whole tracker state under tracker.StorageKey,
// replacing the previous snapshot.
func (s *Store) SaveState(st tracker.State) error {
	data, err := tracker.Encode(st)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO snapshots (key, schema_version, data, updated_at)
		 VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		 ON CONFLICT(key) DO UPDATE SET
			schema_version = excluded.schema_version,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		tracker.StorageKey, tracker.SchemaVersion, data,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadState reads the stored snapshot. found is false when nothing was ever
// saved, which means the user still has to onboard.
func (s *Store) LoadState() (st tracker.State, found bool, err error) {
	var data []byte
	err = s.db.QueryRow(`SELECT data FROM snapshots WHERE key = ?`, tracker.StorageKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return tracker.EmptyState(), false, nil
	}
	if err != nil {
		return tracker.State{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	st, err = tracker.Decode(data)
	if err != nil {
		return tracker.State{}, false, err
	}
	return st, true, nil
}

func (s *Store) SnapshotInfo() (SnapshotInfo, bool, error) {
	var info SnapshotInfo
	var updated string
	err := s.db.QueryRow(
		`SELECT key, schema_version, length(data), updated_at FROM snapshots WHERE key = ?`,
		tracker.StorageKey,
	).Scan(&info.Key, &info.SchemaVersion, &info.Size, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return SnapshotInfo{}, false, nil
	}
	if err != nil {
		return SnapshotInfo{}, false, fmt.Errorf("snapshot info: %w", err)
	}
	info.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return info, true, nil
}

// DeleteState drops the stored snapshot. Settings are kept.
func (s *Store) DeleteState() error {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, tracker.StorageKey); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
