package store

import "time"

type Setting struct {
	Key   string
	Value string
}

// SnapshotInfo describes the stored snapshot without decoding it.
type SnapshotInfo struct {
	Key           string
	SchemaVersion int
	Size          int
	UpdatedAt     time.Time
}
