package store

import (
	"sync"

	"github.com/sadopc/peakr/internal/logger"
	"github.com/sadopc/peakr/internal/tracker"
)

// Autosaver persists every snapshot the tracker commits.
type Autosaver struct {
	store *Store
	log   *logger.Logger

	mu    sync.Mutex
	err   error
	saves int
}

func NewAutosaver(s *Store, log *logger.Logger) *Autosaver {
	if log == nil {
		log = logger.Nop()
	}
	return &Autosaver{store: s, log: log}
}

// Attach subscribes to t. The returned function stops autosaving.
func (a *Autosaver) Attach(t *tracker.Tracker) func() {
	return t.Subscribe(a.save)
}

func (a *Autosaver) save(st tracker.State) {
	err := a.store.SaveState(st)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.err = err
		a.log.Error("autosave failed", "error", err)
		return
	}
	a.err = nil
	a.saves++
}

// Err returns the error from the most recent save, if it failed.
func (a *Autosaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Saves counts successful writes.
func (a *Autosaver) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}
