package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/peakr/internal/config"
	"github.com/sadopc/peakr/internal/logger"
	"github.com/sadopc/peakr/internal/seed"
	"github.com/sadopc/peakr/internal/store"
	"github.com/sadopc/peakr/internal/tracker"
)

type rootOptions struct {
	configPath string
	dbPath     string
}

// session is everything a command needs: the loaded tracker, autosaving
// into the store.
type session struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *store.Store
	tracker  *tracker.Tracker
	autosave *store.Autosaver
	seeded   bool
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	return cfg, nil
}

func openSession(o *rootOptions) (*session, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Mode, cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.New(cfg.DBPath)
	if err != nil {
		log.Sync()
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	st, found, err := s.LoadState()
	if err != nil {
		s.Close()
		log.Sync()
		return nil, nil, fmt.Errorf("load state: %w", err)
	}

	tr := tracker.New(tracker.WithState(st), tracker.WithLogger(log))
	autosave := store.NewAutosaver(s, log)
	detach := autosave.Attach(tr)

	sess := &session{cfg: cfg, log: log, store: s, tracker: tr, autosave: autosave}
	if !found && cfg.SeedOnFirstRun {
		tr.Replace(seed.Demo(time.Now()))
		sess.seeded = true
		log.Info("seeded demo data", "db", cfg.DBPath)
	}
	tr.RefreshStreaks()
	log.Debug("session opened", "db", cfg.DBPath, "found", found)

	cleanup := func() {
		detach()
		_ = s.Close()
		log.Sync()
	}
	return sess, cleanup, nil
}

// saved reports a failed autosave as the command's error.
func (s *session) saved() error {
	if err := s.autosave.Err(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (s *session) requireUser() error {
	if !s.tracker.HasUser() {
		return fmt.Errorf("%w: run `peakr init <name>` first", tracker.ErrNoUser)
	}
	return nil
}

// shortID is the prefix printed in listings; any unique prefix is accepted back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID maps a user-typed id or unique id prefix onto a full id.
func resolveID(kind, prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: %s id is required", tracker.ErrInvalid, kind)
	}
	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %q: %w", kind, prefix, tracker.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s id %q is ambiguous (%d matches)", tracker.ErrInvalid, kind, prefix, len(matches))
	}
}

func idsOf[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = id(item)
	}
	return out
}
