package tracker

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sadopc/peakr/internal/logger"
)

// errNoChange aborts a mutation without committing or notifying.
var errNoChange = errors.New("no change")

// Tracker owns the application state. All mutations are serialized and each
// successful one commits a new snapshot, then notifies subscribers with it
// synchronously and in commit order. Subscribers must not call mutations.
type Tracker struct {
	mu       sync.Mutex
	notifyMu sync.Mutex
	state    State

	subs   map[int]func(State)
	nextID int

	clock Clock
	newID func() string
	log   *logger.Logger
}

type Option func(*Tracker)

func WithClock(c Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

func WithIDGenerator(fn func() string) Option {
	return func(t *Tracker) { t.newID = fn }
}

func WithLogger(l *logger.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithState starts the tracker from a previously saved snapshot.
func WithState(st State) Option {
	return func(t *Tracker) { t.state = st.clone() }
}

func New(opts ...Option) *Tracker {
	t := &Tracker{
		state: EmptyState(),
		subs:  map[int]func(State){},
		clock: SystemClock,
		newID: uuid.NewString,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.clone()
}

// Subscribe registers fn to receive every committed snapshot. The returned
// function removes the subscription.
func (t *Tracker) Subscribe(fn func(State)) func() {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// mutate runs fn against a private copy of the state. If fn succeeds the copy
// becomes the current state and subscribers are notified. Any error discards
// the copy; errNoChange is swallowed.
func (t *Tracker) mutate(fn func(st *State) error) error {
	t.mu.Lock()
	work := t.state.clone()
	if err := fn(&work); err != nil {
		t.mu.Unlock()
		if errors.Is(err, errNoChange) {
			return nil
		}
		t.log.Debug("mutation rejected", "error", err)
		return err
	}
	t.state = work

	subs := make([]func(State), 0, len(t.subs))
	for id := 0; id < t.nextID; id++ {
		if sub, ok := t.subs[id]; ok {
			subs = append(subs, sub)
		}
	}
	t.notifyMu.Lock()
	t.mu.Unlock()
	defer t.notifyMu.Unlock()

	for _, sub := range subs {
		sub(work.clone())
	}
	return nil
}

// Replace swaps in an entire snapshot, e.g. demo data or a loaded backup.
func (t *Tracker) Replace(st State) {
	_ = t.mutate(func(cur *State) error {
		*cur = st.clone()
		if len(cur.Achievements) == 0 {
			cur.Achievements = DefaultAchievements()
		}
		if cur.Finance.MoneyRules == nil {
			cur.Finance.MoneyRules = map[string]bool{}
		}
		cur.Version = SchemaVersion
		return nil
	})
}

// Reset clears all data and relocks the achievement catalog. The theme is kept.
func (t *Tracker) Reset() {
	_ = t.mutate(func(st *State) error {
		theme := st.Theme
		*st = EmptyState()
		st.Theme = theme
		return nil
	})
}

// Today is the tracker clock's current day key.
func (t *Tracker) Today() string {
	return Today(t.clock)
}

// HasUser reports whether onboarding has happened.
func (t *Tracker) HasUser() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.User != nil
}

// InitUser creates the local profile with zero points at level 1.
func (t *Tracker) InitUser(name string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	var created Profile
	err := t.mutate(func(st *State) error {
		st.User = &Profile{
			ID:             t.newID(),
			Name:           name,
			CreatedAt:      t.clock(),
			CoreValues:     []string{},
			LifeRoles:      map[string]string{},
			WakeUpTime:     "05:00",
			MorningRoutine: []string{"silence", "affirmations", "visualization", "exercise", "reading", "scribing"},
			EveningRoutine: []string{"review", "gratitude", "planning"},
			Level:          1,
			Achievements:   []string{},
		}
		for _, rule := range DefaultMoneyRules {
			if _, ok := st.Finance.MoneyRules[rule]; !ok {
				st.Finance.MoneyRules[rule] = false
			}
		}
		created = *st.User
		return nil
	})
	return created, err
}

// ProfileInput holds the user-editable profile fields. Nil fields are left unchanged.
type ProfileInput struct {
	Name             *string
	Email            *string
	MissionStatement *string
	CoreValues       []string
	WakeUpTime       *string
	LifeRoles        map[string]string
}

func (t *Tracker) UpdateProfile(in ProfileInput) error {
	return t.mutate(func(st *State) error {
		if st.User == nil {
			return ErrNoUser
		}
		u := st.User
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: name is required", ErrInvalid)
			}
			u.Name = name
		}
		if in.Email != nil {
			u.Email = *in.Email
		}
		if in.MissionStatement != nil {
			u.MissionStatement = *in.MissionStatement
		}
		if in.CoreValues != nil {
			u.CoreValues = cloneStrings(in.CoreValues)
		}
		if in.WakeUpTime != nil {
			u.WakeUpTime = *in.WakeUpTime
		}
		if in.LifeRoles != nil {
			u.LifeRoles = make(map[string]string, len(in.LifeRoles))
			for k, v := range in.LifeRoles {
				u.LifeRoles[k] = v
			}
		}
		return nil
	})
}

// AddPoints adds delta to the user's total and recomputes the level.
func (t *Tracker) AddPoints(delta int64) {
	_ = t.mutate(func(st *State) error {
		if st.User == nil {
			return errNoChange
		}
		t.award(st, delta)
		return nil
	})
}

// award applies a point delta to st. Without a user the points are dropped.
func (t *Tracker) award(st *State, delta int64) {
	if st.User == nil {
		return
	}
	before := st.User.Level
	st.User.TotalPoints, st.User.Level = AddPoints(st.User.TotalPoints, st.User.Level, delta)
	if st.User.Level > before {
		t.log.Info("level up", "level", st.User.Level, "total_points", st.User.TotalPoints)
	}
}

func (t *Tracker) SetCurrentView(view string) {
	_ = t.mutate(func(st *State) error {
		if st.CurrentView == view {
			return errNoChange
		}
		st.CurrentView = view
		return nil
	})
}

func (t *Tracker) SetTheme(theme Theme) error {
	return t.mutate(func(st *State) error {
		if _, err := ParseTheme(string(theme)); err != nil {
			return err
		}
		st.Theme = theme
		return nil
	})
}
