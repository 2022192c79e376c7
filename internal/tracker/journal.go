package tracker

import (
	"fmt"
	"strings"
)

type JournalInput struct {
	Date           string
	Type           JournalType
	Title          string
	Content        string
	GratitudeItems []string
	Mood           int
	Tags           []string
}

func (in JournalInput) normalize(today string) (JournalInput, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" && len(in.GratitudeItems) == 0 {
		return in, fmt.Errorf("%w: journal entry is empty", ErrInvalid)
	}
	if in.Date == "" {
		in.Date = today
	}
	if _, err := ParseDay(in.Date); err != nil {
		return in, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if in.Type == "" {
		in.Type = JournalFree
	}
	if _, err := ParseJournalType(string(in.Type)); err != nil {
		return in, err
	}
	if in.Mood < 0 || in.Mood > 10 {
		return in, fmt.Errorf("%w: mood must be between 0 and 10", ErrInvalid)
	}
	return in, nil
}

func findJournalEntry(st *State, id string) int {
	for i := range st.JournalEntries {
		if st.JournalEntries[i].ID == id {
			return i
		}
	}
	return -1
}

// AddJournalEntry stores an entry and awards the journal bonus. The tenth
// entry unlocks journaler.
func (t *Tracker) AddJournalEntry(in JournalInput) (JournalEntry, error) {
	in, err := in.normalize(Today(t.clock))
	if err != nil {
		return JournalEntry{}, err
	}
	var created JournalEntry
	err = t.mutate(func(st *State) error {
		e := JournalEntry{
			ID:             t.newID(),
			Date:           in.Date,
			Type:           in.Type,
			Title:          in.Title,
			Content:        in.Content,
			GratitudeItems: cloneStrings(in.GratitudeItems),
			Mood:           in.Mood,
			Tags:           cloneStrings(in.Tags),
			CreatedAt:      t.clock(),
		}
		st.JournalEntries = append(st.JournalEntries, e)
		t.award(st, Points.JournalEntry)
		if len(st.JournalEntries) >= journalerEntries {
			t.unlock(st, AchievementJournaler)
		}
		created = e
		created.GratitudeItems = cloneStrings(e.GratitudeItems)
		created.Tags = cloneStrings(e.Tags)
		return nil
	})
	return created, err
}

func (t *Tracker) UpdateJournalEntry(id string, in JournalInput) error {
	in, err := in.normalize(Today(t.clock))
	if err != nil {
		return err
	}
	return t.mutate(func(st *State) error {
		i := findJournalEntry(st, id)
		if i < 0 {
			return notFound("journal entry", id)
		}
		e := &st.JournalEntries[i]
		e.Date = in.Date
		e.Type = in.Type
		e.Title = in.Title
		e.Content = in.Content
		e.GratitudeItems = cloneStrings(in.GratitudeItems)
		e.Mood = in.Mood
		e.Tags = cloneStrings(in.Tags)
		return nil
	})
}

func (t *Tracker) DeleteJournalEntry(id string) error {
	return t.mutate(func(st *State) error {
		i := findJournalEntry(st, id)
		if i < 0 {
			return notFound("journal entry", id)
		}
		st.JournalEntries = append(st.JournalEntries[:i], st.JournalEntries[i+1:]...)
		return nil
	})
}
