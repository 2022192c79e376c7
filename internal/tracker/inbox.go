package tracker

import (
	"fmt"
	"strings"
)

// AddToInbox captures a free-text item for later processing.
func (t *Tracker) AddToInbox(item string) error {
	item = strings.TrimSpace(item)
	if item == "" {
		return fmt.Errorf("%w: inbox item is empty", ErrInvalid)
	}
	return t.mutate(func(st *State) error {
		st.Inbox = append(st.Inbox, item)
		return nil
	})
}

// RemoveFromInbox deletes the item at index (0-based).
func (t *Tracker) RemoveFromInbox(index int) error {
	return t.mutate(func(st *State) error {
		if index < 0 || index >= len(st.Inbox) {
			return fmt.Errorf("inbox item %d: %w", index, ErrNotFound)
		}
		st.Inbox = append(st.Inbox[:index], st.Inbox[index+1:]...)
		return nil
	})
}

func (t *Tracker) ClearInbox() {
	_ = t.mutate(func(st *State) error {
		if len(st.Inbox) == 0 {
			return errNoChange
		}
		st.Inbox = nil
		return nil
	})
}
