package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) setDay(t *testing.T, day string) {
	t.Helper()
	d, err := ParseDay(day)
	require.NoError(t, err)
	c.now = d.Add(9 * time.Hour)
}

func newTestTracker(t *testing.T, today string) (*Tracker, *testClock) {
	t.Helper()
	clock := &testClock{}
	clock.setDay(t, today)
	n := 0
	tr := New(
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return tr, clock
}

func newTestUser(t *testing.T, tr *Tracker) {
	t.Helper()
	_, err := tr.InitUser("Ada")
	require.NoError(t, err)
}

func achievement(t *testing.T, st State, id string) Achievement {
	t.Helper()
	for _, a := range st.Achievements {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %q not in catalog", id)
	return Achievement{}
}
