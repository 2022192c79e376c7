package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Habit streak scenario
// ============================================================

func TestWeekOfCompletionsUnlocksStreak7Once(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)

	h, err := tr.AddHabit(HabitInput{Title: "Meditate"})
	require.NoError(t, err)

	for _, day := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07"} {
		_, err := tr.ToggleHabitCompletion(h.ID, day)
		require.NoError(t, err)
	}

	st := tr.Snapshot()
	got := st.Habits[0]
	assert.Equal(t, 7, got.CurrentStreak)
	assert.Equal(t, 7, got.LongestStreak)
	assert.Equal(t, 7, got.TotalCompletions)
	require.True(t, achievement(t, st, AchievementStreak7).Unlocked())
	assert.False(t, achievement(t, st, AchievementStreak30).Unlocked())

	// habit_starter 25 + 7 completions + streak_7 100
	assert.Equal(t, int64(25+70+100), st.User.TotalPoints)

	count := 0
	for _, id := range st.User.Achievements {
		if id == AchievementStreak7 {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestUntoggleTodayKeepsPointsAndLongest(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)
	h, err := tr.AddHabit(HabitInput{Title: "Meditate"})
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		day, _ := AddDays("2024-01-01", i)
		_, err := tr.ToggleHabitCompletion(h.ID, day)
		require.NoError(t, err)
	}
	before := tr.Snapshot().User.TotalPoints

	got, err := tr.ToggleHabitCompletion(h.ID, "2024-01-07")
	require.NoError(t, err)

	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 7, got.LongestStreak)
	assert.Equal(t, 6, got.TotalCompletions)
	assert.Equal(t, before, tr.Snapshot().User.TotalPoints)
	assert.True(t, achievement(t, tr.Snapshot(), AchievementStreak7).Unlocked())
}

func TestDoubleToggleRemovesHistoryEntry(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	h, err := tr.AddHabit(HabitInput{Title: "Stretch"})
	require.NoError(t, err)

	_, err = tr.ToggleHabitCompletion(h.ID, "2024-01-05")
	require.NoError(t, err)
	got, err := tr.ToggleHabitCompletion(h.ID, "2024-01-05")
	require.NoError(t, err)

	assert.Empty(t, got.History)
	assert.Empty(t, tr.Snapshot().Habits[0].History)
	assert.Equal(t, 0, got.TotalCompletions)
}

func TestTogglePastDayRecomputesFromToday(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	h, err := tr.AddHabit(HabitInput{Title: "Read"})
	require.NoError(t, err)

	got, err := tr.ToggleHabitCompletion(h.ID, "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 1, got.TotalCompletions)

	_, err = tr.ToggleHabitCompletion(h.ID, "2024-01-07")
	require.NoError(t, err)
	got, err = tr.ToggleHabitCompletion(h.ID, "2024-01-06")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.Equal(t, 2, got.LongestStreak)
	assert.Equal(t, 3, got.TotalCompletions)
}

func TestToggleHabitRejectsBadInput(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	h, err := tr.AddHabit(HabitInput{Title: "Read"})
	require.NoError(t, err)

	_, err = tr.ToggleHabitCompletion("missing", "2024-01-07")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = tr.ToggleHabitCompletion(h.ID, "Jan 7")
	assert.ErrorIs(t, err, ErrInvalid)

	assert.Empty(t, tr.Snapshot().Habits[0].History)
}

func TestRefreshStreaksAfterIdleDays(t *testing.T) {
	tr, clock := newTestTracker(t, "2024-01-07")
	h, err := tr.AddHabit(HabitInput{Title: "Walk"})
	require.NoError(t, err)
	_, err = tr.ToggleHabitCompletion(h.ID, "2024-01-07")
	require.NoError(t, err)

	clock.setDay(t, "2024-01-09")
	tr.RefreshStreaks()

	got := tr.Snapshot().Habits[0]
	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 1, got.LongestStreak)
}

// ============================================================
// Achievements and points
// ============================================================

func TestUnlockAchievementIsIdempotent(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)

	assert.True(t, tr.UnlockAchievement(AchievementAtomic))
	first := achievement(t, tr.Snapshot(), AchievementAtomic).UnlockedAt

	assert.False(t, tr.UnlockAchievement(AchievementAtomic))
	assert.False(t, tr.UnlockAchievement("no_such_thing"))

	st := tr.Snapshot()
	assert.Equal(t, int64(1000), st.User.TotalPoints)
	assert.Equal(t, 2, st.User.Level)
	assert.Equal(t, []string{AchievementAtomic}, st.User.Achievements)
	assert.Equal(t, first, achievement(t, st, AchievementAtomic).UnlockedAt)
}

func TestPointsWithoutUserAreDropped(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	_, err := tr.AddHabit(HabitInput{Title: "Stretch"})
	require.NoError(t, err)

	st := tr.Snapshot()
	assert.Nil(t, st.User)
	assert.True(t, achievement(t, st, AchievementHabitStarter).Unlocked())
}

func TestAddPointsLevelsUp(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)

	tr.AddPoints(999)
	assert.Equal(t, 1, tr.Snapshot().User.Level)
	tr.AddPoints(1)
	assert.Equal(t, 2, tr.Snapshot().User.Level)
	tr.AddPoints(100000)
	assert.Equal(t, 6, tr.Snapshot().User.Level)
}

// ============================================================
// User
// ============================================================

func TestInitUser(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	assert.False(t, tr.HasUser())

	_, err := tr.InitUser("   ")
	assert.ErrorIs(t, err, ErrInvalid)

	p, err := tr.InitUser("Ada")
	require.NoError(t, err)
	assert.True(t, tr.HasUser())
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, int64(0), p.TotalPoints)
	assert.Len(t, p.MorningRoutine, 6)

	rules := tr.Snapshot().Finance.MoneyRules
	assert.Len(t, rules, len(DefaultMoneyRules))
}

func TestUpdateProfile(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	mission := "Build things"
	assert.ErrorIs(t, tr.UpdateProfile(ProfileInput{MissionStatement: &mission}), ErrNoUser)

	newTestUser(t, tr)
	require.NoError(t, tr.UpdateProfile(ProfileInput{MissionStatement: &mission, CoreValues: []string{"focus"}}))

	u := tr.Snapshot().User
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, mission, u.MissionStatement)
	assert.Equal(t, []string{"focus"}, u.CoreValues)

	empty := ""
	assert.ErrorIs(t, tr.UpdateProfile(ProfileInput{Name: &empty}), ErrInvalid)
	assert.Equal(t, "Ada", tr.Snapshot().User.Name)
}

func TestResetKeepsTheme(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)
	require.NoError(t, tr.SetTheme(ThemeDark))
	_, err := tr.AddHabit(HabitInput{Title: "Read"})
	require.NoError(t, err)

	tr.Reset()

	st := tr.Snapshot()
	assert.Nil(t, st.User)
	assert.Empty(t, st.Habits)
	assert.Equal(t, ThemeDark, st.Theme)
	assert.Zero(t, UnlockedCount(st.Achievements))
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	assert.ErrorIs(t, tr.SetTheme("sepia"), ErrInvalid)
	assert.Equal(t, ThemeAuto, tr.Snapshot().Theme)
}

// ============================================================
// Subscriptions
// ============================================================

func TestSubscribersSeeEveryCommitInOrder(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")

	var order []string
	var seen []int
	unsubA := tr.Subscribe(func(st State) {
		order = append(order, "a")
		seen = append(seen, len(st.Habits))
	})
	tr.Subscribe(func(State) { order = append(order, "b") })

	_, err := tr.AddHabit(HabitInput{Title: "One"})
	require.NoError(t, err)
	_, err = tr.AddHabit(HabitInput{Title: "Two"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
	assert.Equal(t, []int{1, 2}, seen)

	unsubA()
	_, err = tr.AddHabit(HabitInput{Title: "Three"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestFailedMutationDoesNotNotify(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	calls := 0
	tr.Subscribe(func(State) { calls++ })

	assert.ErrorIs(t, tr.DeleteHabit("missing"), ErrNotFound)
	tr.ClearInbox()
	assert.Zero(t, calls)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	h, err := tr.AddHabit(HabitInput{Title: "Read"})
	require.NoError(t, err)

	var received State
	tr.Subscribe(func(st State) { received = st })
	_, err = tr.ToggleHabitCompletion(h.ID, "2024-01-07")
	require.NoError(t, err)

	received.Habits[0].History["2024-01-06"] = true
	received.Habits[0].Title = "changed"
	snap := tr.Snapshot()
	snap.Achievements[0].Name = "changed"

	st := tr.Snapshot()
	assert.Equal(t, "Read", st.Habits[0].Title)
	assert.False(t, st.Habits[0].History["2024-01-06"])
	assert.NotEqual(t, "changed", st.Achievements[0].Name)
}
