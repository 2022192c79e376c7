package tracker

import "time"

// Achievement ids.
const (
	AchievementFirstFrog     = "first_frog"
	AchievementEarlyBird     = "early_bird"
	AchievementHabitStarter  = "habit_starter"
	AchievementStreak7       = "streak_7"
	AchievementStreak30      = "streak_30"
	AchievementGoalSetter    = "goal_setter"
	AchievementGoalCrusher   = "goal_crusher"
	AchievementDeepWorker    = "deep_worker"
	AchievementJournaler     = "journaler"
	AchievementReader        = "reader"
	AchievementMorningMaster = "morning_master"
	AchievementAtomic        = "atomic"
)

// Milestones that trigger achievements.
const (
	streakWeek          = 7
	streakMonth         = 30
	journalerEntries    = 10
	readerPages         = 100
	deepWorkerHours     = 4
	morningMasterStreak = 7
)

type AchievementCategory string

const (
	CategoryHabits       AchievementCategory = "habits"
	CategoryGoals        AchievementCategory = "goals"
	CategoryProductivity AchievementCategory = "productivity"
	CategoryMindfulness  AchievementCategory = "mindfulness"
	CategoryReading      AchievementCategory = "reading"
	CategorySpecial      AchievementCategory = "special"
)

// Achievement is a catalog entry together with its unlock state.
type Achievement struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Points      int64               `json:"points"`
	UnlockedAt  *time.Time          `json:"unlocked_at"`
	Category    AchievementCategory `json:"category"`
}

func (a Achievement) Unlocked() bool { return a.UnlockedAt != nil }

// DefaultAchievements returns a fresh, fully locked catalog.
func DefaultAchievements() []Achievement {
	return []Achievement{
		newAchievement(AchievementFirstFrog, "First Frog", "Complete your first frog task", "🐸", 50, CategoryProductivity),
		newAchievement(AchievementEarlyBird, "Early Bird", "Wake up at 5am seven days in a row", "🌅", 200, CategoryHabits),
		newAchievement(AchievementHabitStarter, "Habit Starter", "Create your first habit", "🌱", 25, CategoryHabits),
		newAchievement(AchievementStreak7, "Week Streak", "Keep any habit for 7 days in a row", "🔥", 100, CategoryHabits),
		newAchievement(AchievementStreak30, "Month Streak", "Keep any habit for 30 days in a row", "💪", 500, CategoryHabits),
		newAchievement(AchievementGoalSetter, "Goal Setter", "Set your first goal", "🎯", 25, CategoryGoals),
		newAchievement(AchievementGoalCrusher, "Goal Crusher", "Achieve your first goal", "🏆", 200, CategoryGoals),
		newAchievement(AchievementDeepWorker, "Deep Worker", "Log 4 hours of deep work in a day", "🧠", 150, CategoryProductivity),
		newAchievement(AchievementJournaler, "Journaler", "Write 10 journal entries", "📝", 100, CategoryMindfulness),
		newAchievement(AchievementReader, "Reader", "Read 100 pages", "📚", 100, CategoryReading),
		newAchievement(AchievementMorningMaster, "Morning Master", "Complete the morning routine 7 days in a row", "☀️", 300, CategoryHabits),
		newAchievement(AchievementAtomic, "Atomic Habits", "Improve 1% every day for 30 days", "⚛️", 1000, CategorySpecial),
	}
}

func newAchievement(id, name, desc, icon string, points int64, cat AchievementCategory) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Points: points, Category: cat}
}

// UnlockAchievement unlocks id and awards its bonus. It returns false when the
// id is unknown or the achievement was already unlocked.
func (t *Tracker) UnlockAchievement(id string) bool {
	var unlocked bool
	_ = t.mutate(func(st *State) error {
		if unlocked = t.unlock(st, id); !unlocked {
			return errNoChange
		}
		return nil
	})
	return unlocked
}

// unlock marks id unlocked on st and awards its points. Awards never repeat.
func (t *Tracker) unlock(st *State, id string) bool {
	idx := -1
	for i := range st.Achievements {
		if st.Achievements[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || st.Achievements[idx].Unlocked() {
		return false
	}

	now := t.clock()
	a := &st.Achievements[idx]
	a.UnlockedAt = &now
	if st.User != nil {
		st.User.Achievements = append(st.User.Achievements, id)
	}
	t.award(st, a.Points)
	t.log.Info("achievement unlocked", "id", id, "points", a.Points)
	return true
}

// UnlockedCount returns how many achievements in the catalog are unlocked.
func UnlockedCount(achievements []Achievement) int {
	n := 0
	for _, a := range achievements {
		if a.Unlocked() {
			n++
		}
	}
	return n
}
