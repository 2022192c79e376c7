package tracker

// LevelThresholds holds the minimum cumulative points for levels 1 through 10.
var LevelThresholds = [...]int64{0, 1000, 5000, 15000, 50000, 100000, 250000, 500000, 1000000, 5000000}

// MaxLevel is the highest reachable level.
const MaxLevel = len(LevelThresholds)

var levelNames = [...]string{
	"Beginner",
	"Apprentice",
	"Practitioner",
	"Achiever",
	"Master",
	"Expert",
	"Sage",
	"Legend",
	"Titan",
	"Transcendent",
}

// Points awarded by the tracker's mutations.
var Points = struct {
	CompleteHabit          int64
	CompleteTask           int64
	CompleteFrog           int64
	CompleteMorningRoutine int64
	JournalEntry           int64
	DeepWorkHour           int64
	ReadPage               int64
	FinanceEntry           int64
	MoneyRule              int64
}{
	CompleteHabit:          10,
	CompleteTask:           5,
	CompleteFrog:           30,
	CompleteMorningRoutine: 50,
	JournalEntry:           15,
	DeepWorkHour:           20,
	ReadPage:               1,
	FinanceEntry:           5,
	MoneyRule:              5,
}

// AddPoints returns the new total and level after adding delta.
// The sign of delta is not checked. When no threshold matches the new total
// (a negative total) the current level is kept.
func AddPoints(currentTotal int64, currentLevel int, delta int64) (int64, int) {
	newTotal := currentTotal + delta
	newLevel := currentLevel
	for i := len(LevelThresholds) - 1; i >= 0; i-- {
		if newTotal >= LevelThresholds[i] {
			newLevel = i + 1
			break
		}
	}
	return newTotal, newLevel
}

// LevelFor maps a cumulative point total to its level.
func LevelFor(total int64) int {
	_, level := AddPoints(total, 1, 0)
	return level
}

// NextLevelThreshold returns the points needed for the level after level and
// false when level is already the maximum.
func NextLevelThreshold(level int) (int64, bool) {
	if level < 1 {
		return LevelThresholds[0], true
	}
	if level >= MaxLevel {
		return 0, false
	}
	return LevelThresholds[level], true
}

// LevelProgress returns how far total is between its level's threshold and
// the next one, as a percentage in [0,100].
func LevelProgress(total int64) int {
	level := LevelFor(total)
	next, ok := NextLevelThreshold(level)
	if !ok {
		return 100
	}
	base := LevelThresholds[level-1]
	if total <= base {
		return 0
	}
	return int((total - base) * 100 / (next - base))
}

// LevelName returns the display name of a level.
func LevelName(level int) string {
	if level < 1 || level > MaxLevel {
		return ""
	}
	return levelNames[level-1]
}
