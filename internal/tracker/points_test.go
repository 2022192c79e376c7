package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddPoints(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		level     int
		delta     int64
		wantTotal int64
		wantLevel int
	}{
		{"zero stays level 1", 0, 1, 0, 0, 1},
		{"just below 2", 990, 1, 9, 999, 1},
		{"exactly 2", 990, 1, 10, 1000, 2},
		{"jump several levels", 0, 1, 60000, 60000, 5},
		{"top threshold", 4999999, 9, 1, 5000000, 10},
		{"saturates", 5000000, 10, 1000000, 6000000, 10},
		{"negative keeps level", 0, 3, -10, -10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, level := AddPoints(tt.total, tt.level, tt.delta)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantLevel, level)
		})
	}
}

func TestLevelNeverDecreasesOnNonNegativeDeltas(t *testing.T) {
	total, level := int64(0), 1
	for _, delta := range []int64{10, 0, 990, 5, 4000, 0, 10000, 35000, 1} {
		prev := level
		total, level = AddPoints(total, level, delta)
		assert.GreaterOrEqual(t, level, prev)
		assert.Equal(t, LevelFor(total), level)
	}
}

func TestLevelProgressAndNames(t *testing.T) {
	assert.Equal(t, 0, LevelProgress(0))
	assert.Equal(t, 50, LevelProgress(500))
	assert.Equal(t, 25, LevelProgress(2000))
	assert.Equal(t, 100, LevelProgress(7000000))

	next, ok := NextLevelThreshold(1)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), next)
	_, ok = NextLevelThreshold(MaxLevel)
	assert.False(t, ok)

	assert.Equal(t, "Beginner", LevelName(1))
	assert.Equal(t, "Transcendent", LevelName(10))
	assert.Equal(t, "", LevelName(11))
}

func TestGoalProgressClamps(t *testing.T) {
	assert.Equal(t, 50.0, GoalProgress(5, 10))
	assert.Equal(t, 100.0, GoalProgress(25, 10))
	assert.Equal(t, 0.0, GoalProgress(-3, 10))
	assert.Equal(t, 0.0, GoalProgress(5, 0))
}
