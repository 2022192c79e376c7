package tracker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name    string
		history History
		today   string
		want    int
	}{
		{"empty", History{}, "2024-01-07", 0},
		{"today only", History{"2024-01-07": true}, "2024-01-07", 1},
		{"three days", History{"2024-01-05": true, "2024-01-06": true, "2024-01-07": true}, "2024-01-07", 3},
		{"gap stops walk", History{"2024-01-04": true, "2024-01-06": true, "2024-01-07": true}, "2024-01-07", 2},
		{"today missing", History{"2024-01-05": true, "2024-01-06": true}, "2024-01-07", 0},
		{"explicit false", History{"2024-01-06": true, "2024-01-07": false}, "2024-01-07", 0},
		{"false breaks run", History{"2024-01-05": true, "2024-01-06": false, "2024-01-07": true}, "2024-01-07", 1},
		{"across month", History{"2024-01-31": true, "2024-02-01": true}, "2024-02-01", 2},
		{"across leap day", History{"2024-02-28": true, "2024-02-29": true, "2024-03-01": true}, "2024-03-01", 3},
		{"unparseable today", History{"bogus": true}, "bogus", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.history, tt.today))
		})
	}
}

func TestLongestRun(t *testing.T) {
	h := History{
		"2024-01-01": true, "2024-01-02": true,
		"2024-01-05": true, "2024-01-06": true, "2024-01-07": true,
		"2024-01-09": false,
	}
	assert.Equal(t, 3, LongestRun(h))
	assert.Equal(t, 0, LongestRun(History{}))
	assert.Equal(t, 5, CompletedCount(h))
}

func TestHistoryDecodeOnlyLiteralTrue(t *testing.T) {
	var h History
	err := json.Unmarshal([]byte(`{"2024-01-01":true,"2024-01-02":false,"2024-01-03":"true","2024-01-04":1}`), &h)
	require.NoError(t, err)

	assert.True(t, h["2024-01-01"])
	assert.False(t, h["2024-01-02"])
	assert.False(t, h["2024-01-03"])
	assert.False(t, h["2024-01-04"])
	assert.Equal(t, 1, CompletedCount(h))
}

func TestDayArithmetic(t *testing.T) {
	y, err := Yesterday("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", y)

	next, err := AddDays("2023-12-31", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", next)

	_, err = AddDays("31/12/2023", 1)
	require.Error(t, err)
}
