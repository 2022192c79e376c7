package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/peakr/internal/tracker"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Counts     jsonCounts    `json:"counts"`
	State      tracker.State `json:"state"`
}

type jsonCounts struct {
	Habits         int `json:"habits"`
	Tasks          int `json:"tasks"`
	Goals          int `json:"goals"`
	JournalEntries int `json:"journal_entries"`
	FinanceEntries int `json:"finance_entries"`
	Achievements   int `json:"achievements_unlocked"`
}

// ToJSON writes a full backup of st.
func ToJSON(st tracker.State, path string) error {
	st.Version = tracker.SchemaVersion
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Counts: jsonCounts{
			Habits:         len(st.Habits),
			Tasks:          len(st.Tasks),
			Goals:          len(st.Goals),
			JournalEntries: len(st.JournalEntries),
			FinanceEntries: len(st.Finance.Entries),
			Achievements:   tracker.UnlockedCount(st.Achievements),
		},
		State: st,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// FromJSON reads a backup written by ToJSON.
func FromJSON(path string) (tracker.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tracker.State{}, fmt.Errorf("read json file: %w", err)
	}
	var raw struct {
		State json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return tracker.State{}, fmt.Errorf("unmarshal json: %w", err)
	}
	if len(raw.State) == 0 {
		return tracker.State{}, fmt.Errorf("unmarshal json: no state in %s", path)
	}
	return tracker.Decode(raw.State)
}
