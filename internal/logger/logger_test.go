package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", "v")
	l.With("scope", "test").Debug("ignored")
	l.Sync()
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "peakr.log")
	l, err := New("prod", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("habit completed", "habit_id", "h1")
	l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "habit completed") || !strings.Contains(string(data), `"habit_id":"h1"`) {
		t.Fatalf("unexpected log output: %s", data)
	}
}
