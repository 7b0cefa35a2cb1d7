package logging

import "testing"

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		if logger := New(level, "production"); logger == nil || logger.Logger == nil {
			t.Fatalf("New(%q) returned nil logger", level)
		}
	}
}

func TestNewDevelopmentHandler(t *testing.T) {
	if logger := New("debug", "development"); logger == nil {
		t.Fatal("expected logger for development env")
	}
}

func TestDefault(t *testing.T) {
	if logger := Default(); logger == nil || logger.Logger == nil {
		t.Fatal("Default returned nil logger")
	}
}
