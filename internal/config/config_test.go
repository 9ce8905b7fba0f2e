package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Schedule.DefaultStartHour != 9 {
		t.Errorf("expected default_start_hour 9, got %v", cfg.Schedule.DefaultStartHour)
	}
	if cfg.Schedule.DefaultEndHour != 17 {
		t.Errorf("expected default_end_hour 17, got %v", cfg.Schedule.DefaultEndHour)
	}
	if len(cfg.Schedule.Workdays) != 5 {
		t.Errorf("expected 5 workdays, got %d", len(cfg.Schedule.Workdays))
	}
	if cfg.Schedule.DefaultAlgorithm != "greedy_forward" {
		t.Errorf("expected default_algorithm greedy_forward, got %s", cfg.Schedule.DefaultAlgorithm)
	}
	if cfg.LLM.Provider != "copilot" {
		t.Errorf("expected provider copilot, got %s", cfg.LLM.Provider)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default logging level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Schedule.DefaultStartHour != 9 {
		t.Errorf("expected default start hour, got %v", cfg.Schedule.DefaultStartHour)
	}
}

func TestLoadFromValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[schedule]
workdays = ["monday", "tuesday", "wednesday"]
default_start_hour = 8.0
default_end_hour = 16.0
max_hours_per_day = 5.0
default_algorithm = "balanced"
country_code = "US"

[holidays]
dates = ["2026-01-01"]

[[holidays.rules]]
name = "Thanksgiving"
rrule = "FREQ=YEARLY;BYMONTH=11;BYDAY=4TH"
dtstart = "2020-01-01"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Schedule.DefaultStartHour != 8 {
		t.Errorf("expected default_start_hour 8, got %v", cfg.Schedule.DefaultStartHour)
	}
	if cfg.Schedule.DefaultAlgorithm != "balanced" {
		t.Errorf("expected default_algorithm balanced, got %s", cfg.Schedule.DefaultAlgorithm)
	}
	if len(cfg.Schedule.Workdays) != 3 {
		t.Errorf("expected 3 workdays, got %d", len(cfg.Schedule.Workdays))
	}
	if len(cfg.Holidays.Dates) != 1 || cfg.Holidays.Dates[0] != "2026-01-01" {
		t.Errorf("expected one static holiday date, got %v", cfg.Holidays.Dates)
	}
	if len(cfg.Holidays.Rules) != 1 || cfg.Holidays.Rules[0].Name != "Thanksgiving" {
		t.Errorf("expected one holiday rule, got %v", cfg.Holidays.Rules)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[schedule]
default_start_hour = 8.0
default_end_hour = 16.0

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TASKDOG_DEFAULT_START_HOUR", "10")
	t.Setenv("TASKDOG_DEFAULT_ALGORITHM", "monte_carlo")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Schedule.DefaultStartHour != 10 {
		t.Errorf("expected default_start_hour 10 from env, got %v", cfg.Schedule.DefaultStartHour)
	}
	if cfg.Schedule.DefaultEndHour != 16 {
		t.Errorf("expected default_end_hour 16 from file, got %v", cfg.Schedule.DefaultEndHour)
	}
	if cfg.Schedule.DefaultAlgorithm != "monte_carlo" {
		t.Errorf("expected default_algorithm monte_carlo from env, got %s", cfg.Schedule.DefaultAlgorithm)
	}
}

func TestValidateStartAfterEnd(t *testing.T) {
	cfg := Default()
	cfg.Schedule.DefaultStartHour = 18
	cfg.Schedule.DefaultEndHour = 9

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error when default_start_hour >= default_end_hour")
	}
}

func TestValidateMaxHoursExceedsWindow(t *testing.T) {
	cfg := Default()
	cfg.Schedule.MaxHoursPerDay = 20

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error when max_hours_per_day exceeds the business window")
	}
}

func TestValidateInvalidWorkday(t *testing.T) {
	cfg := Default()
	cfg.Schedule.Workdays = []string{"monday", "funday"}

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid workday")
	}
}

func TestValidateEmptyWorkdays(t *testing.T) {
	cfg := Default()
	cfg.Schedule.Workdays = []string{}

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty workdays")
	}
}

func TestValidateHolidayRuleMissingField(t *testing.T) {
	cfg := Default()
	cfg.Holidays.Rules = []HolidayRule{{Name: "incomplete"}}

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for a holiday rule missing rrule")
	}
}

func TestIsWorkday(t *testing.T) {
	cfg := Default()

	tests := []struct {
		day  string
		want bool
	}{
		{"monday", true},
		{"Monday", true},
		{"FRIDAY", true},
		{"saturday", false},
		{"sunday", false},
	}

	for _, tc := range tests {
		t.Run(tc.day, func(t *testing.T) {
			if got := cfg.IsWorkday(tc.day); got != tc.want {
				t.Errorf("IsWorkday(%q) = %v, want %v", tc.day, got, tc.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := expandPath(tc.input); got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Schedule.DefaultStartHour = 7.5
	cfg.Schedule.DefaultEndHour = 15.5
	cfg.Schedule.Workdays = []string{"monday", "tuesday", "wednesday", "thursday"}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Schedule.DefaultStartHour != 7.5 {
		t.Errorf("expected default_start_hour 7.5, got %v", loaded.Schedule.DefaultStartHour)
	}
	if loaded.Schedule.DefaultEndHour != 15.5 {
		t.Errorf("expected default_end_hour 15.5, got %v", loaded.Schedule.DefaultEndHour)
	}
	if len(loaded.Schedule.Workdays) != 4 {
		t.Errorf("expected 4 workdays, got %d", len(loaded.Schedule.Workdays))
	}
}
