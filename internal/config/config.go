// Package config handles configuration loading from files, defaults,
// and environment variables for the scheduling optimizer's
// collaborators.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Holidays HolidaysConfig `toml:"holidays"`
	Logging  LoggingConfig  `toml:"logging"`
	LLM      LLMConfig      `toml:"llm"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds the values the optimization core reads at
// construction.
type ScheduleConfig struct {
	Workdays         []string `toml:"workdays"`
	DefaultStartHour float64  `toml:"default_start_hour"`
	DefaultEndHour   float64  `toml:"default_end_hour"`
	MaxHoursPerDay   float64  `toml:"max_hours_per_day"`
	DefaultPriority  int      `toml:"default_priority"`
	DefaultAlgorithm string   `toml:"default_algorithm"`
	CountryCode      string   `toml:"country_code"`
}

// HolidayRule is one recurring holiday rule, loaded into
// internal/holiday.Rule at startup.
type HolidayRule struct {
	Name    string `toml:"name"`
	RRule   string `toml:"rrule"`
	Dtstart string `toml:"dtstart"` // "2006-01-02"
}

// HolidaysConfig holds both recurring rules and one-off fixed dates.
type HolidaysConfig struct {
	Rules []HolidayRule `toml:"rules"`
	Dates []string      `toml:"dates"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// LLMConfig holds natural-language task intake provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "ollama", etc.
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			Workdays:         []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			DefaultStartHour: 9,
			DefaultEndHour:   17,
			MaxHoursPerDay:   6,
			DefaultPriority:  5,
			DefaultAlgorithm: "greedy_forward",
			CountryCode:      "",
		},
		Holidays: HolidaysConfig{},
		Logging: LoggingConfig{
			Level: "info",
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
			BaseURL:  "http://localhost:11434",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskdog.db"
	}
	return filepath.Join(home, ".local", "share", "taskdog", "taskdog.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "taskdog", "config.toml")
}

// Load loads configuration from the default path, merging with
// defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path: defaults,
// overlaid with file config if it exists, overlaid with env
// overrides, then validated.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the
// config. Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TASKDOG_WORKDAYS"); v != "" {
		cfg.Schedule.Workdays = strings.Split(v, ",")
	}
	if v, ok := envFloat("TASKDOG_DEFAULT_START_HOUR"); ok {
		cfg.Schedule.DefaultStartHour = v
	}
	if v, ok := envFloat("TASKDOG_DEFAULT_END_HOUR"); ok {
		cfg.Schedule.DefaultEndHour = v
	}
	if v, ok := envFloat("TASKDOG_MAX_HOURS_PER_DAY"); ok {
		cfg.Schedule.MaxHoursPerDay = v
	}
	if v, ok := envInt("TASKDOG_DEFAULT_PRIORITY"); ok {
		cfg.Schedule.DefaultPriority = v
	}
	if v := os.Getenv("TASKDOG_DEFAULT_ALGORITHM"); v != "" {
		cfg.Schedule.DefaultAlgorithm = v
	}
	if v := os.Getenv("TASKDOG_COUNTRY_CODE"); v != "" {
		cfg.Schedule.CountryCode = v
	}

	if v := os.Getenv("TASKDOG_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("TASKDOG_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("TASKDOG_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("TASKDOG_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("TASKDOG_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("TASKDOG_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

func envFloat(name string) (float64, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Schedule.DefaultStartHour < 0 || c.Schedule.DefaultStartHour >= 24 {
		return errors.New("default_start_hour must be within [0, 24)")
	}
	if c.Schedule.DefaultEndHour <= 0 || c.Schedule.DefaultEndHour > 24 {
		return errors.New("default_end_hour must be within (0, 24]")
	}
	if c.Schedule.DefaultStartHour >= c.Schedule.DefaultEndHour {
		return errors.New("default_start_hour must be before default_end_hour")
	}
	if c.Schedule.MaxHoursPerDay <= 0 {
		return errors.New("max_hours_per_day must be positive")
	}
	if c.Schedule.MaxHoursPerDay > (c.Schedule.DefaultEndHour - c.Schedule.DefaultStartHour) {
		return errors.New("max_hours_per_day cannot exceed the business day window")
	}
	if c.Schedule.DefaultAlgorithm == "" {
		return errors.New("default_algorithm must be set")
	}

	if len(c.Schedule.Workdays) == 0 {
		return errors.New("at least one workday must be configured")
	}
	for _, day := range c.Schedule.Workdays {
		if !isValidWeekday(day) {
			return fmt.Errorf("invalid workday: %s", day)
		}
	}

	for _, rule := range c.Holidays.Rules {
		if rule.Name == "" || rule.RRule == "" {
			return errors.New("holiday rule requires both name and rrule")
		}
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

var validWeekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func isValidWeekday(day string) bool {
	return validWeekdays[strings.ToLower(day)]
}

// IsWorkday returns true if the given weekday name is a configured
// workday.
func (c *Config) IsWorkday(weekday string) bool {
	weekday = strings.ToLower(weekday)
	for _, d := range c.Schedule.Workdays {
		if strings.ToLower(d) == weekday {
			return true
		}
	}
	return false
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
