// Package cli wires the scheduling engine's collaborators (config, the
// SQLite repository, the calendar/holiday oracle, the clock, and the
// logger) into command implementations invoked by cmd/taskdog. An App
// is built once in main and passed to thin per-command functions.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gopherwork/taskdog/internal/calendar"
	"github.com/gopherwork/taskdog/internal/clock"
	"github.com/gopherwork/taskdog/internal/config"
	"github.com/gopherwork/taskdog/internal/db"
	"github.com/gopherwork/taskdog/internal/holiday"
	"github.com/gopherwork/taskdog/internal/logging"
)

// Version is set at build time.
var Version = "dev"

// App bundles every collaborator a command needs plus the cobra
// command tree.
type App struct {
	Config   *config.Config
	Repo     *db.SQLite
	Calendar *calendar.Oracle
	Clock    clock.Provider
	Logger   logging.Logger

	root *cobra.Command
}

// New builds an App from a loaded configuration: opens the SQLite
// repository, assembles the holiday oracle from configured rules and
// fixed dates, and wires a stderr logger at the configured level.
func New(cfg *config.Config) (*App, error) {
	repo, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	holidaySource, err := buildHolidaySource(cfg)
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("building holiday calendar: %w", err)
	}

	cal := calendar.New(cfg.Schedule.Workdays, holidaySource)
	logger := logging.NewStderr(cfg.Logging.Level)

	a := &App{
		Config:   cfg,
		Repo:     repo,
		Calendar: cal,
		Clock:    clock.System{},
		Logger:   logger,
	}
	a.buildRoot()
	return a, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases resources held by the app.
func (a *App) Close() error {
	return a.Repo.Close()
}

func buildHolidaySource(cfg *config.Config) (*holiday.Multi, error) {
	var rules []holiday.Rule
	for _, r := range cfg.Holidays.Rules {
		dtstart, err := time.Parse("2006-01-02", r.Dtstart)
		if err != nil {
			return nil, fmt.Errorf("holiday rule %q: invalid dtstart: %w", r.Name, err)
		}
		rules = append(rules, holiday.Rule{Name: r.Name, RRule: r.RRule, Dtstart: dtstart})
	}

	var recurring *holiday.RRuleSource
	if len(rules) > 0 {
		src, err := holiday.NewRRuleSource(rules)
		if err != nil {
			return nil, err
		}
		recurring = src
	}

	static := holiday.NewStaticSourceFromStrings(cfg.Holidays.Dates)

	if recurring == nil {
		return holiday.NewMulti(static), nil
	}
	return holiday.NewMulti(recurring, static), nil
}
