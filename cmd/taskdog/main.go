// Command taskdog is the CLI entrypoint: load configuration, open the
// repository, and execute the command tree.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopherwork/taskdog/internal/cli"
	"github.com/gopherwork/taskdog/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbDir := filepath.Dir(cfg.Storage.DBPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	app, err := cli.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = app.Close() }()

	return app.Execute()
}
