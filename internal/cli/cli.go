package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gopherwork/taskdog/internal/optimize"
)

// buildRoot assembles the cobra command tree: a root command whose
// default action runs the configured algorithm's optimize pass, plus
// the subcommands version, optimize, simulate, import, export, list,
// week, add, algorithms and view.
func (a *App) buildRoot() {
	a.root = &cobra.Command{
		Use:   "taskdog",
		Short: "A personal task scheduler and optimization engine",
		Long: `taskdog schedules tasks against a shared daily capacity budget,
respecting deadlines, dependencies, and calendar holidays.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.RunOptimize(cmd.Context(), os.Stdout, OptimizeOptions{})
		},
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.optimizeCmd())
	a.root.AddCommand(a.simulateCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.algorithmsCmd())
	a.root.AddCommand(a.viewCmd())
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("taskdog %s\n", Version)
		},
	}
}

func (a *App) optimizeCmd() *cobra.Command {
	var opts OptimizeOptions
	var taskIDs []int64

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Schedule pending tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.TaskIDs = taskIDs
			return a.RunOptimize(cmd.Context(), os.Stdout, opts)
		},
	}

	cmd.Flags().Int64SliceVar(&taskIDs, "task", nil, "task id to schedule (repeatable); omit to schedule all eligible tasks")
	cmd.Flags().StringVar(&opts.Algorithm, "algorithm", "", "algorithm name (default from config)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "reschedule tasks that already have a planned window")
	cmd.Flags().Float64Var(&opts.MaxHoursPerDay, "max-hours", 0, "override max hours per day")
	cmd.Flags().StringVar(&opts.StartDate, "start-date", "", "override run start date (YYYY-MM-DD)")
	return cmd
}

func (a *App) simulateCmd() *cobra.Command {
	var opts SimulateOptions

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Preview where a hypothetical task would land, across every algorithm",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.RunSimulate(cmd.Context(), os.Stdout, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "task name")
	cmd.Flags().IntVar(&opts.Priority, "priority", 5, "priority (higher = more important)")
	cmd.Flags().Float64Var(&opts.EstimatedDuration, "duration", 0, "estimated duration in hours")
	cmd.Flags().StringVar(&opts.Deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.StartDate, "start-date", "", "run start date override (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&opts.MaxHoursPerDay, "max-hours", 0, "override max hours per day")
	return cmd
}

func (a *App) importCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import tasks from the canonical JSON format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			return a.RunImport(cmd.Context(), os.Stdout, f)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "path to the JSON file to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *App) exportCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks to the canonical JSON format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				return a.RunExport(cmd.Context(), os.Stdout)
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			return a.RunExport(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "path to write the JSON file (default: stdout)")
	return cmd
}

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.RunList(cmd.Context(), os.Stdout)
		},
	}
}

func (a *App) weekCmd() *cobra.Command {
	var weekStart string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the scheduled workload for a week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := a.Clock.Now()
			if weekStart != "" {
				d, err := parseDate(weekStart)
				if err != nil {
					return fmt.Errorf("invalid week start %q: %w", weekStart, err)
				}
				start = d
			}
			return a.RunWeek(cmd.Context(), os.Stdout, start)
		},
	}
	cmd.Flags().StringVar(&weekStart, "start", "", "any date within the target week (YYYY-MM-DD); default today")
	return cmd
}

func (a *App) addCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Decompose a free-text request into tasks via the configured LLM provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.RunIntake(cmd.Context(), os.Stdout, input)
		},
	}
	cmd.Flags().StringVar(&input, "text", "", "free-text description of the work to add")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func (a *App) viewCmd() *cobra.Command {
	var weekStart, themeName string
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open an interactive read-only week viewer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := a.Clock.Now()
			if weekStart != "" {
				d, err := parseDate(weekStart)
				if err != nil {
					return fmt.Errorf("invalid week start %q: %w", weekStart, err)
				}
				start = d
			}
			return a.RunTUIView(cmd.Context(), start, themeName)
		},
	}
	cmd.Flags().StringVar(&weekStart, "start", "", "any date within the target week (YYYY-MM-DD); default today")
	cmd.Flags().StringVar(&themeName, "theme", "", "theme name, overriding config (mocha, macchiato, frappe, latte, light)")
	return cmd
}

func (a *App) algorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List available scheduling algorithms",
		Run: func(_ *cobra.Command, _ []string) {
			for _, m := range optimize.GetAlgorithmMetadata() {
				fmt.Printf("%-20s %s\n", m.Name, m.Description)
			}
		},
	}
}
