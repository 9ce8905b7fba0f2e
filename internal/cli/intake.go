package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/gopherwork/taskdog/internal/nlintake"
)

// maxIntakeRetries bounds how many times Intake.Decompose retries the
// LLM call with validation feedback before giving up.
const maxIntakeRetries = 2

// RunIntake decomposes free-text input into draft tasks via the
// configured LLM provider, converts the valid ones to task.Task
// values, and bulk-saves them — the same SaveAll path taskio.Import
// uses, so an intake run behaves like importing a small JSON batch
// the user never had to write by hand.
func (a *App) RunIntake(ctx context.Context, w io.Writer, input string) error {
	client, err := nlintake.NewClient(a.Config.LLM.Provider, a.Config.LLM.Model, a.Config.LLM.BaseURL)
	if err != nil {
		return fmt.Errorf("building LLM client: %w", err)
	}

	intake := nlintake.New(client)
	result, err := intake.Decompose(ctx, nlintake.Request{Input: input, Now: a.Clock.Now()}, maxIntakeRetries)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}

	tasks, convErrs := nlintake.ToTasks(result.Tasks)
	if len(tasks) > 0 {
		if err := a.Repo.SaveAll(ctx, tasks); err != nil {
			return fmt.Errorf("saving decomposed tasks: %w", err)
		}
	}

	fmt.Fprintf(w, "added %d task(s) from intake\n", len(tasks))
	for _, t := range tasks {
		fmt.Fprintf(w, "  #%d %s\n", t.ID, t.Name)
	}
	for _, e := range convErrs {
		fmt.Fprintf(w, "  skipped: %s\n", e)
	}
	for _, ve := range result.ValidationErrors {
		fmt.Fprintf(w, "  validation: %s\n", ve.String())
	}
	return nil
}
