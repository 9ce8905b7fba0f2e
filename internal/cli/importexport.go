package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/gopherwork/taskdog/internal/taskio"
)

// RunImport reads the canonical JSON array from r, converts each row
// to a task.Task, and bulk-saves the successful ones. Row-level
// conversion errors are reported without aborting the batch (spec
// §6's "legacy JSON form" import/export contract).
func (a *App) RunImport(ctx context.Context, w io.Writer, r io.Reader) error {
	result, err := taskio.Import(r)
	if err != nil {
		return err
	}

	if len(result.Tasks) > 0 {
		if err := a.Repo.SaveAll(ctx, result.Tasks); err != nil {
			return fmt.Errorf("saving imported tasks: %w", err)
		}
	}

	fmt.Fprintf(w, "imported %d task(s)\n", len(result.Tasks))
	for _, rowErr := range result.Errors {
		fmt.Fprintf(w, "  %s\n", rowErr.Error())
	}
	return nil
}

// RunExport writes every task in the repository to w as the canonical
// JSON array.
func (a *App) RunExport(ctx context.Context, w io.Writer) error {
	tasks, err := a.Repo.GetAll(ctx)
	if err != nil {
		return err
	}
	return taskio.Export(w, tasks)
}
