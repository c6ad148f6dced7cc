package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/nissyi-gh/taskdeck/internal/importer"
	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/nissyi-gh/taskdeck/internal/query"
	"github.com/nissyi-gh/taskdeck/internal/report"
	"github.com/nissyi-gh/taskdeck/internal/stats"
	"github.com/spf13/cobra"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func parsePriorityFlag(v string) (model.Priority, error) {
	p, ok := model.ParsePriority(v)
	if !ok {
		return "", fmt.Errorf("unknown priority %q (want high, medium or low)", v)
	}
	return p, nil
}

func newAddCommand(a *app) *cobra.Command {
	var category, priority, due string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePriorityFlag(priority)
			if err != nil {
				return err
			}
			dueDate, err := model.NormalizeDueDate(&due)
			if err != nil {
				return fmt.Errorf("invalid due date %q", due)
			}
			task, ok, err := a.store.Create(model.Draft{
				Title:    args[0],
				Category: category,
				Priority: p,
				DueDate:  dueDate,
			})
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("title must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", task.ID, task.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", model.DefaultCategory, "task category")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(model.PriorityMedium), "high, medium or low")
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date (YYYY-MM-DD)")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	var f query.Filter
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks matching the filters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := query.Apply(a.store.Tasks(), f)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tasks)
			}
			return writeTable(cmd.OutOrStdout(), tasks, time.Now())
		},
	}
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "case-insensitive title search")
	cmd.Flags().StringVarP(&f.Category, "category", "c", query.All, "category filter")
	cmd.Flags().StringVarP(&f.Priority, "priority", "p", query.All, "priority filter")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeTable(w io.Writer, tasks []model.Task, now time.Time) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tCATEGORY\tDUE\tTITLE")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		due := "-"
		if t.DueDate != nil {
			due = *t.DueDate
			if t.IsOverdue(now) {
				due += " (overdue)"
			}
		}
		fmt.Fprintf(tw, "%d\t[%s]\t%s\t%s\t%s\t%s\n", t.ID, done, t.Priority, t.Category, due, t.Title)
	}
	return tw.Flush()
}

func newEditCommand(a *app) *cobra.Command {
	var title, category, priority, due string
	var clearDue bool
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, found := a.store.Get(id)
			if !found {
				return fmt.Errorf("task %d not found", id)
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				t.Title = title
			}
			if flags.Changed("category") {
				t.Category = category
			}
			if flags.Changed("priority") {
				if t.Priority, err = parsePriorityFlag(priority); err != nil {
					return err
				}
			}
			if flags.Changed("due") {
				if t.DueDate, err = model.NormalizeDueDate(&due); err != nil {
					return fmt.Errorf("invalid due date %q", due)
				}
			}
			if clearDue {
				t.DueDate = nil
			}
			ok, err := a.store.Update(t)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("title must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "high, medium or low")
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")
	return cmd
}

func newToggleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Toggle whether a task is completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.store.ToggleCompleted(id)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No task %d\n", id)
				return nil
			}
			t, _ := a.store.Get(id)
			state := "pending"
			if t.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d is %s\n", id, state)
			return nil
		},
	}
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := a.store.Delete(id)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No task %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			return nil
		},
	}
}

func newStatsCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := stats.Compute(a.store.Tasks(), time.Now())
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(st)
			}
			fmt.Fprintf(out, "Total:          %d\n", st.Total)
			fmt.Fprintf(out, "Completed:      %d\n", st.Completed)
			fmt.Fprintf(out, "Pending:        %d\n", st.Pending)
			fmt.Fprintf(out, "Completion:     %d%%\n", st.CompletionRate)
			fmt.Fprintf(out, "High priority:  %d\n", st.HighPriorityPending)
			fmt.Fprintf(out, "Overdue:        %d\n", st.Overdue)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newReportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print a markdown summary of pending work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), report.Summary(a.store.Tasks(), time.Now()))
			return err
		},
	}
}

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Add tasks from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			res, err := importer.Import(a.store, f)
			if err != nil {
				return err
			}
			a.log.WithField("created", res.Created).WithField("skipped", res.Skipped).Info("import finished")
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks (%d skipped)\n", res.Created, res.Skipped)
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.yaml]",
		Short: "Write all tasks as YAML to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return importer.Export(cmd.OutOrStdout(), a.store.Tasks())
			}
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create %s: %w", args[0], err)
			}
			if err := importer.Export(f, a.store.Tasks()); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
}
