// Package cli wires the taskdeck commands.
package cli

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nissyi-gh/taskdeck/internal/config"
	"github.com/nissyi-gh/taskdeck/internal/logger"
	"github.com/nissyi-gh/taskdeck/internal/storage"
	"github.com/nissyi-gh/taskdeck/internal/store"
	"github.com/nissyi-gh/taskdeck/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// app holds what every command needs once flags are parsed.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	store   *store.TaskStore
	closers []io.Closer
	// slot overrides the configured storage; used by tests.
	slot storage.Slot
}

func (a *app) open() error {
	log, logCloser, err := logger.Open(a.cfg.LogFile, a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log = log
	a.closers = append(a.closers, logCloser)

	slot := a.slot
	switch {
	case slot != nil:
	case a.cfg.Ephemeral:
		slot = storage.NewMemorySlot()
	default:
		db, err := storage.OpenSQLite(a.cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		a.closers = append(a.closers, db)
		slot = db
	}

	adapter := storage.NewAdapter(slot, a.cfg.SlotKey, log)
	a.store = store.New(adapter.Load(), adapter, store.WithLogger(log))
	log.WithFields(logrus.Fields{"db": a.cfg.DBPath, "tasks": a.store.Len()}).Info("store ready")
	return nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newRootCommand(stdout, stderr io.Writer, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "taskdeck",
		Short:         "A personal task tracker",
		Long:          "taskdeck tracks tasks with categories, priorities and due dates.\nRun without a subcommand to open the interactive view.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg == nil {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				a.cfg = cfg
			}
			flags := cmd.Flags()
			if flags.Changed("db") {
				a.cfg.DBPath, _ = flags.GetString("db")
			}
			if flags.Changed("log-file") {
				a.cfg.LogFile, _ = flags.GetString("log-file")
			}
			if flags.Changed("log-level") {
				a.cfg.LogLevel, _ = flags.GetString("log-level")
			}
			if flags.Changed("ephemeral") {
				a.cfg.Ephemeral, _ = flags.GetBool("ephemeral")
			}
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(ui.NewModel(a.store), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run program: %w", err)
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("db", "", "path to the SQLite database")
	pf.String("log-file", "", `log file path, "-" for stderr`)
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.Bool("ephemeral", false, "keep tasks in memory only")

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.AddCommand(
		newAddCommand(a),
		newListCommand(a),
		newEditCommand(a),
		newToggleCommand(a),
		newRemoveCommand(a),
		newStatsCommand(a),
		newReportCommand(a),
		newImportCommand(a),
		newExportCommand(a),
	)
	return cmd
}

// Execute runs the command tree with args and returns a process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	cmd := newRootCommand(stdout, stderr, a)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		_ = a.close()
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
