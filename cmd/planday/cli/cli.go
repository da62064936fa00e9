// Package cli wires configuration, logging and storage behind the planday
// command tree.
package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/planday/internal/calendar"
	"github.com/sandeepkv93/planday/internal/commands"
	"github.com/sandeepkv93/planday/internal/model"
	"github.com/sandeepkv93/planday/internal/scheduler"
	"github.com/sandeepkv93/planday/internal/storage"
	"github.com/sandeepkv93/planday/internal/update"
	"github.com/sandeepkv93/planday/internal/views"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	configPath string
	dbPath     string
	logLevel   string
}

// NewRootCommand runs the interactive agenda and carries the show, add and
// migrate subcommands.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "planday",
		Short:         "Day and week agenda with tasks and subtasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default $PLANDAY_CONFIG or the user config dir)")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite database path")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(NewShowCommand(flags))
	root.AddCommand(NewAddCommand(flags))
	root.AddCommand(NewMigrateCommand(flags))
	return root
}

// NewShowCommand prints the agenda of a day or its week without the TUI.
func NewShowCommand(flags *rootFlags) *cobra.Command {
	var week bool
	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Print the agenda for a date (yyyy-mm-dd, today, tomorrow, +N, -N)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := "today"
			if len(args) == 1 {
				raw = args[0]
			}
			target, err := commands.ParseDateArg(raw)
			if err != nil {
				return err
			}

			a, err := open(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.close()

			today := model.DateOf(a.now())
			mode := calendar.ViewDay
			if week {
				mode = calendar.ViewWeek
			}
			window := calendar.WindowFor(mode, target.Resolve(today))
			days, err := a.service().LoadWindow(cmd.Context(), window)
			if err != nil {
				return err
			}
			data := update.AgendaData(window, days, today, update.PlainRows(days), -1)
			_, err = fmt.Fprint(cmd.OutOrStdout(), views.RenderPlainAgenda(data))
			return err
		},
	}
	cmd.Flags().BoolVarP(&week, "week", "w", false, "show the whole week containing the date")
	return cmd
}

// NewAddCommand creates a main task, optionally with subtasks.
func NewAddCommand(flags *rootFlags) *cobra.Command {
	var (
		date string
		subs []string
	)
	cmd := &cobra.Command{
		Use:   "add <name> [@HH:mm]",
		Short: "Add a task to a date",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := commands.Parse("add " + strings.Join(args, " "))
			if err != nil {
				return err
			}
			target, err := commands.ParseDateArg(date)
			if err != nil {
				return err
			}

			a, err := open(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.close()

			svc := a.service()
			pd, err := svc.LoadDate(cmd.Context(), target.Resolve(model.DateOf(a.now())))
			if err != nil {
				return err
			}
			task, err := svc.CreateMainTask(cmd.Context(), pd, parsed.Add.Name, parsed.Add.Time)
			if err != nil {
				return err
			}
			for _, name := range subs {
				if _, err := svc.CreateSubTask(cmd.Context(), task, name); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added %q on %s\n", task.Name(), task.Date())
			return err
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "today", "date of the task")
	cmd.Flags().StringArrayVarP(&subs, "sub", "s", nil, "subtask name, repeatable")
	return cmd
}

// NewMigrateCommand applies or reverts the embedded schema.
func NewMigrateCommand(flags *rootFlags) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema commands",
	}
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Create the tables and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigration(cmd, flags, storage.MigrateUp, "up")
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Drop the tables and every stored task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigration(cmd, flags, storage.MigrateDown, "down")
		},
	})
	return migrateCmd
}

func runMigration(cmd *cobra.Command, flags *rootFlags, migrate func(context.Context, *storage.Gateway) error, direction string) error {
	a, err := openStore(cmd.Context(), flags, false)
	if err != nil {
		return err
	}
	defer a.close()
	if err := migrate(cmd.Context(), a.store); err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	a.log.Info("migration applied", zap.String("direction", direction), zap.String("db", a.cfg.DBPath))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok (%s)\n", direction, a.cfg.DBPath)
	return err
}

func runTUI(ctx context.Context, flags *rootFlags) error {
	a, err := open(ctx, flags)
	if err != nil {
		return err
	}
	defer a.close()

	mode, err := calendar.ParseViewMode(a.cfg.DefaultView)
	if err != nil {
		a.log.Warn("falling back to day view", zap.Error(err))
		mode = calendar.ViewDay
	}
	var alarms *scheduler.Engine
	if a.cfg.Alarms {
		alarms = scheduler.NewEngine(16)
		alarms.Start()
		defer alarms.Stop()
	}
	m := update.NewModel(update.Options{
		Service:     a.service(),
		Alarms:      alarms,
		Logger:      a.log,
		Keys:        a.cfg.Keys,
		DefaultView: mode,
		ShowClock:   a.cfg.ShowClock,
		Context:     ctx,
	})
	a.log.Info("starting ui", zap.String("view", string(mode)), zap.String("db", a.cfg.DBPath))
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
