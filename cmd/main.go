package main

import (
	"context"
	"fmt"
	"os"

	"medisafe/cmd/bootstrap"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "medisafe",
		Short:        "MediSafe+ clinic API server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(cleanupNotificationsCmd())
	rootCmd.AddCommand(backfillCodesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and scheduled jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Initialize application with all dependencies
			app, err := bootstrap.New()
			if err != nil {
				return err
			}
			if err := app.InitServer(); err != nil {
				app.Close()
				return err
			}

			// Run the application
			return app.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	run := func(apply func(app *bootstrap.App) error) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New()
			if err != nil {
				return err
			}
			defer app.Close()
			return apply(app)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: run(func(app *bootstrap.App) error {
			migrator, err := app.Migrator()
			if err != nil {
				return err
			}
			return migrator.Up()
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: run(func(app *bootstrap.App) error {
			migrator, err := app.Migrator()
			if err != nil {
				return err
			}
			return migrator.Down()
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		RunE: run(func(app *bootstrap.App) error {
			migrator, err := app.Migrator()
			if err != nil {
				return err
			}
			version, dirty, err := migrator.Version()
			if err != nil {
				return err
			}
			fmt.Printf("version=%d dirty=%t\n", version, dirty)
			return nil
		}),
	})

	return cmd
}

func cleanupNotificationsCmd() *cobra.Command {
	var (
		days   int
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup-notifications",
		Short: "Delete notifications older than the retention period together with their files",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New()
			if err != nil {
				return err
			}
			defer app.Close()

			if !cmd.Flags().Changed("days") {
				days = app.Config.Cleanup.RetentionDays
			}

			result, err := app.NotificationUsecase().Cleanup(context.Background(), days, dryRun)
			if err != nil {
				return err
			}

			if result.DryRun {
				fmt.Printf("[dry run] %d notification(s) older than %s would be deleted\n", result.Matched, result.Cutoff.Format("2006-01-02 15:04"))
				return nil
			}
			fmt.Printf("Deleted %d notification(s) older than %d day(s), removed %d file(s)\n", result.Deleted, result.RetentionDays, result.FilesRemoved)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 15, "Delete notifications older than this many days")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only report what would be deleted")

	return cmd
}

func backfillCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-codes",
		Short: "Assign missing session codes and prescription numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New()
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.BackfillUsecase().Run(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Assigned %d session code(s), %d prescription number(s), linked %d prescription doctor(s)\n",
				result.SessionCodes, result.PrescriptionNumbers, result.PrescriptionDoctors)
			return nil
		},
	}
}
