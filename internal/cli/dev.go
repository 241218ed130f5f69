package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/compass/internal/config"
	"github.com/example/compass/internal/db"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development utilities",
		Long: `Development utilities for working with a scratch compass database.

These commands require COMPASS_DB_PATH to be set explicitly. Running without it
will error to prevent accidental modification of the real database.`,
	}

	cmd.AddCommand(devResetCmd())
	return cmd
}

func devResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset dev database with fresh fixtures",
		Long: `Delete the dev database and recreate it with a demo plan.

This command:
1. Deletes the existing dev database file
2. Creates a fresh database with the current schema
3. Seeds a demo plan whose statuses are already rolled up

Safety: This command requires COMPASS_DB_PATH to be set to prevent
accidental reset of the real database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Safety check: require COMPASS_DB_PATH to be set
			dbPath := os.Getenv(config.EnvDBPath)
			if dbPath == "" {
				return fmt.Errorf("%s not set - point it at a scratch database first\n\nThis safety check prevents accidental reset of your real database", config.EnvDBPath)
			}

			// Confirmation unless --force
			if !force {
				fmt.Printf("This will delete and recreate: %s\n", dbPath)
				fmt.Print("Continue? [y/N] ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			// Close any existing DB connection
			db.Close()
			db.SetPath(dbPath)

			if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete database: %w", err)
			}
			fmt.Printf("✓ Deleted %s\n", dbPath)

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to create database: %w", err)
			}
			fmt.Println("✓ Created fresh database with schema")

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Println("✓ Seeded fixture data")

			fmt.Println("\nDev database reset complete!")
			fmt.Println("\nSeeded entities:")
			fmt.Println("  - 1 plan (PLAN-001)")
			fmt.Println("  - 3 focus areas, 4 objectives, 6 activities")
			fmt.Println("\nTry: compass plan tree PLAN-001")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
