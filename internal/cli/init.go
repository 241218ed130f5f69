package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/compass/internal/config"
	"github.com/example/compass/internal/db"
	"github.com/example/compass/internal/version"
	"github.com/example/compass/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the compass database and config file",
		Long: `Create the compass database with the current schema and write a default
config file at ~/.compass/config.toml if none exists. Safe to re-run: pending
migrations are applied and an existing config file is left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing compass database at %s\n", dbPath)

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			schema, err := db.CurrentVersion(database)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			fmt.Printf("✓ Database ready (%s)\n", version.WithSchema(schema))

			path := configPath
			if path == "" {
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			written, err := writeDefaultConfig(path, wire.Settings())
			if err != nil {
				return err
			}
			if written {
				fmt.Printf("✓ Config written to %s\n", path)
			} else {
				fmt.Printf("  Config already present at %s\n", path)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  compass plan create \"My Strategic Plan\"")
			fmt.Println("  compass focus create \"First focus area\" --plan PLAN-001")

			return nil
		},
	}
}
