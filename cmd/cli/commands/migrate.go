package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/mahjong-time/pkg/postgres"
)

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := runMigrations(app)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Println("\nDatabase is up to date.")
				return nil
			}

			fmt.Printf("\n✓ Applied %d migrations:\n", len(applied))
			for _, name := range applied {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println()
			return nil
		},
	}
}

func runMigrations(app *AppContext) ([]string, error) {
	pg, ok := app.Database.(*postgres.DB)
	if !ok {
		return nil, fmt.Errorf("migrations require databaseURL to be configured")
	}
	applied, err := pg.RunMigrations(app.Ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return applied, nil
}
