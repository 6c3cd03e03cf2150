/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	adapterrepo "github.com/eslsoft/parlato/internal/adapter/repository"
	"github.com/eslsoft/parlato/internal/entity"
	"github.com/eslsoft/parlato/internal/infrastructure/config"
	"github.com/eslsoft/parlato/internal/infrastructure/database"
)

// dbInitCmd runs the schema migration and seeds the default game config
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Initialize the database schema and seed the default game config",
	Long:  "Runs the schema migration for the document tables and writes the default game rule set. Use --schema-only to migrate without seeding, or --force to overwrite an existing rule set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaOnly, _ := cmd.Flags().GetBool("schema-only")
		force, _ := cmd.Flags().GetBool("force")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		db, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()
		cmd.Println("schema migration complete")

		if schemaOnly {
			return nil
		}

		ctx := cmd.Context()
		if !force {
			var count int64
			if err := db.WithContext(ctx).Model(&adapterrepo.GameConfigRecord{}).Count(&count).Error; err != nil {
				return fmt.Errorf("inspect game config: %w", err)
			}
			if count > 0 {
				cmd.Println("game config already present, skipping seed (use --force to overwrite)")
				return nil
			}
		}

		configs := adapterrepo.NewGameConfigRepository(db)
		if err := configs.Save(ctx, entity.DefaultGameConfig()); err != nil {
			return fmt.Errorf("seed game config: %w", err)
		}
		cmd.Println("seeded default game config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().Bool("schema-only", false, "run the schema migration without seeding the game config")
	dbInitCmd.Flags().Bool("force", false, "overwrite an existing game config with the defaults")
}
