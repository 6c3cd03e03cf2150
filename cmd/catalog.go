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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/parlato/internal/catalog"
	"github.com/eslsoft/parlato/internal/entity"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the embedded verb catalog",
}

// catalogValidateCmd conjugates every catalog verb in every supported tense
// so a bad catalog edit fails in CI instead of in a lesson.
var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every catalog verb conjugates in all supported tenses",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if err := cat.Validate(); err != nil {
			return err
		}
		cmd.Printf("catalog ok: %d verbs across %d levels\n", cat.Size(), len(entity.OrderedLevels))
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the embedded verb catalog as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")

		cat, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		entries := cat.All()
		if level != "" {
			parsed := entity.ParseLevel(level)
			if parsed == entity.LevelUnspecified {
				return fmt.Errorf("unknown level %q, want one of A1..C1", level)
			}
			entries = cat.ByLevel(parsed)
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	catalogExportCmd.Flags().String("level", "", "restrict output to one CEFR level (A1..C1)")
}
