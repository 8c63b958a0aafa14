package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List environment mappings",
	Long: `Load every environment mapping and print how many packages each one holds.

A mapping is named by the path of its profile file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		out := newPrinter(cmd)

		summaries, err := eng.ListMappings(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			return out.JSON(summaries)
		}

		if len(summaries) == 0 {
			out.EmptyState(fmt.Sprintf("No environment mappings found in %s", eng.Paths().PackageEnvDir))
			return nil
		}

		for _, s := range summaries {
			out.Info(fmt.Sprintf("%s: %d packages", s.Name, s.Count))
		}
		return nil
	},
}
