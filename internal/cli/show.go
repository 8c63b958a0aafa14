package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dclews/portage-tools/internal/engine"
)

var showCmd = &cobra.Command{
	Use:   "show <profile>",
	Short: "Show the atoms of one environment mapping",
	Long:  `Load a single environment mapping and print its atoms in canonical form, sorted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		out := newPrinter(cmd)

		details, err := eng.ShowMapping(ctx, &engine.ShowRequest{Profile: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return out.JSON(details)
		}

		out.Section(fmt.Sprintf("%s (%s)", details.Profile, formatCount(details.Count, "package", "packages")))
		out.LabelValue("Path", details.Name)
		if len(details.Atoms) == 0 {
			out.EmptyState("No atoms assigned")
			return nil
		}

		items := make([]string, 0, len(details.Atoms))
		for _, a := range details.Atoms {
			items = append(items, a.String())
		}
		out.List(items, 1)
		return nil
	},
}
