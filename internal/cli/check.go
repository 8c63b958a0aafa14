package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dclews/portage-tools/internal/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report atoms assigned to more than one profile",
	Long: `Load every environment mapping and report atoms held by more than one of them.

Exits with an error if any are found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		out := newPrinter(cmd)

		result, err := eng.Check(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := out.JSON(result); err != nil {
				return err
			}
		} else if len(result.Duplicates) == 0 {
			out.Success(fmt.Sprintf("%s across %s, no duplicates",
				formatCount(result.Atoms, "atom", "atoms"),
				formatCount(result.Mappings, "environment mapping", "environment mappings")))
		} else {
			out.Section("Duplicate Atoms")
			rows := make([][]string, 0, len(result.Duplicates))
			for _, dup := range result.Duplicates {
				for _, name := range dup.Mappings {
					rows = append(rows, []string{dup.Atom.String(), name})
				}
			}
			out.Table([]string{"Atom", "Mapping"}, rows)
		}

		if n := len(result.Duplicates); n > 0 {
			return fmt.Errorf("%w: %s assigned to more than one mapping", engine.ErrConflict, formatCount(n, "atom", "atoms"))
		}
		return nil
	},
}
