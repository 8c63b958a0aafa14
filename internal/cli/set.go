package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dclews/portage-tools/internal/engine"
)

var (
	setProfile string
	setDryRun  bool
)

var setCmd = &cobra.Command{
	Use:   "set <atom>",
	Short: "Check an atom and optionally assign it to a profile",
	Long: `Parse <atom> and check that no environment mapping already holds it.

Atoms take the form [<op>]category/package[-version], where <op> is one of
<, <=, =, >= or >. If a mapping already holds the atom the command fails and
names that mapping.

With --profile the atom is then appended to that profile's file, which is
created if needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		out := newPrinter(cmd)

		result, err := eng.Set(ctx, &engine.SetRequest{
			Atom:    args[0],
			Profile: setProfile,
			DryRun:  setDryRun,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return out.JSON(result)
		}

		switch {
		case result.Persisted:
			out.Success(fmt.Sprintf("Added '%s' to %s", result.Atom, result.Path))
		case result.Profile != "":
			out.Section("Dry Run")
			out.Info(fmt.Sprintf("Would add '%s' to %s", result.Atom, result.Path))
		default:
			out.Success(fmt.Sprintf("'%s' is not assigned to any of %s", result.Atom, formatCount(result.Checked, "environment mapping", "environment mappings")))
		}
		return nil
	},
}

func init() {
	setCmd.Flags().StringVarP(&setProfile, "profile", "p", "", "Profile to append the atom to")
	setCmd.Flags().BoolVar(&setDryRun, "dry-run", false, "Check and report without writing")
}
