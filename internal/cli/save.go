package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OraMartindale/laser-cutter-files/internal/project"
)

func newSaveCmd(opts *globalOptions) *cobra.Command {
	var (
		flags boxFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Save box dimensions and settings to a project file",
		Long: `Save writes the dimensions, geometry and laser settings given by flags (on top
of the config defaults) to a project file that generate --project can load.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			box, err := flags.resolve(cmd, s)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") || box.Name == "Untitled" {
				box.Name = name
			}

			if err := project.SaveBox(args[0], box); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(w, box)
			}
			PrintSuccess(w, fmt.Sprintf("Saved project %q to %s", box.Name, args[0]))
			return nil
		},
	}

	flags.register(cmd.Flags(), true)
	cmd.Flags().StringVar(&name, "name", "Untitled", "Project name")
	return cmd
}
