package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
	"github.com/OraMartindale/laser-cutter-files/internal/project"
)

func newProfileCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage laser GCode profiles",
	}
	cmd.AddCommand(newProfileListCmd(opts))
	cmd.AddCommand(newProfileImportCmd(opts))
	cmd.AddCommand(newProfileExportCmd(opts))
	return cmd
}

func newProfileListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadSession(opts); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			profiles := model.AllProfiles()
			if opts.jsonOutput {
				return outputJSON(w, profiles)
			}

			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				source := "custom"
				if p.IsBuiltIn {
					source = "built-in"
				}
				rows = append(rows, []string{p.Name, p.LaserOn, p.LaserOff, source, p.Description})
			}
			PrintTable(w, []string{"Name", "Laser on", "Laser off", "Source", "Description"}, rows)
			return nil
		},
	}
}

func newProfileImportCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add a profile from a JSON file to the custom profiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			imported, err := project.ImportProfile(args[0])
			if err != nil {
				return err
			}
			profiles, err := s.profiles.Put(imported)
			if err != nil {
				return err
			}
			model.CustomProfiles = profiles
			PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Imported profile %q", imported.Name))
			return nil
		},
	}
}

func newProfileExportCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <file>",
		Short: "Write one profile to a JSON file for sharing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadSession(opts); err != nil {
				return err
			}
			for _, p := range model.AllProfiles() {
				if p.Name == args[0] {
					if err := project.ExportProfile(args[1], p); err != nil {
						return err
					}
					PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Exported profile %q to %s", p.Name, args[1]))
					return nil
				}
			}
			return fmt.Errorf("unknown profile %q", args[0])
		},
	}
}
