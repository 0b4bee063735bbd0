package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
	"github.com/OraMartindale/laser-cutter-files/internal/project"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, create, back up or restore the user config",
	}
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigInitCmd(opts))
	cmd.AddCommand(newConfigExportCmd(opts))
	cmd.AddCommand(newConfigImportCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(w, s.config)
			}

			c := s.config
			d := c.DefaultDimensions
			PrintSection(w, "Config "+s.configPath)
			PrintLabelValue(w, "Book", fmt.Sprintf("%g x %g x %g mm", d.BookWidth, d.BookHeight, d.BookThickness))
			PrintLabelValue(w, "Material", mm(d.MaterialThickness))
			PrintLabelValue(w, "Slot length", fmt.Sprintf("%g-%g mm", c.DefaultGeometry.MinSlotLength, c.DefaultGeometry.MaxSlotLength))
			PrintLabelValue(w, "Corner length", mm(c.DefaultGeometry.CornerLength))
			PrintLabelValue(w, "Strict joints", fmt.Sprint(c.DefaultGeometry.StrictJoints))
			PrintLabelValue(w, "Laser profile", c.DefaultLaser.Profile)
			PrintLabelValue(w, "Formats", strings.Join(c.DefaultFormats, ", "))
			if len(c.RecentOutputs) > 0 {
				PrintSubsection(w, "Recent outputs")
				PrintList(w, c.RecentOutputs, 2)
			}
			return nil
		},
	}
}

func newConfigInitCmd(opts *globalOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the built-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = project.DefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := project.SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
				return err
			}
			PrintSuccess(cmd.OutOrStdout(), "Wrote "+path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigExportCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Bundle the config and custom laser profiles into one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], s.config, model.CustomProfiles); err != nil {
				return err
			}
			PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Exported config and %s to %s",
				PrintCount(len(model.CustomProfiles), "profile", "profiles"), args[0]))
			return nil
		},
	}
}

func newConfigImportCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the config and custom laser profiles from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(s.configPath, backup.Config); err != nil {
				return err
			}
			if err := s.profiles.Save(backup.Profiles); err != nil {
				return err
			}
			PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Restored config and %s from %s",
				PrintCount(len(backup.Profiles), "profile", "profiles"), args[0]))
			return nil
		},
	}
}
