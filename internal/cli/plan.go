package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OraMartindale/laser-cutter-files/internal/engine"
	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

func newPlanCmd(opts *globalOptions) *cobra.Command {
	var flags boxFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the joint plans without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			box, err := flags.resolve(cmd, s)
			if err != nil {
				return err
			}
			if err := box.Geometry.Validate(); err != nil {
				return err
			}

			joints, err := engine.PlanJoints(box.Dimensions, box.Geometry)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(w, joints)
			}
			printJoints(w, joints)
			return nil
		},
	}

	flags.register(cmd.Flags(), false)
	return cmd
}

// printJoints prints both joint plans as a table.
func printJoints(w io.Writer, j model.JointSet) {
	var rows [][]string
	for _, plan := range []model.JointPlan{j.Width, j.Height} {
		rows = append(rows, []string{
			plan.Family.String(),
			strconv.Itoa(plan.Count),
			fmt.Sprintf("%.2f", plan.Length),
			strconv.Itoa(plan.Fingers()),
			strconv.Itoa(plan.Slots()),
			strconv.FormatBool(plan.InRange),
		})
	}
	PrintSection(w, "Joint plans")
	PrintTable(w, []string{"Edge", "Segments", "Length (mm)", "Fingers", "Slots", "In range"}, rows)
}
