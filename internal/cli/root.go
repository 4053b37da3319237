// Package cli provides the dartimeline command-line interface, an offline
// view of how a day's activity tasks pack into timeline lanes.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for dartimeline.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "dartimeline",
		Short: "Pack daily activity tasks into timeline lanes",
		Long: `dartimeline reads a YAML or JSON task list and shows how the tasks of
each day are laid out in non-overlapping lanes, the same way the activity
report timeline does.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newPackCommand())
	root.AddCommand(newVersionCommand(version))
	return root
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dartimeline version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "dartimeline %s\n", version)
			return err
		},
	}
}
