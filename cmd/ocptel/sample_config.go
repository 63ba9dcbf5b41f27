package main

import (
	"fmt"
	"os"

	"github.com/opencomputeproject/ocp-telemetry/config"
	"github.com/spf13/cobra"
)

func newSampleConfigCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sample-config",
		Short: "Write the sample generation configuration",
		Long: `Write the sample configuration used by generate when no --config is
given: all 29 OCP statistics, three vendor statistics, 100 random vendor
statistics and 16 FIFOs split between Data Areas 1 and 2.`,
		Example: `  # Start a custom configuration from the sample
  ocptel sample-config --output telemetry.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Default().Marshal()
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil { //nolint:gosec
				return fmt.Errorf("write sample config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}
