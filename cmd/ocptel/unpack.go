package main

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/bundle"
	"github.com/spf13/cobra"
)

type unpackFlags struct {
	input     string
	telemetry string
	strings   string
}

func newUnpackCmd(root *rootFlags) *cobra.Command {
	flags := &unpackFlags{}

	cmd := &cobra.Command{
		Use:     "unpack",
		Short:   "Extract the telemetry log and strings log from a bundle",
		Example: `  ocptel unpack -i log.ocpt --telemetry telemetry.bin --strings strings.bin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(cmd, root, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "telemetry.ocpt", "Bundle input file")
	cmd.Flags().StringVar(&flags.telemetry, "telemetry", "telemetry.bin", "Telemetry log output file")
	cmd.Flags().StringVar(&flags.strings, "strings", "strings.bin", "Strings log output file")

	return cmd
}

func runUnpack(cmd *cobra.Command, root *rootFlags, flags *unpackFlags) error {
	logger, err := root.logger()
	if err != nil {
		return err
	}
	defer logger.Close()

	data, err := readFile(flags.input)
	if err != nil {
		return err
	}
	b, err := bundle.Unpack(data)
	if err != nil {
		return err
	}
	logger.Verbose("bundle %s: %s, payload %d bytes", flags.input, b.Header.Compression, b.Header.PayloadLength)

	if err := writeFile(flags.telemetry, b.Telemetry); err != nil {
		return err
	}
	if err := writeFile(flags.strings, b.Strings); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote telemetry log %s (%d bytes)\n", flags.telemetry, len(b.Telemetry))
	fmt.Fprintf(out, "Wrote strings log %s (%d bytes)\n", flags.strings, len(b.Strings))

	return nil
}
