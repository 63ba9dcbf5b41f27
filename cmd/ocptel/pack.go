package main

import (
	"fmt"

	"github.com/opencomputeproject/ocp-telemetry/bundle"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/telemetry"
	"github.com/spf13/cobra"
)

type packFlags struct {
	telemetry   string
	strings     string
	output      string
	compression string
	verify      bool
}

func newPackCmd(root *rootFlags) *cobra.Command {
	flags := &packFlags{}

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack a telemetry log and its strings log into a bundle",
		Long: `Pack a telemetry log and its strings log into a single checksummed,
compressed bundle. Data that does not compress is stored uncompressed.`,
		Example: `  ocptel pack --telemetry telemetry.bin --strings strings.bin -o log.ocpt --compression s2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, root, flags)
		},
	}

	cmd.Flags().StringVar(&flags.telemetry, "telemetry", "telemetry.bin", "Telemetry log input file")
	cmd.Flags().StringVar(&flags.strings, "strings", "strings.bin", "Strings log input file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "telemetry.ocpt", "Bundle output file")
	cmd.Flags().StringVar(&flags.compression, "compression", "zstd", "Compression: none, zstd, s2 or lz4")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "Decode and validate the logs before packing")

	return cmd
}

func runPack(cmd *cobra.Command, root *rootFlags, flags *packFlags) error {
	logger, err := root.logger()
	if err != nil {
		return err
	}
	defer logger.Close()

	ct, err := format.ParseCompressionType(flags.compression)
	if err != nil {
		return err
	}

	tel, strs, err := readLogs("", flags.telemetry, flags.strings)
	if err != nil {
		return err
	}
	if flags.verify {
		if _, err := telemetry.DecodePair(tel, strs); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		logger.Verbose("verified %s and %s", flags.telemetry, flags.strings)
	}

	data, err := bundle.Pack(tel, strs, bundle.WithCompression(ct))
	if err != nil {
		return err
	}

	var hdr bundle.Header
	if err := hdr.Parse(data); err != nil {
		return err
	}
	logger.Debug("bundle header %+v", hdr)

	if err := writeFile(flags.output, data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d bytes, %s payload %d bytes\n",
		flags.output, len(data), hdr.Compression, hdr.PayloadLength)

	return nil
}
