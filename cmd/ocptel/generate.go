package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/opencomputeproject/ocp-telemetry/bundle"
	"github.com/opencomputeproject/ocp-telemetry/config"
	"github.com/opencomputeproject/ocp-telemetry/format"
	"github.com/opencomputeproject/ocp-telemetry/internal/hash"
	"github.com/opencomputeproject/ocp-telemetry/section"
	"github.com/opencomputeproject/ocp-telemetry/telemetry"
	"github.com/spf13/cobra"
)

type generateFlags struct {
	configFile  string
	seed        uint64
	telemetry   string
	strings     string
	bundle      string
	compression string
	controller  bool
	firmware    string
	oui         string
	reason      string
}

func newGenerateCmd(root *rootFlags) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a telemetry log and its strings log",
		Long: `Generate a random but conformant telemetry log and the strings log that
names its vendor unique identifiers. Without --config the sample
configuration is used. The same --seed and configuration always produce
the same logs.`,
		Example: `  # Generate from the sample configuration
  ocptel generate --seed 42

  # Generate a controller-initiated log into a bundle
  ocptel generate --config telemetry.yaml --controller --bundle log.ocpt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "YAML generation configuration (default sample configuration)")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "Random seed (default time based)")
	cmd.Flags().StringVar(&flags.telemetry, "telemetry", "telemetry.bin", "Telemetry log output file")
	cmd.Flags().StringVar(&flags.strings, "strings", "strings.bin", "Strings log output file")
	cmd.Flags().StringVar(&flags.bundle, "bundle", "", "Write a bundle instead of two log files")
	cmd.Flags().StringVar(&flags.compression, "compression", "zstd", "Bundle compression: none, zstd, s2 or lz4")
	cmd.Flags().BoolVar(&flags.controller, "controller", false, "Generate a controller-initiated (08h) log")
	cmd.Flags().StringVar(&flags.firmware, "firmware", telemetry.DefaultFirmwareVersion, "Firmware version, up to 8 ASCII characters")
	cmd.Flags().StringVar(&flags.oui, "oui", hex.EncodeToString(telemetry.DefaultOUI[:]), "IEEE OUI as 6 hex digits")
	cmd.Flags().StringVar(&flags.reason, "reason", "", "Reason identifier error text")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootFlags, flags *generateFlags) error {
	logger, err := root.logger()
	if err != nil {
		return err
	}
	defer logger.Close()

	cfg := config.Default()
	if flags.configFile != "" {
		if cfg, err = config.Load(flags.configFile); err != nil {
			return err
		}
		logger.Verbose("loaded configuration %s", flags.configFile)
	}

	opts, err := generateOptions(cmd, flags)
	if err != nil {
		return err
	}
	opts = append(opts, telemetry.WithLogger(logger))

	enc, err := telemetry.NewEncoder(opts...)
	if err != nil {
		return err
	}
	tel, strs, err := enc.Encode(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.bundle != "" {
		ct, err := format.ParseCompressionType(flags.compression)
		if err != nil {
			return err
		}
		data, err := bundle.Pack(tel, strs, bundle.WithCompression(ct))
		if err != nil {
			return err
		}
		if err := writeFile(flags.bundle, data); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote bundle %s (%d bytes)\n", flags.bundle, len(data))
	} else {
		if err := writeFile(flags.telemetry, tel); err != nil {
			return err
		}
		if err := writeFile(flags.strings, strs); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote telemetry log %s (%d bytes)\n", flags.telemetry, len(tel))
		fmt.Fprintf(out, "Wrote strings log %s (%d bytes)\n", flags.strings, len(strs))
	}
	fmt.Fprintf(out, "Seed: %d\n", enc.Seed())
	fmt.Fprintf(out, "Fingerprint: %016x\n", hash.Fingerprint(tel, strs))

	return nil
}

func generateOptions(cmd *cobra.Command, flags *generateFlags) ([]telemetry.Option, error) {
	var opts []telemetry.Option
	if cmd.Flags().Changed("seed") {
		opts = append(opts, telemetry.WithSeed(flags.seed))
	}
	if flags.controller {
		opts = append(opts, telemetry.WithLogKind(format.LogControllerInitiated))
	}
	opts = append(opts, telemetry.WithFirmwareVersion(flags.firmware))

	oui, err := hex.DecodeString(flags.oui)
	if err != nil || len(oui) != 3 {
		return nil, fmt.Errorf("--oui %q must be 6 hex digits", flags.oui)
	}
	opts = append(opts, telemetry.WithOUI([3]byte(oui)))

	if flags.reason != "" {
		reason := section.NewReason(flags.reason)
		if len(flags.reason) > len(reason.ErrorID) {
			return nil, fmt.Errorf("--reason exceeds %d characters", len(reason.ErrorID))
		}
		reason.Flags = section.ReasonErrorValid
		opts = append(opts, telemetry.WithReason(reason))
	}

	return opts, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
